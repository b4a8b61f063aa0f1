package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/gomodule/redigo/redis"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/ensapi/base/ctx"
	"github.com/x-xyz/ensapi/base/database/redisclient"
	bethereum "github.com/x-xyz/ensapi/base/ethereum"
	"github.com/x-xyz/ensapi/base/log"
	"github.com/x-xyz/ensapi/base/metrics"
	bValidator "github.com/x-xyz/ensapi/base/validator"
	"github.com/x-xyz/ensapi/domain"
	mmiddleware "github.com/x-xyz/ensapi/middleware"
	"github.com/x-xyz/ensapi/service/ens"
	"github.com/x-xyz/ensapi/service/gateway"
	ens_delivery "github.com/x-xyz/ensapi/stores/ens/delivery/http"
	hc_delivery "github.com/x-xyz/ensapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/ensapi/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/ensapi/stores/healthcheck/usecase"
)

func init() {
	pflag.String("config", "infra/configs/config.yaml", "path of the yaml config file")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		panic(err)
	}

	viper.SetDefault("listen", ":8080")
	viper.SetDefault("rpcConcurrency", 16)
	viper.SetDefault("ens.cacheTTL", ens.DefaultCacheTTL)
	viper.SetDefault("ens.lookupLimit", ens.DefaultLookupLimit)
	viper.SetDefault("ens.batchWorkers", ens.DefaultBatchWorkers)
	viper.SetDefault("ens.httpCacheTTL", time.Hour)
	viper.SetDefault("gateway.timeout", gateway.DefaultConfig.Timeout)
	viper.SetDefault("gateway.retries", gateway.DefaultConfig.Retries)
	viper.SetDefault("gateway.backoffStart", gateway.DefaultConfig.BackoffStart)
	viper.SetDefault("gateway.backoffLimit", gateway.DefaultConfig.BackoffLimit)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(viper.GetString("config"))
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.SetDebug(true)
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	defer log.Sync()

	chainId := domain.ChainId(viper.GetUint64("chainId"))

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware(chainId)
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()

	// init Redis cache, optional
	var redisCachePool *redis.Pool
	if uri := viper.GetString("redis_cache.uri"); uri != "" {
		context.Info("init redis cache")
		redisCachePool = redisclient.MustConnectRedis(uri, viper.GetString("redis_cache.password"), redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
			Retry:          true,
		})
		defer redisCachePool.Close()
	}
	mmiddleware.SetupCache(redisCachePool)

	// init rpc client
	context.WithField("chainId", chainId).Info("init rpc client")
	client, err := ethclient.Dial(viper.GetString("rpcUrl"))
	if err != nil {
		context.WithField("err", err).Panic("ethclient.Dial failed")
	}
	defer client.Close()
	rpc := bethereum.NewThrottledClient(client, viper.GetInt("rpcConcurrency"))

	fetcher := gateway.New(&http.Client{}, gateway.Config{
		Timeout:      viper.GetDuration("gateway.timeout"),
		Retries:      viper.GetInt("gateway.retries"),
		BackoffStart: viper.GetDuration("gateway.backoffStart"),
		BackoffLimit: viper.GetDuration("gateway.backoffLimit"),
	}, metrics.New("gateway"))

	ensService, err := ens.New(rpc, fetcher, ens.NewCache(viper.GetDuration("ens.cacheTTL"), redisCachePool), ens.Config{
		ChainId:      chainId,
		LookupLimit:  viper.GetInt("ens.lookupLimit"),
		BatchWorkers: viper.GetInt("ens.batchWorkers"),
	})
	if err != nil {
		context.WithField("err", err).Panic("ens.New failed")
	}

	hc := hc_usecase.New(hc_repo.New(rpc, redisCachePool, chainId))

	hc_delivery.New(e, hc)
	ens_delivery.New(e, ensService, mmiddleware.CacheHttp(viper.GetDuration("ens.httpCacheTTL")))

	go func() {
		if err := e.Start(viper.GetString("listen")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
