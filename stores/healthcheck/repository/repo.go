package repository

import (
	"time"

	"github.com/gomodule/redigo/redis"
	"golang.org/x/xerrors"

	"github.com/x-xyz/ensapi/base/ctx"
	"github.com/x-xyz/ensapi/domain"
	hcdomain "github.com/x-xyz/ensapi/domain/healthcheck"
	"github.com/x-xyz/ensapi/domain/keys"
)

const pingTimeout = 2 * time.Second

type impl struct {
	client  domain.EthClientRepo
	pool    *redis.Pool
	chainId domain.ChainId
}

// New creates a repo checking the rpc node and, when pool is not nil, redis.
func New(client domain.EthClientRepo, pool *redis.Pool, chainId domain.ChainId) hcdomain.HealthCheckRepo {
	return &impl{
		client:  client,
		pool:    pool,
		chainId: chainId,
	}
}

func (im *impl) PingRedis(context ctx.Ctx) error {
	if im.pool == nil {
		return nil
	}
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()

	conn, err := im.pool.GetContext(ctx)
	if err != nil {
		context.WithField("err", err).Error("redis pool.GetContext failed")
		return err
	}
	defer conn.Close()

	key := keys.RedisKey(keys.PfxHealthCheck, "testset")
	if _, err := conn.Do("SET", key, "1", "PX", int64(30*time.Second/time.Millisecond)); err != nil {
		context.WithField("err", err).Error("test redis set failed")
		return err
	}
	return nil
}

func (im *impl) PingNode(context ctx.Ctx) (*hcdomain.Status, error) {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()

	id, err := im.client.ChainID(ctx)
	if err != nil {
		context.WithField("err", err).Error("client.ChainID failed")
		return nil, err
	}
	if id.Uint64() != uint64(im.chainId) {
		return nil, xerrors.Errorf("rpc node serves chain %s, expected %d", id, im.chainId)
	}

	block, err := im.client.BlockNumber(ctx)
	if err != nil {
		context.WithField("err", err).Error("client.BlockNumber failed")
		return nil, err
	}
	return &hcdomain.Status{ChainId: id.Uint64(), BlockNumber: block}, nil
}
