package ens

import (
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	"github.com/x-xyz/ensapi/base/abi"
	"github.com/x-xyz/ensapi/base/ctx"
	bens "github.com/x-xyz/ensapi/base/ens"
	"github.com/x-xyz/ensapi/base/log"
	"github.com/x-xyz/ensapi/domain"
	"github.com/x-xyz/ensapi/domain/keys"
	"github.com/x-xyz/ensapi/service/cache"
	compoundcache "github.com/x-xyz/ensapi/service/cache/compoundCache"
	"github.com/x-xyz/ensapi/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/ensapi/service/cache/provider/redis"
	"github.com/x-xyz/ensapi/service/gateway"
)

type impl struct {
	caller   ethereum.ContractCaller
	fetcher  gateway.Fetcher
	cache    cache.Service
	cfg      Config
	registry common.Address
	chainKey string
}

// New fails when cfg.ChainId has no known ENS registry.
func New(caller ethereum.ContractCaller, fetcher gateway.Fetcher, c cache.Service, cfg Config) (ENS, error) {
	registry, err := bens.RegistryAddress(cfg.ChainId)
	if err != nil {
		return nil, err
	}
	if cfg.LookupLimit <= 0 {
		cfg.LookupLimit = DefaultLookupLimit
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = DefaultBatchWorkers
	}
	return &impl{
		caller:   caller,
		fetcher:  fetcher,
		cache:    c,
		cfg:      cfg,
		registry: registry,
		chainKey: strconv.FormatUint(uint64(cfg.ChainId), 10),
	}, nil
}

// NewCache layers an in-process cache over redis. pool may be nil, in which
// case only the in-process layer is used.
func NewCache(ttl time.Duration, pool *redis.Pool) cache.Service {
	layers := []cache.Service{
		cache.New(cache.ServiceConfig{
			Ttl:   30 * time.Second,
			Pfx:   keys.PfxENS,
			Cache: primitive.NewPrimitive("ens", 64),
		}),
	}
	if pool != nil {
		layers = append(layers, cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   keys.PfxENS,
			Cache: redisCache.NewRedis(pool),
		}))
	}
	return compoundcache.NewCompoundCache(layers)
}

func (im *impl) Resolve(c ctx.Ctx, name string) (domain.Address, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." {
		return "", xerrors.Errorf("empty name: %w", domain.ErrInvalidName)
	}
	// already an address, nothing to resolve
	if common.IsHexAddress(name) {
		return domain.Address(name).ToLower(), nil
	}

	normalized, err := bens.Normalize(name)
	if err != nil {
		return "", err
	}

	c = ctx.WithValues(c, map[string]interface{}{
		"lookupID": uuid.NewString(),
		"name":     normalized,
	})

	res := domain.Address("")
	key := keys.RedisKey(im.chainKey, "resolve", normalized)
	err = im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		addr, err := im.resolve(c, normalized)
		if err != nil {
			return nil, err
		}
		val := domain.Address(addr.Hex()).ToLower()
		return &val, nil
	})
	if err != nil {
		if !xerrors.Is(err, domain.ErrNotFound) {
			c.WithField("err", err).Error("resolve failed")
		}
		return "", err
	}
	return res, nil
}

func (im *impl) resolve(c ctx.Ctx, name string) (common.Address, error) {
	resolver, err := im.resolverOf(c, name)
	if err != nil {
		return common.Address{}, err
	}
	node, err := bens.NameHash(name)
	if err != nil {
		return common.Address{}, err
	}

	var addr common.Address
	if im.supportsWildcard(c, resolver) {
		addr, err = im.resolveWildcard(c, name, node, resolver)
	} else {
		addr, err = im.addr(c, resolver, node)
	}
	if err != nil {
		return common.Address{}, err
	}
	if addr == (common.Address{}) {
		return common.Address{}, xerrors.Errorf("no address for %s: %w", name, domain.ErrNotFound)
	}
	return addr, nil
}

func (im *impl) addr(c ctx.Ctx, resolver common.Address, node common.Hash) (common.Address, error) {
	data, err := abi.ResolverABI.Pack("addr", [32]byte(node))
	if err != nil {
		return common.Address{}, err
	}
	out, err := im.call(c, resolver, data)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "resolver": resolver.Hex()}).Error("resolver.addr failed")
		return common.Address{}, err
	}
	return unpackAddress(abi.ResolverABI.Methods["addr"].Outputs, out)
}

// resolveWildcard calls resolve(dnsName, addr(node)) on an ENSIP-10 resolver,
// following offchain lookups when the resolver asks for them.
func (im *impl) resolveWildcard(c ctx.Ctx, name string, node common.Hash, resolver common.Address) (common.Address, error) {
	dnsName, err := bens.DNSEncode(name)
	if err != nil {
		return common.Address{}, err
	}
	inner, err := abi.ResolverABI.Pack("addr", [32]byte(node))
	if err != nil {
		return common.Address{}, err
	}
	data, err := abi.ResolverABI.Pack("resolve", dnsName, inner)
	if err != nil {
		return common.Address{}, err
	}

	out, err := im.callWithLookups(c, resolver, data)
	if err != nil {
		return common.Address{}, err
	}

	vals, err := abi.Unpack(abi.ResolverABI.Methods["resolve"].Outputs, out)
	if err != nil {
		return common.Address{}, err
	}
	result, ok := vals[0].([]byte)
	if !ok {
		return common.Address{}, xerrors.Errorf("unexpected resolve result %T: %w", vals[0], domain.ErrDecode)
	}
	return unpackAddress(abi.ResolverABI.Methods["addr"].Outputs, result)
}

func (im *impl) ReverseResolve(c ctx.Ctx, address domain.Address) (string, error) {
	if !common.IsHexAddress(string(address)) {
		return "", domain.ErrInvalidAddress
	}
	reverse := bens.ReverseName(common.HexToAddress(string(address)))

	c = ctx.WithValues(c, map[string]interface{}{
		"lookupID": uuid.NewString(),
		"address":  address.ToLower(),
	})

	res := ""
	key := keys.RedisKey(im.chainKey, "reverse", address.ToLowerStr())
	err := im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		name, err := im.reverseResolve(c, reverse)
		if err != nil {
			return nil, err
		}
		return &name, nil
	})
	if err != nil {
		if !xerrors.Is(err, domain.ErrNotFound) {
			c.WithField("err", err).Error("reverse resolve failed")
		}
		return "", err
	}
	return res, nil
}

func (im *impl) reverseResolve(c ctx.Ctx, reverse string) (string, error) {
	resolver, err := im.resolverOf(c, reverse)
	if err != nil {
		return "", err
	}
	node, err := bens.NameHash(reverse)
	if err != nil {
		return "", err
	}

	data, err := abi.ResolverABI.Pack("name", [32]byte(node))
	if err != nil {
		return "", err
	}
	out, err := im.call(c, resolver, data)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "resolver": resolver.Hex()}).Error("resolver.name failed")
		return "", err
	}
	vals, err := abi.Unpack(abi.ResolverABI.Methods["name"].Outputs, out)
	if err != nil {
		return "", err
	}
	name, _ := vals[0].(string)
	if !bens.IsValidName(name) {
		return "", xerrors.Errorf("reverse record %q: %w", name, domain.ErrNotFound)
	}
	return name, nil
}

type batchItem struct {
	idx int
	res *ResolveResult
}

func (im *impl) BatchResolve(c ctx.Ctx, names []string) ([]*ResolveResult, error) {
	if len(names) == 0 {
		return []*ResolveResult{}, nil
	}
	if len(names) > MaxBatchSize {
		return nil, xerrors.Errorf("at most %d names per batch: %w", MaxBatchSize, domain.ErrBadParamInput)
	}

	b := goroutines.NewBatch(im.cfg.BatchWorkers, goroutines.WithBatchSize(len(names)))
	defer b.Close()

	for i, name := range names {
		i, name := i, name
		b.Queue(func() (interface{}, error) {
			r := &ResolveResult{Name: name}
			addr, err := im.Resolve(c, name)
			if err != nil {
				r.Error = err.Error()
			} else {
				r.Address = addr
			}
			return &batchItem{idx: i, res: r}, nil
		})
	}
	b.QueueComplete()

	out := make([]*ResolveResult, len(names))
	for ret := range b.Results() {
		if err := ret.Error(); err != nil {
			c.WithField("err", err).Error("batch task failed")
			return nil, err
		}
		item := ret.Value().(*batchItem)
		out[item.idx] = item.res
	}
	return out, nil
}
