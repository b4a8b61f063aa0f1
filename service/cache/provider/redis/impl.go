package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/ensapi/base/ctx"
	"github.com/x-xyz/ensapi/service/cache/provider"
)

const (
	// retTTLNoExpire is the return value of TTL when the key exists but has
	// no associated expire
	retTTLNoExpire = -1
)

type impl struct {
	pool *redis.Pool
}

// NewRedis returns a provider storing values in redis through pool.
func NewRedis(pool *redis.Pool) provider.Provider {
	return &impl{pool}
}

func (im *impl) conn(c ctx.Ctx) (redis.Conn, error) {
	conn, err := im.pool.GetContext(c)
	if err != nil {
		c.WithField("err", err).Error("pool.GetContext failed")
		return nil, err
	}
	return conn, nil
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	conn, err := im.conn(c)
	if err != nil {
		return nil, time.Duration(0), err
	}
	defer conn.Close()

	if err := conn.Send("GET", key); err != nil {
		return nil, time.Duration(0), err
	}
	if err := conn.Send("TTL", key); err != nil {
		return nil, time.Duration(0), err
	}
	if err := conn.Flush(); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Flush failed")
		return nil, time.Duration(0), err
	}

	val, err := redis.Bytes(conn.Receive())
	if err == redis.ErrNil {
		// drain the pending TTL reply
		conn.Receive()
		return nil, time.Duration(0), provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Get failed")
		return nil, time.Duration(0), err
	}

	ttl, err := redis.Int64(conn.Receive())
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.TTL failed")
		return nil, time.Duration(0), err
	}
	if ttl == retTTLNoExpire {
		ttl = 0
	}
	return val, time.Duration(ttl) * time.Second, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	conn, err := im.conn(c)
	if err != nil {
		return err
	}
	defer conn.Close()

	args := redis.Args{}.Add(key, value)
	if ms := ttl.Milliseconds(); ms > 0 {
		args = args.Add("PX", ms)
	}
	if _, err := conn.Do("SET", args...); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	conn, err := im.conn(c)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Do("DEL", key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Del failed")
		return err
	}
	return nil
}
