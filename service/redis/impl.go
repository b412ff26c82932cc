package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/base/metrics"
)

const (
	// retTTLNoKey is the return value of TTL when the key does not exist
	retTTLNoKey = -2
)

type redImpl struct {
	name string
	met  metrics.Service
	pool *redis.Pool
}

// New redis service backed by a single pool
func New(name string, metrics metrics.Service, pool *redis.Pool) Service {
	return &redImpl{
		name: name,
		met:  metrics,
		pool: pool,
	}
}

func (r *redImpl) getConn() (redis.Conn, error) {
	defer r.met.BumpTime("getconn.time", "cluster", r.name).End()

	conn := r.pool.Get()
	if err := conn.Err(); err != nil {
		r.met.BumpSum("getConn.err", 1, "cluster", r.name, "reason", err.Error())
		return nil, err
	}
	return conn, nil
}

func (r *redImpl) connDo(c ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	defer r.met.BumpTime("do.time", "cluster", r.name, "cmd", commandName).End()
	reply, err := conn.Do(commandName, args...)
	if err != nil {
		r.met.BumpSum("do.err", 1, "cluster", r.name, "cmd", commandName)
	}
	return reply, err
}

func (r *redImpl) Get(c ctx.Ctx, key string) ([]byte, error) {
	reply, err := redis.Bytes(r.connDo(c, "GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("redis GET failed")
		return nil, err
	}
	return reply, nil
}

func (r *redImpl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	var err error
	if ttl > 0 {
		_, err = r.connDo(c, "SET", key, value, "PX", int64(ttl/time.Millisecond))
	} else {
		_, err = r.connDo(c, "SET", key, value)
	}
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("redis SET failed")
	}
	return err
}

func (r *redImpl) Del(c ctx.Ctx, key string) (int, error) {
	cnt, err := redis.Int(r.connDo(c, "DEL", key))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("redis DEL failed")
		return 0, err
	}
	return cnt, nil
}

func (r *redImpl) TTL(c ctx.Ctx, key string) (int, error) {
	ttl, err := redis.Int(r.connDo(c, "TTL", key))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("redis TTL failed")
		return 0, err
	}
	if ttl == retTTLNoKey {
		return 0, ErrNotFound
	}
	return ttl, nil
}

func (r *redImpl) Exists(c ctx.Ctx, key string) (bool, error) {
	exists, err := redis.Bool(r.connDo(c, "EXISTS", key))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("redis EXISTS failed")
		return false, err
	}
	return exists, nil
}

func (r *redImpl) Incrby(c ctx.Ctx, key string, diff int) (int64, error) {
	val, err := redis.Int64(r.connDo(c, "INCRBY", key, diff))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("redis INCRBY failed")
		return 0, err
	}
	return val, nil
}
