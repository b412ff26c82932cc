package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/gosale/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis key not found")
)

// Service is a thin typed facade over a redigo pool
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) (int, error)
	TTL(c ctx.Ctx, key string) (int, error)
	Exists(c ctx.Ctx, key string) (bool, error)
	Incrby(c ctx.Ctx, key string, diff int) (int64, error)
}
