package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	RDB *redis.Client
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

func (c *Cache) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.RDB.Close() }

// Denylist stores revoked token ids under a key prefix. It satisfies auth.Revoker.
type Denylist struct {
	c      *Cache
	prefix string
}

func NewDenylist(c *Cache, prefix string) *Denylist {
	if prefix == "" {
		prefix = "revoked:"
	}
	return &Denylist{c: c, prefix: prefix}
}

func (d *Denylist) key(id string) string { return d.prefix + id }

func (d *Denylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return d.c.RDB.Set(ctx, d.key(tokenID), 1, ttl).Err()
}

func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.c.RDB.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
