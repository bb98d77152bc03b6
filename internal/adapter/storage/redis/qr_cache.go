package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// QRListingCache implements ports.QRListingCache. Values are the JSON bodies
// of GET /api/qr-codes/{userId}.
type QRListingCache struct {
	client goredis.UniversalClient
	prefix string
}

func NewQRListingCache(client goredis.UniversalClient) *QRListingCache {
	return &QRListingCache{
		client: client,
		prefix: "qr_listing:",
	}
}

func (c *QRListingCache) key(userID int64) string {
	return c.prefix + strconv.FormatInt(userID, 10)
}

// Get returns nil, nil on a miss.
func (c *QRListingCache) Get(ctx context.Context, userID int64) ([]byte, error) {
	val, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis qr listing get: %w", err)
	}
	return val, nil
}

func (c *QRListingCache) Set(ctx context.Context, userID int64, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(userID), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis qr listing set: %w", err)
	}
	return nil
}

// Invalidate drops the cached listing; a missing key is not an error.
func (c *QRListingCache) Invalidate(ctx context.Context, userID int64) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("redis qr listing del: %w", err)
	}
	return nil
}
