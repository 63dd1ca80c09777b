package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/fitcoachbr/coach-api/internal/config"
)

func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

// SignedURLCache keeps presigned URLs alive for a bit less than their
// real expiry, so repeated stream requests reuse one URL instead of
// minting a new one per request.
type SignedURLCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSignedURLCache(rdb *redis.Client, urlTTL time.Duration) *SignedURLCache {
	return &SignedURLCache{
		rdb: rdb,
		ttl: urlTTL * 8 / 10,
	}
}

// signedURL is the cached payload; the expiry travels with the URL so
// cache hits answer with the same shape as fresh presigns.
type signedURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (c *SignedURLCache) Get(ctx context.Context, objectKey string) (string, time.Time, bool) {
	if c.rdb == nil {
		return "", time.Time{}, false
	}

	raw, err := c.rdb.Get(ctx, "signed_url:"+objectKey).Bytes()
	if err != nil {
		return "", time.Time{}, false
	}

	entry, err := decodeSignedURL(raw)
	if err != nil {
		return "", time.Time{}, false
	}
	return entry.URL, entry.ExpiresAt, true
}

func (c *SignedURLCache) Set(ctx context.Context, objectKey, url string, expiresAt time.Time) {
	if c.rdb == nil {
		return
	}

	raw, err := encodeSignedURL(signedURL{URL: url, ExpiresAt: expiresAt})
	if err != nil {
		return
	}

	// cache miss on failure is fine, never fail the request over it
	c.rdb.Set(ctx, "signed_url:"+objectKey, raw, c.ttl)
}

func (c *SignedURLCache) Invalidate(ctx context.Context, objectKey string) {
	if c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, "signed_url:"+objectKey)
}

func encodeSignedURL(entry signedURL) ([]byte, error) {
	return json.Marshal(entry)
}

func decodeSignedURL(raw []byte) (signedURL, error) {
	var entry signedURL
	err := json.Unmarshal(raw, &entry)
	return entry, err
}
