package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "creative:render:"

// RenderCache stores rendered PNGs by the hash of their inputs. Renders are
// deterministic, so equal inputs always map to equal output.
type RenderCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, png []byte) error
}

type redisRenderCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRenderCache(client *redis.Client, ttl time.Duration) RenderCache {
	return &redisRenderCache{client: client, ttl: ttl}
}

func (c *redisRenderCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *redisRenderCache) Set(ctx context.Context, key string, png []byte) error {
	return c.client.Set(ctx, keyPrefix+key, png, c.ttl).Err()
}

// Key hashes the base image, every overlay image and the overlay parameters.
// params.FontPath must already be resolved to the font the render uses.
func Key(base []byte, params entity.Params) (string, error) {
	meta, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	for _, part := range [][]byte{
		base,
		params.Logo.Image,
		params.LogoBackground.Image,
		params.Coupon.Image,
		params.CouponBackground.Image,
		params.USPStrip.Image,
		meta,
	} {
		// length prefix keeps adjacent parts from running together
		var size [8]byte
		binary.BigEndian.PutUint64(size[:], uint64(len(part)))
		h.Write(size[:])
		h.Write(part)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
