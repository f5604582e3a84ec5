// Package cache decorates repositories with a Redis read-through cache.
package cache

import (
	"context"
	"encoding/json"
	"net"
	"strconv"
	"time"

	"github.com/itsatony/airsense/internal/config"
	"github.com/itsatony/airsense/internal/models"
	"github.com/itsatony/airsense/internal/repository"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

const deviceKeyPrefix = "airsense:device:"

// DeviceCache caches Device Directory lookups in Redis. Redis failures are logged and the
// lookup falls through to the wrapped repository.
type DeviceCache struct {
	next   repository.DeviceRepository
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisClient creates a client from the redis configuration
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewDeviceCache wraps next with a cache that keeps entries for ttl
func NewDeviceCache(next repository.DeviceRepository, client redis.UniversalClient, ttl time.Duration) *DeviceCache {
	return &DeviceCache{next: next, client: client, ttl: ttl}
}

func deviceKey(id string) string {
	return deviceKeyPrefix + id
}

func (c *DeviceCache) Create(ctx context.Context, device *models.Device) error {
	if err := c.next.Create(ctx, device); err != nil {
		return err
	}
	if err := c.client.Del(ctx, deviceKey(device.ID)).Err(); err != nil {
		nuts.L.Warnf("[DeviceCache] Failed to invalidate device %s: %v", device.ID, err)
	}
	return nil
}

func (c *DeviceCache) GetByIDs(ctx context.Context, ids []string) (map[string]models.Device, error) {
	result := make(map[string]models.Device, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	misses := c.lookup(ctx, ids, result)
	if len(misses) == 0 {
		return result, nil
	}

	found, err := c.next.GetByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, device := range found {
		result[id] = device
	}
	c.store(ctx, found)
	return result, nil
}

// lookup fills result from Redis and returns the ids that were not cached.
func (c *DeviceCache) lookup(ctx context.Context, ids []string, result map[string]models.Device) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = deviceKey(id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		nuts.L.Warnf("[DeviceCache] Cache lookup failed, falling back to store: %v", err)
		return ids
	}

	misses := []string{}
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			misses = append(misses, ids[i])
			continue
		}
		var device models.Device
		if err := json.Unmarshal([]byte(raw), &device); err != nil {
			misses = append(misses, ids[i])
			continue
		}
		result[ids[i]] = device
	}
	return misses
}

func (c *DeviceCache) store(ctx context.Context, devices map[string]models.Device) {
	if len(devices) == 0 {
		return
	}
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for id, device := range devices {
			raw, err := json.Marshal(device)
			if err != nil {
				return err
			}
			pipe.Set(ctx, deviceKey(id), raw, c.ttl)
		}
		return nil
	})
	if err != nil {
		nuts.L.Warnf("[DeviceCache] Failed to cache %d devices: %v", len(devices), err)
	}
}
