package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

/// This file backs the catalog read-through cache and the brand
/// popularity ranking (a sorted set keyed by settled transaction counts).

const (
	catalogCacheTTL    = 5 * time.Minute
	popularityCacheTTL = 30 * time.Minute
	popularityKey      = "catalog:popularity"
)

// StoreCatalogListing caches a serialized catalog result under its filter key.
func (r *RedisService) StoreCatalogListing(ctx context.Context, filterKey string, listing interface{}) error {
	payload, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("could not marshal catalog listing: %w", err)
	}

	return r.client.Set(ctx, fmt.Sprintf("catalog:listing:%s", filterKey), payload, catalogCacheTTL).Err()
}

// GetCatalogListing retrieves a cached catalog result into out, returning
// false on a cache miss.
func (r *RedisService) GetCatalogListing(ctx context.Context, filterKey string, out interface{}) (bool, error) {
	payload, err := r.client.Get(ctx, fmt.Sprintf("catalog:listing:%s", filterKey)).Bytes()
	if err == goredis.Nil {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("could not get catalog listing from Redis: %w", err)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return false, fmt.Errorf("could not unmarshal catalog listing: %w", err)
	}
	return true, nil
}

// InvalidateCatalogListings drops every cached catalog filter result.
func (r *RedisService) InvalidateCatalogListings(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "catalog:listing:*").Result()
	if err != nil {
		return fmt.Errorf("could not list catalog keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// StoreBrandPopularity replaces the popularity ranking with fresh counts.
func (r *RedisService) StoreBrandPopularity(ctx context.Context, counts map[int64]int64) error {
	members := make([]goredis.Z, 0, len(counts))
	for brandID, count := range counts {
		members = append(members, goredis.Z{
			Score:  float64(count),
			Member: fmt.Sprint(brandID),
		})
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, popularityKey)
	if len(members) > 0 {
		pipe.ZAdd(ctx, popularityKey, members...)
	}
	pipe.Expire(ctx, popularityKey, popularityCacheTTL)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("could not store brand popularity: %w", err)
	}
	return nil
}

// GetBrandPopularity returns the ranking score per brand, or an empty map
// when the ranking has expired.
func (r *RedisService) GetBrandPopularity(ctx context.Context) (map[int64]int64, error) {
	members, err := r.client.ZRangeWithScores(ctx, popularityKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("could not get brand popularity: %w", err)
	}

	counts := make(map[int64]int64, len(members))
	for _, m := range members {
		var brandID int64
		if _, err := fmt.Sscan(fmt.Sprint(m.Member), &brandID); err != nil {
			continue
		}
		counts[brandID] = int64(m.Score)
	}
	return counts, nil
}
