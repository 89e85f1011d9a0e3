package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pirate444/food-order-app/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	FoodCachePrefix     = "food:detail:"
	FoodListCachePrefix = "foods:v:"
	CacheVersionKey     = "foods:version"
)

// FoodCache is a read-through Redis cache for the catalog. List entries are
// invalidated by bumping a version counter instead of scanning keys.
type FoodCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewFoodCache(client *redis.Client, ttl time.Duration) *FoodCache {
	return &FoodCache{redis: client, ttl: ttl}
}

// NewRedisClient initializes and returns a Redis client, or an error when
// the URL is malformed or the server is unreachable.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// GetList retrieves a cached catalog listing for the given category filter
func (fc *FoodCache) GetList(ctx context.Context, category models.Category) ([]models.Food, bool) {
	if fc == nil {
		return nil, false
	}

	version, err := fc.getVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	data, err := fc.redis.Get(ctx, fc.listKey(version, category)).Result()
	if err != nil {
		return nil, false
	}

	var foods []models.Food
	if err := json.Unmarshal([]byte(data), &foods); err != nil {
		zap.L().Warn("Failed to unmarshal cached food list", zap.Error(err))
		return nil, false
	}
	return foods, true
}

// SetList caches a catalog listing under the current cache version
func (fc *FoodCache) SetList(ctx context.Context, category models.Category, foods []models.Food) {
	if fc == nil {
		return
	}

	version, err := fc.getVersion(ctx)
	if err != nil || version == 0 {
		return
	}

	data, err := json.Marshal(foods)
	if err != nil {
		zap.L().Warn("Failed to marshal food list for cache", zap.Error(err))
		return
	}

	if err := fc.redis.Set(ctx, fc.listKey(version, category), data, fc.ttl).Err(); err != nil {
		zap.L().Warn("Failed to cache food list", zap.Error(err))
	}
}

// GetFood retrieves a cached food document
func (fc *FoodCache) GetFood(ctx context.Context, id string) (*models.Food, bool) {
	if fc == nil {
		return nil, false
	}

	data, err := fc.redis.Get(ctx, FoodCachePrefix+id).Result()
	if err != nil {
		return nil, false
	}

	var food models.Food
	if err := json.Unmarshal([]byte(data), &food); err != nil {
		return nil, false
	}
	return &food, true
}

// SetFood caches a single food document
func (fc *FoodCache) SetFood(ctx context.Context, id string, food *models.Food) {
	if fc == nil {
		return
	}

	data, err := json.Marshal(food)
	if err != nil {
		zap.L().Warn("Failed to marshal food for cache", zap.Error(err), zap.String("food_id", id))
		return
	}

	if err := fc.redis.Set(ctx, FoodCachePrefix+id, data, fc.ttl).Err(); err != nil {
		zap.L().Warn("Failed to cache food", zap.Error(err), zap.String("food_id", id))
	}
}

// Invalidate drops the cached detail for id (when non-empty) and bumps the
// list version so every cached listing goes stale at once.
func (fc *FoodCache) Invalidate(ctx context.Context, id string) {
	if fc == nil {
		return
	}

	if id != "" {
		if err := fc.redis.Del(ctx, FoodCachePrefix+id).Err(); err != nil {
			zap.L().Warn("Failed to invalidate food cache", zap.Error(err), zap.String("food_id", id))
		}
	}

	if err := fc.redis.Incr(ctx, CacheVersionKey).Err(); err != nil {
		zap.L().Warn("Failed to bump food cache version", zap.Error(err))
	}
}

func (fc *FoodCache) getVersion(ctx context.Context) (int64, error) {
	version, err := fc.redis.Get(ctx, CacheVersionKey).Int64()
	if err == redis.Nil {
		if err := fc.redis.Set(ctx, CacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (fc *FoodCache) listKey(version int64, category models.Category) string {
	key := "all"
	if category != "" {
		key = string(category)
	}
	return fmt.Sprintf("%s%d:%s", FoodListCachePrefix, version, key)
}
