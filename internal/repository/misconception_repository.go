package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"guidly_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	topicCacheKeyPrefix = "misconceptions:topic:"
	topicCacheTTL       = time.Hour
)

type MisconceptionRepository struct {
	DB    *gorm.DB
	Redis *redis.Client // optional; nil disables the catalog cache
}

func NewMisconceptionRepository(db *gorm.DB, rdb *redis.Client) *MisconceptionRepository {
	return &MisconceptionRepository{DB: db, Redis: rdb}
}

func (r *MisconceptionRepository) FindByID(id uint) (*model.Misconception, error) {
	var m model.Misconception
	err := r.DB.First(&m, id).Error
	return &m, err
}

// ListByTopic returns the topic's catalog in insertion order. The catalog is
// seeded data, so a read-through cache with a flat TTL is safe.
func (r *MisconceptionRepository) ListByTopic(ctx context.Context, topic string) ([]model.Misconception, error) {
	key := topicCacheKeyPrefix + topic

	if r.Redis != nil {
		if val, err := r.Redis.Get(ctx, key).Result(); err == nil {
			var cached []model.Misconception
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	var misconceptions []model.Misconception
	err := r.DB.Where("topic = ?", topic).
		Order("id ASC").
		Find(&misconceptions).Error
	if err != nil {
		return nil, err
	}

	if r.Redis != nil {
		if data, err := json.Marshal(misconceptions); err == nil {
			r.Redis.Set(ctx, key, data, topicCacheTTL)
		}
	}

	return misconceptions, nil
}

// InvalidateTopic drops the cached catalog for a topic. Only the seed script
// needs it today.
func (r *MisconceptionRepository) InvalidateTopic(ctx context.Context, topic string) error {
	if r.Redis == nil {
		return nil
	}
	return r.Redis.Del(ctx, fmt.Sprintf("%s%s", topicCacheKeyPrefix, topic)).Err()
}
