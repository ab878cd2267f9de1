// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "candidate-workers/internal/common/errors"
	"candidate-workers/internal/matching"
	"candidate-workers/internal/matching/bulk"
	"candidate-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	analysisKeyPrefix   = "candidate:analysis:"
	checkpointKeyPrefix = "bulk:checkpoint:"

	DefaultCacheTTL      = 24 * time.Hour
	DefaultCheckpointTTL = 7 * 24 * time.Hour
)

var (
	_ matching.AnalysisCache = (*AnalysisCache)(nil)
	_ bulk.Checkpointer      = (*Checkpoints)(nil)
)

// AnalysisCache keeps NormalizeAndCategorize results in Redis.
type AnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAnalysisCache(client *redis.Client, ttl time.Duration) *AnalysisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &AnalysisCache{client: client, ttl: ttl}
}

func (c *AnalysisCache) Get(ctx context.Context, key string) (*models.ProfileAnalysis, error) {
	val, err := c.client.Get(ctx, analysisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewCacheUnavailableError(err)
	}

	var analysis models.ProfileAnalysis
	if err := json.Unmarshal(val, &analysis); err != nil {
		return nil, fmt.Errorf("decode cached analysis: %w", err)
	}
	return &analysis, nil
}

func (c *AnalysisCache) Set(ctx context.Context, key string, analysis models.ProfileAnalysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	if err := c.client.Set(ctx, analysisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	return nil
}

// Checkpoints stores bulk run progress per run key.
type Checkpoints struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCheckpoints(client *redis.Client, ttl time.Duration) *Checkpoints {
	if ttl <= 0 {
		ttl = DefaultCheckpointTTL
	}
	return &Checkpoints{client: client, ttl: ttl}
}

func (c *Checkpoints) Load(ctx context.Context, runKey string) (*bulk.Checkpoint, error) {
	val, err := c.client.Get(ctx, checkpointKeyPrefix+runKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewCacheUnavailableError(err)
	}

	var cp bulk.Checkpoint
	if err := json.Unmarshal(val, &cp); err != nil {
		return nil, fmt.Errorf("decode checkpoint: %w", err)
	}
	return &cp, nil
}

func (c *Checkpoints) Save(ctx context.Context, runKey string, cp bulk.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	if err := c.client.Set(ctx, checkpointKeyPrefix+runKey, data, c.ttl).Err(); err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	return nil
}

func (c *Checkpoints) Clear(ctx context.Context, runKey string) error {
	if err := c.client.Del(ctx, checkpointKeyPrefix+runKey).Err(); err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	return nil
}
