package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mortgage-workers/internal/underwriting"
)

const analysisCacheTTL = 24 * time.Hour

// AnalysisCache is a write-through cache of the latest analysis per
// application, read by the dashboard layer.
type AnalysisCache struct {
	client *redis.Client
}

func NewAnalysisCache(client *redis.Client) *AnalysisCache {
	return &AnalysisCache{client: client}
}

func analysisKey(applicationID string) string {
	return fmt.Sprintf("underwriting:analysis:%s", applicationID)
}

// PutAnalysis stores the latest analysis, replacing any prior entry.
func (c *AnalysisCache) PutAnalysis(ctx context.Context, analysis *underwriting.UnderwritingAnalysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	return c.client.Set(ctx, analysisKey(analysis.ApplicationID), payload, analysisCacheTTL).Err()
}

// GetAnalysis returns the cached analysis, or nil when no entry exists.
func (c *AnalysisCache) GetAnalysis(ctx context.Context, applicationID string) (*underwriting.UnderwritingAnalysis, error) {
	payload, err := c.client.Get(ctx, analysisKey(applicationID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var analysis underwriting.UnderwritingAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, fmt.Errorf("unmarshal cached analysis: %w", err)
	}
	return &analysis, nil
}

// Invalidate drops the cached analysis after a failed run.
func (c *AnalysisCache) Invalidate(ctx context.Context, applicationID string) error {
	return c.client.Del(ctx, analysisKey(applicationID)).Err()
}
