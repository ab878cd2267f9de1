// internal/matching/engine.go
package matching

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"candidate-workers/internal/common/logger"
	"candidate-workers/internal/common/metrics"
	"candidate-workers/internal/matching/activity"
	"candidate-workers/internal/matching/bulk"
	"candidate-workers/internal/matching/enhance"
	"candidate-workers/internal/matching/normalize"
	"candidate-workers/internal/matching/query"
	"candidate-workers/internal/matching/ranking"
	"candidate-workers/internal/matching/tags"
	"candidate-workers/internal/models"
	"candidate-workers/pkg/registry"
)

var ErrNilPool = errors.New("candidate pool is nil")

// AnalysisCache stores NormalizeAndCategorize results. Get returns nil, nil
// on a miss.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*models.ProfileAnalysis, error)
	Set(ctx context.Context, key string, analysis models.ProfileAnalysis) error
}

type Config struct {
	Registry    *registry.Registry
	Enhancer    *enhance.Adapter
	Cache       AnalysisCache
	Parallelism int
	Now         func() time.Time
	Logger      logger.Logger
	Bulk        bulk.Options
}

// Engine exposes the four caller operations over one immutable registry.
type Engine struct {
	registry   *registry.Registry
	normalizer *normalize.Normalizer
	scorer     *activity.Scorer
	generator  *tags.Generator
	enhancer   *enhance.Adapter
	parser     *query.Parser
	ranker     *ranking.Ranker
	bulk       *bulk.Orchestrator
	cache      AnalysisCache
	logger     logger.Logger
}

func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Registry == nil {
		return nil, errors.New("matching engine requires a registry")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoOpLogger()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	n := normalize.New(cfg.Registry)
	scorer := activity.NewScorer(cfg.Now)
	e := &Engine{
		registry:   cfg.Registry,
		normalizer: n,
		scorer:     scorer,
		generator:  tags.NewGenerator(cfg.Registry),
		enhancer:   cfg.Enhancer,
		parser:     query.NewParser(cfg.Registry),
		ranker:     ranking.NewRanker(n, scorer, cfg.Now, cfg.Parallelism),
		cache:      cfg.Cache,
		logger:     cfg.Logger,
	}

	bulkOpts := cfg.Bulk
	if bulkOpts.Logger == nil {
		bulkOpts.Logger = cfg.Logger
	}
	if bulkOpts.Now == nil {
		bulkOpts.Now = cfg.Now
	}
	e.bulk = bulk.NewOrchestrator(e, bulkOpts)
	return e, nil
}

func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// NormalizeAndCategorize is idempotent for a given profile and registry
// version. Results are cached only when they do not depend on a failed
// enhancement call.
func (e *Engine) NormalizeAndCategorize(ctx context.Context, p models.CandidateProfile) (models.ProfileAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return models.ProfileAnalysis{}, err
	}

	key := e.cacheKey(p)
	if cached := e.cached(ctx, key); cached != nil {
		return *cached, nil
	}

	np := e.normalizer.NormalizeProfile(p)
	for _, c := range append(np.Fields(), np.Subjects...) {
		metrics.NormalizationsTotal.WithLabelValues(c.Field, string(c.Source)).Inc()
	}

	enhanced := e.enhancer.Enhance(ctx, p, np)
	analysis := models.ProfileAnalysis{
		CandidateID:           p.ID,
		KnowledgeBaseVersion:  e.registry.Version(),
		Normalized:            np,
		Enhanced:              enhanced,
		Tags:                  e.generator.Generate(p, enhanced),
		SuggestedImprovements: normalize.Suggestions(p, np),
	}

	if enhanced.Enhancement != nil || !e.enhancer.Enabled() {
		e.store(ctx, key, analysis)
	}
	return analysis, nil
}

func (e *Engine) ComputeActivityMetrics(p models.CandidateProfile, history []models.Application) models.ActivityMetrics {
	return e.scorer.Score(p, history)
}

func (e *Engine) ParseQuery(text string) models.SearchCriteria {
	return e.parser.Parse(text)
}

// Search parses text and ranks pool against it. An empty pool yields an
// empty result; a nil pool is a caller error.
func (e *Engine) Search(ctx context.Context, text string, pool []models.CandidateProfile) ([]models.MatchResult, error) {
	if pool == nil {
		return nil, ErrNilPool
	}
	return e.Rank(ctx, pool, e.parser.Parse(text))
}

func (e *Engine) Rank(ctx context.Context, pool []models.CandidateProfile, criteria models.SearchCriteria) ([]models.MatchResult, error) {
	if pool == nil {
		return nil, ErrNilPool
	}

	start := time.Now()
	results, err := e.ranker.Rank(ctx, pool, criteria)
	metrics.RankingDuration.Observe(time.Since(start).Seconds())
	metrics.RankedCandidates.Observe(float64(len(pool)))
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) BulkReprocess(ctx context.Context, runKey string, pool []models.CandidateProfile) (models.BulkResult, error) {
	if pool == nil {
		return models.BulkResult{}, ErrNilPool
	}
	return e.bulk.Run(ctx, runKey, pool)
}

// cacheKey covers the profile, the registry version and whether enhancement
// is on, so a knowledge-base update invalidates every entry.
func (e *Engine) cacheKey(p models.CandidateProfile) string {
	if e.cache == nil {
		return ""
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("%s:%t:%s", e.registry.Version(), e.enhancer.Enabled(), hex.EncodeToString(sum[:]))
}

func (e *Engine) cached(ctx context.Context, key string) *models.ProfileAnalysis {
	if e.cache == nil || key == "" {
		return nil
	}
	analysis, err := e.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		e.logger.Warn("Analysis cache lookup failed", map[string]interface{}{"error": err.Error()})
		return nil
	case analysis == nil:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return analysis
}

func (e *Engine) store(ctx context.Context, key string, analysis models.ProfileAnalysis) {
	if e.cache == nil || key == "" {
		return
	}
	if err := e.cache.Set(ctx, key, analysis); err != nil {
		e.logger.Warn("Failed to cache analysis", map[string]interface{}{"error": err.Error()})
	}
}
