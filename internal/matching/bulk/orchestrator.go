// internal/matching/bulk/orchestrator.go
package bulk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "candidate-workers/internal/common/errors"
	"candidate-workers/internal/common/logger"
	"candidate-workers/internal/common/metrics"
	"candidate-workers/internal/matching/normalize"
	"candidate-workers/internal/matching/tags"
	"candidate-workers/internal/models"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const DefaultInterval = 100 * time.Millisecond

var ErrCandidatePanic = errors.New("CANDIDATE_PANIC")

// Analyzer computes everything a bulk run stores for one candidate.
type Analyzer interface {
	NormalizeAndCategorize(ctx context.Context, p models.CandidateProfile) (models.ProfileAnalysis, error)
	ComputeActivityMetrics(p models.CandidateProfile, history []models.Application) models.ActivityMetrics
}

// CandidateResult is committed once per successfully processed candidate.
type CandidateResult struct {
	RunID       string                 `json:"runId"`
	CandidateID string                 `json:"candidateId"`
	Analysis    models.ProfileAnalysis `json:"analysis"`
	Activity    models.ActivityMetrics `json:"activity"`
	Improved    bool                   `json:"improved"`
	ProcessedAt time.Time              `json:"processedAt"`
}

// Sink persists a candidate's result. A failed commit fails that candidate
// only.
type Sink interface {
	Commit(ctx context.Context, result CandidateResult) error
}

// Checkpoint records how far a run got. Position is the index of the next
// candidate; LastKey identifies the candidate before it so a changed pool is
// detected. Tags is the catalog of the committed prefix.
type Checkpoint struct {
	RunID     string               `json:"runId"`
	Position  int                  `json:"position"`
	LastKey   string               `json:"lastKey"`
	Processed int                  `json:"processed"`
	Improved  int                  `json:"improved"`
	Failed    int                  `json:"failed"`
	Flagged   []string             `json:"flagged"`
	Tags      []models.SemanticTag `json:"tags,omitempty"`
}

type Checkpointer interface {
	Load(ctx context.Context, runKey string) (*Checkpoint, error)
	Save(ctx context.Context, runKey string, cp Checkpoint) error
	Clear(ctx context.Context, runKey string) error
}

// Notifier is told about candidates that need manual curation.
type Notifier interface {
	NotifyFlagged(ctx context.Context, runID string, candidateIDs []string) error
}

// TagIndexer receives the run's tag catalog once the run completes.
type TagIndexer interface {
	IndexTags(ctx context.Context, runID string, tags []models.SemanticTag) error
}

type Options struct {
	Sink        Sink
	Checkpoints Checkpointer
	Notifier    Notifier
	Indexer     TagIndexer
	// Interval between candidates. Zero selects DefaultInterval, a negative
	// value disables pacing.
	Interval time.Duration
	Logger   logger.Logger
	Now      func() time.Time
}

// Orchestrator re-processes a whole pool sequentially. Every candidate is
// isolated: a malformed record, a panic or a failed commit is counted and
// flagged, and the run moves on.
type Orchestrator struct {
	analyzer    Analyzer
	sink        Sink
	checkpoints Checkpointer
	notifier    Notifier
	indexer     TagIndexer
	interval    time.Duration
	logger      logger.Logger
	now         func() time.Time
}

func NewOrchestrator(a Analyzer, opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultInterval
	}
	return &Orchestrator{
		analyzer:    a,
		sink:        opts.Sink,
		checkpoints: opts.Checkpoints,
		notifier:    opts.Notifier,
		indexer:     opts.Indexer,
		interval:    opts.Interval,
		logger:      opts.Logger.WithFields(map[string]interface{}{"component": "bulk"}),
		now:         opts.Now,
	}
}

// Run processes pool under runKey. When a checkpoint for runKey matches the
// pool, the run resumes after the last committed candidate. On context
// cancellation Run stops at a candidate boundary and returns the partial
// result together with the context error; the checkpoint is kept. A candidate
// cut short by the cancellation is neither counted nor checkpointed, so the
// resumed run processes it again.
func (o *Orchestrator) Run(ctx context.Context, runKey string, pool []models.CandidateProfile) (models.BulkResult, error) {
	result := models.BulkResult{FlaggedForReview: []string{}}
	catalog := tags.NewCatalog()
	start := 0

	if cp := o.loadCheckpoint(ctx, runKey, pool); cp != nil {
		result.RunID = cp.RunID
		result.Processed = cp.Processed
		result.Improved = cp.Improved
		result.Failed = cp.Failed
		result.FlaggedForReview = append(result.FlaggedForReview, cp.Flagged...)
		result.Skipped = cp.Position
		result.Resumed = true
		catalog.Restore(cp.Tags)
		start = cp.Position
	} else {
		result.RunID = uuid.New().String()
	}

	log := o.logger.WithFields(map[string]interface{}{"runId": result.RunID, "runKey": runKey})
	log.Info("Bulk reprocessing started", map[string]interface{}{
		"poolSize": len(pool),
		"startAt":  start,
		"resumed":  result.Resumed,
	})

	limit := rate.Inf
	if o.interval > 0 {
		limit = rate.Every(o.interval)
	}
	limiter := rate.NewLimiter(limit, 1)

	for i := start; i < len(pool); i++ {
		if err := limiter.Wait(ctx); err != nil {
			log.Warn("Bulk reprocessing interrupted", map[string]interface{}{"position": i, "error": err.Error()})
			result.NewTagCount = catalog.Len()
			return result, fmt.Errorf("bulk run interrupted at candidate %d: %w", i, err)
		}

		key := candidateKey(pool[i], i)
		res, err := o.process(ctx, result.RunID, pool[i])
		if err != nil && ctx.Err() != nil {
			log.Warn("Bulk reprocessing interrupted", map[string]interface{}{
				"position":     i,
				"candidateKey": key,
				"error":        err.Error(),
			})
			result.NewTagCount = catalog.Len()
			return result, fmt.Errorf("bulk run interrupted at candidate %d: %w", i, ctx.Err())
		}

		switch {
		case err != nil:
			result.Failed++
			result.FlaggedForReview = append(result.FlaggedForReview, key)
			metrics.BulkCandidates.WithLabelValues("failed").Inc()
			log.Warn("Candidate failed", map[string]interface{}{"candidateKey": key, "error": err.Error()})
		default:
			result.Processed++
			catalog.Add(res.Analysis.Tags)
			if res.Improved {
				result.Improved++
				metrics.BulkCandidates.WithLabelValues("improved").Inc()
			} else {
				result.FlaggedForReview = append(result.FlaggedForReview, key)
				metrics.BulkCandidates.WithLabelValues("flagged").Inc()
			}
		}

		o.saveCheckpoint(ctx, runKey, Checkpoint{
			RunID:     result.RunID,
			Position:  i + 1,
			LastKey:   key,
			Processed: result.Processed,
			Improved:  result.Improved,
			Failed:    result.Failed,
			Flagged:   result.FlaggedForReview,
			Tags:      catalog.Tags(),
		}, log)
	}

	result.NewTagCount = catalog.Len()
	o.finish(ctx, runKey, result, catalog, log)

	log.Info("Bulk reprocessing completed", map[string]interface{}{
		"processed":   result.Processed,
		"improved":    result.Improved,
		"failed":      result.Failed,
		"flagged":     len(result.FlaggedForReview),
		"newTagCount": result.NewTagCount,
	})
	return result, nil
}

func (o *Orchestrator) process(ctx context.Context, runID string, p models.CandidateProfile) (res CandidateResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCandidatePanic, r)
		}
	}()

	if strings.TrimSpace(p.ID) == "" {
		return res, apperrors.NewInvalidCandidateRecordError("", "candidate id is required")
	}

	analysis, err := o.analyzer.NormalizeAndCategorize(ctx, p)
	if err != nil {
		return res, fmt.Errorf("normalize candidate %s: %w", p.ID, err)
	}

	res = CandidateResult{
		RunID:       runID,
		CandidateID: p.ID,
		Analysis:    analysis,
		Activity:    o.analyzer.ComputeActivityMetrics(p, p.Applications),
		Improved:    Improved(analysis.Normalized),
		ProcessedAt: o.now().UTC(),
	}

	if o.sink != nil {
		if err := o.sink.Commit(ctx, res); err != nil {
			return res, fmt.Errorf("commit candidate %s: %w", p.ID, err)
		}
	}
	return res, nil
}

// finish clears the checkpoint and hands flagged ids and tags downstream.
// Failures here are logged; the candidates are already committed.
func (o *Orchestrator) finish(ctx context.Context, runKey string, result models.BulkResult, catalog *tags.Catalog, log logger.Logger) {
	if o.checkpoints != nil {
		if err := o.checkpoints.Clear(ctx, runKey); err != nil {
			log.Warn("Failed to clear checkpoint", map[string]interface{}{"error": err.Error()})
		}
	}

	if o.indexer != nil && catalog.Len() > 0 {
		if err := o.indexer.IndexTags(ctx, result.RunID, catalog.Tags()); err != nil {
			log.Warn("Failed to index semantic tags", map[string]interface{}{"error": err.Error()})
		}
	}

	if o.notifier != nil && len(result.FlaggedForReview) > 0 {
		if err := o.notifier.NotifyFlagged(ctx, result.RunID, result.FlaggedForReview); err != nil {
			log.Warn("Failed to send review notification", map[string]interface{}{"error": err.Error()})
		}
	}
}

// loadCheckpoint returns nil when there is nothing to resume or the pool no
// longer lines up with the checkpoint.
func (o *Orchestrator) loadCheckpoint(ctx context.Context, runKey string, pool []models.CandidateProfile) *Checkpoint {
	if o.checkpoints == nil || runKey == "" {
		return nil
	}

	cp, err := o.checkpoints.Load(ctx, runKey)
	if err != nil {
		o.logger.Warn("Failed to load checkpoint, starting over", map[string]interface{}{"runKey": runKey, "error": err.Error()})
		return nil
	}
	if cp == nil || cp.Position <= 0 || cp.Position > len(pool) {
		return nil
	}
	if candidateKey(pool[cp.Position-1], cp.Position-1) != cp.LastKey {
		o.logger.Warn("Checkpoint does not match pool, starting over", map[string]interface{}{"runKey": runKey})
		return nil
	}
	return cp
}

func (o *Orchestrator) saveCheckpoint(ctx context.Context, runKey string, cp Checkpoint, log logger.Logger) {
	if o.checkpoints == nil || runKey == "" {
		return
	}
	// A cancelled run still records the candidate it just committed.
	if err := o.checkpoints.Save(context.WithoutCancel(ctx), runKey, cp); err != nil {
		log.Warn("Failed to save checkpoint", map[string]interface{}{"position": cp.Position, "error": err.Error()})
	}
}

// Improved reports whether every normalized field reached LowConfidence.
func Improved(np models.NormalizedProfile) bool {
	for _, c := range np.Fields() {
		if c.Confidence < normalize.LowConfidence {
			return false
		}
	}
	return true
}

// candidateKey identifies a candidate in results and checkpoints. Records
// without an id are named by their pool position.
func candidateKey(p models.CandidateProfile, index int) string {
	if id := strings.TrimSpace(p.ID); id != "" {
		return id
	}
	return fmt.Sprintf("#%d", index)
}
