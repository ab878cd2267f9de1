// internal/workers/candidate/search-candidates/handler.go
package searchcandidates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	apperrors "candidate-workers/internal/common/errors"
	"candidate-workers/internal/common/logger"
	"candidate-workers/internal/matching"
	"candidate-workers/internal/models"
	"candidate-workers/internal/workers/candidate"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "search-candidates"
)

// Searcher is the slice of the matching engine this worker needs.
type Searcher interface {
	ParseQuery(text string) models.SearchCriteria
	Rank(ctx context.Context, pool []models.CandidateProfile, criteria models.SearchCriteria) ([]models.MatchResult, error)
}

type Handler struct {
	config *Config
	engine Searcher
	pool   candidate.PoolLoader
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, engine Searcher, pool candidate.PoolLoader, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		engine: engine,
		pool:   pool,
		errors: apperrors.NewErrorHandler(log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := parseInput(job.Variables)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return err
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return err
	}

	return h.completeJob(ctx, client, job, output)
}

func parseInput(variables string) (*Input, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &raw); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	if err := inputSchema.Validate(raw).Err(); err != nil {
		return nil, err
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	text := strings.TrimSpace(input.Query)
	if text == "" {
		return nil, apperrors.NewInvalidInputError("query is required")
	}

	pool, err := candidate.ResolvePool(ctx, h.pool, input.Candidates, input.CandidateIDs, h.config.PoolLimit)
	if err != nil {
		return nil, err
	}

	criteria := h.engine.ParseQuery(text)
	results, err := h.engine.Rank(ctx, pool, criteria)
	if errors.Is(err, matching.ErrNilPool) {
		return nil, apperrors.NewInvalidInputError("no candidate pool: pass candidates or candidateIds")
	}
	if err != nil {
		return nil, err
	}

	total := len(results)
	limit := h.config.MaxResults
	if input.Limit > 0 {
		limit = input.Limit
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	h.logger.Info("candidates ranked", map[string]interface{}{
		"query":        text,
		"poolSize":     len(pool),
		"totalMatches": total,
		"returned":     len(results),
		"emptyFilter":  criteria.Empty(),
	})

	return &Output{
		Criteria:     criteria,
		Results:      results,
		TotalMatches: total,
		PoolSize:     len(pool),
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}
	return nil
}
