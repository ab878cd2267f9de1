// internal/workers/candidate/normalize-profile/handler.go
package normalizeprofile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "candidate-workers/internal/common/errors"
	"candidate-workers/internal/common/logger"
	"candidate-workers/internal/matching/bulk"
	"candidate-workers/internal/matching/normalize"
	"candidate-workers/internal/models"
	"candidate-workers/internal/workers/candidate"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "normalize-profile"
)

type Analyzer interface {
	NormalizeAndCategorize(ctx context.Context, p models.CandidateProfile) (models.ProfileAnalysis, error)
}

type Handler struct {
	config *Config
	engine Analyzer
	pool   candidate.PoolLoader
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, engine Analyzer, pool candidate.PoolLoader, log logger.Logger) *Handler {
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
	if err == nil {
		var output *Output
		if output, err = h.Execute(ctx, input); err == nil {
			return h.completeJob(ctx, client, job, output)
		}
	}

	h.errors.HandleJobError(ctx, client, job, err)
	return err
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
	profile, ok, err := candidate.ResolveCandidate(ctx, h.pool, input.Candidate, input.CandidateID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewInvalidCandidateRecordError(input.CandidateID, "candidate not found")
	}

	analysis, err := h.engine.NormalizeAndCategorize(ctx, profile)
	if err != nil {
		return nil, err
	}

	output := &Output{
		Analysis:    analysis,
		AIEnhanced:  analysis.Enhanced.Enhancement != nil,
		NeedsReview: !bulk.Improved(analysis.Normalized),
		Notices:     dataQualityNotices(analysis.Normalized),
	}

	h.logger.Info("profile normalized", map[string]interface{}{
		"candidateId": profile.ID,
		"tags":        len(analysis.Tags),
		"suggestions": len(analysis.SuggestedImprovements),
		"aiEnhanced":  output.AIEnhanced,
		"needsReview": output.NeedsReview,
		"notices":     len(output.Notices),
	})
	return output, nil
}

func dataQualityNotices(np models.NormalizedProfile) []*apperrors.StandardError {
	var notices []*apperrors.StandardError
	for _, c := range np.Fields() {
		switch {
		case strings.TrimSpace(c.Original) == "":
			notices = append(notices, apperrors.NewInputIncompleteError(c.Field))
		case c.Confidence < normalize.LowConfidence:
			notices = append(notices, apperrors.NewLowConfidenceMatchError(c.Field, c.Original, c.Confidence))
		}
	}
	return notices
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
