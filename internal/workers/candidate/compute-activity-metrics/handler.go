// internal/workers/candidate/compute-activity-metrics/handler.go
package computeactivitymetrics

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "candidate-workers/internal/common/errors"
	"candidate-workers/internal/common/logger"
	"candidate-workers/internal/models"
	"candidate-workers/internal/workers/candidate"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "compute-activity-metrics"
)

type Scorer interface {
	ComputeActivityMetrics(p models.CandidateProfile, history []models.Application) models.ActivityMetrics
}

type Handler struct {
	config *Config
	engine Scorer
	pool   candidate.PoolLoader
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, engine Scorer, pool candidate.PoolLoader, log logger.Logger) *Handler {
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
	h.logger.Debug("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(job.Variables), &raw); err != nil {
		err = apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
		h.errors.HandleJobError(ctx, client, job, err)
		return err
	}
	if err := inputSchema.Validate(raw).Err(); err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return err
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		err = apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
		h.errors.HandleJobError(ctx, client, job, err)
		return err
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return err
	}

	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return err
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
		return err
	}
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	profile, ok, err := candidate.ResolveCandidate(ctx, h.pool, input.Candidate, input.CandidateID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewInvalidCandidateRecordError(input.CandidateID, "candidate not found")
	}

	history := profile.Applications
	if input.ApplicationHistory != nil {
		history = input.ApplicationHistory
	}

	m := h.engine.ComputeActivityMetrics(profile, history)
	h.logger.Debug("activity metrics computed", map[string]interface{}{
		"candidateId":   profile.ID,
		"activityScore": m.ActivityScore,
		"applications":  m.ApplicationCount,
	})
	return &Output{CandidateID: profile.ID, Metrics: m}, nil
}
