// internal/workers/candidate/bulk-reprocess/handler.go
package bulkreprocess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "candidate-workers/internal/common/errors"
	"candidate-workers/internal/common/logger"
	"candidate-workers/internal/matching"
	"candidate-workers/internal/models"
	"candidate-workers/internal/workers/candidate"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "bulk-reprocess"
)

type Reprocessor interface {
	BulkReprocess(ctx context.Context, runKey string, pool []models.CandidateProfile) (models.BulkResult, error)
}

// interruptedError marks a run stopped by its deadline after a checkpoint.
type interruptedError struct {
	partial models.BulkResult
	err     error
}

func (e *interruptedError) Error() string { return e.err.Error() }
func (e *interruptedError) Unwrap() error { return e.err }

type Handler struct {
	config *Config
	engine Reprocessor
	pool   candidate.PoolLoader
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, engine Reprocessor, pool candidate.PoolLoader, log logger.Logger) *Handler {
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
		"retries":     job.Retries,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := parseInput(job.Variables)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return err
	}

	output, err := h.Execute(ctx, input)
	var interrupted *interruptedError
	switch {
	case errors.As(err, &interrupted):
		h.failForResume(client, job, interrupted)
		return err
	case err != nil:
		h.errors.HandleJobError(ctx, client, job, err)
		return err
	}

	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return err
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
		return err
	}
	return nil
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
	pool, err := candidate.ResolvePool(ctx, h.pool, input.Candidates, input.CandidateIDs, h.config.PoolLimit)
	if err != nil {
		return nil, err
	}

	result, err := h.engine.BulkReprocess(ctx, input.RunKey, pool)
	switch {
	case errors.Is(err, matching.ErrNilPool):
		return nil, apperrors.NewInvalidInputError("no candidate pool: pass candidates or candidateIds")
	case err != nil && ctx.Err() != nil:
		return nil, &interruptedError{partial: result, err: err}
	case err != nil:
		return nil, err
	}

	h.logger.Info("bulk run finished", map[string]interface{}{
		"runKey":    input.RunKey,
		"runId":     result.RunID,
		"processed": result.Processed,
		"improved":  result.Improved,
		"failed":    result.Failed,
		"flagged":   len(result.FlaggedForReview),
		"resumed":   result.Resumed,
	})
	return &Output{RunKey: input.RunKey, Result: result}, nil
}

// failForResume hands the job back to Zeebe with one retry consumed. The
// checkpoint lets the next activation skip work already committed.
func (h *Handler) failForResume(client worker.JobClient, job entities.Job, interrupted *interruptedError) {
	h.logger.Warn("bulk run interrupted, job will resume from checkpoint", map[string]interface{}{
		"jobKey":    job.Key,
		"runId":     interrupted.partial.RunID,
		"processed": interrupted.partial.Processed,
		"retries":   job.Retries - 1,
	})

	_, err := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(max(job.Retries-1, 0)).
		RetryBackoff(h.config.ResumeBackoff).
		ErrorMessage(interrupted.Error()).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send fail job command", map[string]interface{}{"error": err})
	}
}
