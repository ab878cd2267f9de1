// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"candidate-workers/internal/common/config"
	apperrors "candidate-workers/internal/common/errors"
	"candidate-workers/internal/common/logger"
	"candidate-workers/internal/common/metrics"
	"candidate-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler reports the job outcome to Zeebe itself and returns the error
// that made it fail, if any.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

// StartWorker opens a job worker for taskType. It returns nil when the
// worker is disabled in configuration.
func StartWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler JobHandler,
	obs *observability.Observability,
	log logger.Logger,
) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler, obs, log)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jobWorker
}

// Instrument adapts a JobHandler to the Zeebe handler signature and records
// job metrics around it.
func Instrument(taskType string, handler JobHandler, obs *observability.Observability, log logger.Logger) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		defer active.Dec()

		start := time.Now()
		err := handler.Handle(client, job)
		elapsed := time.Since(start)

		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
		status := "completed"
		if err != nil {
			status = "failed"
			code := apperrors.AsStandardError(err).Code
			metrics.WorkerJobsFailed.WithLabelValues(taskType, string(code)).Inc()
			log.Error("handler returned error", map[string]interface{}{
				"taskType":  taskType,
				"jobKey":    job.Key,
				"errorCode": code,
				"error":     err.Error(),
			})
		} else {
			metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		}
		obs.RecordJob(context.Background(), taskType, status, elapsed)
	}
}
