// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"candidate-workers/internal/common/aws"
	"candidate-workers/internal/common/camunda"
	"candidate-workers/internal/common/config"
	"candidate-workers/internal/common/database"
	apperrors "candidate-workers/internal/common/errors"
	commonhttp "candidate-workers/internal/common/http"
	"candidate-workers/internal/common/logger"
	"candidate-workers/internal/common/observability"
	"candidate-workers/internal/matching"
	"candidate-workers/internal/matching/bulk"
	"candidate-workers/internal/matching/enhance"
	"candidate-workers/internal/store"
	"candidate-workers/pkg/registry"

	br "candidate-workers/internal/workers/candidate/bulk-reprocess"
	cam "candidate-workers/internal/workers/candidate/compute-activity-metrics"
	np "candidate-workers/internal/workers/candidate/normalize-profile"
	sc "candidate-workers/internal/workers/candidate/search-candidates"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

func main() {
	cfg, envFile, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	outputs := []string{}
	if cfg.Logging.Output != "" {
		outputs = append(outputs, cfg.Logging.Output)
	}
	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, outputs...)
	log.Info("starting worker manager", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"envFile":     envFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("worker manager failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	log.Info("worker manager stopped gracefully", nil)
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(shutdownCtx)
	}()

	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		return err
	}
	defer zeebe.Close()
	log.Info("zeebe client connected", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return err
	}
	defer pg.Close()
	if err := retryWithBackoff(ctx, pg.Ping, 15, 2*time.Second, log, "PostgreSQL connection"); err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.Database.Redis)
	defer rdb.Close()
	if err := retryWithBackoff(ctx, rdb.Ping, 10, 2*time.Second, log, "Redis connection"); err != nil {
		return err
	}

	checks := []readinessCheck{
		{name: "zeebe", check: zeebe.HealthCheck},
		{name: "postgres", check: pg.Ping},
		{name: "redis", check: rdb.Ping},
	}

	candidates := store.NewCandidateStore(pg.DB)
	bulkOpts := bulk.Options{
		Sink:        candidates,
		Checkpoints: store.NewCheckpoints(rdb.Client, store.DefaultCheckpointTTL),
		Interval:    config.GetDuration(cfg.Matching.BulkInterval),
		Logger:      log,
	}

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	switch {
	case errors.Is(err, database.ErrElasticsearchDisabled):
		log.Info("elasticsearch not configured, tag catalog will not be indexed", nil)
	case err != nil:
		return err
	default:
		tagIndex := store.NewTagIndex(es.Client, cfg.Database.Elasticsearch.TagIndex)
		if err := retryWithBackoff(ctx, tagIndex.EnsureIndex, 15, 2*time.Second, log, "Elasticsearch tag index"); err != nil {
			return err
		}
		bulkOpts.Indexer = tagIndex
		checks = append(checks, readinessCheck{name: "elasticsearch", check: es.Ping})
	}

	if sns := cfg.Notifications.SNS; sns.Enabled {
		client, err := aws.NewSNSClient(ctx, sns.Region)
		if err != nil {
			return err
		}
		bulkOpts.Notifier = aws.NewReviewNotifier(client, sns.TopicARN)
	}

	reg, err := loadRegistry(cfg.Matching.KnowledgeBasePath)
	if err != nil {
		return err
	}
	log.Info("knowledge base loaded", map[string]interface{}{
		"version":      reg.Version(),
		"universities": reg.Count(registry.FieldUniversity),
		"majors":       reg.Count(registry.FieldMajor),
		"skills":       reg.Count(registry.FieldSkill),
		"locations":    reg.Count(registry.FieldLocation),
	})

	enhancer, err := newEnhancer(ctx, cfg.APIs.Enhancement, log)
	if err != nil {
		return err
	}

	engine, err := matching.NewEngine(matching.Config{
		Registry:    reg,
		Enhancer:    enhancer,
		Cache:       store.NewAnalysisCache(rdb.Client, time.Duration(cfg.Matching.CacheTTL)*time.Second),
		Parallelism: cfg.Matching.RankingParallelism,
		Logger:      log,
		Bulk:        bulkOpts,
	})
	if err != nil {
		return err
	}

	workers := startWorkers(cfg, zeebe, engine, candidates, obs, log)
	defer func() {
		for _, w := range workers {
			w.Close()
			w.AwaitClose()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           newHealthMux(checks, log),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, stopping workers", nil)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// retryWithBackoff runs op until it succeeds, doubling the delay after each
// failure.
func retryWithBackoff(ctx context.Context, op func(context.Context) error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if i == maxRetries-1 {
			break
		}

		log.Warn(operationName+" failed, retrying", map[string]interface{}{
			"error":       err.Error(),
			"attempt":     i + 1,
			"maxRetries":  maxRetries,
			"nextRetryIn": delay.String(),
		})
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled: %w", operationName, ctx.Err())
		}
		delay *= 2
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func startWorkers(
	cfg *config.Config,
	zeebe *camunda.Client,
	engine *matching.Engine,
	pool *store.CandidateStore,
	obs *observability.Observability,
	log logger.Logger,
) []worker.JobWorker {
	client := zeebe.GetClient()
	var started []worker.JobWorker
	open := func(taskType string, h camunda.JobHandler) {
		if w := camunda.StartWorker(client, taskType, config.GetWorkerConfig(cfg, taskType), h, obs, log); w != nil {
			started = append(started, w)
		}
	}
	timeout := func(taskType string, fallback time.Duration) time.Duration {
		if ms := config.GetWorkerConfig(cfg, taskType).Timeout; ms > 0 {
			return config.GetDuration(ms)
		}
		return fallback
	}
	poolLimit := func(fallback int) int {
		if cfg.Matching.PoolLimit > 0 {
			return cfg.Matching.PoolLimit
		}
		return fallback
	}

	npCfg := np.LoadConfig()
	npCfg.Timeout = timeout(np.TaskType, npCfg.Timeout)
	open(np.TaskType, np.NewHandler(npCfg, engine, pool, log))

	camCfg := cam.LoadConfig()
	camCfg.Timeout = timeout(cam.TaskType, camCfg.Timeout)
	open(cam.TaskType, cam.NewHandler(camCfg, engine, pool, log))

	scCfg := sc.LoadConfig()
	scCfg.Timeout = timeout(sc.TaskType, scCfg.Timeout)
	scCfg.PoolLimit = poolLimit(scCfg.PoolLimit)
	open(sc.TaskType, sc.NewHandler(scCfg, engine, pool, log))

	brCfg := br.LoadConfig()
	brCfg.Timeout = timeout(br.TaskType, brCfg.Timeout)
	brCfg.PoolLimit = poolLimit(brCfg.PoolLimit)
	open(br.TaskType, br.NewHandler(brCfg, engine, pool, log))

	log.Info("workers registered", map[string]interface{}{"count": len(started)})
	return started
}

func loadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, apperrors.NewKnowledgeBaseInvalidError(fmt.Errorf("%s: %w", path, err))
	}
	return reg, nil
}

func newEnhancer(ctx context.Context, cfg config.EnhancementConfig, log logger.Logger) (*enhance.Adapter, error) {
	timeout := config.GetDuration(cfg.Timeout)
	var provider enhance.Provider

	switch cfg.Provider {
	case "", "none":
	case "http":
		provider = enhance.NewHTTPProvider(cfg.BaseURL, cfg.APIKey, commonhttp.NewClient(enhance.ClampTimeout(timeout)))
	case "gemini":
		p, err := enhance.NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("gemini provider: %w", err)
		}
		provider = p
	default:
		return nil, fmt.Errorf("unknown enhancement provider %q", cfg.Provider)
	}

	return enhance.NewAdapter(provider, timeout, log), nil
}
