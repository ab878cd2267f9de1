// cmd/worker-manager/server.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"candidate-workers/internal/common/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const readinessTimeout = 3 * time.Second

type readinessCheck struct {
	name  string
	check func(ctx context.Context) error
}

// newHealthMux serves liveness, readiness and Prometheus metrics.
func newHealthMux(checks []readinessCheck, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var mu sync.Mutex
		failures := map[string]string{}
		g, gctx := errgroup.WithContext(ctx)
		for _, c := range checks {
			g.Go(func() error {
				if err := c.check(gctx); err != nil {
					mu.Lock()
					failures[c.name] = err.Error()
					mu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait()

		if len(failures) > 0 {
			log.Warn("readiness check failed", map[string]interface{}{"failures": failures})
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":   "not_ready",
				"failures": failures,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ready"})
	})

	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
