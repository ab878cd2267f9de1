// internal/workers/candidate/bulk-reprocess/handler_test.go
package bulkreprocess

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "candidate-workers/internal/common/errors"
	"candidate-workers/internal/common/logger"
	"candidate-workers/internal/matching"
	"candidate-workers/internal/matching/bulk"
	"candidate-workers/internal/models"
	"candidate-workers/internal/store"
	"candidate-workers/pkg/registry"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T, opts bulk.Options) *Handler {
	opts.Interval = -1
	engine, err := matching.NewEngine(matching.Config{
		Registry: registry.Default(),
		Now:      func() time.Time { return time.Date(2026, 10, 17, 3, 0, 0, 0, time.UTC) },
		Logger:   logger.NewTestLogger(t),
		Bulk:     opts,
	})
	require.NoError(t, err)
	return NewHandler(LoadConfig(), engine, nil, logger.NewTestLogger(t))
}

func testPool() []models.CandidateProfile {
	return []models.CandidateProfile{
		{ID: "cand-1", University: "AUD", Major: "Comp Sci", Location: "Dubai", Skills: []string{"Python"}},
		{ID: "", Major: "Finance"},
		{ID: "cand-3", University: "AUD", Major: "Business Administration", Location: "Atlantis"},
	}
}

// ==========================
// Execute
// ==========================

func TestHandler_Execute(t *testing.T) {
	out, err := newTestHandler(t, bulk.Options{}).Execute(context.Background(), &Input{
		RunKey:     "nightly",
		Candidates: testPool(),
	})
	require.NoError(t, err)

	res := out.Result
	assert.Equal(t, "nightly", out.RunKey)
	_, uuidErr := uuid.Parse(res.RunID)
	assert.NoError(t, uuidErr)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Improved)
	assert.Equal(t, []string{"#1", "cand-3"}, res.FlaggedForReview)
	assert.False(t, res.Resumed)
}

func TestHandler_Execute_ClearsRedisCheckpoint(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	h := newTestHandler(t, bulk.Options{Checkpoints: store.NewCheckpoints(client, 0)})
	_, err := h.Execute(context.Background(), &Input{RunKey: "nightly", Candidates: testPool()})
	require.NoError(t, err)

	assert.False(t, mr.Exists("bulk:checkpoint:nightly"), "finished runs leave no checkpoint")
}

func TestHandler_Execute_NoPool(t *testing.T) {
	_, err := newTestHandler(t, bulk.Options{}).Execute(context.Background(), &Input{RunKey: "nightly"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.AsStandardError(err).Code)
}

func TestHandler_Execute_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestHandler(t, bulk.Options{}).Execute(ctx, &Input{RunKey: "nightly", Candidates: testPool()})
	require.Error(t, err)

	var interrupted *interruptedError
	require.True(t, errors.As(err, &interrupted))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, interrupted.partial.Processed)
}

// ==========================
// Input parsing
// ==========================

func TestParseInput(t *testing.T) {
	tests := []struct {
		name      string
		variables string
		wantErr   bool
	}{
		{"ids", `{"runKey":"nightly-2026-10-17","candidateIds":["c-1","c-2"]}`, false},
		{"all candidates", `{"runKey":"nightly"}`, false},
		{"missing run key", `{"candidateIds":["c-1"]}`, true},
		{"run key with spaces", `{"runKey":"bad key"}`, true},
		{"not json", `nope`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := parseInput(tt.variables)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.AsStandardError(err).Code)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, input.RunKey)
		})
	}
}
