// internal/workers/candidate/pool_test.go
package candidate

import (
	"context"
	"testing"

	"candidate-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	ids   []string
	limit int
}

func (f *fakeLoader) LoadPool(_ context.Context, ids []string, limit int) ([]models.CandidateProfile, error) {
	f.ids, f.limit = ids, limit
	return []models.CandidateProfile{{ID: "loaded"}}, nil
}

func TestResolvePool(t *testing.T) {
	ctx := context.Background()

	inline := []models.CandidateProfile{{ID: "inline"}}
	loader := &fakeLoader{}
	pool, err := ResolvePool(ctx, loader, inline, []string{"x"}, 10)
	require.NoError(t, err)
	assert.Equal(t, inline, pool)
	assert.Nil(t, loader.ids, "loader not consulted")

	pool, err = ResolvePool(ctx, loader, nil, []string{"c-1"}, 10)
	require.NoError(t, err)
	assert.Equal(t, "loaded", pool[0].ID)
	assert.Equal(t, []string{"c-1"}, loader.ids)
	assert.Equal(t, 10, loader.limit)

	pool, err = ResolvePool(ctx, nil, nil, nil, 10)
	require.NoError(t, err)
	assert.Nil(t, pool)

	empty := []models.CandidateProfile{}
	pool, err = ResolvePool(ctx, nil, empty, nil, 10)
	require.NoError(t, err)
	assert.NotNil(t, pool)
}

func TestResolveCandidate(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{}

	p, ok, err := ResolveCandidate(ctx, loader, &models.CandidateProfile{ID: "inline"}, "c-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "inline", p.ID)

	p, ok, err = ResolveCandidate(ctx, loader, nil, "c-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "loaded", p.ID)
	assert.Equal(t, []string{"c-1"}, loader.ids)
	assert.Equal(t, 1, loader.limit)

	_, ok, err = ResolveCandidate(ctx, loader, nil, "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = ResolveCandidate(ctx, nil, nil, "c-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
