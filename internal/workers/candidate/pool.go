// internal/workers/candidate/pool.go
package candidate

import (
	"context"

	"candidate-workers/internal/models"
)

// PoolLoader reads candidate profiles from the system of record. With ids it
// loads exactly those candidates; without, it loads up to limit.
type PoolLoader interface {
	LoadPool(ctx context.Context, ids []string, limit int) ([]models.CandidateProfile, error)
}

// ResolvePool returns inline when the job carried candidates, otherwise it
// loads them. A nil result with a nil error means no pool source was given.
func ResolvePool(ctx context.Context, loader PoolLoader, inline []models.CandidateProfile, ids []string, limit int) ([]models.CandidateProfile, error) {
	if inline != nil {
		return inline, nil
	}
	if loader == nil {
		return nil, nil
	}
	return loader.LoadPool(ctx, ids, limit)
}

// ResolveCandidate returns inline when present, otherwise loads the candidate
// with id. ok is false when neither source yields a profile.
func ResolveCandidate(ctx context.Context, loader PoolLoader, inline *models.CandidateProfile, id string) (profile models.CandidateProfile, ok bool, err error) {
	if inline != nil {
		return *inline, true, nil
	}
	if loader == nil || id == "" {
		return models.CandidateProfile{}, false, nil
	}
	pool, err := loader.LoadPool(ctx, []string{id}, 1)
	if err != nil || len(pool) == 0 {
		return models.CandidateProfile{}, false, err
	}
	return pool[0], true, nil
}
