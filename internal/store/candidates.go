// internal/store/candidates.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	apperrors "candidate-workers/internal/common/errors"
	"candidate-workers/internal/matching/bulk"
	"candidate-workers/internal/models"

	"github.com/lib/pq"
)

const (
	selectCandidates = `
		SELECT id, university, major, location, skills, interests, goals, bio,
		       subjects, graduation_year, created_at, last_active_at
		FROM candidates`

	selectApplications = `
		SELECT candidate_id, organization_id, applied_at
		FROM applications
		WHERE candidate_id = ANY($1)
		ORDER BY applied_at`

	upsertAnalysis = `
		INSERT INTO candidate_analysis (
			candidate_id, run_id, kb_version, analysis, activity_score,
			profile_completeness, improved, processed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (candidate_id) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			kb_version = EXCLUDED.kb_version,
			analysis = EXCLUDED.analysis,
			activity_score = EXCLUDED.activity_score,
			profile_completeness = EXCLUDED.profile_completeness,
			improved = EXCLUDED.improved,
			processed_at = EXCLUDED.processed_at`
)

var _ bulk.Sink = (*CandidateStore)(nil)

// CandidateStore loads candidate pools from Postgres and commits bulk
// reprocessing results, one row per candidate.
type CandidateStore struct {
	db *sql.DB
}

func NewCandidateStore(db *sql.DB) *CandidateStore {
	return &CandidateStore{db: db}
}

// LoadPool returns the candidates with the given ids ordered by id. With no
// ids it returns up to limit candidates ordered by creation time.
func (s *CandidateStore) LoadPool(ctx context.Context, ids []string, limit int) ([]models.CandidateProfile, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if len(ids) > 0 {
		rows, err = s.db.QueryContext(ctx, selectCandidates+` WHERE id = ANY($1) ORDER BY id`, pq.Array(ids))
	} else {
		rows, err = s.db.QueryContext(ctx, selectCandidates+` ORDER BY created_at, id LIMIT $1`, limit)
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("load_candidates", err)
	}
	defer rows.Close()

	pool := []models.CandidateProfile{}
	index := make(map[string]int)
	for rows.Next() {
		var (
			p                                  models.CandidateProfile
			skills, interests, goals, subjects pq.StringArray
			graduationYear                     sql.NullInt64
			lastActive                         sql.NullTime
		)
		if err := rows.Scan(
			&p.ID, &p.University, &p.Major, &p.Location, &skills, &interests, &goals, &p.Bio,
			&subjects, &graduationYear, &p.CreatedAt, &lastActive,
		); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("scan_candidate", err)
		}

		p.Skills = []string(skills)
		p.Interests = []string(interests)
		p.Goals = []string(goals)
		p.Subjects = []string(subjects)
		if graduationYear.Valid {
			year := int(graduationYear.Int64)
			p.GraduationYear = &year
		}
		if lastActive.Valid {
			t := lastActive.Time
			p.LastActiveAt = &t
		}

		index[p.ID] = len(pool)
		pool = append(pool, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("load_candidates", err)
	}

	if len(pool) == 0 {
		return pool, nil
	}
	if err := s.attachApplications(ctx, pool, index); err != nil {
		return nil, err
	}
	return pool, nil
}

func (s *CandidateStore) attachApplications(ctx context.Context, pool []models.CandidateProfile, index map[string]int) error {
	ids := make([]string, 0, len(pool))
	for _, p := range pool {
		ids = append(ids, p.ID)
	}

	rows, err := s.db.QueryContext(ctx, selectApplications, pq.Array(ids))
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("load_applications", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			candidateID string
			org         sql.NullString
			app         models.Application
		)
		if err := rows.Scan(&candidateID, &org, &app.AppliedAt); err != nil {
			return apperrors.NewQueryExecutionFailedError("scan_application", err)
		}
		app.OrganizationID = org.String
		if i, ok := index[candidateID]; ok {
			pool[i].Applications = append(pool[i].Applications, app)
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewQueryExecutionFailedError("load_applications", err)
	}
	return nil
}

// Commit upserts the candidate's latest analysis.
func (s *CandidateStore) Commit(ctx context.Context, r bulk.CandidateResult) error {
	analysis, err := json.Marshal(r.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, upsertAnalysis,
		r.CandidateID,
		r.RunID,
		r.Analysis.KnowledgeBaseVersion,
		analysis,
		r.Activity.ActivityScore,
		r.Activity.ProfileCompleteness,
		r.Improved,
		r.ProcessedAt,
	); err != nil {
		return apperrors.NewQueryExecutionFailedError("upsert_analysis", err)
	}
	return nil
}
