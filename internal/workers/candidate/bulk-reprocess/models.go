// internal/workers/candidate/bulk-reprocess/models.go
package bulkreprocess

import "candidate-workers/internal/models"

// Input names the run and its pool. A repeated RunKey resumes that run from
// its last checkpoint.
type Input struct {
	RunKey       string                    `json:"runKey"`
	Candidates   []models.CandidateProfile `json:"candidates,omitempty"`
	CandidateIDs []string                  `json:"candidateIds,omitempty"`
}

type Output struct {
	RunKey string            `json:"runKey"`
	Result models.BulkResult `json:"bulkResult"`
}
