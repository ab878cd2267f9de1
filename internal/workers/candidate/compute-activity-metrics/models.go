// internal/workers/candidate/compute-activity-metrics/models.go
package computeactivitymetrics

import "candidate-workers/internal/models"

// Input carries the profile inline or by ID. ApplicationHistory overrides the
// profile's own applications when present.
type Input struct {
	Candidate          *models.CandidateProfile `json:"candidate,omitempty"`
	CandidateID        string                   `json:"candidateId,omitempty"`
	ApplicationHistory []models.Application     `json:"applicationHistory,omitempty"`
}

type Output struct {
	CandidateID string                 `json:"candidateId"`
	Metrics     models.ActivityMetrics `json:"activityMetrics"`
}
