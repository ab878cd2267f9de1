// internal/workers/candidate/normalize-profile/models.go
package normalizeprofile

import (
	apperrors "candidate-workers/internal/common/errors"
	"candidate-workers/internal/models"
)

// Input carries the profile inline, or the ID to load it by.
type Input struct {
	Candidate   *models.CandidateProfile `json:"candidate,omitempty"`
	CandidateID string                   `json:"candidateId,omitempty"`
}

type Output struct {
	Analysis    models.ProfileAnalysis `json:"profileAnalysis"`
	AIEnhanced  bool                   `json:"aiEnhanced"`
	NeedsReview bool                   `json:"needsReview"`
	// Notices are informational INPUT_INCOMPLETE and LOW_CONFIDENCE_MATCH
	// findings. They never fail the job.
	Notices []*apperrors.StandardError `json:"notices,omitempty"`
}
