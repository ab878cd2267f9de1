// internal/workers/candidate/search-candidates/models.go
package searchcandidates

import "candidate-workers/internal/models"

// Input carries the recruiter query and the pool to rank. Candidates takes
// precedence over CandidateIDs; with neither, the first PoolLimit candidates
// are loaded.
type Input struct {
	Query        string                    `json:"query"`
	Candidates   []models.CandidateProfile `json:"candidates,omitempty"`
	CandidateIDs []string                  `json:"candidateIds,omitempty"`
	Limit        int                       `json:"limit,omitempty"`
}

type Output struct {
	Criteria     models.SearchCriteria `json:"searchCriteria"`
	Results      []models.MatchResult  `json:"results"`
	TotalMatches int                   `json:"totalMatches"`
	PoolSize     int                   `json:"poolSize"`
}
