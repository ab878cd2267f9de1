// internal/matching/activity/scorer.go
package activity

import (
	"math"
	"strings"
	"time"

	"candidate-workers/internal/models"
)

const (
	maxScore = 100

	stalePenalty   = 30
	recentPenalty  = 10
	noAppsPenalty  = 20
	activeAppBonus = 10

	staleDays       = 30
	recentDays      = 7
	activeAppsCount = 5

	completenessPerField = 20

	// unknownDays scores a candidate who was never active; it always takes the
	// stale penalty.
	unknownDays = math.MaxInt32
)

// Scorer derives ActivityMetrics from a profile and its application history.
type Scorer struct {
	now func() time.Time
}

func NewScorer(now func() time.Time) *Scorer {
	if now == nil {
		now = time.Now
	}
	return &Scorer{now: now}
}

// Score never fails. Missing data degrades to the least favourable value.
func (s *Scorer) Score(p models.CandidateProfile, history []models.Application) models.ActivityMetrics {
	m := models.ActivityMetrics{
		ApplicationCount:    len(history),
		DistinctOrgCount:    distinctOrganizations(history),
		ProfileCompleteness: Completeness(p),
	}

	days := unknownDays
	if last := lastInteraction(p, history); last != nil {
		m.LastActive = last
		days = max(int(s.now().Sub(*last).Hours()/24), 0)
		m.DaysSinceActive = &days
	}

	if m.DistinctOrgCount > 0 {
		m.ResponseRate = float64(m.ApplicationCount) / float64(m.DistinctOrgCount)
	}

	m.ActivityScore = Score(days, m.ApplicationCount)
	return m
}

// Score applies at most one recency penalty, then the application penalty or
// bonus, and clamps to [0,100].
func Score(daysSinceActive, applications int) int {
	score := maxScore
	switch {
	case daysSinceActive > staleDays:
		score -= stalePenalty
	case daysSinceActive > recentDays:
		score -= recentPenalty
	}

	if applications == 0 {
		score -= noAppsPenalty
	} else if applications >= activeAppsCount {
		score += activeAppBonus
	}
	return clamp(score)
}

// Completeness gives 20 points for each of university, major, skills, bio
// and interests.
func Completeness(p models.CandidateProfile) int {
	score := 0
	for _, ok := range []bool{
		strings.TrimSpace(p.University) != "",
		strings.TrimSpace(p.Major) != "",
		anyNonBlank(p.Skills),
		strings.TrimSpace(p.Bio) != "",
		anyNonBlank(p.Interests),
	} {
		if ok {
			score += completenessPerField
		}
	}
	return clamp(score)
}

func lastInteraction(p models.CandidateProfile, history []models.Application) *time.Time {
	var last time.Time
	for _, a := range history {
		if a.AppliedAt.After(last) {
			last = a.AppliedAt
		}
	}
	if p.LastActiveAt != nil && p.LastActiveAt.After(last) {
		last = *p.LastActiveAt
	}
	if last.IsZero() {
		last = p.CreatedAt
	}
	if last.IsZero() {
		return nil
	}
	return &last
}

func distinctOrganizations(history []models.Application) int {
	seen := make(map[string]struct{}, len(history))
	for _, a := range history {
		if a.OrganizationID == "" {
			continue
		}
		seen[a.OrganizationID] = struct{}{}
	}
	return len(seen)
}

func anyNonBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func clamp(v int) int {
	return min(max(v, 0), maxScore)
}
