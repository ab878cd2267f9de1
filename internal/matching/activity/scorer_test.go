// internal/matching/activity/scorer_test.go
package activity

import (
	"testing"
	"time"

	"candidate-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func daysAgo(d int) time.Time { return testNow.AddDate(0, 0, -d) }

func applications(n int, orgs ...string) []models.Application {
	out := make([]models.Application, n)
	for i := range out {
		out[i] = models.Application{AppliedAt: daysAgo(1), OrganizationID: orgs[i%len(orgs)]}
	}
	return out
}

func TestScore_Staircase(t *testing.T) {
	tests := []struct {
		name string
		days int
		apps int
		want int
	}{
		{"fresh, no applications", 0, 0, 80},
		{"fresh, one application", 3, 1, 100},
		{"exactly seven days", 7, 1, 100},
		{"eight days", 8, 1, 90},
		{"exactly thirty days", 30, 2, 90},
		{"thirty one days", 31, 2, 70},
		{"stale penalty is not cumulative", 90, 0, 50},
		{"five applications earn the bonus but stay capped", 1, 5, 100},
		{"stale but busy", 45, 6, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.days, tt.apps))
		})
	}
}

func TestScorer_ScenarioFortyFiveDaysNoApplications(t *testing.T) {
	s := NewScorer(fixedClock)
	last := daysAgo(45)
	p := models.CandidateProfile{ID: "c-1", CreatedAt: daysAgo(400), LastActiveAt: &last}

	m := s.Score(p, nil)
	require.NotNil(t, m.DaysSinceActive)
	assert.Equal(t, 45, *m.DaysSinceActive)
	assert.Equal(t, 0, m.ApplicationCount)
	assert.Equal(t, 50, m.ActivityScore)
	require.NotNil(t, m.LastActive)
	assert.True(t, m.LastActive.Equal(last))
}

func TestScorer_LastInteraction(t *testing.T) {
	s := NewScorer(fixedClock)
	older := daysAgo(20)

	t.Run("latest application wins over last active", func(t *testing.T) {
		p := models.CandidateProfile{ID: "c", CreatedAt: daysAgo(100), LastActiveAt: &older}
		m := s.Score(p, []models.Application{
			{AppliedAt: daysAgo(50), OrganizationID: "o1"},
			{AppliedAt: daysAgo(2), OrganizationID: "o2"},
		})
		require.NotNil(t, m.DaysSinceActive)
		assert.Equal(t, 2, *m.DaysSinceActive)
	})

	t.Run("falls back to creation time", func(t *testing.T) {
		p := models.CandidateProfile{ID: "c", CreatedAt: daysAgo(10)}
		m := s.Score(p, nil)
		require.NotNil(t, m.DaysSinceActive)
		assert.Equal(t, 10, *m.DaysSinceActive)
		assert.Equal(t, 70, m.ActivityScore)
	})

	t.Run("no timestamp at all is least favourable", func(t *testing.T) {
		m := s.Score(models.CandidateProfile{ID: "c"}, nil)
		assert.Nil(t, m.LastActive)
		assert.Equal(t, 50, m.ActivityScore)
		assert.Nil(t, m.DaysSinceActive)
	})

	t.Run("future timestamps count as today", func(t *testing.T) {
		future := testNow.Add(48 * time.Hour)
		p := models.CandidateProfile{ID: "c", LastActiveAt: &future}
		m := s.Score(p, nil)
		require.NotNil(t, m.DaysSinceActive)
		assert.Equal(t, 0, *m.DaysSinceActive)
	})
}

func TestScorer_ResponseRate(t *testing.T) {
	s := NewScorer(fixedClock)

	m := s.Score(models.CandidateProfile{ID: "c"}, applications(6, "o1", "o2", "o3"))
	assert.Equal(t, 6, m.ApplicationCount)
	assert.Equal(t, 3, m.DistinctOrgCount)
	assert.InDelta(t, 2.0, m.ResponseRate, 1e-9)

	m = s.Score(models.CandidateProfile{ID: "c"}, applications(2, ""))
	assert.Equal(t, 0, m.DistinctOrgCount)
	assert.Equal(t, 0.0, m.ResponseRate)
}

func TestCompleteness(t *testing.T) {
	tests := []struct {
		name string
		p    models.CandidateProfile
		want int
	}{
		{"empty", models.CandidateProfile{}, 0},
		{"blank values do not count", models.CandidateProfile{University: " ", Skills: []string{""}, Interests: []string{" "}}, 0},
		{"three fields", models.CandidateProfile{University: "AUD", Major: "CS", Bio: "hello"}, 60},
		{"all fields", models.CandidateProfile{University: "AUD", Major: "CS", Skills: []string{"Go"}, Bio: "hi", Interests: []string{"AI"}}, 100},
		{"location and goals are not scored", models.CandidateProfile{Location: "Dubai", Goals: []string{"grow"}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Completeness(tt.p))
		})
	}
}

func TestScorer_Bounded(t *testing.T) {
	s := NewScorer(fixedClock)
	ancient := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	profiles := []models.CandidateProfile{
		{},
		{ID: "x", CreatedAt: ancient},
		{ID: "y", University: "a", Major: "b", Skills: []string{"c"}, Bio: "d", Interests: []string{"e"}, LastActiveAt: &testNow},
	}
	histories := [][]models.Application{nil, {}, applications(50, "o")}

	for _, p := range profiles {
		for _, h := range histories {
			m := s.Score(p, h)
			assert.GreaterOrEqual(t, m.ActivityScore, 0)
			assert.LessOrEqual(t, m.ActivityScore, 100)
			assert.GreaterOrEqual(t, m.ProfileCompleteness, 0)
			assert.LessOrEqual(t, m.ProfileCompleteness, 100)
		}
	}
}

func TestNewScorer_DefaultsClock(t *testing.T) {
	s := NewScorer(nil)
	last := time.Now().Add(-time.Hour)
	m := s.Score(models.CandidateProfile{LastActiveAt: &last}, nil)
	require.NotNil(t, m.DaysSinceActive)
	assert.Equal(t, 0, *m.DaysSinceActive)
}
