// internal/matching/ranking/ranker_test.go
package ranking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"candidate-workers/internal/matching/normalize"
	"candidate-workers/internal/matching/query"
	"candidate-workers/internal/models"
	"candidate-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func newTestRanker(parallelism int) *Ranker {
	return NewRanker(normalize.New(registry.Default()), nil, fixedNow, parallelism)
}

func daysAgo(d int) time.Time { return testNow.AddDate(0, 0, -d) }

func ptr[T any](v T) *T { return &v }

// activeCS scores 100 on activity: one application two days ago.
func activeCS(id, location string) models.CandidateProfile {
	return models.CandidateProfile{
		ID:           id,
		Major:        "Computer Science",
		Location:     location,
		Applications: []models.Application{{AppliedAt: daysAgo(2), OrganizationID: "org-1"}},
	}
}

func scenarioPool() []models.CandidateProfile {
	unrelated := models.CandidateProfile{ID: "unrelated", Major: "Marketing", Location: "Sharjah"}
	abuDhabi := models.CandidateProfile{
		ID:           "cs-abu-dhabi",
		Major:        "Comp Sci",
		Location:     "Abu Dhabi",
		LastActiveAt: ptr(daysAgo(10)),
	}
	return []models.CandidateProfile{unrelated, abuDhabi, activeCS("cs-dubai", "Dubai")}
}

func ids(results []models.MatchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.CandidateID)
	}
	return out
}

// ==========================
// Rank
// ==========================

func TestRank_FieldAndLocationQuery(t *testing.T) {
	r := newTestRanker(0)
	criteria := query.NewParser(registry.Default()).Parse("Find me Computer Science students in Dubai")

	results, err := r.Rank(context.Background(), scenarioPool(), criteria)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []string{"cs-dubai", "cs-abu-dhabi", "unrelated"}, ids(results))

	assert.Equal(t, 70, results[0].Score)
	assert.Equal(t, []string{"Studies Computer Science", "Located in Dubai"}, results[0].Reasons)
	assert.Equal(t, models.ScoreBreakdown{Field: 40, Location: 25, Activity: 5}, results[0].Breakdown)

	assert.Equal(t, 44, results[1].Score)
	assert.Equal(t, []string{"Studies Computer Science"}, results[1].Reasons)
	assert.InDelta(t, 3.5, results[1].ActivityBonus, 1e-9)

	assert.Equal(t, 3, results[2].Score)
	assert.Empty(t, results[2].Reasons)
	assert.Empty(t, results[2].MatchedKeywords)
}

func TestRank_EmptyCriteriaRanksByActivity(t *testing.T) {
	results, err := newTestRanker(0).Rank(context.Background(), scenarioPool(), models.SearchCriteria{})
	require.NoError(t, err)
	assert.Equal(t, []string{"cs-dubai", "cs-abu-dhabi", "unrelated"}, ids(results))
	for _, res := range results {
		assert.Empty(t, res.Reasons)
		assert.Equal(t, 0.0, res.Breakdown.Field+res.Breakdown.Location+res.Breakdown.Skills+res.Breakdown.University)
	}
}

func TestRank_EmptyPool(t *testing.T) {
	results, err := newTestRanker(0).Rank(context.Background(), nil, models.SearchCriteria{Fields: []string{"technology"}})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRank_TiesKeepPoolOrder(t *testing.T) {
	var pool []models.CandidateProfile
	for i := 0; i < 20; i++ {
		pool = append(pool, activeCS(fmt.Sprintf("c-%02d", i), "Dubai"))
	}

	results, err := newTestRanker(4).Rank(context.Background(), pool, models.SearchCriteria{Fields: []string{"technology"}})
	require.NoError(t, err)
	require.Len(t, results, 20)
	for i, res := range results {
		assert.Equal(t, fmt.Sprintf("c-%02d", i), res.CandidateID)
		assert.Equal(t, 45, res.Score)
	}
}

func TestRank_DeterministicAcrossParallelism(t *testing.T) {
	locations := []string{"Dubai", "Abu Dhabi", "Riyadh", "Remote", "Mars"}
	majors := []string{"CS", "Finance", "Nursing", "Graphic Design", "Basket Weaving"}
	skills := [][]string{{"Python"}, {"SQL", "Excel"}, {"Figma"}, {}, {"py", "mysql", "excel"}}

	var pool []models.CandidateProfile
	for i := 0; i < 200; i++ {
		p := models.CandidateProfile{
			ID:       fmt.Sprintf("c-%03d", i),
			Major:    majors[i%len(majors)],
			Location: locations[(i/5)%len(locations)],
			Skills:   skills[(i/3)%len(skills)],
		}
		if i%7 == 0 {
			p.Applications = []models.Application{{AppliedAt: daysAgo(i % 40), OrganizationID: "org"}}
		}
		pool = append(pool, p)
	}
	criteria := models.SearchCriteria{
		Locations: []string{"Dubai", "Riyadh"},
		Fields:    []string{"technology", "business"},
		Skills:    []string{"Python", "SQL", "Excel"},
	}

	sequential, err := newTestRanker(1).Rank(context.Background(), pool, criteria)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		parallel, err := newTestRanker(16).Rank(context.Background(), pool, criteria)
		require.NoError(t, err)
		assert.Equal(t, sequential, parallel)
	}
}

func TestRank_MinActivityFilters(t *testing.T) {
	criteria := models.SearchCriteria{MinActivity: ptr(query.ActiveThreshold)}

	results, err := newTestRanker(0).Rank(context.Background(), scenarioPool(), criteria)
	require.NoError(t, err)
	assert.Equal(t, []string{"cs-dubai", "cs-abu-dhabi"}, ids(results))

	criteria.MinActivity = ptr(query.HighlyActiveThreshold)
	results, err = newTestRanker(0).Rank(context.Background(), scenarioPool(), criteria)
	require.NoError(t, err)
	assert.Equal(t, []string{"cs-dubai"}, ids(results))
}

func TestRank_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRanker(2).Rank(ctx, scenarioPool(), models.SearchCriteria{})
	assert.ErrorIs(t, err, context.Canceled)
}

// ==========================
// Score
// ==========================

func TestScore_SkillsAreProportionalAndMonotonic(t *testing.T) {
	r := newTestRanker(0)
	criteria := models.SearchCriteria{Skills: []string{"Python", "SQL", "Excel"}}

	tests := []struct {
		name        string
		skills      []string
		wantPoints  float64
		wantMatched []string
	}{
		{"none", []string{"Figma"}, 0, []string{}},
		{"one via variant", []string{"py"}, 20.0 / 3, []string{"Python"}},
		{"two", []string{"MySQL", "Python3"}, 40.0 / 3, []string{"Python", "SQL"}},
		{"all", []string{"Excel", "SQL", "Python", "Figma"}, 20, []string{"Python", "SQL", "Excel"}},
	}

	prev := -1
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := activeCS("c", "Dubai")
			p.Skills = tt.skills

			res, ok := r.Score(p, criteria)
			require.True(t, ok)
			assert.InDelta(t, tt.wantPoints, res.Breakdown.Skills, 1e-9)
			assert.Equal(t, tt.wantMatched, res.MatchedKeywords)
			assert.GreaterOrEqual(t, res.Score, prev)
			prev = res.Score
		})
	}
}

func TestScore_AllFactorsClampedAndOrdered(t *testing.T) {
	p := activeCS("star", "Dubai")
	p.University = "AUD"
	p.Skills = []string{"Python"}
	p.GraduationYear = ptr(2027)

	criteria := models.SearchCriteria{
		Fields:          []string{"technology"},
		Locations:       []string{"Dubai"},
		Skills:          []string{"Python"},
		UniversityTypes: []string{"private_american"},
		ExperienceLevel: models.ExperienceInternship,
	}

	res, ok := newTestRanker(0).Score(p, criteria)
	require.True(t, ok)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, []string{
		"Studies Computer Science",
		"Located in Dubai",
		"Skilled in Python",
		"Attends American University of Dubai",
		"Currently studying, graduating in 2027",
	}, res.Reasons)
	assert.Equal(t, []string{"Python"}, res.MatchedKeywords)
}

func TestScore_CountryContainsCity(t *testing.T) {
	r := newTestRanker(0)
	criteria := models.SearchCriteria{Locations: []string{"United Arab Emirates"}}

	res, ok := r.Score(models.CandidateProfile{ID: "a", Location: "Abu Dhabi", LastActiveAt: ptr(daysAgo(10))}, criteria)
	require.True(t, ok)
	assert.Equal(t, LocationPoints, res.Breakdown.Location)
	assert.Equal(t, 29, res.Score)
	assert.Equal(t, []string{"Located in Abu Dhabi"}, res.Reasons)

	res, ok = r.Score(models.CandidateProfile{ID: "b", Location: "Riyadh"}, criteria)
	require.True(t, ok)
	assert.Zero(t, res.Breakdown.Location)

	res, ok = r.Score(models.CandidateProfile{ID: "c", Location: "Atlantis"}, criteria)
	require.True(t, ok)
	assert.Zero(t, res.Breakdown.Location)
}

func TestScore_SubjectMatchesField(t *testing.T) {
	p := models.CandidateProfile{ID: "s", Major: "Marketing", Subjects: []string{"History", "Data Science"}}

	res, ok := newTestRanker(0).Score(p, models.SearchCriteria{Fields: []string{"technology"}})
	require.True(t, ok)
	assert.Equal(t, FieldPoints, res.Breakdown.Field)
	assert.Equal(t, []string{"Studies Data Science"}, res.Reasons)
}

func TestScore_UnknownCategoriesNeverMatch(t *testing.T) {
	p := models.CandidateProfile{ID: "u", Major: "Underwater Basket Weaving"}
	criteria := models.SearchCriteria{
		Fields:          []string{models.CategoryOther, models.CategoryUnknown},
		UniversityTypes: []string{models.CategoryUnknown},
	}

	res, ok := newTestRanker(0).Score(p, criteria)
	require.True(t, ok)
	assert.Zero(t, res.Breakdown.Field)
	assert.Zero(t, res.Breakdown.University)
}

func TestScore_ExperienceAddsReasonOnly(t *testing.T) {
	tests := []struct {
		name   string
		year   *int
		level  models.ExperienceLevel
		reason string
	}{
		{"intern still studying", ptr(2028), models.ExperienceInternship, "Currently studying, graduating in 2028"},
		{"recent graduate", ptr(2025), models.ExperienceEntry, "Recent graduate (2025)"},
		{"graduated this year", ptr(2026), models.ExperienceEntry, "Recent graduate (2026)"},
		{"experienced", ptr(2019), models.ExperienceExperienced, "Graduated in 2019"},
		{"level mismatch", ptr(2019), models.ExperienceInternship, ""},
		{"no graduation year", nil, models.ExperienceEntry, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.CandidateProfile{ID: "x", GraduationYear: tt.year}
			res, ok := newTestRanker(0).Score(p, models.SearchCriteria{ExperienceLevel: tt.level})
			require.True(t, ok)

			if tt.reason == "" {
				assert.Empty(t, res.Reasons)
			} else {
				assert.Equal(t, []string{tt.reason}, res.Reasons)
			}
			assert.Equal(t, 3, res.Score)
		})
	}
}

func TestScore_Bounds(t *testing.T) {
	r := newTestRanker(0)
	profiles := []models.CandidateProfile{
		{},
		{ID: "x", Major: "!!!", Location: "   ", Skills: []string{"", " "}},
		activeCS("y", "Dubai"),
	}
	criteria := []models.SearchCriteria{
		{},
		{Fields: []string{"technology"}, Locations: []string{"Dubai"}, Skills: []string{"Python"}, UniversityTypes: []string{"federal"}},
	}

	for _, p := range profiles {
		for _, c := range criteria {
			res, ok := r.Score(p, c)
			require.True(t, ok)
			assert.GreaterOrEqual(t, res.Score, 0)
			assert.LessOrEqual(t, res.Score, 100)
			assert.NotNil(t, res.Reasons)
			assert.NotNil(t, res.MatchedKeywords)
		}
	}
}
