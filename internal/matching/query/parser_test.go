// internal/matching/query/parser_test.go
package query

import (
	"testing"

	"candidate-workers/internal/models"
	"candidate-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *Parser {
	return NewParser(registry.Default())
}

func TestParse(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name            string
		query           string
		wantLocations   []string
		wantFields      []string
		wantUniversity  []string
		wantSkills      []string
		wantExperience  models.ExperienceLevel
		wantMinActivity *int
	}{
		{
			name:          "field and location",
			query:         "Find me Computer Science students in Dubai",
			wantLocations: []string{"Dubai"},
			wantFields:    []string{"technology"},
		},
		{
			name:           "abbreviations typed in upper case",
			query:          "ME graduates from federal universities in the UAE",
			wantLocations:  []string{"United Arab Emirates"},
			wantFields:     []string{"engineering"},
			wantUniversity: []string{"federal", "public_local"},
			wantExperience: models.ExperienceEntry,
		},
		{
			name:  "lower-case short words are not abbreviations",
			query: "find me someone who is good at it",
		},
		{
			name:       "overlapping triggers collapse to one value",
			query:      "Business students",
			wantFields: []string{"business"},
		},
		{
			name:            "highly active remote designers",
			query:           "highly active remote designers",
			wantLocations:   []string{"Remote"},
			wantFields:      []string{"creative"},
			wantMinActivity: intPtr(HighlyActiveThreshold),
		},
		{
			name:           "university name implies its type",
			query:          "AUD alumni",
			wantUniversity: []string{"private_american"},
		},
		{
			name:           "several filter categories at once",
			query:          "Experienced Java and Node.js engineers in Abu Dhabi or Sharjah",
			wantLocations:  []string{"Abu Dhabi", "Sharjah"},
			wantFields:     []string{"engineering"},
			wantSkills:     []string{"Java", "Node.js"},
			wantExperience: models.ExperienceExperienced,
		},
		{
			name:  "empty",
			query: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.query)

			assert.Equal(t, tt.query, got.Query)
			assert.Equal(t, orEmpty(tt.wantLocations), got.Locations)
			assert.Equal(t, orEmpty(tt.wantFields), got.Fields)
			assert.Equal(t, orEmpty(tt.wantUniversity), got.UniversityTypes)
			assert.Equal(t, orEmpty(tt.wantSkills), got.Skills)
			assert.Equal(t, tt.wantExperience, got.ExperienceLevel)
			assert.Equal(t, tt.wantMinActivity, got.MinActivity)
		})
	}
}

func TestParse_SkillsInternsAndRegion(t *testing.T) {
	p := newTestParser()

	got := p.Parse("Active Python and SQL interns anywhere in the GCC")

	assert.Equal(t, []string{"Python", "SQL"}, got.Skills)
	assert.Equal(t, models.ExperienceInternship, got.ExperienceLevel)
	require.NotNil(t, got.MinActivity)
	assert.Equal(t, ActiveThreshold, *got.MinActivity)

	assert.Contains(t, got.Locations, "Remote")
	assert.Contains(t, got.Locations, "Dubai")
	assert.Contains(t, got.Locations, "Riyadh")
	assert.Contains(t, got.Locations, "Manama")
	assert.NotContains(t, got.Locations, "London")
}

func TestParse_EmptyQueryIsEmptyCriteria(t *testing.T) {
	got := newTestParser().Parse("   ")
	assert.True(t, got.Empty())
	assert.NotNil(t, got.Locations)
	assert.NotNil(t, got.Skills)
}

func TestParse_IsDeterministic(t *testing.T) {
	p := newTestParser()
	q := "Senior CS and IT graduates with Python, React and Excel in Dubai, Doha or remote"

	first := p.Parse(q)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, p.Parse(q))
	}
	assert.Equal(t, []string{"technology"}, first.Fields)
	assert.Equal(t, []string{"Dubai", "Doha", "Remote"}, first.Locations)
	assert.Equal(t, []string{"Python", "React", "Excel"}, first.Skills)
	assert.Equal(t, models.ExperienceEntry, first.ExperienceLevel)
}

func intPtr(v int) *int { return &v }

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
