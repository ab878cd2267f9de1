// internal/matching/normalize/normalizer_test.go
package normalize

import (
	"strings"
	"testing"

	"candidate-workers/internal/models"
	"candidate-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Helpers
// ==========================

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	return New(registry.Default())
}

// ==========================
// Normalize
// ==========================

func TestNormalize_EveryRegisteredVariantResolvesExactly(t *testing.T) {
	n := newTestNormalizer(t)
	kb := registry.DefaultKnowledgeBase()

	check := func(field registry.FieldType, canonical string, variants []string) {
		for _, v := range append([]string{canonical}, variants...) {
			got := n.Normalize(field, v)
			assert.Equal(t, canonical, got.Value, "%s %q", field, v)
			assert.GreaterOrEqual(t, got.Confidence, 0.95, "%s %q", field, v)
			assert.Equal(t, models.SourceExact, got.Source, "%s %q", field, v)
		}
	}

	for _, u := range kb.Universities {
		check(registry.FieldUniversity, u.Canonical, u.Abbreviations)
	}
	for _, m := range kb.Majors {
		check(registry.FieldMajor, m.Canonical, m.Variants)
	}
	for _, s := range kb.Skills {
		check(registry.FieldSkill, s.Canonical, s.Variants)
	}
	for _, l := range kb.Locations {
		check(registry.FieldLocation, l.Canonical, l.Variants)
	}
}

func TestNormalize_Scenarios(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name         string
		field        registry.FieldType
		input        string
		wantValue    string
		wantCategory string
		minConf      float64
		wantSource   models.MatchSource
	}{
		{
			name:         "university abbreviation",
			field:        registry.FieldUniversity,
			input:        "AUD",
			wantValue:    "American University of Dubai",
			wantCategory: "private_american",
			minConf:      0.95,
			wantSource:   models.SourceExact,
		},
		{
			name:         "major short form",
			field:        registry.FieldMajor,
			input:        "Comp Sci",
			wantValue:    "Computer Science",
			wantCategory: "technology",
			minConf:      0.85,
			wantSource:   models.SourceExact,
		},
		{
			name:         "misspelt major",
			field:        registry.FieldMajor,
			input:        "Computer Sciense",
			wantValue:    "Computer Science",
			wantCategory: "technology",
			minConf:      0.85,
			wantSource:   models.SourceFuzzy,
		},
		{
			name:         "input contains canonical name",
			field:        registry.FieldMajor,
			input:        "Bachelor of Computer Science",
			wantValue:    "Computer Science",
			wantCategory: "technology",
			minConf:      0.95,
			wantSource:   models.SourceContains,
		},
		{
			name:         "input contains location",
			field:        registry.FieldLocation,
			input:        "Dubai Marina",
			wantValue:    "Dubai",
			wantCategory: "emirate",
			minConf:      0.95,
			wantSource:   models.SourceContains,
		},
		{
			name:         "input contained in variant",
			field:        registry.FieldUniversity,
			input:        "Wollongong",
			wantValue:    "University of Wollongong in Dubai",
			wantCategory: "international_branch",
			minConf:      0.95,
			wantSource:   models.SourceContains,
		},
		{
			name:         "input contained in several entries keeps registry order",
			field:        registry.FieldUniversity,
			input:        "Dubai",
			wantValue:    "American University of Dubai",
			wantCategory: "private_american",
			minConf:      0.95,
			wantSource:   models.SourceContains,
		},
		{
			name:         "case and spacing are ignored",
			field:        registry.FieldSkill,
			input:        "  machine   LEARNING ",
			wantValue:    "Machine Learning",
			wantCategory: "data",
			minConf:      0.95,
			wantSource:   models.SourceExact,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.field, tt.input)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.GreaterOrEqual(t, got.Confidence, tt.minConf)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.input, got.Original)
			assert.Equal(t, string(tt.field), got.Field)
		})
	}
}

func TestNormalize_FuzzyConfidenceIsSimilarity(t *testing.T) {
	n := newTestNormalizer(t)

	got := n.Normalize(registry.FieldMajor, "Computer Sciense")
	assert.InDelta(t, 15.0/16.0, got.Confidence, 1e-9)
}

func TestNormalize_Fallbacks(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name         string
		field        registry.FieldType
		input        string
		wantValue    string
		wantCategory string
		wantConf     float64
		wantSource   models.MatchSource
	}{
		{"heuristic engineering", registry.FieldMajor, "aerospace engineering", "Aerospace Engineering", "engineering", 0.6, models.SourceHeuristic},
		{"generic university word", registry.FieldUniversity, "university", "University", "private_local", 0.6, models.SourceHeuristic},
		{"remote location", registry.FieldLocation, "fully online", "Fully Online", "remote", 0.6, models.SourceHeuristic},
		{"nothing matches", registry.FieldMajor, "underwater basket weaving", "Underwater Basket Weaving", models.CategoryOther, 0.3, models.SourceNone},
		{"empty", registry.FieldSkill, "", "", models.CategoryUnknown, 0, models.SourceNone},
		{"whitespace only", registry.FieldLocation, " \t\n ", "", models.CategoryUnknown, 0, models.SourceNone},
		{"punctuation only", registry.FieldMajor, "?!...", "?!...", models.CategoryUnknown, 0, models.SourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.field, tt.input)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.InDelta(t, tt.wantConf, got.Confidence, 1e-9)
			assert.Equal(t, tt.wantSource, got.Source)
		})
	}
}

func TestNormalize_IsTotal(t *testing.T) {
	n := newTestNormalizer(t)

	inputs := []string{
		"",
		" ",
		"a",
		"ÄÖÜ straße",
		"جامعة الإمارات",
		"\x00\xff",
		"🚀🚀🚀",
		strings.Repeat("computer science ", 40),
		"<script>alert(1)</script>",
	}
	fields := []registry.FieldType{registry.FieldUniversity, registry.FieldMajor, registry.FieldSkill, registry.FieldLocation}

	for _, field := range fields {
		for _, in := range inputs {
			require.NotPanics(t, func() {
				got := n.Normalize(field, in)
				assert.GreaterOrEqual(t, got.Confidence, 0.0)
				assert.LessOrEqual(t, got.Confidence, 1.0)
				assert.NotEmpty(t, got.Category)
			})
		}
	}
}

func TestNormalize_AlternateRegistry(t *testing.T) {
	r, err := registry.New(&registry.KnowledgeBase{
		Version: "test",
		Majors:  []registry.MajorMapping{{Canonical: "Marine Biology", Variants: []string{"MarBio"}, Category: "science"}},
	})
	require.NoError(t, err)
	n := New(r)

	got := n.Normalize(registry.FieldMajor, "marbio")
	assert.Equal(t, "Marine Biology", got.Value)

	got = n.Normalize(registry.FieldMajor, "Comp Sci")
	assert.NotEqual(t, "Computer Science", got.Value)
}

// ==========================
// Similarity
// ==========================

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"dubai", "dubai", 0},
		{"café", "cafe", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
		})
	}
}

func TestSimilarity_IsSymmetricAndBounded(t *testing.T) {
	words := []string{"", "a", "AUD", "aud", "Comp Sci", "Computer Science", "Sharjah", "Shrajah", "ذكاء", "kitten", "sitting"}

	for _, a := range words {
		for _, b := range words {
			ab, ba := Similarity(a, b), Similarity(b, a)
			assert.Equal(t, ab, ba, "%q vs %q", a, b)
			assert.GreaterOrEqual(t, ab, 0.0)
			assert.LessOrEqual(t, ab, 1.0)
		}
	}
	assert.Equal(t, 1.0, Similarity("AUD", "aud"))
}

// ==========================
// Profile
// ==========================

func TestNormalizeProfile_AndSuggestions(t *testing.T) {
	n := newTestNormalizer(t)
	p := models.CandidateProfile{
		ID:         "c-1",
		University: "AUD",
		Major:      "Comp Sci",
		Skills:     []string{"Python", "  ", "xyzzy"},
		Location:   "Dubai",
		Subjects:   []string{"Data Analytics"},
	}

	np := n.NormalizeProfile(p)
	assert.Equal(t, "American University of Dubai", np.University.Value)
	assert.Equal(t, "Computer Science", np.Major.Value)
	assert.Equal(t, "Dubai", np.Location.Value)
	require.Len(t, np.Skills, 2)
	assert.Equal(t, "Python", np.Skills[0].Value)
	assert.Equal(t, models.CategoryOther, np.Skills[1].Category)
	require.Len(t, np.Subjects, 1)
	assert.Equal(t, "Data Science", np.Subjects[0].Value)

	assert.Equal(t, []string{
		"Write a short bio",
		"List a few interests",
		`Use a more common name for the skill "xyzzy"`,
	}, Suggestions(p, np))
}

func TestSuggestions_EmptyProfile(t *testing.T) {
	n := newTestNormalizer(t)
	p := models.CandidateProfile{ID: "c-2"}

	got := Suggestions(p, n.NormalizeProfile(p))
	assert.Len(t, got, 6)
	assert.NotNil(t, got)
}

func TestSuggestions_LowConfidenceField(t *testing.T) {
	n := newTestNormalizer(t)
	p := models.CandidateProfile{
		ID:         "c-3",
		University: "AUD",
		Major:      "underwater basket weaving",
		Skills:     []string{"SQL"},
		Location:   "Dubai",
		Bio:        "hi",
		Interests:  []string{"chess"},
	}

	assert.Equal(t, []string{
		`Check the spelling of your major "underwater basket weaving"; it did not match a known entry`,
	}, Suggestions(p, n.NormalizeProfile(p)))
}
