// internal/matching/enhance/provider.go
package enhance

import (
	"context"
	"strings"
	"unicode/utf8"

	"candidate-workers/internal/models"
)

const maxBioRunes = 500

// Provider calls an external semantic service and returns its raw JSON
// payload. The Adapter owns validation, timeouts and fallback, so providers
// may simply return whatever the service sent.
type Provider interface {
	Name() string
	Complete(ctx context.Context, summary Summary) ([]byte, error)
}

// Summary is the condensed profile sent to the semantic service.
type Summary struct {
	CandidateID    string   `json:"candidateId"`
	University     string   `json:"university"`
	UniversityType string   `json:"universityType"`
	Major          string   `json:"major"`
	FieldCategory  string   `json:"fieldCategory"`
	Location       string   `json:"location"`
	Skills         []string `json:"skills"`
	Interests      []string `json:"interests"`
	Goals          []string `json:"goals"`
	Bio            string   `json:"bio"`
	GraduationYear *int     `json:"graduationYear,omitempty"`
}

func NewSummary(p models.CandidateProfile, base models.NormalizedProfile) Summary {
	skills := make([]string, 0, len(base.Skills))
	for _, s := range base.Skills {
		skills = append(skills, s.Value)
	}
	return Summary{
		CandidateID:    p.ID,
		University:     base.University.Value,
		UniversityType: base.University.Category,
		Major:          base.Major.Value,
		FieldCategory:  base.Major.Category,
		Location:       base.Location.Value,
		Skills:         skills,
		Interests:      nonNil(p.Interests),
		Goals:          nonNil(p.Goals),
		Bio:            truncate(strings.TrimSpace(p.Bio), maxBioRunes),
		GraduationYear: p.GraduationYear,
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
