// internal/matching/normalize/profile.go
package normalize

import (
	"fmt"
	"strings"

	"candidate-workers/internal/models"
	"candidate-workers/pkg/registry"
)

// NormalizeProfile normalizes every structured attribute of p. Blank skills
// and subjects are dropped; the scalar fields are always present.
func (n *Normalizer) NormalizeProfile(p models.CandidateProfile) models.NormalizedProfile {
	out := models.NormalizedProfile{
		University: n.Normalize(registry.FieldUniversity, p.University),
		Major:      n.Normalize(registry.FieldMajor, p.Major),
		Location:   n.Normalize(registry.FieldLocation, p.Location),
		Skills:     []models.NormalizedCategory{},
	}
	for _, s := range p.Skills {
		if strings.TrimSpace(s) == "" {
			continue
		}
		out.Skills = append(out.Skills, n.Normalize(registry.FieldSkill, s))
	}
	for _, s := range p.Subjects {
		if strings.TrimSpace(s) == "" {
			continue
		}
		out.Subjects = append(out.Subjects, n.Normalize(registry.FieldMajor, s))
	}
	return out
}

// Suggestions lists what the candidate could fill in or clarify. Missing
// fields come first, then fields whose match confidence is below
// LowConfidence, in profile order.
func Suggestions(p models.CandidateProfile, np models.NormalizedProfile) []string {
	out := []string{}

	missing := []struct {
		empty bool
		text  string
	}{
		{blank(p.University), "Add the university you attend or graduated from"},
		{blank(p.Major), "Add your major or field of study"},
		{len(np.Skills) == 0, "List at least one skill"},
		{blank(p.Location), "Add your location"},
		{blank(p.Bio), "Write a short bio"},
		{len(nonBlank(p.Interests)) == 0, "List a few interests"},
	}
	for _, m := range missing {
		if m.empty {
			out = append(out, m.text)
		}
	}

	for _, c := range []models.NormalizedCategory{np.University, np.Major, np.Location} {
		if !blank(c.Original) && c.Confidence < LowConfidence {
			out = append(out, fmt.Sprintf("Check the spelling of your %s %q; it did not match a known entry", c.Field, c.Original))
		}
	}
	for _, c := range np.Skills {
		if c.Confidence < LowConfidence {
			out = append(out, fmt.Sprintf("Use a more common name for the skill %q", c.Original))
		}
	}
	return out
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if !blank(s) {
			out = append(out, s)
		}
	}
	return out
}
