// internal/matching/tags/generator.go
package tags

import (
	"slices"
	"strings"

	"candidate-workers/internal/models"
	"candidate-workers/pkg/registry"
)

const (
	// MinFieldConfidence applies to university, major and location.
	MinFieldConfidence = 0.5
	MinSkillConfidence = 0.6

	CategoryIndustry = "industry"
	CategoryCareer   = "career"
)

// Generator turns normalized categories into semantic tags. It only reads
// the registry.
type Generator struct {
	registry *registry.Registry
}

func NewGenerator(r *registry.Registry) *Generator {
	return &Generator{registry: r}
}

// Generate returns a fresh, deduplicated tag set ordered by ID.
func (g *Generator) Generate(p models.CandidateProfile, enhanced models.EnhancedCategories) []models.SemanticTag {
	base := enhanced.Base
	byID := make(map[string]*models.SemanticTag)

	for _, c := range []models.NormalizedCategory{base.University, base.Major, base.Location} {
		if c.Confidence > MinFieldConfidence {
			g.add(byID, g.fieldTag(c))
		}
	}
	for _, c := range base.Skills {
		if c.Confidence > MinSkillConfidence {
			g.add(byID, g.fieldTag(c))
		}
	}

	if e := enhanced.Enhancement; e != nil {
		for _, industry := range e.IndustryAlignment {
			g.add(byID, labelTag(CategoryIndustry, industry, e.Confidence))
		}
		g.add(byID, labelTag(CategoryCareer, e.CareerTrajectory, e.Confidence))
	}

	out := make([]models.SemanticTag, 0, len(byID))
	for _, t := range byID {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b models.SemanticTag) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func (g *Generator) fieldTag(c models.NormalizedCategory) models.SemanticTag {
	related := []string{}
	if c.Category != "" && c.Category != models.CategoryOther && c.Category != models.CategoryUnknown {
		related = append(related, c.Category)
	}
	if e, ok := g.registry.Lookup(registry.FieldType(c.Field), c.Value); ok {
		related = append(related, e.Related...)
	}
	return models.SemanticTag{
		ID:           ID(c.Field, c.Value),
		Category:     c.Field,
		Value:        c.Value,
		Confidence:   c.Confidence,
		RelatedTerms: related,
		Frequency:    1,
		Examples:     []string{c.Original},
	}
}

func labelTag(category, label string, confidence float64) models.SemanticTag {
	label = strings.TrimSpace(label)
	return models.SemanticTag{
		ID:           ID(category, label),
		Category:     category,
		Value:        label,
		Confidence:   confidence,
		RelatedTerms: []string{},
		Frequency:    1,
		Examples:     []string{label},
	}
}

func (g *Generator) add(byID map[string]*models.SemanticTag, t models.SemanticTag) {
	if Slug(t.Value) == "" {
		return
	}
	t.RelatedTerms = union(nil, t.RelatedTerms)
	t.Examples = union(nil, t.Examples)

	existing, ok := byID[t.ID]
	if !ok {
		byID[t.ID] = &t
		return
	}
	existing.Confidence = max(existing.Confidence, t.Confidence)
	existing.RelatedTerms = union(existing.RelatedTerms, t.RelatedTerms)
	existing.Examples = union(existing.Examples, t.Examples)
}

// ID builds the "<category>:<slug>" tag identifier.
func ID(category, value string) string {
	return category + ":" + Slug(value)
}

// Slug is the folded value with spaces turned into hyphens.
func Slug(value string) string {
	return strings.ReplaceAll(registry.Fold(value), " ", "-")
}

// union merges b into a, dropping blanks and duplicates, and sorts the result.
func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(slices.Clone(a), b...) {
		if strings.TrimSpace(s) == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
