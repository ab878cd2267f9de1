// internal/matching/normalize/normalizer.go
package normalize

import (
	"strings"
	"unicode/utf8"

	"candidate-workers/internal/models"
	"candidate-workers/pkg/registry"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ConfidenceMatch     = 0.95
	ConfidenceHeuristic = 0.6
	ConfidenceFallback  = 0.3

	// FuzzyThreshold is the similarity a canonical name must exceed.
	FuzzyThreshold = 0.7

	// LowConfidence marks a normalization that needs manual review.
	LowConfidence = 0.6

	minContainedRunes = 3
)

// Normalizer maps free-text attributes onto knowledge-base entries.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	registry *registry.Registry
	entries  map[registry.FieldType][]registry.Entry
}

func New(r *registry.Registry) *Normalizer {
	n := &Normalizer{
		registry: r,
		entries:  make(map[registry.FieldType][]registry.Entry, 4),
	}
	for _, f := range []registry.FieldType{registry.FieldUniversity, registry.FieldMajor, registry.FieldSkill, registry.FieldLocation} {
		n.entries[f] = r.Entries(f)
	}
	return n
}

func (n *Normalizer) Registry() *registry.Registry {
	return n.registry
}

// Normalize resolves raw against the entries of field. It never fails: input
// that matches nothing comes back title-cased with a low confidence, and blank
// input comes back as "unknown" with confidence 0.
func (n *Normalizer) Normalize(field registry.FieldType, raw string) models.NormalizedCategory {
	out := models.NormalizedCategory{
		Field:    string(field),
		Original: raw,
		Value:    titleCase(raw),
	}

	folded := registry.Fold(raw)
	if folded == "" {
		out.Category = models.CategoryUnknown
		out.Source = models.SourceNone
		return out
	}

	if e, ok := n.registry.Lookup(field, raw); ok {
		return matched(out, e, ConfidenceMatch, models.SourceExact)
	}

	entries := n.entries[field]

	if e, ok := containment(entries, folded); ok {
		return matched(out, e, ConfidenceMatch, models.SourceContains)
	}

	if utf8.RuneCountInString(folded) <= maxFuzzyRunes {
		best, bestSim := -1, FuzzyThreshold
		for i, e := range entries {
			if sim := Similarity(folded, registry.Fold(e.Canonical)); sim > bestSim {
				best, bestSim = i, sim
			}
		}
		if best >= 0 {
			return matched(out, entries[best], bestSim, models.SourceFuzzy)
		}
	}

	if category, ok := heuristicCategory(field, folded); ok {
		out.Category = category
		out.Confidence = ConfidenceHeuristic
		out.Source = models.SourceHeuristic
		return out
	}

	out.Category = models.CategoryOther
	out.Confidence = ConfidenceFallback
	out.Source = models.SourceNone
	return out
}

// containment finds the entry whose canonical name or variant is contained in
// the input, or contains it, on whole-word boundaries. A name found inside the
// input wins over one that merely contains the input; among those the name
// covering the largest share of the input wins, ties keeping registry order.
// Otherwise the first entry in registry order with a name containing the
// input wins.
func containment(entries []registry.Entry, folded string) (registry.Entry, bool) {
	padded := " " + folded + " "
	inLen := utf8.RuneCountInString(folded)
	canBeContained := inLen >= minContainedRunes && !allGeneric(folded)

	best, bestLen, container := -1, 0, -1
	for i, e := range entries {
		for _, v := range append([]string{e.Canonical}, e.Variants...) {
			fv := registry.Fold(v)
			if fv == "" || fv == folded {
				continue
			}
			vLen := utf8.RuneCountInString(fv)

			switch {
			case vLen < inLen && strings.Contains(padded, " "+fv+" "):
				if vLen > bestLen {
					best, bestLen = i, vLen
				}
			case container < 0 && canBeContained && vLen > inLen && strings.Contains(" "+fv+" ", padded):
				container = i
			}
		}
	}
	switch {
	case best >= 0:
		return entries[best], true
	case container >= 0:
		return entries[container], true
	}
	return registry.Entry{}, false
}

func matched(out models.NormalizedCategory, e registry.Entry, confidence float64, source models.MatchSource) models.NormalizedCategory {
	out.Value = e.Canonical
	out.Category = e.Category
	out.Confidence = confidence
	out.Source = source
	return out
}

// cases.Caser is stateful, so a fresh one is built per call.
func titleCase(raw string) string {
	collapsed := strings.Join(strings.Fields(raw), " ")
	if collapsed == "" {
		return ""
	}
	return cases.Title(language.English).String(collapsed)
}
