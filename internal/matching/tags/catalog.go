// internal/matching/tags/catalog.go
package tags

import (
	"slices"
	"strings"
	"sync"

	"candidate-workers/internal/models"
)

const maxCatalogExamples = 5

// Catalog aggregates the tags of many profiles and counts how often each
// one occurs. A bulk run starts from an empty catalog, or from the one its
// checkpoint recorded.
type Catalog struct {
	mu   sync.Mutex
	tags map[string]*models.SemanticTag
}

func NewCatalog() *Catalog {
	return &Catalog{tags: make(map[string]*models.SemanticTag)}
}

func (c *Catalog) Add(tags []models.SemanticTag) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range tags {
		existing, ok := c.tags[t.ID]
		if !ok {
			t.Frequency = 1
			t.RelatedTerms = slices.Clone(t.RelatedTerms)
			t.Examples = capExamples(union(nil, t.Examples))
			c.tags[t.ID] = &t
			continue
		}
		existing.Frequency++
		existing.Confidence = max(existing.Confidence, t.Confidence)
		existing.RelatedTerms = union(existing.RelatedTerms, t.RelatedTerms)
		existing.Examples = capExamples(union(existing.Examples, t.Examples))
	}
}

// Restore seeds the catalog with a snapshot taken by Tags. Frequencies are
// kept, so later Adds continue counting from them.
func (c *Catalog) Restore(snapshot []models.SemanticTag) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range snapshot {
		t.RelatedTerms = slices.Clone(t.RelatedTerms)
		t.Examples = slices.Clone(t.Examples)
		c.tags[t.ID] = &t
	}
}

func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tags)
}

// Tags returns a snapshot ordered by ID.
func (c *Catalog) Tags() []models.SemanticTag {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.SemanticTag, 0, len(c.tags))
	for _, t := range c.tags {
		cp := *t
		cp.RelatedTerms = slices.Clone(t.RelatedTerms)
		cp.Examples = slices.Clone(t.Examples)
		out = append(out, cp)
	}
	slices.SortFunc(out, func(a, b models.SemanticTag) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func capExamples(examples []string) []string {
	if len(examples) > maxCatalogExamples {
		return examples[:maxCatalogExamples]
	}
	return examples
}
