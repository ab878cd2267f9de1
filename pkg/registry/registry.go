// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrInvalidKnowledgeBase = errors.New("INVALID_KNOWLEDGE_BASE")
	ErrDuplicateVariant     = errors.New("DUPLICATE_VARIANT")
)

// Registry is the immutable lookup table the normalizer and matcher read from.
// It is built once at startup and shared by every request.
type Registry struct {
	version string
	entries map[FieldType][]Entry
	index   map[FieldType]map[string]int
}

// Fold lower-cases s, turns punctuation into word breaks and collapses runs
// of whitespace. '+' and '#' survive so "C++" and "C#" stay distinct.
func Fold(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

// New builds a Registry from a knowledge base. It rejects a knowledge base in
// which two entries of the same field type share a variant.
func New(kb *KnowledgeBase) (*Registry, error) {
	if kb == nil {
		return nil, fmt.Errorf("%w: knowledge base is nil", ErrInvalidKnowledgeBase)
	}

	r := &Registry{
		version: kb.Version,
		entries: make(map[FieldType][]Entry, 4),
		index:   make(map[FieldType]map[string]int, 4),
	}

	for _, u := range kb.Universities {
		r.entries[FieldUniversity] = append(r.entries[FieldUniversity], Entry{
			Canonical: u.Canonical,
			Category:  u.Category,
			Variants:  slices.Clone(u.Abbreviations),
			Related:   nonEmpty(u.Region),
		})
	}
	for _, m := range kb.Majors {
		r.entries[FieldMajor] = append(r.entries[FieldMajor], Entry{
			Canonical: m.Canonical,
			Category:  m.Category,
			Variants:  slices.Clone(m.Variants),
			Related:   append(slices.Clone(m.RelatedIndustries), m.SkillCategories...),
		})
	}
	for _, s := range kb.Skills {
		r.entries[FieldSkill] = append(r.entries[FieldSkill], Entry{
			Canonical: s.Canonical,
			Category:  s.Category,
			Variants:  slices.Clone(s.Variants),
			Related:   slices.Clone(s.Related),
		})
	}
	for _, l := range kb.Locations {
		r.entries[FieldLocation] = append(r.entries[FieldLocation], Entry{
			Canonical: l.Canonical,
			Category:  l.Category,
			Variants:  slices.Clone(l.Variants),
			Related:   nonEmpty(l.Country),
		})
	}

	for field, entries := range r.entries {
		idx := make(map[string]int)
		for i, e := range entries {
			for _, v := range append([]string{e.Canonical}, e.Variants...) {
				key := Fold(v)
				if key == "" {
					continue
				}
				if prev, ok := idx[key]; ok && prev != i {
					return nil, fmt.Errorf("%w: %s variant %q maps to both %q and %q",
						ErrDuplicateVariant, field, v, entries[prev].Canonical, e.Canonical)
				}
				idx[key] = i
			}
		}
		r.index[field] = idx
	}

	return r, nil
}

// LoadRegistry reads a knowledge base file, validates it and builds a Registry.
func LoadRegistry(path string) (*Registry, error) {
	kb, err := ReadKnowledgeBase(path)
	if err != nil {
		return nil, err
	}
	return New(kb)
}

// ReadKnowledgeBase reads and schema-validates a knowledge base file without
// building the lookup indexes.
func ReadKnowledgeBase(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}
	var kb KnowledgeBase
	if err := json.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKnowledgeBase, err)
	}
	return &kb, nil
}

// SaveKnowledgeBase writes kb to path as indented JSON.
func SaveKnowledgeBase(kb *KnowledgeBase, path string) error {
	data, err := json.MarshalIndent(kb, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ValidateDocument checks raw knowledge base JSON against the schema.
func ValidateDocument(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(knowledgeBaseSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKnowledgeBase, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidKnowledgeBase, strings.Join(msgs, "; "))
	}
	return nil
}

func (r *Registry) Version() string {
	return r.version
}

// Entries returns the entries registered for field in registry order.
// The returned slice is a copy.
func (r *Registry) Entries(field FieldType) []Entry {
	return slices.Clone(r.entries[field])
}

// Lookup finds the entry whose canonical name or variant equals value.
func (r *Registry) Lookup(field FieldType, value string) (Entry, bool) {
	i, ok := r.index[field][Fold(value)]
	if !ok {
		return Entry{}, false
	}
	return r.entries[field][i], true
}

// Count returns the number of entries for field.
func (r *Registry) Count(field FieldType) int {
	return len(r.entries[field])
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
