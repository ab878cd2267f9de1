// internal/matching/query/parser.go
package query

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"candidate-workers/internal/models"
	"candidate-workers/pkg/registry"
)

const (
	ActiveThreshold       = 60
	HighlyActiveThreshold = 80

	// Abbreviations this short only trigger when typed in upper case, so
	// "me" or "it" in a sentence never reads as a major.
	maxAbbreviationRunes = 3
)

// trigger fires when phrase appears in the folded query on word boundaries.
type trigger struct {
	phrase string
	abbrev bool
	values []string
}

// Parser turns a recruiter's free-text query into SearchCriteria with
// ordered keyword triggers. It is not a grammar: every filter category is
// tested independently and several may fire for the same words.
type Parser struct {
	locations    []trigger
	fields       []trigger
	universities []trigger
	skills       []trigger
	experience   []trigger
}

func NewParser(r *registry.Registry) *Parser {
	p := &Parser{
		locations:    append(entryTriggers(r.Entries(registry.FieldLocation), canonicalValue), gccTriggers(r)...),
		fields:       append(entryTriggers(r.Entries(registry.FieldMajor), categoryValue), keywordTriggers(fieldKeywords)...),
		universities: append(keywordTriggers(universityKeywords), entryTriggers(r.Entries(registry.FieldUniversity), categoryValue)...),
		skills:       entryTriggers(r.Entries(registry.FieldSkill), canonicalValue),
		experience:   keywordTriggers(experienceKeywords),
	}
	return p
}

// Parse never fails. A query that triggers nothing yields empty filters.
func (p *Parser) Parse(text string) models.SearchCriteria {
	folded := " " + registry.Fold(text) + " "
	upper := upperTokens(text)

	c := models.SearchCriteria{
		Query:           text,
		Locations:       match(p.locations, folded, upper),
		Fields:          match(p.fields, folded, upper),
		UniversityTypes: match(p.universities, folded, upper),
		Skills:          match(p.skills, folded, upper),
	}

	if levels := match(p.experience, folded, upper); len(levels) > 0 {
		c.ExperienceLevel = models.ExperienceLevel(levels[0])
	}

	switch {
	case containsPhrase(folded, "highly active"), containsPhrase(folded, "very active"), containsPhrase(folded, "most active"):
		v := HighlyActiveThreshold
		c.MinActivity = &v
	case containsPhrase(folded, "active"), containsPhrase(folded, "engaged"), containsPhrase(folded, "responsive"):
		v := ActiveThreshold
		c.MinActivity = &v
	}

	return c
}

func match(triggers []trigger, folded string, upper map[string]bool) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, t := range triggers {
		if t.abbrev {
			if !upper[t.phrase] {
				continue
			}
		} else if !containsPhrase(folded, t.phrase) {
			continue
		}
		for _, v := range t.values {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

func containsPhrase(paddedFolded, phrase string) bool {
	return strings.Contains(paddedFolded, " "+phrase+" ")
}

// upperTokens returns the folded form of every token typed fully in upper case.
func upperTokens(text string) map[string]bool {
	out := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#')
	}) {
		if tok == strings.ToUpper(tok) && strings.ToLower(tok) != tok {
			out[registry.Fold(tok)] = true
		}
	}
	return out
}

func canonicalValue(e registry.Entry) string { return e.Canonical }

func categoryValue(e registry.Entry) string { return e.Category }

func entryTriggers(entries []registry.Entry, value func(registry.Entry) string) []trigger {
	var out []trigger
	for _, e := range entries {
		for _, v := range append([]string{e.Canonical}, e.Variants...) {
			phrase := registry.Fold(v)
			if phrase == "" {
				continue
			}
			out = append(out, trigger{
				phrase: phrase,
				abbrev: utf8.RuneCountInString(phrase) <= maxAbbreviationRunes && !strings.Contains(phrase, " "),
				values: []string{value(e)},
			})
		}
	}
	return out
}

// gccTriggers expands "gcc" and "gulf" to every GCC country and city.
func gccTriggers(r *registry.Registry) []trigger {
	var values []string
	for _, e := range r.Entries(registry.FieldLocation) {
		if e.Category == "gcc_city" || e.Category == "country" || e.Category == "emirate" {
			values = append(values, e.Canonical)
		}
	}
	return []trigger{
		{phrase: "gcc", values: values},
		{phrase: "gulf", values: values},
		{phrase: "middle east", values: values},
	}
}

type keyword struct {
	phrases []string
	values  []string
}

func keywordTriggers(keywords []keyword) []trigger {
	var out []trigger
	for _, k := range keywords {
		for _, p := range k.phrases {
			out = append(out, trigger{phrase: p, values: k.values})
		}
	}
	return out
}

var fieldKeywords = []keyword{
	{[]string{"tech", "technology", "software", "developer", "developers", "programmer", "programmers", "computing"}, []string{"technology"}},
	{[]string{"engineering", "engineer", "engineers"}, []string{"engineering"}},
	{[]string{"business", "finance", "commerce", "management"}, []string{"business"}},
	{[]string{"health", "healthcare", "medical", "clinical"}, []string{"health"}},
	{[]string{"creative", "design", "designers", "designer"}, []string{"creative"}},
	{[]string{"media", "journalism", "communications"}, []string{"media"}},
	{[]string{"law", "legal", "lawyers", "lawyer"}, []string{"law"}},
	{[]string{"teaching", "teachers", "education"}, []string{"education"}},
	{[]string{"social sciences", "social science"}, []string{"social_sciences"}},
	{[]string{"natural sciences", "stem"}, []string{"science", "technology", "engineering"}},
}

var universityKeywords = []keyword{
	{[]string{"american", "us accredited"}, []string{"private_american"}},
	{[]string{"british", "uk"}, []string{"private_british"}},
	{[]string{"federal", "government", "public", "national"}, []string{"federal", "public_local"}},
	{[]string{"international", "branch campus", "branch campuses", "overseas"}, []string{"international_branch", "private_international"}},
	{[]string{"local university", "local universities", "private local"}, []string{"private_local"}},
}

var experienceKeywords = []keyword{
	{[]string{"intern", "interns", "internship", "internships", "placement", "co op"}, []string{string(models.ExperienceInternship)}},
	{[]string{"graduate", "graduates", "grad", "grads", "fresh", "freshers", "entry level", "junior", "juniors"}, []string{string(models.ExperienceEntry)}},
	{[]string{"experienced", "senior", "seniors", "professional", "professionals"}, []string{string(models.ExperienceExperienced)}},
}
