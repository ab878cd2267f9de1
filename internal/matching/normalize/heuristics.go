// internal/matching/normalize/heuristics.go
package normalize

import (
	"strings"

	"candidate-workers/pkg/registry"
)

// keywordRule assigns Category when any word of the folded input starts
// with one of Prefixes. Rules are tried in order.
type keywordRule struct {
	Category string
	Prefixes []string
}

var heuristicRules = map[registry.FieldType][]keywordRule{
	registry.FieldUniversity: {
		{Category: "private_american", Prefixes: []string{"american"}},
		{Category: "private_british", Prefixes: []string{"british"}},
		{Category: "federal", Prefixes: []string{"federal", "higher"}},
		{Category: "international_branch", Prefixes: []string{"campus", "branch"}},
		{Category: "private_international", Prefixes: []string{"international", "canadian", "australian", "french", "german", "indian"}},
		{Category: "private_local", Prefixes: []string{"university", "college", "institute", "academy", "school"}},
	},
	registry.FieldMajor: {
		{Category: "engineering", Prefixes: []string{"engineer", "mechatronic", "aerospace", "petroleum"}},
		{Category: "technology", Prefixes: []string{"comput", "software", "data", "cyber", "informat", "network", "robot", "program"}},
		{Category: "health", Prefixes: []string{"medic", "nurs", "pharm", "health", "dental", "dentist", "physiother", "nutrition"}},
		{Category: "business", Prefixes: []string{"business", "financ", "account", "market", "manage", "econom", "commerce", "logistic", "supply"}},
		{Category: "media", Prefixes: []string{"media", "journal", "communicat", "broadcast"}},
		{Category: "creative", Prefixes: []string{"design", "art", "architect", "music", "film", "animation", "fashion"}},
		{Category: "law", Prefixes: []string{"law", "legal", "jurisprud"}},
		{Category: "education", Prefixes: []string{"educat", "teach", "pedagog"}},
		{Category: "social_sciences", Prefixes: []string{"psych", "sociolog", "politic", "anthropolog", "history", "philosoph"}},
		{Category: "science", Prefixes: []string{"math", "physic", "chem", "bio", "science", "statistic", "geolog", "environment"}},
	},
	registry.FieldSkill: {
		{Category: "programming", Prefixes: []string{"program", "coding", "develop", "script", "python", "java", "rust", "kotlin", "swift", "php", "ruby"}},
		{Category: "data", Prefixes: []string{"data", "analytic", "sql", "statistic", "database"}},
		{Category: "tools", Prefixes: []string{"excel", "office", "word", "outlook", "sharepoint", "jira", "git"}},
		{Category: "engineering", Prefixes: []string{"cad", "solidworks", "matlab", "revit", "circuit", "mechanic"}},
		{Category: "creative", Prefixes: []string{"design", "photo", "video", "adobe", "illustrat", "canva", "edit"}},
		{Category: "business", Prefixes: []string{"market", "sales", "financ", "account", "business", "budget", "negotiat"}},
		{Category: "language", Prefixes: []string{"language", "hindi", "urdu", "spanish", "german", "mandarin", "chinese", "russian"}},
		{Category: "soft", Prefixes: []string{"communicat", "team", "leader", "present", "organi", "time", "interpersonal", "adapt"}},
	},
	registry.FieldLocation: {
		{Category: "remote", Prefixes: []string{"remote", "online", "virtual", "hybrid"}},
		{Category: "emirate", Prefixes: []string{"emirate", "uae"}},
		{Category: "gcc_city", Prefixes: []string{"saudi", "qatar", "oman", "kuwait", "bahrain", "gcc"}},
	},
}

// genericWords are terms too broad to resolve an entry on their own when an
// entry variant merely contains them.
var genericWords = map[string]bool{
	"university": true, "college": true, "institute": true, "school": true,
	"academy": true, "of": true, "the": true, "in": true, "and": true,
	"engineering": true, "science": true, "sciences": true, "studies": true,
	"management": true, "design": true, "city": true, "language": true,
	"skills": true, "technology": true,
}

func heuristicCategory(field registry.FieldType, folded string) (string, bool) {
	words := strings.Fields(folded)
	for _, rule := range heuristicRules[field] {
		for _, w := range words {
			for _, p := range rule.Prefixes {
				if strings.HasPrefix(w, p) {
					return rule.Category, true
				}
			}
		}
	}
	return "", false
}

func allGeneric(folded string) bool {
	for _, w := range strings.Fields(folded) {
		if !genericWords[w] {
			return false
		}
	}
	return true
}
