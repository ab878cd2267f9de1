// pkg/registry/schema.go
package registry

// FieldType names a normalizable profile attribute.
type FieldType string

const (
	FieldUniversity FieldType = "university"
	FieldMajor      FieldType = "major"
	FieldSkill      FieldType = "skill"
	FieldLocation   FieldType = "location"
)

// KnowledgeBase is the versioned, on-disk form of the registry.
type KnowledgeBase struct {
	Version      string              `json:"version"`
	LastUpdated  string              `json:"lastUpdated"`
	Universities []UniversityMapping `json:"universities"`
	Majors       []MajorMapping      `json:"majors"`
	Skills       []SkillMapping      `json:"skills"`
	Locations    []LocationMapping   `json:"locations"`
}

type UniversityMapping struct {
	Canonical     string   `json:"canonical"`
	Abbreviations []string `json:"abbreviations"`
	Category      string   `json:"category"`
	Region        string   `json:"region"`
}

type MajorMapping struct {
	Canonical         string   `json:"canonical"`
	Variants          []string `json:"variants"`
	Category          string   `json:"category"`
	RelatedIndustries []string `json:"relatedIndustries"`
	SkillCategories   []string `json:"skillCategories"`
}

type SkillMapping struct {
	Canonical string   `json:"canonical"`
	Variants  []string `json:"variants"`
	Category  string   `json:"category"`
	Related   []string `json:"related"`
}

type LocationMapping struct {
	Canonical string   `json:"canonical"`
	Variants  []string `json:"variants"`
	Category  string   `json:"category"`
	Country   string   `json:"country"`
}

// Entry is the field-independent view the normalizer matches against.
type Entry struct {
	Canonical string
	Category  string
	Variants  []string
	// Related carries industries, skill categories or related skills,
	// depending on the field type.
	Related []string
}

const knowledgeBaseSchema = `{
  "type": "object",
  "required": ["version", "universities", "majors", "skills", "locations"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "lastUpdated": {"type": "string"},
    "universities": {"type": "array", "items": {"$ref": "#/definitions/university"}},
    "majors": {"type": "array", "items": {"$ref": "#/definitions/variantEntry"}},
    "skills": {"type": "array", "items": {"$ref": "#/definitions/variantEntry"}},
    "locations": {"type": "array", "items": {"$ref": "#/definitions/variantEntry"}}
  },
  "definitions": {
    "university": {
      "type": "object",
      "required": ["canonical", "abbreviations", "category"],
      "properties": {
        "canonical": {"type": "string", "minLength": 1},
        "abbreviations": {"type": "array", "items": {"type": "string", "minLength": 1}},
        "category": {"type": "string", "minLength": 1},
        "region": {"type": "string"}
      }
    },
    "variantEntry": {
      "type": "object",
      "required": ["canonical", "variants", "category"],
      "properties": {
        "canonical": {"type": "string", "minLength": 1},
        "variants": {"type": "array", "items": {"type": "string", "minLength": 1}},
        "category": {"type": "string", "minLength": 1}
      }
    }
  }
}`
