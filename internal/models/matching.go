// internal/models/matching.go
package models

// MatchSource records which normalization step produced a category.
type MatchSource string

const (
	SourceExact     MatchSource = "exact"
	SourceContains  MatchSource = "contains"
	SourceFuzzy     MatchSource = "fuzzy"
	SourceHeuristic MatchSource = "heuristic"
	SourceNone      MatchSource = "none"
)

const (
	CategoryUnknown = "unknown"
	CategoryOther   = "other"
)

type NormalizedCategory struct {
	Field      string      `json:"field"`
	Original   string      `json:"original"`
	Value      string      `json:"value"`
	Category   string      `json:"category"`
	Confidence float64     `json:"confidence"`
	Source     MatchSource `json:"source"`
}

// Matched reports whether the value came from a knowledge-base entry.
func (c NormalizedCategory) Matched() bool {
	return c.Source == SourceExact || c.Source == SourceContains || c.Source == SourceFuzzy
}

type NormalizedProfile struct {
	University NormalizedCategory   `json:"university"`
	Major      NormalizedCategory   `json:"major"`
	Location   NormalizedCategory   `json:"location"`
	Skills     []NormalizedCategory `json:"skills"`
	Subjects   []NormalizedCategory `json:"subjects,omitempty"`
}

// Fields returns every normalized category in a fixed order.
func (p NormalizedProfile) Fields() []NormalizedCategory {
	out := make([]NormalizedCategory, 0, 3+len(p.Skills))
	out = append(out, p.University, p.Major, p.Location)
	out = append(out, p.Skills...)
	return out
}

// Enhancement is the structured payload returned by the semantic service.
type Enhancement struct {
	IndustryAlignment []string `json:"industryAlignment"`
	CareerTrajectory  string   `json:"careerTrajectory"`
	SkillGaps         []string `json:"skillGaps"`
	WorkingStyle      string   `json:"workingStyle"`
	MarketValue       string   `json:"marketValue"`
	Confidence        float64  `json:"confidence"`
}

type EnhancedCategories struct {
	Base        NormalizedProfile `json:"base"`
	Enhancement *Enhancement      `json:"enhancement,omitempty"`
}

type SemanticTag struct {
	ID           string   `json:"id"`
	Category     string   `json:"category"`
	Value        string   `json:"value"`
	Confidence   float64  `json:"confidence"`
	RelatedTerms []string `json:"relatedTerms"`
	Frequency    int      `json:"frequency"`
	Examples     []string `json:"examples"`
}

// ProfileAnalysis is the result of normalize_and_categorize.
type ProfileAnalysis struct {
	CandidateID           string             `json:"candidateId"`
	KnowledgeBaseVersion  string             `json:"knowledgeBaseVersion"`
	Normalized            NormalizedProfile  `json:"normalizedCategories"`
	Enhanced              EnhancedCategories `json:"enhancedCategories"`
	Tags                  []SemanticTag      `json:"semanticTags"`
	SuggestedImprovements []string           `json:"suggestedImprovements"`
}

type ExperienceLevel string

const (
	ExperienceAny         ExperienceLevel = ""
	ExperienceInternship  ExperienceLevel = "internship"
	ExperienceEntry       ExperienceLevel = "entry"
	ExperienceExperienced ExperienceLevel = "experienced"
)

type SearchCriteria struct {
	Query           string          `json:"query"`
	Locations       []string        `json:"locations"`
	Fields          []string        `json:"fields"`
	UniversityTypes []string        `json:"universityTypes"`
	Skills          []string        `json:"skills"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel,omitempty"`
	MinActivity     *int            `json:"minActivity,omitempty"`
}

// Empty reports whether no structured filter was parsed.
func (c SearchCriteria) Empty() bool {
	return len(c.Locations) == 0 && len(c.Fields) == 0 && len(c.UniversityTypes) == 0 &&
		len(c.Skills) == 0 && c.ExperienceLevel == ExperienceAny && c.MinActivity == nil
}

type ScoreBreakdown struct {
	Field      float64 `json:"field"`
	Location   float64 `json:"location"`
	Skills     float64 `json:"skills"`
	University float64 `json:"university"`
	Activity   float64 `json:"activity"`
}

type MatchResult struct {
	CandidateID     string         `json:"candidateId"`
	Score           int            `json:"score"`
	Reasons         []string       `json:"reasons"`
	MatchedKeywords []string       `json:"matchedKeywords"`
	ActivityBonus   float64        `json:"activityBonus"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
}

type BulkResult struct {
	RunID            string   `json:"runId"`
	Processed        int      `json:"processed"`
	Improved         int      `json:"improved"`
	Failed           int      `json:"failed"`
	Skipped          int      `json:"skipped"`
	FlaggedForReview []string `json:"flaggedForReview"`
	NewTagCount      int      `json:"newTagCount"`
	Resumed          bool     `json:"resumed"`
}
