// internal/matching/ranking/ranker.go
package ranking

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"
	"strings"
	"time"

	"candidate-workers/internal/matching/activity"
	"candidate-workers/internal/matching/normalize"
	"candidate-workers/internal/models"
	"candidate-workers/pkg/registry"

	"golang.org/x/sync/errgroup"
)

const (
	FieldPoints      = 40.0
	LocationPoints   = 25.0
	SkillPoints      = 20.0
	UniversityPoints = 10.0
	ActivityWeight   = 0.05

	maxTotal = 100

	// entryLevelYears is how long after graduating a candidate still counts
	// as entry level.
	entryLevelYears = 2
)

// Ranker scores a candidate pool against SearchCriteria. Scoring is pure, so
// candidates are scored in parallel; the order of the result only depends on
// scores and pool order.
type Ranker struct {
	normalizer  *normalize.Normalizer
	registry    *registry.Registry
	scorer      *activity.Scorer
	now         func() time.Time
	parallelism int
}

func NewRanker(n *normalize.Normalizer, scorer *activity.Scorer, now func() time.Time, parallelism int) *Ranker {
	if now == nil {
		now = time.Now
	}
	if scorer == nil {
		scorer = activity.NewScorer(now)
	}
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	return &Ranker{
		normalizer:  n,
		registry:    n.Registry(),
		scorer:      scorer,
		now:         now,
		parallelism: parallelism,
	}
}

// Rank returns one result per retained candidate, highest score first. Ties
// keep pool order. Candidates below criteria.MinActivity are dropped.
func (r *Ranker) Rank(ctx context.Context, pool []models.CandidateProfile, criteria models.SearchCriteria) ([]models.MatchResult, error) {
	scored := make([]*models.MatchResult, len(pool))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	for i := range pool {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if res, ok := r.Score(pool[i], criteria); ok {
				scored[i] = &res
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rank candidates: %w", err)
	}

	out := make([]models.MatchResult, 0, len(pool))
	for _, res := range scored {
		if res != nil {
			out = append(out, *res)
		}
	}
	slices.SortStableFunc(out, func(a, b models.MatchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out, nil
}

// Score rates a single candidate. The second return value is false when the
// candidate is filtered out by MinActivity.
func (r *Ranker) Score(p models.CandidateProfile, c models.SearchCriteria) (models.MatchResult, bool) {
	metrics := r.scorer.Score(p, p.Applications)
	if c.MinActivity != nil && metrics.ActivityScore < *c.MinActivity {
		return models.MatchResult{}, false
	}

	np := r.normalizer.NormalizeProfile(p)
	res := models.MatchResult{
		CandidateID:     p.ID,
		Reasons:         []string{},
		MatchedKeywords: []string{},
	}

	if len(c.Fields) > 0 {
		if field, ok := fieldMatch(np, c.Fields); ok {
			res.Breakdown.Field = FieldPoints
			res.Reasons = append(res.Reasons, "Studies "+field)
		}
	}

	if len(c.Locations) > 0 && r.locationMatch(np.Location, c.Locations) {
		res.Breakdown.Location = LocationPoints
		res.Reasons = append(res.Reasons, "Located in "+np.Location.Value)
	}

	if len(c.Skills) > 0 {
		matched := skillMatch(np.Skills, c.Skills)
		if len(matched) > 0 {
			res.Breakdown.Skills = SkillPoints * float64(len(matched)) / float64(len(c.Skills))
			res.Reasons = append(res.Reasons, "Skilled in "+strings.Join(matched, ", "))
			res.MatchedKeywords = matched
		}
	}

	if len(c.UniversityTypes) > 0 && categorized(np.University) && slices.Contains(c.UniversityTypes, np.University.Category) {
		res.Breakdown.University = UniversityPoints
		res.Reasons = append(res.Reasons, "Attends "+np.University.Value)
	}

	if reason, ok := r.experienceReason(p.GraduationYear, c.ExperienceLevel); ok {
		res.Reasons = append(res.Reasons, reason)
	}

	res.ActivityBonus = float64(metrics.ActivityScore) * ActivityWeight
	res.Breakdown.Activity = res.ActivityBonus

	total := res.Breakdown.Field + res.Breakdown.Location + res.Breakdown.Skills +
		res.Breakdown.University + res.Breakdown.Activity
	res.Score = min(max(int(math.Round(total)), 0), maxTotal)
	return res, true
}

// fieldMatch checks the major first, then the subjects in profile order.
func fieldMatch(np models.NormalizedProfile, fields []string) (string, bool) {
	if categorized(np.Major) && slices.Contains(fields, np.Major.Category) {
		return np.Major.Value, true
	}
	for _, s := range np.Subjects {
		if categorized(s) && slices.Contains(fields, s.Category) {
			return s.Value, true
		}
	}
	return "", false
}

// locationMatch accepts the same canonical location, or a requested country
// that contains the candidate's city or emirate.
func (r *Ranker) locationMatch(loc models.NormalizedCategory, requested []string) bool {
	if !loc.Matched() {
		return false
	}
	if slices.Contains(requested, loc.Value) {
		return true
	}

	entry, ok := r.registry.Lookup(registry.FieldLocation, loc.Value)
	if !ok || len(entry.Related) == 0 {
		return false
	}
	country := entry.Related[0]
	for _, want := range requested {
		wanted, ok := r.registry.Lookup(registry.FieldLocation, want)
		if ok && wanted.Category == "country" && wanted.Canonical == country {
			return true
		}
	}
	return false
}

// skillMatch returns the requested skills the candidate has, in request order.
func skillMatch(skills []models.NormalizedCategory, requested []string) []string {
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[registry.Fold(s.Value)] = struct{}{}
	}

	matched := []string{}
	for _, want := range requested {
		if _, ok := have[registry.Fold(want)]; ok && !slices.Contains(matched, want) {
			matched = append(matched, want)
		}
	}
	return matched
}

func (r *Ranker) experienceReason(graduationYear *int, level models.ExperienceLevel) (string, bool) {
	if level == models.ExperienceAny || graduationYear == nil {
		return "", false
	}

	year := r.now().Year()
	gy := *graduationYear
	switch {
	case level == models.ExperienceInternship && gy > year:
		return fmt.Sprintf("Currently studying, graduating in %d", gy), true
	case level == models.ExperienceEntry && gy <= year && gy >= year-entryLevelYears:
		return fmt.Sprintf("Recent graduate (%d)", gy), true
	case level == models.ExperienceExperienced && gy < year-entryLevelYears:
		return fmt.Sprintf("Graduated in %d", gy), true
	}
	return "", false
}

func categorized(c models.NormalizedCategory) bool {
	return c.Category != models.CategoryUnknown && c.Category != models.CategoryOther
}
