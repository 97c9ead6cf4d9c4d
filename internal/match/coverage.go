package match

import (
	"math"
	"sort"
	"strings"

	"github.com/fairyhunter13/ats-matcher/internal/domain"
	"github.com/fairyhunter13/ats-matcher/internal/taxonomy"
)

// Scorer computes the weighted coverage of JD-required skills by the resume.
type Scorer struct {
	reg    *taxonomy.Registry
	params Params
}

// NewScorer constructs a Scorer over an immutable registry.
func NewScorer(reg *taxonomy.Registry, params Params) *Scorer {
	return &Scorer{reg: reg, params: params}
}

// Coverage returns the weighted coverage percentage in [0,100] and the
// matched/missing/extra breakdown. Skill names are canonicalized via alias
// lookup; JD skills are capped per category (mirroring JD extraction) before
// weighing. Each considered JD skill weighs category_weight x skill_prior;
// zero total weight yields score 0 without error.
func (s *Scorer) Coverage(resumeSkills, jdSkills []string) (float64, domain.CoverageDetail) {
	resumeSet := s.canonicalSet(resumeSkills)
	considered := s.capPerCategorySorted(s.canonicalSet(jdSkills))

	detail := domain.CoverageDetail{Matched: []string{}, Missing: []string{}, Extra: []string{}}
	var totalWeight, gotWeight float64
	consideredSet := make(map[string]struct{}, len(considered))
	for _, skill := range considered {
		consideredSet[skill] = struct{}{}
		w := s.reg.SkillWeight(skill)
		totalWeight += w
		if _, ok := resumeSet[skill]; ok {
			gotWeight += w
			detail.Matched = append(detail.Matched, skill)
		} else {
			detail.Missing = append(detail.Missing, skill)
		}
	}
	for skill := range resumeSet {
		if _, ok := consideredSet[skill]; !ok {
			detail.Extra = append(detail.Extra, skill)
		}
	}
	sort.Strings(detail.Matched)
	sort.Strings(detail.Missing)
	sort.Strings(detail.Extra)

	if totalWeight == 0 {
		return 0, detail
	}
	return round2(100 * gotWeight / totalWeight), detail
}

// LenientUnify expands the exact matched set with near-spelling matches.
// For each unmatched JD skill, the closest resume skill by similarity ratio
// is accepted when it clears the cutoff; the longer of the two original
// strings joins the matched set. Strictly an expansion: every exact
// intersection member is always present. The second return value is the set
// of JD skills considered satisfied (exact or fuzzy).
func (s *Scorer) LenientUnify(resumeSkills, jdSkills []string) ([]string, map[string]struct{}) {
	resumeSet := s.canonicalSet(resumeSkills)
	matched := make(map[string]struct{})
	satisfied := make(map[string]struct{})
	for _, jd := range jdSkills {
		canon := s.reg.Canonicalize(jd)
		if _, ok := resumeSet[canon]; ok {
			matched[canon] = struct{}{}
			satisfied[canon] = struct{}{}
			continue
		}
		bestSkill, bestRatio := "", 0.0
		for _, r := range resumeSkills {
			if ratio := SimilarityRatio(jd, r); ratio > bestRatio {
				bestSkill, bestRatio = r, ratio
			}
		}
		if bestSkill != "" && bestRatio >= s.params.LenientCutoff {
			matched[longer(jd, bestSkill)] = struct{}{}
			satisfied[canon] = struct{}{}
		}
	}
	return sortedKeys(matched), satisfied
}

func (s *Scorer) canonicalSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, sk := range skills {
		if strings.TrimSpace(sk) == "" {
			continue
		}
		set[s.reg.Canonicalize(sk)] = struct{}{}
	}
	return set
}

// capPerCategorySorted orders the skill set and keeps at most
// MaxSkillsPerCategory per category, applied again at scoring time for
// symmetry with JD extraction.
func (s *Scorer) capPerCategorySorted(set map[string]struct{}) []string {
	skills := sortedKeys(set)
	limit := s.params.MaxSkillsPerCategory
	if limit <= 0 {
		return skills
	}
	perCat := make(map[string]int)
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		cat := s.reg.CategoryOf(skill)
		if perCat[cat] >= limit {
			continue
		}
		perCat[cat]++
		out = append(out, skill)
	}
	return out
}

func longer(a, b string) string {
	if len(b) > len(a) {
		return b
	}
	return a
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
