package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-matcher/internal/match"
	"github.com/fairyhunter13/ats-matcher/internal/taxonomy"
)

func newScorer(t *testing.T) *match.Scorer {
	t.Helper()
	reg, err := taxonomy.Default()
	require.NoError(t, err)
	return match.NewScorer(reg, match.DefaultParams())
}

func TestCoverage_EmptyJD(t *testing.T) {
	t.Parallel()
	s := newScorer(t)
	score, detail := s.Coverage([]string{"Python", "Docker"}, nil)
	assert.Zero(t, score)
	assert.Empty(t, detail.Matched)
	assert.Empty(t, detail.Missing)
	assert.ElementsMatch(t, []string{"Python", "Docker"}, detail.Extra)
}

func TestCoverage_FullMatch(t *testing.T) {
	t.Parallel()
	s := newScorer(t)
	score, detail := s.Coverage(
		[]string{"Python", "Docker", "Kubernetes"},
		[]string{"Python", "Docker", "Kubernetes"},
	)
	assert.InDelta(t, 100, score, 1e-9)
	assert.Len(t, detail.Matched, 3)
	assert.Empty(t, detail.Missing)
	assert.Empty(t, detail.Extra)
}

func TestCoverage_PartialWeighted(t *testing.T) {
	t.Parallel()
	reg, err := taxonomy.Default()
	require.NoError(t, err)
	s := match.NewScorer(reg, match.DefaultParams())

	jd := []string{"Python", "Git"}
	score, detail := s.Coverage([]string{"Python"}, jd)

	pyW := reg.SkillWeight("Python")
	gitW := reg.SkillWeight("Git")
	want := 100 * pyW / (pyW + gitW)
	assert.InDelta(t, want, score, 0.01)
	assert.Equal(t, []string{"Python"}, detail.Matched)
	assert.Equal(t, []string{"Git"}, detail.Missing)

	// higher-weight skill must move the score more than a low-weight one
	assert.Greater(t, pyW, gitW)
}

func TestCoverage_Monotone(t *testing.T) {
	t.Parallel()
	s := newScorer(t)
	jd := []string{"Python", "Docker", "Kubernetes", "PostgreSQL"}
	prev := -1.0
	have := []string{}
	for _, skill := range jd {
		have = append(have, skill)
		score, _ := s.Coverage(have, jd)
		assert.Greater(t, score, prev)
		prev = score
	}
}

func TestCoverage_Canonicalizes(t *testing.T) {
	t.Parallel()
	s := newScorer(t)
	score, detail := s.Coverage([]string{"nodejs"}, []string{"Node.js"})
	assert.InDelta(t, 100, score, 1e-9)
	assert.Equal(t, []string{"Node.js"}, detail.Matched)
}

func TestCoverage_CategoryCap(t *testing.T) {
	t.Parallel()
	reg, err := taxonomy.Default()
	require.NoError(t, err)
	p := match.DefaultParams()
	p.MaxSkillsPerCategory = 1
	s := match.NewScorer(reg, p)

	// both JD skills are Databases; only the first (sorted) counts
	score, detail := s.Coverage([]string{"MySQL"}, []string{"MySQL", "PostgreSQL"})
	assert.InDelta(t, 100, score, 1e-9)
	assert.Len(t, detail.Matched, 1)
	assert.Empty(t, detail.Missing)
}

func TestLenientUnify_ExactIntersectionAlwaysKept(t *testing.T) {
	t.Parallel()
	s := newScorer(t)
	matched, satisfied := s.LenientUnify(
		[]string{"Python", "Docker"},
		[]string{"Python", "Kubernetes"},
	)
	assert.Contains(t, matched, "Python")
	_, ok := satisfied["Python"]
	assert.True(t, ok)
	_, ok = satisfied["Kubernetes"]
	assert.False(t, ok)
}

func TestLenientUnify_FuzzyExpansion(t *testing.T) {
	t.Parallel()
	s := newScorer(t)
	// near-identical spellings unify; the longer original string is kept
	matched, satisfied := s.LenientUnify(
		[]string{"PostgreSQL"},
		[]string{"PostgreSQL 14"},
	)
	assert.Equal(t, []string{"PostgreSQL 14"}, matched)
	_, ok := satisfied["PostgreSQL 14"]
	assert.True(t, ok)
}

func TestLenientUnify_BelowCutoffStaysUnmatched(t *testing.T) {
	t.Parallel()
	s := newScorer(t)
	matched, satisfied := s.LenientUnify([]string{"Python"}, []string{"Kubernetes"})
	assert.Empty(t, matched)
	assert.Empty(t, satisfied)
}
