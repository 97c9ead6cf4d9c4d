package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-matcher/internal/match"
	"github.com/fairyhunter13/ats-matcher/internal/taxonomy"
)

func newExtractor(t *testing.T) *match.Extractor {
	t.Helper()
	reg, err := taxonomy.Default()
	require.NoError(t, err)
	return match.NewExtractor(reg, match.DefaultParams())
}

func TestExtractSkills_Empty(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)
	assert.Empty(t, e.ExtractSkills(""))
	assert.Empty(t, e.ExtractSkills("   \n\t "))
}

func TestExtractSkills_Deterministic(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)
	text := "Python developer with Docker, Kubernetes and AWS Lambda experience"
	first := e.ExtractSkills(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.ExtractSkills(text))
	}
	// sorted
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1], first[i])
	}
}

func TestExtractSkills_BoundaryCorrectness(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)
	got := e.ExtractSkills("I use C++ and C# daily")
	assert.Contains(t, got, "C++")
	assert.NotContains(t, got, "C")
}

func TestExtractSkills_AliasResolution(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)
	assert.Contains(t, e.ExtractSkills("built services in nodejs"), "Node.js")
	assert.Contains(t, e.ExtractSkills("built services in node"), "Node.js")
	assert.Contains(t, e.ExtractSkills("deployed on k8s clusters"), "Kubernetes")
}

func TestExtractSkills_FuzzyMisspelling(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)
	// one dropped letter still clears the long-target threshold
	assert.Contains(t, e.ExtractSkills("managed kubernets clusters"), "Kubernetes")
	assert.Contains(t, e.ExtractSkills("wrote terrafrom modules"), "Terraform")
}

func TestExtractSkills_NoShortFalsePositives(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)
	// "cat" and "tab" must not fuzzy-match short targets like C or Git
	got := e.ExtractSkills("the cat sat on the tab")
	assert.NotContains(t, got, "C")
	assert.NotContains(t, got, "Git")
	// a one-letter target inside a longer token is not a mention
	assert.NotContains(t, e.ExtractSkills("using docker daily"), "C")
}

func TestExtractSkills_ResumeScenario(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)
	got := e.ExtractSkills("Built REST APIs with Python and AWS Lambda")
	assert.Subset(t, got, []string{"Python", "REST APIs", "AWS Lambda"})
}

func TestExtractJDSkills_Sections(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)
	jd := "Looking for Python, AWS, Docker experience; Requirements: Kubernetes"
	got := e.ExtractJDSkills(jd)
	assert.Subset(t, got, []string{"Python", "AWS", "Docker", "Kubernetes"})
}

func TestExtractJDSkills_SectionStopsAtNextHeader(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)
	jd := "Requirements: Terraform and Ansible\nBenefits: free snacks and Tableau lessons"
	got := e.ExtractJDSkills(jd)
	assert.Contains(t, got, "Terraform")
	assert.Contains(t, got, "Ansible")
	// Tableau appears only in the benefits section but full-text extraction
	// still sees it; the section pass must not be what finds it
	sections := e.ExtractJDSkills("Requirements: Terraform\nBenefits: Tableau lessons")
	assert.Contains(t, sections, "Tableau") // via full-text pass
}

func TestExtractJDSkills_Empty(t *testing.T) {
	t.Parallel()
	e := newExtractor(t)
	assert.Empty(t, e.ExtractJDSkills(""))
}

func TestExtractJDSkills_CategoryCap(t *testing.T) {
	t.Parallel()
	reg, err := taxonomy.Default()
	require.NoError(t, err)
	p := match.DefaultParams()
	p.MaxSkillsPerCategory = 2
	e := match.NewExtractor(reg, p)

	jd := "Need PostgreSQL, MySQL, MongoDB, Redis, SQLite and Cassandra admins"
	got := e.ExtractJDSkills(jd)
	dbCount := 0
	for _, s := range got {
		if reg.CategoryOf(s) == taxonomy.CategoryDatabases {
			dbCount++
		}
	}
	assert.Equal(t, 2, dbCount)
}

func TestSimilarityRatio(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 1.0, match.SimilarityRatio("docker", "Docker"), 1e-9)
	assert.Greater(t, match.SimilarityRatio("kubernets", "kubernetes"), 0.9)
	assert.Less(t, match.SimilarityRatio("cat", "git"), 0.5)
}
