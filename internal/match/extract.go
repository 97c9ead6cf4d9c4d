package match

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/fairyhunter13/ats-matcher/internal/taxonomy"
)

// Extractor finds canonical skills in free text using the registry's exact
// boundary-aware patterns plus a fuzzy n-gram pass. Deterministic for
// identical input; results are sorted canonical names.
type Extractor struct {
	reg    *taxonomy.Registry
	params Params
}

// NewExtractor constructs an Extractor over an immutable registry.
func NewExtractor(reg *taxonomy.Registry, params Params) *Extractor {
	return &Extractor{reg: reg, params: params}
}

// ExtractSkills returns the sorted set of canonical skills found in text.
// Empty text yields an empty set, never an error.
func (e *Extractor) ExtractSkills(text string) []string {
	found := e.extract(text)
	return sortedKeys(found)
}

func (e *Extractor) extract(text string) map[string]struct{} {
	found := make(map[string]struct{})
	if strings.TrimSpace(text) == "" {
		return found
	}
	clean := Normalize(text)
	folded := taxonomy.Fold(clean)

	// Exact pass over the precompiled pattern table.
	for _, p := range e.reg.Patterns() {
		if _, ok := found[p.Canonical]; ok {
			continue
		}
		if p.AppearsIn(folded) {
			found[p.Canonical] = struct{}{}
		}
	}

	// Fuzzy pass: compare 1-3 gram windows against each remaining skill's
	// surface forms.
	grams := windowSet(Tokenize(clean))
	for _, canon := range e.reg.Canonicals() {
		if _, ok := found[canon]; ok {
			continue
		}
		targets := e.reg.TargetsFor(canon)
		if e.fuzzyAny(grams, targets) {
			found[canon] = struct{}{}
		}
	}
	return found
}

func (e *Extractor) fuzzyAny(grams map[string]struct{}, targets []string) bool {
	for g := range grams {
		for _, t := range targets {
			if e.fuzzyHit(g, t) {
				return true
			}
		}
	}
	return false
}

// fuzzyHit accepts a window when it contains the target at token boundaries,
// or its similarity ratio clears a length-dependent threshold.
func (e *Extractor) fuzzyHit(window, target string) bool {
	if window == "" || target == "" {
		return false
	}
	if containsToken(window, target) {
		return true
	}
	ratio := SimilarityRatio(window, target)
	switch {
	case len(target) >= 10:
		return ratio >= e.params.FuzzyLongThreshold
	case len(target) >= 6:
		return ratio >= e.params.FuzzyMediumThreshold
	default:
		return ratio >= e.params.FuzzyShortThreshold
	}
}

// containsToken reports whether target occurs in window aligned to token
// boundaries. Plain substring containment would let one-letter targets like
// "c" fire inside "c++" or "cat".
func containsToken(window, target string) bool {
	if window == target {
		return true
	}
	if strings.HasPrefix(window, target+" ") || strings.HasSuffix(window, " "+target) {
		return true
	}
	return strings.Contains(window, " "+target+" ")
}

// SimilarityRatio returns the difflib sequence-match ratio of two strings,
// compared rune-wise and case-insensitively.
func SimilarityRatio(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1.0
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// jdSectionRe locates requirement-style headers inside a job description.
var jdSectionRe = regexp.MustCompile(`(?i)(requirements|qualifications|what you'll do|what you’ll do|what we look for|preferred|must have)[:\s]`)

// jdHeaderStopRe marks the start of the next capitalized header line.
var jdHeaderStopRe = regexp.MustCompile(`\n[A-Z][^\n]{0,40}:`)

// ExtractJDSkills runs full-text extraction, then additionally mines
// requirement sections (Requirements, Qualifications, ...) and unions the
// results. When MaxSkillsPerCategory > 0 the accepted skills are capped per
// category in sorted order, bounding the influence of verbose JDs.
func (e *Extractor) ExtractJDSkills(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	found := e.extract(text)
	for _, sec := range jdSections(text) {
		for canon := range e.extract(sec) {
			found[canon] = struct{}{}
		}
	}
	return e.capPerCategory(sortedKeys(found))
}

// jdSections slices out the text following each requirement header, up to
// the next capitalized header line or end of text.
func jdSections(text string) []string {
	headers := jdSectionRe.FindAllStringIndex(text, -1)
	if len(headers) == 0 {
		return nil
	}
	sections := make([]string, 0, len(headers))
	for _, h := range headers {
		rest := text[h[1]:]
		if stop := jdHeaderStopRe.FindStringIndex(rest); stop != nil {
			rest = rest[:stop[0]]
		}
		if s := strings.TrimSpace(rest); s != "" {
			sections = append(sections, s)
		}
	}
	return sections
}

func (e *Extractor) capPerCategory(skills []string) []string {
	limit := e.params.MaxSkillsPerCategory
	if limit <= 0 {
		return skills
	}
	perCat := make(map[string]int)
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		cat := e.reg.CategoryOf(s)
		if perCat[cat] >= limit {
			continue
		}
		perCat[cat]++
		out = append(out, s)
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
