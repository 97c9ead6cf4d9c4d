// Package taxonomy provides the immutable skill registry: canonical skill
// names, alias surface forms, category membership, and importance weights.
//
// The registry is built once at process start, validated for alias
// collisions, and injected read-only into the extractor and scorer. The
// boundary-aware match patterns are precompiled at build time so request
// handling never recompiles them.
package taxonomy

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fairyhunter13/ats-matcher/internal/domain"
)

// Entry declares one canonical skill.
type Entry struct {
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
	Category  string   `yaml:"category"`
	// Prior is the per-skill weight multiplied with the category weight at
	// scoring time. Zero means the default 1.0.
	Prior float64 `yaml:"prior"`
}

// Pattern is a precompiled boundary-aware matcher for one surface form.
// Matching is case-insensitive via ASCII folding, which preserves byte
// offsets so spans map directly onto the original text.
type Pattern struct {
	Canonical string
	Surface   string
	folded    string
}

// Registry is the immutable skill taxonomy. Safe for concurrent use.
type Registry struct {
	entries    map[string]Entry
	surface    map[string]string // lowercased surface form -> canonical
	patterns   []Pattern
	weights    map[string]float64
	canonicals []string
}

// Build validates entries and constructs a Registry. An alias that maps to
// more than one canonical name, or a duplicated canonical name, is a
// configuration defect and yields domain.ErrTaxonomyInvalid.
func Build(entries []Entry, categoryWeights map[string]float64) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]Entry, len(entries)),
		surface: make(map[string]string, len(entries)*2),
		weights: make(map[string]float64, len(categoryWeights)),
	}
	for cat, w := range categoryWeights {
		r.weights[cat] = w
	}
	for _, e := range entries {
		if strings.TrimSpace(e.Canonical) == "" {
			return nil, fmt.Errorf("%w: empty canonical name", domain.ErrTaxonomyInvalid)
		}
		if _, dup := r.entries[e.Canonical]; dup {
			return nil, fmt.Errorf("%w: duplicate canonical %q", domain.ErrTaxonomyInvalid, e.Canonical)
		}
		if e.Prior == 0 {
			e.Prior = 1.0
		}
		if e.Prior < 0 {
			return nil, fmt.Errorf("%w: negative prior for %q", domain.ErrTaxonomyInvalid, e.Canonical)
		}
		if e.Category == "" {
			e.Category = CategoryOther
		}
		r.entries[e.Canonical] = e
		r.canonicals = append(r.canonicals, e.Canonical)

		surfaces := append([]string{e.Canonical}, e.Aliases...)
		for _, s := range surfaces {
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" {
				return nil, fmt.Errorf("%w: empty alias for %q", domain.ErrTaxonomyInvalid, e.Canonical)
			}
			if prev, ok := r.surface[key]; ok && prev != e.Canonical {
				return nil, fmt.Errorf("%w: alias %q maps to both %q and %q", domain.ErrTaxonomyInvalid, s, prev, e.Canonical)
			}
			r.surface[key] = e.Canonical
			r.patterns = append(r.patterns, Pattern{Canonical: e.Canonical, Surface: s, folded: Fold(s)})
		}
	}
	sort.Strings(r.canonicals)
	return r, nil
}

// Default builds the registry from the compiled-in taxonomy.
func Default() (*Registry, error) {
	return Build(DefaultEntries(), DefaultCategoryWeights())
}

// Canonicalize resolves a surface form (canonical or alias, any casing) to
// its canonical name. Unknown names pass through unchanged.
func (r *Registry) Canonicalize(name string) string {
	if c, ok := r.surface[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return name
}

// Lookup returns the entry for a canonical name.
func (r *Registry) Lookup(canonical string) (Entry, bool) {
	e, ok := r.entries[canonical]
	return e, ok
}

// Canonicals returns all canonical names in sorted order.
func (r *Registry) Canonicals() []string { return r.canonicals }

// Patterns returns the precompiled exact-match pattern table.
func (r *Registry) Patterns() []Pattern { return r.patterns }

// CategoryOf returns the category of a canonical name, or "Other".
func (r *Registry) CategoryOf(canonical string) string {
	if e, ok := r.entries[canonical]; ok {
		return e.Category
	}
	return CategoryOther
}

// CategoryWeight returns the weight of a category, defaulting to 1.0.
func (r *Registry) CategoryWeight(category string) float64 {
	if w, ok := r.weights[category]; ok {
		return w
	}
	return 1.0
}

// SkillWeight returns category weight x per-skill prior for a canonical name.
// Unknown skills weigh 1.0.
func (r *Registry) SkillWeight(canonical string) float64 {
	e, ok := r.entries[canonical]
	if !ok {
		return 1.0
	}
	return r.CategoryWeight(e.Category) * e.Prior
}

// TargetsFor returns the lowercased canonical plus aliases of a skill, used
// as fuzzy-match targets.
func (r *Registry) TargetsFor(canonical string) []string {
	e, ok := r.entries[canonical]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(e.Aliases)+1)
	out = append(out, strings.ToLower(e.Canonical))
	for _, a := range e.Aliases {
		out = append(out, strings.ToLower(a))
	}
	return out
}

// Fold lowercases ASCII letters only, preserving byte offsets for span
// arithmetic over the original text.
func Fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// FindAll returns all boundary-correct occurrences of the pattern in folded,
// which must be the Fold of the text being scanned. Spans are byte offsets.
//
// Boundary semantics: the rune before a match may not be '#' or a word
// character, and the rune after may not be '-', '+', '#' or a word character,
// so "C++" matches as a whole and "C" does not fire inside "C++", "C#" or
// "CSS".
func (p Pattern) FindAll(folded string) [][2]int {
	if p.folded == "" {
		return nil
	}
	var spans [][2]int
	for i := 0; i <= len(folded)-len(p.folded); {
		j := strings.Index(folded[i:], p.folded)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(p.folded)
		if boundaryBefore(folded, start) && boundaryAfter(folded, end) {
			spans = append(spans, [2]int{start, end})
		}
		i = start + 1
	}
	return spans
}

// AppearsIn reports whether the pattern occurs at least once in folded.
func (p Pattern) AppearsIn(folded string) bool {
	return len(p.FindAll(folded)) > 0
}

func boundaryBefore(s string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:start])
	return r != '#' && !isWordRune(r)
}

func boundaryAfter(s string, end int) bool {
	if end >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[end:])
	return r != '-' && r != '+' && r != '#' && !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
