package match

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/fairyhunter13/ats-matcher/internal/domain"
	"github.com/fairyhunter13/ats-matcher/internal/taxonomy"
)

// Highlighter locates skill mentions in original (unnormalized) text using
// the registry's exact patterns. Fuzzy matches are deliberately excluded so
// uncertain matches are never visually marked.
type Highlighter struct {
	reg *taxonomy.Registry
}

// NewHighlighter constructs a Highlighter over an immutable registry.
func NewHighlighter(reg *taxonomy.Registry) *Highlighter {
	return &Highlighter{reg: reg}
}

// FindMentions returns an ordered, non-overlapping list of mention spans.
// only restricts results to the given canonical skills; nil means all.
// Overlaps resolve in favor of the longer span (spans sorted by start, then
// descending length, kept greedily when starting at or after the previous
// kept span's end).
func (h *Highlighter) FindMentions(text string, only map[string]struct{}) []domain.MentionSpan {
	if text == "" {
		return nil
	}
	folded := taxonomy.Fold(text)
	var spans []domain.MentionSpan
	for _, p := range h.reg.Patterns() {
		if only != nil {
			if _, ok := only[p.Canonical]; !ok {
				continue
			}
		}
		for _, loc := range p.FindAll(folded) {
			spans = append(spans, domain.MentionSpan{
				Canonical: p.Canonical,
				Alias:     p.Surface,
				StartChar: loc[0],
				EndChar:   loc[1],
			})
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].StartChar != spans[j].StartChar {
			return spans[i].StartChar < spans[j].StartChar
		}
		return spans[i].EndChar-spans[i].StartChar > spans[j].EndChar-spans[j].StartChar
	})
	kept := spans[:0]
	prevEnd := 0
	for _, sp := range spans {
		if sp.StartChar >= prevEnd {
			kept = append(kept, sp)
			prevEnd = sp.EndChar
		}
	}
	return kept
}

// Render wraps each span in a <mark> tag, HTML-escaping all literal text
// inside and outside spans. Spans must be ordered and non-overlapping; an
// out-of-range or overlapping span is a pattern-set defect and yields an
// error so the caller can drop highlighting without failing the analysis.
func Render(text string, spans []domain.MentionSpan) (string, error) {
	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		if sp.StartChar < pos || sp.EndChar > len(text) || sp.StartChar > sp.EndChar {
			return "", fmt.Errorf("%w: bad mention span [%d,%d)", domain.ErrInternal, sp.StartChar, sp.EndChar)
		}
		b.WriteString(html.EscapeString(text[pos:sp.StartChar]))
		b.WriteString(`<mark class="skill" data-skill="`)
		b.WriteString(html.EscapeString(sp.Canonical))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(text[sp.StartChar:sp.EndChar]))
		b.WriteString(`</mark>`)
		pos = sp.EndChar
	}
	b.WriteString(html.EscapeString(text[pos:]))
	return b.String(), nil
}
