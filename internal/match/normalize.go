package match

import (
	"regexp"
	"strings"
)

var (
	bulletRe    = regexp.MustCompile(`[•·●▪►▶]+`)
	spaceRe     = regexp.MustCompile(`\s+`)
	tokenRe     = regexp.MustCompile(`[A-Za-z0-9+.#]+`)
	tokenJunkRe = regexp.MustCompile(`[^\w\s.+#]`)
)

// Normalize cleans raw text for matching: non-breaking spaces and bullet
// glyphs become plain spaces, whitespace runs collapse to one space, ends are
// trimmed. Idempotent; empty input yields empty output.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = bulletRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokenize splits text into normalized alphanumeric-plus-symbol tokens
// (keeping '.', '+' and '#', so "c++" and "node.js" survive).
func Tokenize(s string) []string {
	raw := tokenRe.FindAllString(s, -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		out = append(out, normalizeToken(t))
	}
	return out
}

func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "/", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return tokenJunkRe.ReplaceAllString(s, "")
}

// windowSet builds the set of unigram, bigram and trigram windows over the
// token sequence, the candidate pool for fuzzy matching.
func windowSet(tokens []string) map[string]struct{} {
	grams := make(map[string]struct{}, len(tokens)*3)
	for _, t := range tokens {
		grams[t] = struct{}{}
	}
	for _, n := range []int{2, 3} {
		for i := 0; i+n <= len(tokens); i++ {
			grams[strings.Join(tokens[i:i+n], " ")] = struct{}{}
		}
	}
	return grams
}
