// Package domain defines the core entities and ports of the match scorer.
package domain

import (
	"context"
	"errors"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	// ErrEmbeddingUnavailable marks the degraded path: the embedding
	// collaborator is absent or failing; coverage scoring must continue.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	// ErrTaxonomyInvalid is a configuration-time defect (e.g. an alias mapped
	// to two canonical skills) and must be surfaced at registry build time.
	ErrTaxonomyInvalid = errors.New("taxonomy invalid")
	ErrInternal        = errors.New("internal error")
)

// AnalysisStatus enumerates the outcome of one analysis call.
type AnalysisStatus string

const (
	// AnalysisCompleted means similarity and coverage were both computed.
	AnalysisCompleted AnalysisStatus = "completed"
	// AnalysisDegraded means the embedding collaborator was unavailable and
	// the score is coverage-only.
	AnalysisDegraded AnalysisStatus = "degraded"
	// AnalysisFailed means inputs were unusable; Message explains why.
	AnalysisFailed AnalysisStatus = "failed"
)

// Chunk is a contiguous window over the source text. Offsets are indices into
// the word (or token) sequence, not bytes. Chunks overlap; together they
// cover the whole sequence.
type Chunk struct {
	Text  string
	Start int
	End   int
}

// MentionSpan is a character range in the original (unnormalized) text that
// refers to one canonical skill. Spans in a rendered set never overlap.
type MentionSpan struct {
	Canonical string `json:"canonical"`
	Alias     string `json:"alias_matched"`
	StartChar int    `json:"start_char"`
	EndChar   int    `json:"end_char"`
}

// CoverageDetail partitions the considered JD skills by presence in the
// resume, plus resume-only extras. All lists are sorted canonical names.
type CoverageDetail struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Extra   []string `json:"extra"`
}

// MatchResult is the full structured outcome of one resume/JD analysis.
// FinalScore is derived from SimilarityPct, CoveragePct and Lenient; it is
// never stored independently of those inputs.
type MatchResult struct {
	Status  AnalysisStatus `json:"status"`
	Message string         `json:"message,omitempty"`

	FinalScore    float64 `json:"final_score"`
	Label         string  `json:"label"`
	SimilarityPct float64 `json:"similarity_pct"`
	CoveragePct   float64 `json:"coverage_pct"`
	Lenient       bool    `json:"lenient"`

	ResumeSkills []string       `json:"resume_skills"`
	JDSkills     []string       `json:"jd_skills"`
	Coverage     CoverageDetail `json:"coverage"`

	ResumeWordCount int `json:"resume_word_count"`
	JDWordCount     int `json:"jd_word_count"`

	// Highlighted HTML renderings of both texts; empty when highlighting was
	// skipped or failed (a highlight failure never fails the analysis).
	ResumeHighlighted string        `json:"resume_highlighted,omitempty"`
	JDHighlighted     string        `json:"jd_highlighted,omitempty"`
	ResumeMentions    []MentionSpan `json:"resume_mentions,omitempty"`
	JDMentions        []MentionSpan `json:"jd_mentions,omitempty"`

	// ResumePreview is an escaped snippet of the extracted resume text,
	// populated only when the caller asked for it.
	ResumePreview string `json:"resume_preview,omitempty"`
}

// EmbeddingClient is the port to the external sentence-embedding model.
// Embed returns one fixed-length vector per input text. Implementations must
// be safe for concurrent use.
type EmbeddingClient interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// TextExtractor extracts plain text from an uploaded document at path.
type TextExtractor interface {
	ExtractPath(ctx context.Context, fileName, path string) (string, error)
}
