package match

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/fairyhunter13/ats-matcher/internal/domain"
)

// EmbedCache is the port to a bounded cache of embedding matrices, keyed by
// role plus content. Implementations must be safe for concurrent use.
type EmbedCache interface {
	Get(role string, texts []string) ([][]float32, bool)
	Set(role string, texts []string, vecs [][]float32)
}

// Engine computes cross-chunk semantic similarity via the embedding
// collaborator. A nil client puts the engine in degraded mode: similarity
// calls return domain.ErrEmbeddingUnavailable and the caller falls back to
// coverage-only scoring.
type Engine struct {
	client    domain.EmbeddingClient
	cache     EmbedCache
	batchSize int
}

// NewEngine constructs an Engine. cache may be nil to disable caching;
// client may be nil for degraded mode.
func NewEngine(client domain.EmbeddingClient, cache EmbedCache, batchSize int) *Engine {
	if batchSize < 1 {
		batchSize = 32
	}
	return &Engine{client: client, cache: cache, batchSize: batchSize}
}

// Available reports whether the embedding collaborator is configured.
func (e *Engine) Available() bool { return e != nil && e.client != nil }

// SectionSimilarity embeds both chunk sequences, computes the full cosine
// matrix, takes the best resume match per JD chunk, and averages. The result
// is in [0,1]; either sequence empty yields (0, nil, nil). Max-over-resume
// rewards partial coverage, mean-over-JD penalizes broadly unaddressed
// requirements.
func (e *Engine) SectionSimilarity(ctx context.Context, resumeChunks, jdChunks []string) (float64, []float64, error) {
	if len(resumeChunks) == 0 || len(jdChunks) == 0 {
		return 0, nil, nil
	}
	if !e.Available() {
		return 0, nil, domain.ErrEmbeddingUnavailable
	}
	resumeVecs, err := e.embed(ctx, "resume", resumeChunks)
	if err != nil {
		return 0, nil, fmt.Errorf("embed resume chunks: %w", err)
	}
	jdVecs, err := e.embed(ctx, "jd", jdChunks)
	if err != nil {
		return 0, nil, fmt.Errorf("embed jd chunks: %w", err)
	}

	perJD := make([]float64, len(jdVecs))
	for j, jv := range jdVecs {
		best := math.Inf(-1)
		for _, rv := range resumeVecs {
			if s := dot(rv, jv); s > best {
				best = s
			}
		}
		perJD[j] = clamp01(best)
	}
	var sum float64
	for _, s := range perJD {
		sum += s
	}
	return clamp01(sum / float64(len(perJD))), perJD, nil
}

// embed returns L2-normalized vectors for texts, consulting the bounded
// cache first. The role prefix keeps resume and JD entries distinct even for
// identical content.
func (e *Engine) embed(ctx context.Context, role string, texts []string) ([][]float32, error) {
	if e.cache != nil {
		if vecs, ok := e.cache.Get(role, texts); ok {
			return vecs, nil
		}
	}
	vecs := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := start + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := e.client.Embed(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("%w: got %d vectors for %d inputs", domain.ErrInternal, len(batch), end-start)
		}
		vecs = append(vecs, batch...)
	}
	for i := range vecs {
		normalize(vecs[i])
	}
	if e.cache != nil {
		e.cache.Set(role, texts, vecs)
	}
	slog.Debug("embedded chunks", slog.String("role", role), slog.Int("count", len(vecs)))
	return vecs, nil
}

// normalize scales v to unit L2 norm in place. Zero vectors are left as-is.
func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1.0 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}

// dot is the cosine similarity of two pre-normalized vectors. Dimension
// mismatches score 0.
func dot(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
