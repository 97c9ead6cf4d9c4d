package match_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-matcher/internal/domain"
	"github.com/fairyhunter13/ats-matcher/internal/match"
)

// fakeEmbedder maps each text to a fixed vector, erroring on unknown input.
type fakeEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	out := make([][]float32, 0, len(texts))
	for _, txt := range texts {
		v, ok := f.vectors[txt]
		if !ok {
			return nil, errors.New("unknown text")
		}
		out = append(out, append([]float32(nil), v...))
	}
	return out, nil
}

type mapCache struct {
	store map[string][][]float32
}

func newMapCache() *mapCache { return &mapCache{store: make(map[string][][]float32)} }

func (c *mapCache) key(role string, texts []string) string {
	k := role
	for _, t := range texts {
		k += "\x00" + t
	}
	return k
}

func (c *mapCache) Get(role string, texts []string) ([][]float32, bool) {
	v, ok := c.store[c.key(role, texts)]
	return v, ok
}

func (c *mapCache) Set(role string, texts []string, vecs [][]float32) {
	c.store[c.key(role, texts)] = vecs
}

func TestSectionSimilarity_EmptyInputs(t *testing.T) {
	t.Parallel()
	eng := match.NewEngine(&fakeEmbedder{}, nil, 32)
	score, perJD, err := eng.SectionSimilarity(context.Background(), nil, []string{"x"})
	require.NoError(t, err)
	assert.Zero(t, score)
	assert.Nil(t, perJD)

	score, _, err = eng.SectionSimilarity(context.Background(), []string{"x"}, nil)
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestSectionSimilarity_NilClient(t *testing.T) {
	t.Parallel()
	eng := match.NewEngine(nil, nil, 32)
	assert.False(t, eng.Available())
	_, _, err := eng.SectionSimilarity(context.Background(), []string{"a"}, []string{"b"})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestSectionSimilarity_IdenticalChunks(t *testing.T) {
	t.Parallel()
	fe := &fakeEmbedder{vectors: map[string][]float32{
		"python backend": {3, 4, 0},
	}}
	eng := match.NewEngine(fe, nil, 32)
	score, perJD, err := eng.SectionSimilarity(context.Background(),
		[]string{"python backend"}, []string{"python backend"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-6)
	require.Len(t, perJD, 1)
	assert.InDelta(t, 1.0, perJD[0], 1e-6)
}

func TestSectionSimilarity_MaxOverResumeMeanOverJD(t *testing.T) {
	t.Parallel()
	fe := &fakeEmbedder{vectors: map[string][]float32{
		"r1": {1, 0},
		"r2": {0, 1},
		"j1": {1, 0}, // best against r1: 1.0
		"j2": {0, 0}, // zero vector, best dot 0
	}}
	eng := match.NewEngine(fe, nil, 32)
	score, perJD, err := eng.SectionSimilarity(context.Background(),
		[]string{"r1", "r2"}, []string{"j1", "j2"})
	require.NoError(t, err)
	require.Len(t, perJD, 2)
	assert.InDelta(t, 1.0, perJD[0], 1e-6)
	assert.InDelta(t, 0.0, perJD[1], 1e-6)
	assert.InDelta(t, 0.5, score, 1e-6)
}

func TestSectionSimilarity_Bounds(t *testing.T) {
	t.Parallel()
	fe := &fakeEmbedder{vectors: map[string][]float32{
		"r": {1, 1},
		"j": {-1, -1}, // cosine -1 clamps to 0
	}}
	eng := match.NewEngine(fe, nil, 32)
	score, perJD, err := eng.SectionSimilarity(context.Background(), []string{"r"}, []string{"j"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
	assert.Zero(t, perJD[0])
}

func TestSectionSimilarity_Batching(t *testing.T) {
	t.Parallel()
	fe := &fakeEmbedder{vectors: map[string][]float32{
		"a": {1, 0}, "b": {1, 0}, "c": {1, 0}, "j": {1, 0},
	}}
	eng := match.NewEngine(fe, nil, 2)
	score, _, err := eng.SectionSimilarity(context.Background(),
		[]string{"a", "b", "c"}, []string{"j"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-6)
	// resume in two batches plus one JD batch
	assert.Equal(t, 3, fe.calls)
}

func TestSectionSimilarity_CacheHit(t *testing.T) {
	t.Parallel()
	fe := &fakeEmbedder{vectors: map[string][]float32{
		"same": {1, 0},
	}}
	eng := match.NewEngine(fe, newMapCache(), 32)

	_, _, err := eng.SectionSimilarity(context.Background(), []string{"same"}, []string{"same"})
	require.NoError(t, err)
	callsAfterFirst := fe.calls

	_, _, err = eng.SectionSimilarity(context.Background(), []string{"same"}, []string{"same"})
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, fe.calls, "second run must be served from cache")
}

func TestSectionSimilarity_ClientError(t *testing.T) {
	t.Parallel()
	fe := &fakeEmbedder{vectors: map[string][]float32{}}
	eng := match.NewEngine(fe, nil, 32)
	_, _, err := eng.SectionSimilarity(context.Background(), []string{"missing"}, []string{"x"})
	assert.Error(t, err)
}
