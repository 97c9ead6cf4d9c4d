// Package match implements the scoring core: text normalization, skill
// extraction, chunking, embedding similarity, weighted coverage, and score
// calibration.
package match

// Params carries every tunable constant of the scoring pipeline. The values
// here were tuned empirically; treat them as calibration knobs, not physical
// constants. DefaultParams returns the tuned set.
type Params struct {
	// Fuzzy-match acceptance thresholds by target length. Shorter targets
	// require a stricter ratio so short common tokens do not match spuriously.
	FuzzyShortThreshold  float64 // targets < 6 chars
	FuzzyMediumThreshold float64 // targets 6-9 chars
	FuzzyLongThreshold   float64 // targets >= 10 chars

	// MaxSkillsPerCategory bounds how many JD skills per category are
	// accepted, in sorted order. Zero disables the cap.
	MaxSkillsPerCategory int

	// LenientCutoff is the minimum similarity ratio for lenient unification.
	LenientCutoff float64

	// Blend and calibration constants for the final score.
	BlendSimilarity   float64
	BlendCoverage     float64
	CalibrationScale  float64
	CalibrationOffset float64
	LenientBonus      float64

	// Chunking windows.
	ChunkWords        int
	ChunkWordOverlap  int
	ChunkTokens       int
	ChunkTokenOverlap int
	ChunkByTokens     bool

	// EmbedMaxTokens caps each chunk's token length before it is sent to the
	// embeddings endpoint. Zero disables the cap.
	EmbedMaxTokens int
}

// DefaultParams returns the tuned pipeline constants.
func DefaultParams() Params {
	return Params{
		FuzzyShortThreshold:  0.92,
		FuzzyMediumThreshold: 0.88,
		FuzzyLongThreshold:   0.86,
		MaxSkillsPerCategory: 4,
		LenientCutoff:        0.84,
		BlendSimilarity:      0.30,
		BlendCoverage:        0.70,
		CalibrationScale:     0.82,
		CalibrationOffset:    -12.0,
		LenientBonus:         1.0,
		ChunkWords:           900,
		ChunkWordOverlap:     100,
		ChunkTokens:          256,
		ChunkTokenOverlap:    32,
		ChunkByTokens:        true,
		EmbedMaxTokens:       512,
	}
}
