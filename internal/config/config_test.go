package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-matcher/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 900, cfg.ChunkWords)
	assert.Equal(t, 100, cfg.ChunkWordOverlap)
	assert.InDelta(t, 0.92, cfg.FuzzyShortThreshold, 1e-9)
	assert.InDelta(t, 0.88, cfg.FuzzyMediumThreshold, 1e-9)
	assert.InDelta(t, 0.86, cfg.FuzzyLongThreshold, 1e-9)
	assert.InDelta(t, 0.30, cfg.BlendSimilarity, 1e-9)
	assert.InDelta(t, 0.70, cfg.BlendCoverage, 1e-9)
	assert.InDelta(t, 0.82, cfg.CalibrationScale, 1e-9)
	assert.InDelta(t, -12.0, cfg.CalibrationOffset, 1e-9)
	assert.Equal(t, 4, cfg.MaxSkillsPerCategory)
	assert.Equal(t, 64, cfg.EmbedCacheSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_SKILLS_PER_CATEGORY", "5")
	t.Setenv("LENIENT_CUTOFF", "0.80")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.False(t, cfg.IsDev())
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5, cfg.MaxSkillsPerCategory)
	assert.InDelta(t, 0.80, cfg.LenientCutoff, 1e-9)
}

func TestEmbeddingsEnabled(t *testing.T) {
	cfg := config.Config{EmbeddingsModel: "text-embedding-3-small"}
	assert.False(t, cfg.EmbeddingsEnabled())
	cfg.OpenAIAPIKey = "sk-test"
	assert.True(t, cfg.EmbeddingsEnabled())
}

func TestGetEmbedBackoffConfig_TestEnv(t *testing.T) {
	cfg := config.Config{AppEnv: "test"}
	maxElapsed, initial, maxIv, mult := cfg.GetEmbedBackoffConfig()
	assert.Less(t, maxElapsed.Seconds(), 10.0)
	assert.Less(t, initial, maxIv)
	assert.Equal(t, 2.0, mult)
}
