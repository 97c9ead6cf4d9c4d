// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
//
// Every empirically tuned scoring constant (fuzzy thresholds, blend weights,
// calibration scale/offset, category cap) is exposed here rather than
// hard-coded, so the pipeline can be re-calibrated without a rebuild. The
// defaults reproduce the tuned values.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"8080"`

	// Embedding collaborator (OpenAI-compatible). When the API key is empty
	// the service runs in coverage-only degraded mode.
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	EmbeddingsModel string `env:"EMBEDDINGS_MODEL" envDefault:"text-embedding-3-small"`
	// EmbedMaxTokens caps the sub-word token length of each chunk sent to the
	// embeddings endpoint.
	EmbedMaxTokens int `env:"EMBED_MAX_TOKENS" envDefault:"512"`
	EmbedBatchSize int `env:"EMBED_BATCH_SIZE" envDefault:"32"`
	EmbedCacheSize int `env:"EMBED_CACHE_SIZE" envDefault:"64"`

	// TikaURL specifies the base URL for the Apache Tika server used for
	// document text extraction on the upload path.
	TikaURL string `env:"TIKA_URL" envDefault:"http://tika:9998"`

	// TaxonomyPath optionally points at a YAML taxonomy override. Empty means
	// the compiled-in default taxonomy.
	TaxonomyPath string `env:"TAXONOMY_PATH"`

	// Chunking
	ChunkWords        int  `env:"CHUNK_WORDS" envDefault:"900"`
	ChunkWordOverlap  int  `env:"CHUNK_WORD_OVERLAP" envDefault:"100"`
	ChunkTokens       int  `env:"CHUNK_TOKENS" envDefault:"256"`
	ChunkTokenOverlap int  `env:"CHUNK_TOKEN_OVERLAP" envDefault:"32"`
	ChunkByTokens     bool `env:"CHUNK_BY_TOKENS" envDefault:"true"`

	// Fuzzy extraction thresholds, keyed by target length (shorter targets
	// require a stricter ratio to avoid spurious matches).
	FuzzyShortThreshold  float64 `env:"FUZZY_SHORT_THRESHOLD" envDefault:"0.92"`
	FuzzyMediumThreshold float64 `env:"FUZZY_MEDIUM_THRESHOLD" envDefault:"0.88"`
	FuzzyLongThreshold   float64 `env:"FUZZY_LONG_THRESHOLD" envDefault:"0.86"`

	// Coverage and calibration
	MaxSkillsPerCategory int     `env:"MAX_SKILLS_PER_CATEGORY" envDefault:"4"`
	LenientCutoff        float64 `env:"LENIENT_CUTOFF" envDefault:"0.84"`
	BlendSimilarity      float64 `env:"BLEND_SIMILARITY" envDefault:"0.30"`
	BlendCoverage        float64 `env:"BLEND_COVERAGE" envDefault:"0.70"`
	CalibrationScale     float64 `env:"CALIBRATION_SCALE" envDefault:"0.82"`
	CalibrationOffset    float64 `env:"CALIBRATION_OFFSET" envDefault:"-12.0"`
	LenientBonus         float64 `env:"LENIENT_BONUS" envDefault:"1.0"`

	// Embeddings retry backoff
	EmbedBackoffMaxElapsedTime  time.Duration `env:"EMBED_BACKOFF_MAX_ELAPSED_TIME" envDefault:"60s"`
	EmbedBackoffInitialInterval time.Duration `env:"EMBED_BACKOFF_INITIAL_INTERVAL" envDefault:"1s"`
	EmbedBackoffMaxInterval     time.Duration `env:"EMBED_BACKOFF_MAX_INTERVAL" envDefault:"10s"`
	EmbedBackoffMultiplier      float64       `env:"EMBED_BACKOFF_MULTIPLIER" envDefault:"1.5"`

	// HTTP surface
	MaxUploadMB           int64         `env:"MAX_UPLOAD_MB" envDefault:"10"`
	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`

	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"ats-matcher"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }

// EmbeddingsEnabled reports whether the embedding collaborator is configured.
func (c Config) EmbeddingsEnabled() bool {
	return c.OpenAIAPIKey != "" && c.EmbeddingsModel != ""
}

// GetEmbedBackoffConfig returns backoff settings appropriate for the current
// environment. Test environments use much shorter timeouts.
func (c Config) GetEmbedBackoffConfig() (maxElapsedTime, initialInterval, maxInterval time.Duration, multiplier float64) {
	if c.IsTest() {
		return 2 * time.Second, 50 * time.Millisecond, 500 * time.Millisecond, 2.0
	}
	return c.EmbedBackoffMaxElapsedTime, c.EmbedBackoffInitialInterval, c.EmbedBackoffMaxInterval, c.EmbedBackoffMultiplier
}
