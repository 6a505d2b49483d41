package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all configuration for the analysis pipeline. Env var names
// follow spec.md §6.
type Config struct {
	Environment Environment

	AppPort string

	// PublicBaseURL mints absolute artifact URLs. When empty, artifact URLs
	// are root-relative paths (/api/artifacts/{filename}); no base URL is
	// derived from the inbound request.
	PublicBaseURL string

	// ArtifactDir is the writable directory the Artifact Store owns.
	ArtifactDir string

	OpenAIAPIKey string
	OpenAIModel  string

	// RequestBudget bounds one pipeline run end to end (spec.md §4.9/§5).
	RequestBudget time.Duration

	// CaptureCacheTTL bounds how long a Capture is reused for a given URL.
	CaptureCacheTTL time.Duration

	// CaptureCacheBackend selects the Page Capture result cache
	// implementation: "memory" (default, patrickmn/go-cache) or "redis".
	CaptureCacheBackend string
	RedisAddr            string

	// MemoryRingSize bounds per-context history retained by the Memory Layer.
	MemoryRingSize int

	// MongoURI/MongoDB, when MongoURI is non-empty, back the Memory Layer
	// with a persistent store instead of the in-process default.
	MongoURI string
	MongoDB  string
}

// Load reads configuration from environment variables with the defaults
// named in spec.md §6. It loads the environment-specific .env file first.
func Load() *Config {
	env := LoadEnvFile()

	cfg := &Config{
		Environment: env,

		AppPort:       getEnv("APP_PORT", "8080"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		ArtifactDir:   getEnv("ARTIFACT_DIR", defaultArtifactDir()),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		RequestBudget:   getDurationMS("REQUEST_BUDGET_MS", 120_000),
		CaptureCacheTTL: getDurationS("CAPTURE_CACHE_TTL_S", 1800),

		CaptureCacheBackend: getEnv("CAPTURE_CACHE_BACKEND", "memory"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),

		MemoryRingSize: getInt("MEMORY_RING_SIZE", 50),

		MongoURI: getEnv("MONGO_URI", ""),
		MongoDB:  getEnv("MONGO_DB_NAME", "decision_analysis"),
	}

	log.Info().
		Str("env", string(env)).
		Str("port", cfg.AppPort).
		Bool("llm_enabled", cfg.OpenAIAPIKey != "").
		Str("capture_cache_backend", cfg.CaptureCacheBackend).
		Bool("mongo_memory_store", cfg.MongoURI != "").
		Msg("configuration loaded")

	return cfg
}

func defaultArtifactDir() string {
	return os.TempDir() + string(os.PathSeparator) + "artifacts"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer env var, using default")
		return fallback
	}
	return n
}

func getDurationMS(key string, fallbackMS int) time.Duration {
	return time.Duration(getInt(key, fallbackMS)) * time.Millisecond
}

func getDurationS(key string, fallbackS int) time.Duration {
	return time.Duration(getInt(key, fallbackS)) * time.Second
}
