package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"review-analyzer/internal/secrets"
	"review-analyzer/internal/services/llm"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	LLM       LLMConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// RedisConfig is optional: an empty Addr keeps rate limiting in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LLMConfig struct {
	Provider    string
	Model       string
	Temperature float64
	BaseURL     string
	// APIKey is resolved from the secrets store, then the environment. Empty
	// means "not configured": the service starts anyway and reports it per
	// request instead of crashing.
	APIKey      string
	SecretsFile string
}

type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
}

func Load() (*Config, error) {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", llm.ProviderGoogle))
	secretsFile := getEnv("SECRETS_FILE", "secrets.toml")
	apiKey, _ := secrets.Open(secretsFile).Lookup(provider, envVarForProvider(provider))

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		LLM: LLMConfig{
			Provider:    provider,
			Model:       getEnv("LLM_MODEL", llm.DefaultModel(provider)),
			Temperature: getEnvAsFloat("LLM_TEMPERATURE", defaultTemperature(provider)),
			BaseURL:     getEnv("LLM_BASE_URL", ""),
			APIKey:      apiKey,
			SecretsFile: secretsFile,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
			BurstSize:         getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
	}

	return cfg, nil
}

// defaultTemperature mirrors the per-provider defaults of the original demo
// scripts, which differed only here and in the model name.
func defaultTemperature(provider string) float64 {
	if provider == llm.ProviderOpenAI {
		return 0.2
	}
	return 1.5
}

func envVarForProvider(provider string) string {
	switch provider {
	case llm.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case llm.ProviderGoogle:
		return "GOOGLE_API_KEY"
	default:
		return strings.ToUpper(strings.ReplaceAll(provider, "-", "_")) + "_API_KEY"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
