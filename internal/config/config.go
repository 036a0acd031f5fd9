package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini    = "gemini"
	ProviderGeminiSDK = "gemini-sdk"
	ProviderOpenAI    = "openai"
)

type AIConfig struct {
	Provider      string
	GeminiKey     string
	GeminiModel   string
	GeminiBaseURL string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	Timeout       time.Duration
}

type Config struct {
	Port        string
	Env         string
	AI          AIConfig
	ChatTTL     time.Duration
	CORSOrigins []string
}

func (c Config) Development() bool {
	return c.Env == "development"
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	var cfg Config
	cfg.Port = envOrDefault("PORT", "8080")
	cfg.Env = envOrDefault("APP_ENV", "production")
	cfg.CORSOrigins = splitList(envOrDefault("CORS_ORIGINS", "*"))

	cfg.AI.Provider = strings.ToLower(envOrDefault("AI_PROVIDER", ProviderGemini))
	cfg.AI.GeminiKey = envOrDefault("GEMINI_API_KEY", os.Getenv("API_KEY"))
	cfg.AI.GeminiModel = envOrDefault("GEMINI_MODEL", "gemini-3-flash-preview")
	cfg.AI.GeminiBaseURL = os.Getenv("GEMINI_BASE_URL")
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.OpenAIModel = envOrDefault("OPENAI_MODEL", "gpt-4o-mini")
	cfg.AI.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")

	var err error
	if cfg.AI.Timeout, err = envOrDefaultDuration("AI_TIMEOUT", 60*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ChatTTL, err = envOrDefaultDuration("CHAT_SESSION_TTL", 2*time.Hour); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.AI.Provider {
	case ProviderGemini, ProviderGeminiSDK:
		if c.AI.GeminiKey == "" {
			return errors.New("GEMINI_API_KEY (or API_KEY) is required for the gemini provider")
		}
	case ProviderOpenAI:
		if c.AI.OpenAIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai provider")
		}
	default:
		return fmt.Errorf("unsupported AI_PROVIDER %q, use gemini, gemini-sdk or openai", c.AI.Provider)
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
