package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"packaging-report/internal/domain/prompts"
	"packaging-report/internal/domain/valueobjects"
)

const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"
)

var ErrMissingAPIKey = errors.New("GOOGLE_API_KEY is not set")

type Config struct {
	Server ServerConfig
	AI     AIConfig
	App    AppConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type AIConfig struct {
	Backend   string
	APIKey    string
	Model     string
	ProjectID string
	Location  string
	Timeout   time.Duration
}

type AppConfig struct {
	MaxUploadSize    int64
	MaxImagePixels   int
	SessionTTL       time.Duration
	SessionMaxOwners int
	PromptLanguage   prompts.Language
	LogDevelopment   bool
}

// Load reads the environment (and CONFIG_FILE when set) and fails fast on missing credentials.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_HOST", "")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GOOGLE_API_KEY", "")
	v.SetDefault("AI_BACKEND", BackendGemini)
	v.SetDefault("AI_MODEL", "gemini-2.5-flash")
	v.SetDefault("PROJECT_ID", "")
	v.SetDefault("LOCATION", "us-central1")
	v.SetDefault("INFERENCE_TIMEOUT", "0s")
	v.SetDefault("MAX_UPLOAD_SIZE", 32<<20) // 32MB
	v.SetDefault("MAX_IMAGE_PIXELS", valueobjects.DefaultMaxPixels)
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("SESSION_MAX_OWNERS", 1000)
	v.SetDefault("PROMPT_LANGUAGE", string(prompts.English))
	v.SetDefault("LOG_DEVELOPMENT", false)

	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	lang, err := prompts.ParseLanguage(v.GetString("PROMPT_LANGUAGE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetString("SERVER_PORT"),
		},
		AI: AIConfig{
			Backend:   v.GetString("AI_BACKEND"),
			APIKey:    v.GetString("GOOGLE_API_KEY"),
			Model:     v.GetString("AI_MODEL"),
			ProjectID: v.GetString("PROJECT_ID"),
			Location:  v.GetString("LOCATION"),
			Timeout:   v.GetDuration("INFERENCE_TIMEOUT"),
		},
		App: AppConfig{
			MaxUploadSize:    v.GetInt64("MAX_UPLOAD_SIZE"),
			MaxImagePixels:   v.GetInt("MAX_IMAGE_PIXELS"),
			SessionTTL:       v.GetDuration("SESSION_TTL"),
			SessionMaxOwners: v.GetInt("SESSION_MAX_OWNERS"),
			PromptLanguage:   lang,
			LogDevelopment:   v.GetBool("LOG_DEVELOPMENT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AI.Backend {
	case BackendGemini:
		if c.AI.APIKey == "" {
			return ErrMissingAPIKey
		}
	case BackendVertex:
		if c.AI.ProjectID == "" {
			return fmt.Errorf("PROJECT_ID is required for the %s backend", BackendVertex)
		}
	default:
		return fmt.Errorf("unsupported AI_BACKEND: %q", c.AI.Backend)
	}

	if c.AI.Model == "" {
		return fmt.Errorf("AI_MODEL must not be empty")
	}

	if c.AI.Timeout < 0 {
		return fmt.Errorf("INFERENCE_TIMEOUT must not be negative")
	}

	if c.App.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}

	if c.App.MaxImagePixels <= 0 {
		return fmt.Errorf("MAX_IMAGE_PIXELS must be positive")
	}

	if c.App.SessionTTL <= 0 || c.App.SessionMaxOwners <= 0 {
		return fmt.Errorf("SESSION_TTL and SESSION_MAX_OWNERS must be positive")
	}

	return nil
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
