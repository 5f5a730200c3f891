package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port               string `envconfig:"PORT" default:"8080"`
	Environment        string `envconfig:"ENV" default:"development"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	JWTSecret          string `envconfig:"JWT_SECRET" required:"true"`

	// LLM generation settings
	LLMAPIKey      string  `envconfig:"LLM_API_KEY" required:"true"`
	LLMBaseURL     string  `envconfig:"LLM_BASE_URL" default:"https://api.openai.com/v1"`
	LLMModel       string  `envconfig:"LLM_MODEL" default:"gpt-4o-mini"`
	LLMMaxTokens   int     `envconfig:"LLM_MAX_TOKENS" default:"4000"`
	LLMTemperature float64 `envconfig:"LLM_TEMPERATURE" default:"0.7"`
	LLMTimeoutSec  int     `envconfig:"LLM_TIMEOUT_SEC" default:"120"`

	// Lead generation limits
	DailyGenerationLimit int `envconfig:"DAILY_GENERATION_LIMIT" default:"100"`
	DefaultLeadCount     int `envconfig:"DEFAULT_LEAD_COUNT" default:"10"`

	// In-process throttle applied to the generation route, in front of
	// the daily DB-backed quota.
	ThrottleRPS   float64 `envconfig:"THROTTLE_RPS" default:"1"`
	ThrottleBurst int     `envconfig:"THROTTLE_BURST" default:"5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
