package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	BoardSize                int
	AccessToken              string
	AgentTimeoutSeconds      int
	AgentMaxRetries          int
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
	LLMProvider              string
	LLMModel                 string
	OpenAIAPIKey             string
	AnthropicAPIKey          string
	GeminiAPIKey             string
}

func Default() Config {
	return Config{
		BoardSize:                25,
		AgentTimeoutSeconds:      60,
		AgentMaxRetries:          3,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
		LLMProvider:              "openai",
		LLMModel:                 "gpt-4o",
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("BOARD_SIZE"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.BoardSize = value
		}
	}
	if raw := os.Getenv("AGENT_TIMEOUT_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.AgentTimeoutSeconds = value
		}
	}
	if raw := os.Getenv("AGENT_MAX_RETRIES"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.AgentMaxRetries = value
		}
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	if raw := os.Getenv("ACCESS_TOKEN"); raw != "" {
		cfg.AccessToken = raw
	}
	if raw := os.Getenv("LLM_PROVIDER"); raw != "" {
		cfg.LLMProvider = raw
	}
	if raw := os.Getenv("LLM_MODEL"); raw != "" {
		cfg.LLMModel = raw
	}
	if raw := os.Getenv("OPENAI_API_KEY"); raw != "" {
		cfg.OpenAIAPIKey = raw
	}
	if raw := os.Getenv("ANTHROPIC_API_KEY"); raw != "" {
		cfg.AnthropicAPIKey = raw
	}
	if raw := os.Getenv("GEMINI_API_KEY"); raw != "" {
		cfg.GeminiAPIKey = raw
	}
	return cfg
}
