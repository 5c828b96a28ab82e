// Package config loads voxtend runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when the environment does not override them.
const (
	DefaultPort                 = "8080"
	DefaultDataDir              = "./data"
	DefaultLogLevel             = "info"
	DefaultGeminiModel          = "gemini-1.5-flash"
	DefaultOpenAIModel          = "gpt-4o-mini"
	DefaultRecognitionTimeout   = 15 * time.Second
	DefaultOrchestrationTimeout = 20 * time.Second
	DefaultReminderSchedule     = "0 0 9 * * *"
	DefaultElevenLabsStability  = 0.5
	DefaultElevenLabsSimilarity = 0.75
)

// Config is the process-wide configuration.
type Config struct {
	Port     string
	DataDir  string
	LogLevel string

	// Reasoning service
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Speech synthesis
	TTSEndpoint       string
	GoogleTTSAPIKey   string
	GoogleTTSEnabled  bool
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string

	// ElevenLabs voice settings, each in [0, 1]
	ElevenLabsStability  float64
	ElevenLabsSimilarity float64

	// Voice loop
	RecognitionTimeout   time.Duration
	OrchestrationTimeout time.Duration

	// Reminders
	ReminderSchedule string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	// Missing .env is fine
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:              envOr("VOXTEND_PORT", DefaultPort),
		DataDir:           envOr("VOXTEND_DATA_DIR", DefaultDataDir),
		LogLevel:          envOr("VOXTEND_LOG_LEVEL", DefaultLogLevel),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       envOr("GEMINI_MODEL", DefaultGeminiModel),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:       envOr("OPENAI_MODEL", DefaultOpenAIModel),
		TTSEndpoint:       os.Getenv("TTS_ENDPOINT"),
		GoogleTTSAPIKey:   os.Getenv("GOOGLE_TTS_API_KEY"),
		ElevenLabsAPIKey:  os.Getenv("ELEVENLABS_API_KEY"),
		ElevenLabsVoiceID: os.Getenv("ELEVENLABS_VOICE_ID"),
		ReminderSchedule:  envOr("VOXTEND_REMINDER_SCHEDULE", DefaultReminderSchedule),
	}

	var err error
	if cfg.GoogleTTSEnabled, err = envBool("GOOGLE_TTS_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.ElevenLabsStability, err = envUnit("ELEVENLABS_STABILITY", DefaultElevenLabsStability); err != nil {
		return nil, err
	}
	if cfg.ElevenLabsSimilarity, err = envUnit("ELEVENLABS_SIMILARITY", DefaultElevenLabsSimilarity); err != nil {
		return nil, err
	}
	if cfg.RecognitionTimeout, err = envDuration("VOXTEND_RECOGNITION_TIMEOUT", DefaultRecognitionTimeout); err != nil {
		return nil, err
	}
	if cfg.OrchestrationTimeout, err = envDuration("VOXTEND_ORCHESTRATION_TIMEOUT", DefaultOrchestrationTimeout); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("config: invalid port %q", c.Port)
	}
	if c.RecognitionTimeout <= 0 {
		return fmt.Errorf("config: recognition timeout must be positive")
	}
	if c.OrchestrationTimeout <= 0 {
		return fmt.Errorf("config: orchestration timeout must be positive")
	}
	return nil
}

// RemindersPath is the JSON file holding scheme reminders.
func (c *Config) RemindersPath() string {
	return filepath.Join(c.DataDir, "reminders.json")
}

// HasReasoning reports whether any reasoning provider is configured.
func (c *Config) HasReasoning() bool {
	return c.GeminiAPIKey != "" || c.OpenAIAPIKey != "" || c.OpenAIBaseURL != ""
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

// envUnit reads a float that must lie in [0, 1].
func envUnit(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if f < 0 || f > 1 {
		return 0, fmt.Errorf("config: %s must be between 0 and 1", key)
	}
	return f, nil
}
