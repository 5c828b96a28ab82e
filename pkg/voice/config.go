package voice

import (
	"log/slog"
	"time"

	"github.com/teslashibe/go-voxtend/pkg/language"
)

// Config holds the tunable parameters of a voice session.
type Config struct {
	// Language the session starts in.
	Language string

	// RecognitionTimeout stops a listening session that produced no result.
	RecognitionTimeout time.Duration

	// OrchestrationTimeout bounds the reasoning call.
	OrchestrationTimeout time.Duration

	// HistoryTurns is how many prior turns are included in the prompt.
	HistoryTurns int

	// NoticeTTL is how long a transient notice stays visible.
	NoticeTTL time.Duration

	// On-device speech parameters used when no Synthesizer is configured.
	SpeechRate  float64
	SpeechPitch float64

	// Synthesizer produces audio remotely. Nil selects on-device synthesis.
	Synthesizer Synthesizer

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring voice components.
type Option func(*Config)

// WithLanguage sets the initial language code.
func WithLanguage(code string) Option {
	return func(c *Config) { c.Language = code }
}

// WithRecognitionTimeout sets the no-result timeout for listening sessions.
func WithRecognitionTimeout(d time.Duration) Option {
	return func(c *Config) { c.RecognitionTimeout = d }
}

// WithOrchestrationTimeout sets the reasoning call timeout.
func WithOrchestrationTimeout(d time.Duration) Option {
	return func(c *Config) { c.OrchestrationTimeout = d }
}

// WithHistoryTurns sets how many prior turns are sent as context.
func WithHistoryTurns(n int) Option {
	return func(c *Config) { c.HistoryTurns = n }
}

// WithNoticeTTL sets how long notices stay visible.
func WithNoticeTTL(d time.Duration) Option {
	return func(c *Config) { c.NoticeTTL = d }
}

// WithSpeech sets the on-device rate and pitch.
func WithSpeech(rate, pitch float64) Option {
	return func(c *Config) {
		c.SpeechRate = rate
		c.SpeechPitch = pitch
	}
}

// WithSynthesizer routes playback through a remote synthesizer.
func WithSynthesizer(s Synthesizer) Option {
	return func(c *Config) { c.Synthesizer = s }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns the defaults used by the web and console front ends.
func DefaultConfig() *Config {
	return &Config{
		Language:             language.Default,
		RecognitionTimeout:   15 * time.Second,
		OrchestrationTimeout: 20 * time.Second,
		HistoryTurns:         5,
		NoticeTTL:            5 * time.Second,
		SpeechRate:           0.9,
		SpeechPitch:          1.0,
		Logger:               slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, ok := language.Lookup(c.Language); !ok {
		return ErrUnknownLanguage
	}
	if c.RecognitionTimeout <= 0 || c.OrchestrationTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.HistoryTurns < 0 {
		c.HistoryTurns = 0
	}
	return nil
}
