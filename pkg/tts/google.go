package tts

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"
)

const providerGoogle = "google"

// Google implements Provider for Google Cloud Text-to-Speech.
// It authenticates with an API key when one is configured and falls back to
// application default credentials otherwise.
type Google struct {
	config  *Config
	service *texttospeech.Service
	logger  *slog.Logger
}

// NewGoogle creates a Google Cloud Text-to-Speech provider.
// WithBaseURL overrides the API endpoint (used by tests).
func NewGoogle(ctx context.Context, opts ...Option) (*Google, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	var clientOpts []option.ClientOption
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	} else {
		ts, err := google.DefaultTokenSource(ctx, texttospeech.CloudPlatformScope)
		if err != nil {
			return nil, WrapError(providerGoogle, fmt.Errorf("%w: %v", ErrNoAPIKey, err))
		}
		clientOpts = append(clientOpts, option.WithTokenSource(ts))
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.BaseURL))
	}

	svc, err := texttospeech.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, WrapError(providerGoogle, err)
	}

	return &Google{
		config:  cfg,
		service: svc,
		logger:  cfg.Logger.With("component", "tts.google"),
	}, nil
}

// Synthesize converts text to MP3 audio in the request's locale.
func (g *Google) Synthesize(ctx context.Context, req *Request) (*AudioResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, WrapError(providerGoogle, ErrEmptyText)
	}
	start := time.Now()

	locale := req.locale()
	voice := &texttospeech.VoiceSelectionParams{LanguageCode: locale}
	if g.config.VoiceID != "" {
		voice.Name = g.config.VoiceID
	} else if name, ok := GoogleVoice(locale); ok {
		voice.Name = name
	}

	resp, err := g.service.Text.Synthesize(&texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: req.Text},
		Voice: voice,
		AudioConfig: &texttospeech.AudioConfig{
			AudioEncoding: googleEncoding(g.config.OutputFormat),
			SpeakingRate:  g.config.SpeakingRate,
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, WrapError(providerGoogle, err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, WrapError(providerGoogle, fmt.Errorf("decode audio: %w", err))
	}
	if len(audio) == 0 {
		return nil, WrapError(providerGoogle, ErrEmptyAudio)
	}

	latency := time.Since(start).Milliseconds()
	g.logger.Debug("synthesized audio",
		"locale", locale,
		"voice", voice.Name,
		"bytes", len(audio),
		"latency_ms", latency,
	)

	enc := g.config.OutputFormat
	return &AudioResult{
		Audio:     audio,
		Encoding:  enc,
		MIME:      enc.MIME(),
		CharCount: len([]rune(req.Text)),
		LatencyMs: latency,
	}, nil
}

// Health lists the Hindi voices as a connectivity and credential check.
func (g *Google) Health(ctx context.Context) error {
	if _, err := g.service.Voices.List().LanguageCode("hi-IN").Context(ctx).Do(); err != nil {
		return WrapError(providerGoogle, fmt.Errorf("health check: %w", err))
	}
	return nil
}

// Close releases resources held by the provider.
func (g *Google) Close() error {
	return nil
}

func googleEncoding(e Encoding) string {
	switch e {
	case EncodingOggOpus:
		return "OGG_OPUS"
	case EncodingLinear16, EncodingWAV:
		return "LINEAR16"
	default:
		return "MP3"
	}
}

// Verify Google implements Provider at compile time.
var _ Provider = (*Google)(nil)
