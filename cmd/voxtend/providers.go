package main

import (
	"context"
	"log/slog"

	"github.com/teslashibe/go-voxtend/internal/config"
	"github.com/teslashibe/go-voxtend/pkg/inference"
	"github.com/teslashibe/go-voxtend/pkg/tts"
	"github.com/teslashibe/go-voxtend/pkg/voice"
)

// reasoningProvider chains the configured reasoning backends. It returns nil
// when none is configured, which makes every answer the fallback text.
func reasoningProvider(cfg *config.Config, logger *slog.Logger) inference.Provider {
	var providers []inference.Provider

	if cfg.GeminiAPIKey != "" {
		g, err := inference.NewGemini(
			inference.WithAPIKey(cfg.GeminiAPIKey),
			inference.WithModel(cfg.GeminiModel),
			inference.WithLogger(logger),
		)
		if err != nil {
			logger.Warn("gemini disabled", "error", err)
		} else {
			providers = append(providers, g)
		}
	}

	if cfg.OpenAIAPIKey != "" || cfg.OpenAIBaseURL != "" {
		opts := []inference.Option{
			inference.WithAPIKey(cfg.OpenAIAPIKey),
			inference.WithModel(cfg.OpenAIModel),
			inference.WithLogger(logger),
		}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, inference.WithBaseURL(cfg.OpenAIBaseURL))
		}
		c, err := inference.NewClient(opts...)
		if err != nil {
			logger.Warn("openai-compatible client disabled", "error", err)
		} else {
			providers = append(providers, c)
		}
	}

	if len(providers) == 0 {
		logger.Warn("no reasoning provider configured, answers use the fallback text")
		return nil
	}
	chain, err := inference.NewChainWithLogger(logger, providers...)
	if err != nil {
		return nil
	}
	return chain
}

// speechProvider chains the configured synthesis backends, or returns nil
// so playback uses on-device voices.
func speechProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) tts.Provider {
	var providers []tts.Provider

	if cfg.TTSEndpoint != "" {
		p, err := tts.NewEndpoint(tts.WithBaseURL(cfg.TTSEndpoint), tts.WithLogger(logger))
		if err != nil {
			logger.Warn("tts endpoint disabled", "error", err)
		} else {
			providers = append(providers, p)
		}
	}

	if cfg.GoogleTTSAPIKey != "" || cfg.GoogleTTSEnabled {
		p, err := tts.NewGoogle(ctx, tts.WithAPIKey(cfg.GoogleTTSAPIKey), tts.WithLogger(logger))
		if err != nil {
			logger.Warn("google tts disabled", "error", err)
		} else {
			providers = append(providers, p)
		}
	}

	if cfg.ElevenLabsAPIKey != "" {
		settings := tts.DefaultVoiceSettings()
		settings.Stability = cfg.ElevenLabsStability
		settings.SimilarityBoost = cfg.ElevenLabsSimilarity
		p, err := tts.NewElevenLabs(
			tts.WithAPIKey(cfg.ElevenLabsAPIKey),
			tts.WithVoice(cfg.ElevenLabsVoiceID),
			tts.WithVoiceSettings(settings),
			tts.WithLogger(logger),
		)
		if err != nil {
			logger.Warn("elevenlabs disabled", "error", err)
		} else {
			providers = append(providers, p)
		}
	}

	if len(providers) == 0 {
		return nil
	}
	chain, err := tts.NewChainWithLogger(logger, providers...)
	if err != nil {
		return nil
	}
	return chain
}

// voiceOptions maps configuration onto session options.
func voiceOptions(cfg *config.Config, logger *slog.Logger) []voice.Option {
	return []voice.Option{
		voice.WithRecognitionTimeout(cfg.RecognitionTimeout),
		voice.WithOrchestrationTimeout(cfg.OrchestrationTimeout),
		voice.WithLogger(logger),
	}
}
