// Package tts provides a unified interface for text-to-speech providers.
//
// Three backends narrate assistant replies in Indian languages: a plain HTTP
// endpoint that accepts {text, lang} and returns audio, Google Cloud
// Text-to-Speech, and ElevenLabs multilingual voices. All providers implement
// Provider, so the playback controller can switch between them (or fall back
// through a Chain) without changing caller code.
//
// Example usage:
//
//	provider, _ := tts.NewGoogle(ctx,
//	    tts.WithAPIKey(os.Getenv("GOOGLE_TTS_API_KEY")),
//	)
//	defer provider.Close()
//
//	result, _ := provider.Synthesize(ctx, &tts.Request{Text: "नमस्ते", Language: "hi", Locale: "hi-IN"})
//	// result.Audio contains MP3 bytes, result.MIME is "audio/mpeg"
package tts

import (
	"context"
	"strings"
)

// Provider defines the TTS provider interface.
type Provider interface {
	// Synthesize converts text to audio, returning the complete audio buffer.
	Synthesize(ctx context.Context, req *Request) (*AudioResult, error)

	// Health checks provider connectivity and credentials.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// Request describes what to say and in which language.
type Request struct {
	// Text is the utterance. Must not be blank.
	Text string

	// Language is the ISO 639-1 code (hi, te, ta, ...).
	Language string

	// Locale is the BCP-47 speech locale (hi-IN, te-IN, ...).
	// Providers derive it from Language when empty.
	Locale string
}

// locale returns the request locale, deriving "{lang}-IN" when unset.
func (r *Request) locale() string {
	if r.Locale != "" {
		return r.Locale
	}
	if r.Language == "" {
		return "en-IN"
	}
	return r.Language + "-IN"
}

// AudioResult represents a complete audio synthesis result.
type AudioResult struct {
	// Audio contains the encoded audio bytes.
	Audio []byte

	// Encoding describes the audio codec.
	Encoding Encoding

	// MIME is the content type suitable for a browser audio element.
	MIME string

	// CharCount is the number of characters synthesized.
	CharCount int

	// LatencyMs is the request round-trip in milliseconds.
	LatencyMs int64
}

// Encoding represents audio encoding types.
type Encoding string

const (
	EncodingMP3      Encoding = "mp3"
	EncodingWAV      Encoding = "wav"
	EncodingOggOpus  Encoding = "ogg_opus"
	EncodingLinear16 Encoding = "linear16"
)

// MIME returns the content type for the encoding.
func (e Encoding) MIME() string {
	switch e {
	case EncodingWAV, EncodingLinear16:
		return "audio/wav"
	case EncodingOggOpus:
		return "audio/ogg"
	default:
		return "audio/mpeg"
	}
}

// EncodingFromMIME maps a response content type back to an Encoding.
func EncodingFromMIME(mime string) Encoding {
	mime = strings.ToLower(mime)
	switch {
	case strings.Contains(mime, "wav"):
		return EncodingWAV
	case strings.Contains(mime, "ogg"), strings.Contains(mime, "opus"):
		return EncodingOggOpus
	default:
		return EncodingMP3
	}
}

// VoiceSettings controls voice characteristics for providers that support it.
type VoiceSettings struct {
	// Stability controls voice consistency (0.0-1.0).
	Stability float64

	// SimilarityBoost controls how closely the voice matches the original (0.0-1.0).
	SimilarityBoost float64

	// Style controls style exaggeration (0.0-1.0).
	Style float64

	// SpeakerBoost enhances speaker clarity.
	SpeakerBoost bool
}

// DefaultVoiceSettings returns sensible defaults for voice synthesis.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Stability:       0.5,
		SimilarityBoost: 0.75,
		Style:           0.0,
		SpeakerBoost:    true,
	}
}
