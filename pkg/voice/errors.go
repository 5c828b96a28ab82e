package voice

import "errors"

// Errors returned by the voice controllers and session.
var (
	ErrBusy                   = errors.New("voice: busy")
	ErrAlreadyListening       = errors.New("voice: already listening")
	ErrRecognitionUnavailable = errors.New("voice: speech recognition unavailable")
	ErrSynthesisUnavailable   = errors.New("voice: speech synthesis unavailable")
	ErrEmptyText              = errors.New("voice: empty text")
	ErrUnknownLanguage        = errors.New("voice: unknown language")
	ErrSessionClosed          = errors.New("voice: session closed")
	ErrInvalidTimeout         = errors.New("voice: timeouts must be positive")

	// ErrPlaybackBlocked is reported by a Speaker when the platform refused
	// to start audio without a user gesture.
	ErrPlaybackBlocked = errors.New("voice: playback blocked")
)
