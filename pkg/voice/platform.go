package voice

import (
	"context"

	"github.com/teslashibe/go-voxtend/pkg/tts"
)

// Handle stops an in-flight platform operation. Stop may be called more than
// once and after the operation has already finished.
type Handle interface {
	Stop()
}

// RecognitionRequest starts one listening session on the platform.
type RecognitionRequest struct {
	ID             string
	Locale         string
	Continuous     bool
	InterimResults bool
}

// RecognitionListener receives platform recognition events for one session.
// Error codes follow the browser vocabulary: not-allowed, service-not-allowed,
// audio-capture, no-speech, aborted, network.
type RecognitionListener interface {
	OnStart()
	OnResult(transcript string, final bool)
	OnEnd()
	OnError(code string)
}

// Recognizer is the platform speech-to-text engine.
type Recognizer interface {
	Available() bool
	Start(req RecognitionRequest, l RecognitionListener) (Handle, error)
}

// PlaybackRequest asks the platform to speak text or play audio. When Audio
// is empty the platform synthesizes Text on device with Rate and Pitch.
type PlaybackRequest struct {
	ID     string
	Text   string
	Locale string
	Audio  []byte
	MIME   string
	Rate   float64
	Pitch  float64
}

// PlaybackListener receives playback events for one session.
type PlaybackListener interface {
	OnStart()
	OnEnd()
	OnError(err error)
}

// Speaker is the platform audio output. Play returns once playback has been
// handed to the platform; completion is reported through the listener.
type Speaker interface {
	Available() bool
	Play(ctx context.Context, req PlaybackRequest, l PlaybackListener) (Handle, error)
}

// Synthesizer produces audio for text off device.
type Synthesizer interface {
	Synthesize(ctx context.Context, req *tts.Request) (*tts.AudioResult, error)
}

// Verify the tts providers satisfy Synthesizer at compile time.
var _ Synthesizer = (tts.Provider)(nil)

// HandleFunc adapts a function to Handle.
type HandleFunc func()

// Stop calls f.
func (f HandleFunc) Stop() { f() }
