// Package console adapts a terminal to the voice platform boundary: typed
// lines stand in for recognized speech and replies are printed instead of
// played.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/teslashibe/go-voxtend/pkg/voice"
)

// Recognizer treats the next delivered line as a final transcript.
type Recognizer struct {
	mu     sync.Mutex
	id     string
	active voice.RecognitionListener
}

// NewRecognizer returns a recognizer that waits for Deliver.
func NewRecognizer() *Recognizer {
	return &Recognizer{}
}

// Available always reports true.
func (r *Recognizer) Available() bool { return true }

// Start arms the recognizer for the next line.
func (r *Recognizer) Start(req voice.RecognitionRequest, l voice.RecognitionListener) (voice.Handle, error) {
	r.mu.Lock()
	r.id = req.ID
	r.active = l
	r.mu.Unlock()

	l.OnStart()
	return voice.HandleFunc(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.id == req.ID {
			r.id = ""
			r.active = nil
		}
	}), nil
}

// Listening reports whether a line would be consumed as speech.
func (r *Recognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}

// Deliver hands line to the active recognition session. It returns false
// when nothing is listening.
func (r *Recognizer) Deliver(line string) bool {
	r.mu.Lock()
	l := r.active
	r.id = ""
	r.active = nil
	r.mu.Unlock()

	if l == nil {
		return false
	}
	l.OnResult(line, true)
	l.OnEnd()
	return true
}

// Speaker prints each utterance to a writer.
type Speaker struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSpeaker returns a speaker writing to w.
func NewSpeaker(w io.Writer) *Speaker {
	return &Speaker{w: w}
}

// Available always reports true.
func (s *Speaker) Available() bool { return true }

// Play prints the text and reports start and end from another goroutine.
func (s *Speaker) Play(ctx context.Context, req voice.PlaybackRequest, l voice.PlaybackListener) (voice.Handle, error) {
	s.mu.Lock()
	if len(req.Audio) > 0 {
		fmt.Fprintf(s.w, "🔊 [%s, %d bytes %s] %s\n", req.Locale, len(req.Audio), req.MIME, req.Text)
	} else {
		fmt.Fprintf(s.w, "🔊 [%s] %s\n", req.Locale, req.Text)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	go func() {
		l.OnStart()
		select {
		case <-ctx.Done():
		case <-done:
		default:
			l.OnEnd()
		}
	}()
	return voice.HandleFunc(func() { once.Do(func() { close(done) }) }), nil
}

var (
	_ voice.Recognizer = (*Recognizer)(nil)
	_ voice.Speaker    = (*Speaker)(nil)
)
