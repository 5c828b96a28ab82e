package bridge

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/teslashibe/go-voxtend/pkg/protocol"
	"github.com/teslashibe/go-voxtend/pkg/voice"
)

// sender delivers a message to the browser.
type sender interface {
	Send(msg *protocol.Message) error
}

// remoteRecognizer runs recognition in the browser. Commands go out over the
// socket and events come back through dispatch.
type remoteRecognizer struct {
	out       sender
	available bool
	logger    *slog.Logger

	mu        sync.Mutex
	listeners map[string]voice.RecognitionListener
}

func newRemoteRecognizer(out sender, available bool, logger *slog.Logger) *remoteRecognizer {
	return &remoteRecognizer{
		out:       out,
		available: available,
		logger:    logger,
		listeners: make(map[string]voice.RecognitionListener),
	}
}

func (r *remoteRecognizer) Available() bool { return r.available }

func (r *remoteRecognizer) Start(req voice.RecognitionRequest, l voice.RecognitionListener) (voice.Handle, error) {
	msg, err := protocol.NewMessage(protocol.TypeRecognize, protocol.RecognizeCommand{
		ID:             req.ID,
		Locale:         req.Locale,
		Continuous:     req.Continuous,
		InterimResults: req.InterimResults,
	})
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.listeners[req.ID] = l
	r.mu.Unlock()

	if err := r.out.Send(msg); err != nil {
		r.remove(req.ID)
		return nil, err
	}

	return voice.HandleFunc(func() {
		if !r.remove(req.ID) {
			return
		}
		cancel, err := protocol.NewCancelMessage(protocol.TypeCancelRecognition, req.ID)
		if err == nil {
			if err := r.out.Send(cancel); err != nil {
				r.logger.Debug("cancel recognition", "error", err)
			}
		}
	}), nil
}

func (r *remoteRecognizer) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listeners[id]; !ok {
		return false
	}
	delete(r.listeners, id)
	return true
}

// dispatch routes a browser event to the listener of its session. Events
// for unknown sessions are dropped.
func (r *remoteRecognizer) dispatch(ev *protocol.RecognitionEvent) {
	r.mu.Lock()
	l, ok := r.listeners[ev.ID]
	if ok && (ev.Event == protocol.EventEnd || ev.Event == protocol.EventError) {
		delete(r.listeners, ev.ID)
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	switch ev.Event {
	case protocol.EventStart:
		l.OnStart()
	case protocol.EventResult:
		l.OnResult(ev.Transcript, ev.Final)
	case protocol.EventEnd:
		l.OnEnd()
	case protocol.EventError:
		l.OnError(ev.Error)
	default:
		r.logger.Debug("unknown recognition event", "event", ev.Event)
	}
}

// remoteSpeaker plays audio in the browser, either the bytes produced by a
// server-side synthesizer or the browser's own voices.
type remoteSpeaker struct {
	out       sender
	available bool
	logger    *slog.Logger

	mu        sync.Mutex
	listeners map[string]voice.PlaybackListener
}

func newRemoteSpeaker(out sender, available bool, logger *slog.Logger) *remoteSpeaker {
	return &remoteSpeaker{
		out:       out,
		available: available,
		logger:    logger,
		listeners: make(map[string]voice.PlaybackListener),
	}
}

func (s *remoteSpeaker) Available() bool { return s.available }

func (s *remoteSpeaker) Play(_ context.Context, req voice.PlaybackRequest, l voice.PlaybackListener) (voice.Handle, error) {
	msg, err := protocol.NewSpeakMessage(req.ID, req.Text, req.Locale, req.Rate, req.Pitch, req.Audio, req.MIME)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.listeners[req.ID] = l
	s.mu.Unlock()

	if err := s.out.Send(msg); err != nil {
		s.remove(req.ID)
		return nil, err
	}

	return voice.HandleFunc(func() {
		if !s.remove(req.ID) {
			return
		}
		cancel, err := protocol.NewCancelMessage(protocol.TypeCancelSpeech, req.ID)
		if err == nil {
			if err := s.out.Send(cancel); err != nil {
				s.logger.Debug("cancel speech", "error", err)
			}
		}
	}), nil
}

func (s *remoteSpeaker) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listeners[id]; !ok {
		return false
	}
	delete(s.listeners, id)
	return true
}

func (s *remoteSpeaker) dispatch(ev *protocol.PlaybackEvent) {
	s.mu.Lock()
	l, ok := s.listeners[ev.ID]
	if ok && (ev.Event == protocol.EventEnd || ev.Event == protocol.EventError) {
		delete(s.listeners, ev.ID)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	switch ev.Event {
	case protocol.EventStart:
		l.OnStart()
	case protocol.EventEnd:
		l.OnEnd()
	case protocol.EventError:
		err := errors.New("bridge: playback error: " + ev.Error)
		if ev.Blocked {
			err = voice.ErrPlaybackBlocked
		}
		l.OnError(err)
	default:
		s.logger.Debug("unknown playback event", "event", ev.Event)
	}
}

var (
	_ voice.Recognizer = (*remoteRecognizer)(nil)
	_ voice.Speaker    = (*remoteSpeaker)(nil)
)
