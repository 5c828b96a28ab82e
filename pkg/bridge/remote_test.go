package bridge

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-voxtend/pkg/protocol"
	"github.com/teslashibe/go-voxtend/pkg/voice"
)

type fakeSender struct {
	mu   sync.Mutex
	msgs []*protocol.Message
	err  error
}

func (f *fakeSender) Send(msg *protocol.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeSender) types() []protocol.MessageType {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]protocol.MessageType, len(f.msgs))
	for i, m := range f.msgs {
		out[i] = m.Type
	}
	return out
}

func (f *fakeSender) last() *protocol.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.msgs[len(f.msgs)-1]
}

type recListener struct {
	mu      sync.Mutex
	events  []string
	results []string
	codes   []string
}

func (l *recListener) add(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *recListener) OnStart() { l.add("start") }
func (l *recListener) OnResult(t string, final bool) {
	l.add("result")
	if final {
		l.mu.Lock()
		l.results = append(l.results, t)
		l.mu.Unlock()
	}
}
func (l *recListener) OnEnd() { l.add("end") }
func (l *recListener) OnError(code string) {
	l.add("error")
	l.mu.Lock()
	l.codes = append(l.codes, code)
	l.mu.Unlock()
}

type playListener struct {
	mu     sync.Mutex
	events []string
	errs   []error
}

func (l *playListener) add(e string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	if err != nil {
		l.errs = append(l.errs, err)
	}
}

func (l *playListener) OnStart()          { l.add("start", nil) }
func (l *playListener) OnEnd()            { l.add("end", nil) }
func (l *playListener) OnError(err error) { l.add("error", err) }

func TestRemoteRecognizer(t *testing.T) {
	out := &fakeSender{}
	r := newRemoteRecognizer(out, true, slog.Default())
	l := &recListener{}

	h, err := r.Start(voice.RecognitionRequest{ID: "r1", Locale: "hi-IN"}, l)
	require.NoError(t, err)

	cmd, err := out.last().GetRecognizeCommand()
	require.NoError(t, err)
	assert.Equal(t, "r1", cmd.ID)
	assert.Equal(t, "hi-IN", cmd.Locale)

	r.dispatch(&protocol.RecognitionEvent{ID: "r1", Event: protocol.EventStart})
	r.dispatch(&protocol.RecognitionEvent{ID: "r1", Event: protocol.EventResult, Transcript: "योजना", Final: true})
	r.dispatch(&protocol.RecognitionEvent{ID: "other", Event: protocol.EventResult, Transcript: "x", Final: true})
	r.dispatch(&protocol.RecognitionEvent{ID: "r1", Event: protocol.EventEnd})
	r.dispatch(&protocol.RecognitionEvent{ID: "r1", Event: protocol.EventError, Error: "late"})

	assert.Equal(t, []string{"start", "result", "end"}, l.events)
	assert.Equal(t, []string{"योजना"}, l.results)

	// The session already ended, so stopping sends nothing.
	h.Stop()
	assert.Equal(t, []protocol.MessageType{protocol.TypeRecognize}, out.types())
}

func TestRemoteRecognizerStop(t *testing.T) {
	out := &fakeSender{}
	r := newRemoteRecognizer(out, true, slog.Default())
	l := &recListener{}

	h, err := r.Start(voice.RecognitionRequest{ID: "r2", Locale: "en-IN"}, l)
	require.NoError(t, err)

	h.Stop()
	h.Stop()

	assert.Equal(t, []protocol.MessageType{protocol.TypeRecognize, protocol.TypeCancelRecognition}, out.types())
	cancel, _ := out.last().GetCancelCommand()
	assert.Equal(t, "r2", cancel.ID)

	r.dispatch(&protocol.RecognitionEvent{ID: "r2", Event: protocol.EventError, Error: "aborted"})
	assert.Empty(t, l.events)
}

func TestRemoteRecognizerSendFailure(t *testing.T) {
	out := &fakeSender{err: errors.New("closed")}
	r := newRemoteRecognizer(out, true, slog.Default())

	_, err := r.Start(voice.RecognitionRequest{ID: "r3"}, &recListener{})
	assert.Error(t, err)
	assert.Empty(t, r.listeners)
}

func TestRemoteSpeaker(t *testing.T) {
	out := &fakeSender{}
	s := newRemoteSpeaker(out, true, slog.Default())
	l := &playListener{}

	_, err := s.Play(context.Background(), voice.PlaybackRequest{
		ID:     "p1",
		Text:   "hello",
		Locale: "en-IN",
		Audio:  []byte("mp3"),
		MIME:   "audio/mpeg",
	}, l)
	require.NoError(t, err)

	cmd, err := out.last().GetSpeakCommand()
	require.NoError(t, err)
	audio, err := cmd.DecodeAudio()
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), audio)
	assert.Equal(t, "audio/mpeg", cmd.MIME)

	s.dispatch(&protocol.PlaybackEvent{ID: "p1", Event: protocol.EventStart})
	s.dispatch(&protocol.PlaybackEvent{ID: "p1", Event: protocol.EventEnd})
	assert.Equal(t, []string{"start", "end"}, l.events)
}

func TestRemoteSpeakerBlocked(t *testing.T) {
	out := &fakeSender{}
	s := newRemoteSpeaker(out, true, slog.Default())
	l := &playListener{}

	_, err := s.Play(context.Background(), voice.PlaybackRequest{ID: "p2", Text: "hi", Locale: "en-IN", Rate: 0.9, Pitch: 1}, l)
	require.NoError(t, err)

	cmd, _ := out.last().GetSpeakCommand()
	assert.Empty(t, cmd.Data)
	assert.Equal(t, 0.9, cmd.Rate)

	s.dispatch(&protocol.PlaybackEvent{ID: "p2", Event: protocol.EventError, Blocked: true})
	require.Len(t, l.errs, 1)
	assert.ErrorIs(t, l.errs[0], voice.ErrPlaybackBlocked)
}

func TestRemoteSpeakerStop(t *testing.T) {
	out := &fakeSender{}
	s := newRemoteSpeaker(out, true, slog.Default())

	h, err := s.Play(context.Background(), voice.PlaybackRequest{ID: "p3", Text: "hi"}, &playListener{})
	require.NoError(t, err)
	h.Stop()
	h.Stop()

	assert.Equal(t, []protocol.MessageType{protocol.TypeSpeak, protocol.TypeCancelSpeech}, out.types())
}
