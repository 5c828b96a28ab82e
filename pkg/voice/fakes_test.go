package voice_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/teslashibe/go-voxtend/pkg/tts"
	"github.com/teslashibe/go-voxtend/pkg/voice"
)

// fakeRecognizer records every session so tests can drive its events.
type fakeRecognizer struct {
	mu        sync.Mutex
	available bool
	startErr  error
	requests  []voice.RecognitionRequest
	listeners []voice.RecognitionListener
	stops     []int

	// onStop runs once, the first time any handle is stopped.
	onStop func()
}

func newFakeRecognizer() *fakeRecognizer {
	return &fakeRecognizer{available: true}
}

func (f *fakeRecognizer) Available() bool { return f.available }

func (f *fakeRecognizer) Start(req voice.RecognitionRequest, l voice.RecognitionListener) (voice.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return nil, f.startErr
	}
	f.requests = append(f.requests, req)
	f.listeners = append(f.listeners, l)
	f.stops = append(f.stops, 0)
	idx := len(f.listeners) - 1
	return voice.HandleFunc(func() {
		f.mu.Lock()
		f.stops[idx]++
		hook := f.onStop
		f.onStop = nil
		f.mu.Unlock()
		if hook != nil {
			hook()
		}
	}), nil
}

func (f *fakeRecognizer) listener(i int) voice.RecognitionListener {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listeners[i]
}

func (f *fakeRecognizer) last() voice.RecognitionListener {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listeners[len(f.listeners)-1]
}

func (f *fakeRecognizer) starts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeRecognizer) request(i int) voice.RecognitionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[i]
}

func (f *fakeRecognizer) stopCount(i int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops[i]
}

// fakeSpeaker records play requests and lets tests fire playback events.
type fakeSpeaker struct {
	mu        sync.Mutex
	available bool
	playErr   error
	autoStart bool
	requests  []voice.PlaybackRequest
	listeners []voice.PlaybackListener
	stops     []int

	// onStop runs once, the first time any handle is stopped.
	onStop func()
}

func newFakeSpeaker() *fakeSpeaker {
	return &fakeSpeaker{available: true, autoStart: true}
}

func (f *fakeSpeaker) Available() bool { return f.available }

func (f *fakeSpeaker) Play(_ context.Context, req voice.PlaybackRequest, l voice.PlaybackListener) (voice.Handle, error) {
	f.mu.Lock()
	if f.playErr != nil {
		err := f.playErr
		f.mu.Unlock()
		return nil, err
	}
	f.requests = append(f.requests, req)
	f.listeners = append(f.listeners, l)
	f.stops = append(f.stops, 0)
	idx := len(f.listeners) - 1
	autoStart := f.autoStart
	f.mu.Unlock()

	if autoStart {
		l.OnStart()
	}
	return voice.HandleFunc(func() {
		f.mu.Lock()
		f.stops[idx]++
		hook := f.onStop
		f.onStop = nil
		f.mu.Unlock()
		if hook != nil {
			hook()
		}
	}), nil
}

func (f *fakeSpeaker) plays() []voice.PlaybackRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]voice.PlaybackRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *fakeSpeaker) listener(i int) voice.PlaybackListener {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listeners[i]
}

func (f *fakeSpeaker) stopCount(i int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops[i]
}

// fakeSynth returns the text bytes as audio. Texts for which block returns
// true wait until the context is cancelled.
type fakeSynth struct {
	err     error
	block   func(text string) bool
	calls   atomic.Int32
	entered chan string
}

func newFakeSynth() *fakeSynth {
	return &fakeSynth{entered: make(chan string, 8)}
}

func (f *fakeSynth) Synthesize(ctx context.Context, req *tts.Request) (*tts.AudioResult, error) {
	f.calls.Add(1)
	select {
	case f.entered <- req.Text:
	default:
	}
	if f.block != nil && f.block(req.Text) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &tts.AudioResult{
		Audio:    []byte(req.Text),
		Encoding: tts.EncodingMP3,
		MIME:     tts.EncodingMP3.MIME(),
	}, nil
}

// recorder collects session and controller events.
type recorder struct {
	mu          sync.Mutex
	events      []voice.Event
	notices     []voice.Notice
	recStates   []voice.RecognitionState
	playStates  []voice.PlaybackState
	transcripts []string
}

func (r *recorder) event(e voice.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if e.Type == voice.EventNotice {
		r.notices = append(r.notices, *e.Notice)
	}
}

func (r *recorder) notice(n voice.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) recState(s voice.RecognitionState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recStates = append(r.recStates, s)
}

func (r *recorder) playState(s voice.PlaybackState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playStates = append(r.playStates, s)
}

func (r *recorder) transcript(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transcripts = append(r.transcripts, text)
}

func (r *recorder) noticeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

func (r *recorder) lastNotice() voice.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return voice.Notice{}
	}
	return r.notices[len(r.notices)-1]
}

func (r *recorder) turns() []voice.Turn {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []voice.Turn
	for _, e := range r.events {
		if e.Type == voice.EventTurn {
			out = append(out, *e.Turn)
		}
	}
	return out
}

func (r *recorder) recognitionStates() []voice.RecognitionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]voice.RecognitionState, len(r.recStates))
	copy(out, r.recStates)
	return out
}

func (r *recorder) playbackStates() []voice.PlaybackState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]voice.PlaybackState, len(r.playStates))
	copy(out, r.playStates)
	return out
}

func (r *recorder) finals() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.transcripts))
	copy(out, r.transcripts)
	return out
}
