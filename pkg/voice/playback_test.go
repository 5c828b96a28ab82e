package voice_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-voxtend/pkg/language"
	"github.com/teslashibe/go-voxtend/pkg/voice"
)

func newPlayback(t *testing.T, spk voice.Speaker, opts ...voice.Option) (*voice.PlaybackController, *recorder) {
	t.Helper()
	c := voice.NewPlaybackController(spk, opts...)
	r := &recorder{}
	c.OnStateChange(r.playState)
	c.OnNotice(r.notice)
	return c, r
}

func TestPlaybackOnDevice(t *testing.T) {
	spk := newFakeSpeaker()
	spk.autoStart = false
	c, r := newPlayback(t, spk)

	require.NoError(t, c.Speak(context.Background(), " नमस्ते ", language.MustGet("hi")))

	plays := spk.plays()
	require.Len(t, plays, 1)
	assert.Equal(t, "नमस्ते", plays[0].Text)
	assert.Equal(t, "hi-IN", plays[0].Locale)
	assert.Equal(t, 0.9, plays[0].Rate)
	assert.Equal(t, 1.0, plays[0].Pitch)
	assert.Empty(t, plays[0].Audio)
	assert.Equal(t, voice.PlaybackLoading, c.State())

	spk.listener(0).OnStart()
	assert.Equal(t, voice.PlaybackSpeaking, c.State())
	assert.True(t, c.Active())

	spk.listener(0).OnEnd()
	assert.Equal(t, voice.PlaybackIdle, c.State())
	assert.Equal(t, []voice.PlaybackState{
		voice.PlaybackLoading,
		voice.PlaybackSpeaking,
		voice.PlaybackIdle,
	}, r.playbackStates())
}

func TestPlaybackRemote(t *testing.T) {
	spk := newFakeSpeaker()
	synth := newFakeSynth()
	c, _ := newPlayback(t, spk, voice.WithSynthesizer(synth))

	require.NoError(t, c.Speak(context.Background(), "Welcome", language.MustGet("en")))

	plays := spk.plays()
	require.Len(t, plays, 1)
	assert.Equal(t, []byte("Welcome"), plays[0].Audio)
	assert.Equal(t, "audio/mpeg", plays[0].MIME)
	assert.Equal(t, int32(1), synth.calls.Load())
	assert.Equal(t, voice.PlaybackSpeaking, c.State())
}

func TestPlaybackValidation(t *testing.T) {
	c, _ := newPlayback(t, newFakeSpeaker())
	assert.ErrorIs(t, c.Speak(context.Background(), "  ", language.MustGet("en")), voice.ErrEmptyText)

	c, _ = newPlayback(t, nil)
	assert.ErrorIs(t, c.Speak(context.Background(), "hi", language.MustGet("en")), voice.ErrSynthesisUnavailable)

	spk := newFakeSpeaker()
	spk.available = false
	c, _ = newPlayback(t, spk)
	assert.ErrorIs(t, c.Speak(context.Background(), "hi", language.MustGet("en")), voice.ErrSynthesisUnavailable)
	assert.Empty(t, spk.plays())
}

func TestPlaybackSpeakCancelsPrior(t *testing.T) {
	spk := newFakeSpeaker()
	c, _ := newPlayback(t, spk)
	en := language.MustGet("en")

	require.NoError(t, c.Speak(context.Background(), "A", en))
	require.NoError(t, c.Speak(context.Background(), "B", en))

	plays := spk.plays()
	require.Len(t, plays, 2)
	assert.Equal(t, 1, spk.stopCount(0), "first session stopped")
	assert.Equal(t, 0, spk.stopCount(1))

	// A's end must not end B.
	spk.listener(0).OnEnd()
	assert.Equal(t, voice.PlaybackSpeaking, c.State())

	spk.listener(1).OnEnd()
	assert.Equal(t, voice.PlaybackIdle, c.State())
}

func TestPlaybackStopIdempotent(t *testing.T) {
	spk := newFakeSpeaker()
	c, r := newPlayback(t, spk)
	require.NoError(t, c.Speak(context.Background(), "hello", language.MustGet("en")))

	c.Stop()
	c.Stop()

	assert.Equal(t, 1, spk.stopCount(0))
	assert.Equal(t, voice.PlaybackIdle, c.State())
	assert.Equal(t, []voice.PlaybackState{
		voice.PlaybackLoading,
		voice.PlaybackSpeaking,
		voice.PlaybackIdle,
	}, r.playbackStates())

	spk.listener(0).OnError(errors.New("late"))
	assert.Equal(t, 0, r.noticeCount())
}

func TestPlaybackSupersededWhileLoading(t *testing.T) {
	spk := newFakeSpeaker()
	synth := newFakeSynth()
	synth.block = func(text string) bool { return text == "A" }
	c, r := newPlayback(t, spk, voice.WithSynthesizer(synth))
	en := language.MustGet("en")

	done := make(chan error, 1)
	go func() { done <- c.Speak(context.Background(), "A", en) }()
	require.Equal(t, "A", <-synth.entered)

	require.NoError(t, c.Speak(context.Background(), "B", en))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("superseded speak did not return")
	}

	plays := spk.plays()
	require.Len(t, plays, 1)
	assert.Equal(t, "B", plays[0].Text)
	assert.Equal(t, 0, r.noticeCount())
}

func TestPlaybackStopWhileLoading(t *testing.T) {
	spk := newFakeSpeaker()
	synth := newFakeSynth()
	synth.block = func(string) bool { return true }
	c, _ := newPlayback(t, spk, voice.WithSynthesizer(synth))

	done := make(chan error, 1)
	go func() { done <- c.Speak(context.Background(), "A", language.MustGet("en")) }()
	<-synth.entered
	assert.Equal(t, voice.PlaybackLoading, c.State())

	c.Stop()

	require.NoError(t, <-done)
	assert.Empty(t, spk.plays())
	assert.Equal(t, voice.PlaybackIdle, c.State())
}

func TestPlaybackFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(spk *fakeSpeaker, synth *fakeSynth)
		fire  func(spk *fakeSpeaker)
		key   language.Key
		err   bool
	}{
		{
			name:  "synthesis error",
			setup: func(_ *fakeSpeaker, synth *fakeSynth) { synth.err = errors.New("tts down") },
			key:   language.KeyPlaybackFailed,
			err:   true,
		},
		{
			name:  "play rejected",
			setup: func(spk *fakeSpeaker, _ *fakeSynth) { spk.playErr = errors.New("decode") },
			key:   language.KeyPlaybackFailed,
			err:   true,
		},
		{
			name: "autoplay blocked",
			setup: func(spk *fakeSpeaker, _ *fakeSynth) {
				spk.playErr = fmt.Errorf("browser: %w", voice.ErrPlaybackBlocked)
			},
			key: language.KeyPlaybackBlocked,
			err: true,
		},
		{
			name:  "platform error",
			setup: func(*fakeSpeaker, *fakeSynth) {},
			fire:  func(spk *fakeSpeaker) { spk.listener(0).OnError(errors.New("audio element error")) },
			key:   language.KeyPlaybackFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spk := newFakeSpeaker()
			synth := newFakeSynth()
			tt.setup(spk, synth)
			c, r := newPlayback(t, spk, voice.WithSynthesizer(synth))

			err := c.Speak(context.Background(), "hello", language.MustGet("kn"))
			if tt.err {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			if tt.fire != nil {
				tt.fire(spk)
			}

			require.Equal(t, 1, r.noticeCount())
			assert.Equal(t, tt.key, r.lastNotice().Key)
			assert.Equal(t, language.Text(tt.key, "kn"), r.lastNotice().Text)
			assert.Contains(t, r.playbackStates(), voice.PlaybackErrored)
			assert.Equal(t, voice.PlaybackIdle, c.State())
		})
	}
}

func TestPlaybackErrorDoesNotRelabelNewerSession(t *testing.T) {
	spk := newFakeSpeaker()
	spk.autoStart = false
	c, r := newPlayback(t, spk)
	en := language.MustGet("en")

	require.NoError(t, c.Speak(context.Background(), "first", en))
	spk.onStop = func() {
		assert.NoError(t, c.Speak(context.Background(), "second", en))
	}

	spk.listener(0).OnError(errors.New("decode failed"))
	require.Len(t, spk.plays(), 2)
	assert.Equal(t, voice.PlaybackLoading, c.State())
	assert.Equal(t, 1, r.noticeCount())
	assert.NotContains(t, r.playbackStates(), voice.PlaybackErrored)

	spk.listener(1).OnStart()
	assert.Equal(t, voice.PlaybackSpeaking, c.State())
}
