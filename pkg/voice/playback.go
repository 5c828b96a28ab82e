package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/teslashibe/go-voxtend/internal/metrics"
	"github.com/teslashibe/go-voxtend/pkg/language"
	"github.com/teslashibe/go-voxtend/pkg/tts"
)

type playbackSession struct {
	id     string
	text   string
	lang   language.Language
	cancel context.CancelFunc
	handle Handle
}

// PlaybackController owns the single outgoing audio session of a user.
// Starting a new session cancels the previous one before it is assigned.
type PlaybackController struct {
	spk    Speaker
	synth  Synthesizer
	rate   float64
	pitch  float64
	logger *slog.Logger

	// speakMu orders the superseded check and the hand-off to the speaker
	// against replace and Stop.
	speakMu sync.Mutex

	mu       sync.Mutex
	state    PlaybackState
	cur      *playbackSession
	onState  func(PlaybackState)
	onNotice func(Notice)
}

// NewPlaybackController creates a controller around the platform speaker.
// When the config carries a Synthesizer audio is produced remotely and the
// speaker only plays it; otherwise the speaker synthesizes on device.
func NewPlaybackController(spk Speaker, opts ...Option) *PlaybackController {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	return &PlaybackController{
		spk:    spk,
		synth:  cfg.Synthesizer,
		rate:   cfg.SpeechRate,
		pitch:  cfg.SpeechPitch,
		logger: cfg.Logger.With("component", "voice.playback"),
		state:  PlaybackIdle,
	}
}

// OnStateChange sets the callback fired on every state transition.
func (c *PlaybackController) OnStateChange(fn func(PlaybackState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = fn
}

// OnNotice sets the callback that receives user-facing error notices.
func (c *PlaybackController) OnNotice(fn func(Notice)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onNotice = fn
}

// State returns the current state.
func (c *PlaybackController) State() PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Active reports whether audio is loading or playing.
func (c *PlaybackController) Active() bool {
	return c.State().Active()
}

// Speak cancels any current playback and speaks text in lang. It returns
// once the audio has been handed to the speaker. A session superseded by a
// later Speak or Stop returns nil without reaching the speaker.
func (c *PlaybackController) Speak(ctx context.Context, text string, lang language.Language) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	if c.spk == nil || !c.spk.Available() {
		return ErrSynthesisUnavailable
	}

	sctx, cancel := context.WithCancel(ctx)
	s := &playbackSession{id: uuid.NewString(), text: text, lang: lang, cancel: cancel}
	c.replace(s)

	req := PlaybackRequest{
		ID:     s.id,
		Text:   text,
		Locale: lang.SpeechLocale,
		Rate:   c.rate,
		Pitch:  c.pitch,
	}

	if c.synth != nil {
		res, err := c.synth.Synthesize(sctx, &tts.Request{
			Text:     text,
			Language: lang.Code,
			Locale:   lang.SpeechLocale,
		})
		if err != nil {
			if !c.current(s) {
				return nil
			}
			c.logger.Warn("synthesis failed", "error", err, "lang", lang.Code)
			c.fail(s.id, err)
			return fmt.Errorf("voice: synthesize: %w", err)
		}
		req.Audio = res.Audio
		req.MIME = res.MIME
	}

	c.speakMu.Lock()
	if !c.current(s) {
		c.speakMu.Unlock()
		return nil
	}
	h, err := c.spk.Play(sctx, req, &playbackListener{c: c, id: s.id})
	if err != nil {
		c.speakMu.Unlock()
		c.logger.Warn("play rejected", "error", err)
		c.fail(s.id, err)
		return fmt.Errorf("voice: play: %w", err)
	}
	c.mu.Lock()
	stale := c.cur != s
	if !stale {
		s.handle = h
	}
	c.mu.Unlock()
	c.speakMu.Unlock()

	if stale {
		h.Stop()
	}
	return nil
}

// Stop cancels playback from any state.
func (c *PlaybackController) Stop() {
	c.speakMu.Lock()
	c.mu.Lock()
	s := c.cur
	changed := c.state != PlaybackIdle
	c.cur = nil
	c.state = PlaybackIdle
	c.mu.Unlock()
	c.speakMu.Unlock()

	c.release(s)
	if changed {
		c.emitState(PlaybackIdle)
	}
}

// replace installs s as the current session and tears down the previous one.
func (c *PlaybackController) replace(s *playbackSession) {
	c.speakMu.Lock()
	c.mu.Lock()
	prev := c.cur
	c.cur = s
	c.state = PlaybackLoading
	c.mu.Unlock()
	c.speakMu.Unlock()

	c.release(prev)
	c.emitState(PlaybackLoading)
}

func (c *PlaybackController) release(s *playbackSession) {
	if s == nil {
		return
	}
	s.cancel()
	if s.handle != nil {
		s.handle.Stop()
	}
	metrics.PlaybackOutcomes.WithLabelValues("cancelled").Inc()
}

func (c *PlaybackController) current(s *playbackSession) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur == s
}

func (c *PlaybackController) take(id string) *playbackSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur == nil || c.cur.id != id {
		return nil
	}
	s := c.cur
	c.cur = nil
	return s
}

func (c *PlaybackController) started(id string) {
	c.mu.Lock()
	if c.cur == nil || c.cur.id != id || c.state != PlaybackLoading {
		c.mu.Unlock()
		return
	}
	c.state = PlaybackSpeaking
	c.mu.Unlock()
	c.emitState(PlaybackSpeaking)
}

func (c *PlaybackController) ended(id string) {
	s := c.take(id)
	if s == nil {
		return
	}
	s.cancel()
	metrics.PlaybackOutcomes.WithLabelValues("completed").Inc()
	c.settle()
}

func (c *PlaybackController) fail(id string, err error) {
	s := c.take(id)
	if s == nil {
		return
	}
	s.cancel()
	if s.handle != nil {
		s.handle.Stop()
	}
	metrics.PlaybackOutcomes.WithLabelValues("error").Inc()

	key := language.KeyPlaybackFailed
	if errors.Is(err, ErrPlaybackBlocked) {
		key = language.KeyPlaybackBlocked
	}

	c.mu.Lock()
	owned := c.cur != nil
	if !owned {
		c.state = PlaybackErrored
	}
	c.mu.Unlock()
	if !owned {
		c.emitState(PlaybackErrored)
	}
	c.notify(NewNotice(key, s.lang.Code))
	c.settle()
}

// settle returns to idle unless a newer session has started meanwhile.
func (c *PlaybackController) settle() {
	c.mu.Lock()
	if c.cur != nil {
		c.mu.Unlock()
		return
	}
	c.state = PlaybackIdle
	c.mu.Unlock()
	c.emitState(PlaybackIdle)
}

func (c *PlaybackController) emitState(st PlaybackState) {
	c.mu.Lock()
	fn := c.onState
	c.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}

func (c *PlaybackController) notify(n Notice) {
	c.mu.Lock()
	fn := c.onNotice
	c.mu.Unlock()
	if fn != nil {
		fn(n)
	}
}

type playbackListener struct {
	c  *PlaybackController
	id string
}

func (l *playbackListener) OnStart()          { l.c.started(l.id) }
func (l *playbackListener) OnEnd()            { l.c.ended(l.id) }
func (l *playbackListener) OnError(err error) { l.c.fail(l.id, err) }
