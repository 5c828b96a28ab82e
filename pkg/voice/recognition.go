package voice

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-voxtend/internal/metrics"
	"github.com/teslashibe/go-voxtend/pkg/language"
)

// RecognitionError is returned by a Recognizer whose Start failed with a
// platform error code such as "not-allowed".
type RecognitionError struct {
	Code string
}

func (e *RecognitionError) Error() string {
	return "voice: recognition error: " + e.Code
}

type recognitionSession struct {
	id     string
	lang   language.Language
	handle Handle
	timer  *time.Timer
}

// RecognitionController owns the single speech-to-text session of a user.
// Observer callbacks are invoked without the controller lock held.
type RecognitionController struct {
	rec     Recognizer
	timeout time.Duration
	logger  *slog.Logger

	mu       sync.Mutex
	state    RecognitionState
	cur      *recognitionSession
	busy     func() bool
	onState  func(RecognitionState)
	onFinal  func(transcript string, lang language.Language)
	onNotice func(Notice)
}

// NewRecognitionController creates a controller around the platform recognizer.
// rec may be nil when the platform has no recognition support.
func NewRecognitionController(rec Recognizer, opts ...Option) *RecognitionController {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	return &RecognitionController{
		rec:     rec,
		timeout: cfg.RecognitionTimeout,
		logger:  cfg.Logger.With("component", "voice.recognition"),
		state:   RecognitionIdle,
	}
}

// SetGate installs a check that rejects Start while it returns true.
func (c *RecognitionController) SetGate(busy func() bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = busy
}

// OnStateChange sets the callback fired on every state transition.
func (c *RecognitionController) OnStateChange(fn func(RecognitionState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = fn
}

// OnFinal sets the callback that receives each final transcript.
func (c *RecognitionController) OnFinal(fn func(transcript string, lang language.Language)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFinal = fn
}

// OnNotice sets the callback that receives user-facing error notices.
func (c *RecognitionController) OnNotice(fn func(Notice)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onNotice = fn
}

// State returns the current state.
func (c *RecognitionController) State() RecognitionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Listening reports whether a session is active.
func (c *RecognitionController) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur != nil
}

// Start opens a listening session in lang's speech locale.
func (c *RecognitionController) Start(lang language.Language) error {
	if c.rec == nil || !c.rec.Available() {
		return ErrRecognitionUnavailable
	}

	c.mu.Lock()
	busy := c.busy
	if c.cur != nil {
		c.mu.Unlock()
		return ErrAlreadyListening
	}
	c.mu.Unlock()

	if busy != nil && busy() {
		return ErrBusy
	}

	c.mu.Lock()
	if c.cur != nil {
		c.mu.Unlock()
		return ErrAlreadyListening
	}
	s := &recognitionSession{id: uuid.NewString(), lang: lang}
	c.cur = s
	c.state = RecognitionListening
	c.mu.Unlock()
	c.emitState(RecognitionListening)

	h, err := c.rec.Start(RecognitionRequest{
		ID:     s.id,
		Locale: lang.SpeechLocale,
	}, &recognitionListener{c: c, id: s.id})
	if err != nil {
		code := "start-failed"
		var re *RecognitionError
		if errors.As(err, &re) {
			code = re.Code
		}
		c.logger.Warn("recognition start failed", "error", err, "locale", lang.SpeechLocale)
		c.fail(s.id, code)
		return fmt.Errorf("voice: start recognition: %w", err)
	}

	c.mu.Lock()
	if c.cur != s {
		c.mu.Unlock()
		h.Stop()
		return nil
	}
	s.handle = h
	s.timer = time.AfterFunc(c.timeout, func() { c.expire(s.id) })
	c.mu.Unlock()

	c.logger.Debug("listening", "session", s.id, "locale", lang.SpeechLocale)
	return nil
}

// Stop ends any active session and discards partial results.
func (c *RecognitionController) Stop() {
	c.mu.Lock()
	s := c.cur
	changed := c.state != RecognitionIdle
	c.cur = nil
	c.state = RecognitionIdle
	if s != nil && s.timer != nil {
		s.timer.Stop()
	}
	c.mu.Unlock()

	if s != nil {
		if s.handle != nil {
			s.handle.Stop()
		}
		metrics.RecognitionOutcomes.WithLabelValues("stopped").Inc()
	}
	if changed {
		c.emitState(RecognitionIdle)
	}
}

// Restart replaces the current session with one bound to lang.
func (c *RecognitionController) Restart(lang language.Language) error {
	c.Stop()
	return c.Start(lang)
}

// take detaches the session with id if it is still current.
func (c *RecognitionController) take(id string) *recognitionSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur == nil || c.cur.id != id {
		return nil
	}
	s := c.cur
	c.cur = nil
	if s.timer != nil {
		s.timer.Stop()
	}
	return s
}

// setState records the terminal state of a taken session. A session started
// meanwhile owns the state and is left alone.
func (c *RecognitionController) setState(st RecognitionState) {
	c.mu.Lock()
	if c.cur != nil {
		c.mu.Unlock()
		return
	}
	c.state = st
	c.mu.Unlock()
	c.emitState(st)
}

// settle returns to idle unless a newer session has started meanwhile.
func (c *RecognitionController) settle() {
	c.mu.Lock()
	if c.cur != nil {
		c.mu.Unlock()
		return
	}
	c.state = RecognitionIdle
	c.mu.Unlock()
	c.emitState(RecognitionIdle)
}

func (c *RecognitionController) finish(id, transcript string) {
	s := c.take(id)
	if s == nil {
		return
	}
	c.setState(RecognitionFinalized)
	c.settle()

	text := strings.TrimSpace(transcript)
	if text == "" {
		metrics.RecognitionOutcomes.WithLabelValues("empty").Inc()
		c.notify(NewNotice(language.KeyNoSpeech, s.lang.Code))
		return
	}
	metrics.RecognitionOutcomes.WithLabelValues("final").Inc()

	c.mu.Lock()
	fn := c.onFinal
	c.mu.Unlock()
	if fn != nil {
		fn(text, s.lang)
	}
}

func (c *RecognitionController) end(id string) {
	if s := c.take(id); s == nil {
		return
	}
	metrics.RecognitionOutcomes.WithLabelValues("ended").Inc()
	c.settle()
}

func (c *RecognitionController) fail(id, code string) {
	s := c.take(id)
	if s == nil {
		return
	}
	key, ok := recognitionNoticeKey(code)
	if !ok {
		metrics.RecognitionOutcomes.WithLabelValues("aborted").Inc()
		c.settle()
		return
	}
	if s.handle != nil {
		s.handle.Stop()
	}

	outcome := "error"
	if code == "timeout" {
		outcome = "timeout"
	}
	metrics.RecognitionOutcomes.WithLabelValues(outcome).Inc()
	c.logger.Info("recognition error", "session", id, "code", code)

	c.setState(RecognitionErrored)
	c.notify(NewNotice(key, s.lang.Code))
	c.settle()
}

func (c *RecognitionController) expire(id string) {
	c.fail(id, "timeout")
}

func (c *RecognitionController) emitState(st RecognitionState) {
	c.mu.Lock()
	fn := c.onState
	c.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}

func (c *RecognitionController) notify(n Notice) {
	c.mu.Lock()
	fn := c.onNotice
	c.mu.Unlock()
	if fn != nil {
		fn(n)
	}
}

// recognitionListener binds platform events to one session id.
type recognitionListener struct {
	c  *RecognitionController
	id string
}

func (l *recognitionListener) OnStart() {}

func (l *recognitionListener) OnResult(transcript string, final bool) {
	if !final {
		return
	}
	l.c.finish(l.id, transcript)
}

func (l *recognitionListener) OnEnd() { l.c.end(l.id) }

func (l *recognitionListener) OnError(code string) { l.c.fail(l.id, code) }
