package voice

import (
	"sync"
	"time"
)

// Metrics tracks latency at each stage of one conversation turn.
// All durations are measured from the moment the transcript was committed.
type Metrics struct {
	// Timestamps for key events
	TranscriptTime   time.Time // When the user turn was committed
	ResponseTime     time.Time // When the orchestrator answered
	FirstAudioTime   time.Time // When the speaker reported start
	ResponseDoneTime time.Time // When the answer finished playing

	// Computed latencies (from transcript)
	ReasoningLatency time.Duration
	AudioLatency     time.Duration
	TotalLatency     time.Duration

	Language string
	Fallback bool
}

// MetricsCollector collects latency metrics during a conversation turn.
// It is goroutine-safe and can be used from controller callbacks.
type MetricsCollector struct {
	mu      sync.Mutex
	current Metrics
	history []Metrics // Recent turns for averaging

	onUpdate func(Metrics)
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		history: make([]Metrics, 0, 100),
	}
}

// OnUpdate sets a callback that fires whenever metrics are updated.
func (m *MetricsCollector) OnUpdate(fn func(Metrics)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onUpdate = fn
}

// MarkTranscript starts a new turn.
func (m *MetricsCollector) MarkTranscript(lang string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Metrics{TranscriptTime: time.Now(), Language: lang}
}

// MarkResponse records when the answer text was ready.
func (m *MetricsCollector) MarkResponse(fallback bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.ResponseTime = time.Now()
	m.current.Fallback = fallback
	if !m.current.TranscriptTime.IsZero() {
		m.current.ReasoningLatency = m.current.ResponseTime.Sub(m.current.TranscriptTime)
	}
	m.notify()
}

// MarkFirstAudio records when the speaker started. Only the first call per
// turn counts.
func (m *MetricsCollector) MarkFirstAudio() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current.ResponseTime.IsZero() || !m.current.FirstAudioTime.IsZero() {
		return
	}
	m.current.FirstAudioTime = time.Now()
	if !m.current.TranscriptTime.IsZero() {
		m.current.AudioLatency = m.current.FirstAudioTime.Sub(m.current.TranscriptTime)
	}
	m.notify()
}

// MarkResponseDone closes the turn and archives it.
func (m *MetricsCollector) MarkResponseDone() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current.ResponseTime.IsZero() || !m.current.ResponseDoneTime.IsZero() {
		return
	}
	m.current.ResponseDoneTime = time.Now()
	if !m.current.TranscriptTime.IsZero() {
		m.current.TotalLatency = m.current.ResponseDoneTime.Sub(m.current.TranscriptTime)
	}
	m.history = append(m.history, m.current)
	if len(m.history) > 100 {
		m.history = m.history[1:]
	}
	m.notify()
}

// Current returns the current metrics snapshot.
func (m *MetricsCollector) Current() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Turns returns how many turns have been archived.
func (m *MetricsCollector) Turns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

// Average returns average metrics over recent turns.
func (m *MetricsCollector) Average() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.history) == 0 {
		return Metrics{}
	}

	var avg Metrics
	for _, h := range m.history {
		avg.ReasoningLatency += h.ReasoningLatency
		avg.AudioLatency += h.AudioLatency
		avg.TotalLatency += h.TotalLatency
	}

	n := time.Duration(len(m.history))
	avg.ReasoningLatency /= n
	avg.AudioLatency /= n
	avg.TotalLatency /= n

	return avg
}

// notify calls the update callback if set.
// Must be called with mutex held.
func (m *MetricsCollector) notify() {
	if m.onUpdate != nil {
		metrics := m.current
		go m.onUpdate(metrics)
	}
}

// FormatLatency returns a formatted string of the turn latencies.
func (m *Metrics) FormatLatency() string {
	return formatDuration(m.ReasoningLatency) + " LLM | " +
		formatDuration(m.AudioLatency) + " AUDIO | " +
		formatDuration(m.TotalLatency) + " TOTAL"
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "---ms"
	}
	return d.Round(time.Millisecond).String()
}
