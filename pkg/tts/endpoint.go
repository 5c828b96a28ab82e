package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/teslashibe/go-voxtend/internal/httpc"
)

const providerEndpoint = "endpoint"

// Endpoint implements Provider against a speech server that accepts
// POST {"text": ..., "lang": ...} and answers with audio bytes
// (for example a gTTS sidecar at http://localhost:5000/api/tts).
type Endpoint struct {
	url    string
	config *Config
	client *http.Client
	logger *slog.Logger
}

// NewEndpoint creates an endpoint provider. The URL is taken from WithBaseURL.
func NewEndpoint(opts ...Option) (*Endpoint, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if cfg.BaseURL == "" {
		return nil, WrapError(providerEndpoint, ErrNoEndpoint)
	}

	return &Endpoint{
		url:    cfg.BaseURL,
		config: cfg,
		client: httpc.NewClient(cfg.Timeout),
		logger: cfg.Logger.With("component", "tts.endpoint"),
	}, nil
}

// Synthesize posts the text and language and returns the audio body.
func (e *Endpoint) Synthesize(ctx context.Context, req *Request) (*AudioResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, WrapError(providerEndpoint, ErrEmptyText)
	}
	start := time.Now()

	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	body, err := json.Marshal(map[string]string{"text": req.Text, "lang": lang})
	if err != nil {
		return nil, WrapError(providerEndpoint, fmt.Errorf("marshal payload: %w", err))
	}

	resp, err := httpc.PostJSON(ctx, e.client, e.url, body)
	if err != nil {
		return nil, WrapError(providerEndpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
			Provider:   providerEndpoint,
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(providerEndpoint, fmt.Errorf("read response: %w", err))
	}
	if len(audio) == 0 {
		return nil, WrapError(providerEndpoint, ErrEmptyAudio)
	}

	enc := EncodingFromMIME(resp.Header.Get("Content-Type"))
	latency := time.Since(start).Milliseconds()

	e.logger.Debug("synthesized audio",
		"lang", lang,
		"chars", len(req.Text),
		"bytes", len(audio),
		"latency_ms", latency,
	)

	return &AudioResult{
		Audio:     audio,
		Encoding:  enc,
		MIME:      enc.MIME(),
		CharCount: len([]rune(req.Text)),
		LatencyMs: latency,
	}, nil
}

// Health reports whether the endpoint accepts connections.
// Any HTTP answer counts as reachable.
func (e *Endpoint) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodOptions, e.url, nil)
	if err != nil {
		return WrapError(providerEndpoint, err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return WrapError(providerEndpoint, fmt.Errorf("health check: %w", err))
	}
	resp.Body.Close()
	return nil
}

// Close releases resources held by the provider.
func (e *Endpoint) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

// Verify Endpoint implements Provider at compile time.
var _ Provider = (*Endpoint)(nil)
