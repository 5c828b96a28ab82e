package voice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/teslashibe/go-voxtend/internal/metrics"
	"github.com/teslashibe/go-voxtend/pkg/inference"
	"github.com/teslashibe/go-voxtend/pkg/language"
	"github.com/teslashibe/go-voxtend/pkg/scheme"
)

// Request is one transcript to answer.
type Request struct {
	Transcript string
	Language   language.Language
	History    []Turn
}

// Response is the orchestrated answer. Scheme is nil when no scheme matched
// or when Fallback is set.
type Response struct {
	Text     string
	Scheme   *scheme.Scheme
	Language language.Language
	Switched bool
	Fallback bool
}

// Orchestrator turns a transcript into an assistant answer.
type Orchestrator struct {
	provider     inference.Provider
	catalog      *scheme.Catalog
	timeout      time.Duration
	historyTurns int
	logger       *slog.Logger
}

// NewOrchestrator creates an orchestrator. provider may be nil, in which
// case every request is answered with the fallback text.
func NewOrchestrator(provider inference.Provider, catalog *scheme.Catalog, opts ...Option) *Orchestrator {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	if catalog == nil {
		catalog = scheme.Default()
	}
	return &Orchestrator{
		provider:     provider,
		catalog:      catalog,
		timeout:      cfg.OrchestrationTimeout,
		historyTurns: cfg.HistoryTurns,
		logger:       cfg.Logger.With("component", "voice.orchestrator"),
	}
}

// Handle answers req. It never fails: any error yields the localized
// fallback text for the target language.
func (o *Orchestrator) Handle(ctx context.Context, req Request) Response {
	start := time.Now()
	defer func() {
		metrics.OrchestrationDuration.Observe(time.Since(start).Seconds())
	}()

	resp := Response{Language: req.Language}
	if detected, ok := language.DetectScript(req.Transcript); ok && detected.Code != req.Language.Code {
		resp.Language = detected
		resp.Switched = true
	}

	matched := o.catalog.Match(req.Transcript)

	if o.provider == nil {
		return o.fallback(resp, inference.ErrProviderUnavailable)
	}

	history := req.History
	if len(history) > o.historyTurns {
		history = history[len(history)-o.historyTurns:]
	}
	prompt := BuildPrompt(history, req.Transcript, matched, resp.Language)

	out, err := o.chat(ctx, &inference.ChatRequest{
		Messages: []inference.Message{inference.NewUserMessage(prompt)},
		Language: resp.Language.Code,
	})
	if err != nil {
		return o.fallback(resp, err)
	}

	text := Clean(out.Message.Content)
	if text == "" {
		return o.fallback(resp, inference.ErrEmptyResponse)
	}

	metrics.OrchestrationOutcomes.WithLabelValues("ok").Inc()
	o.logger.Debug("answered",
		"lang", resp.Language.Code,
		"switched", resp.Switched,
		"scheme", schemeID(matched),
		"latency_ms", time.Since(start).Milliseconds(),
	)

	resp.Text = text
	resp.Scheme = matched
	return resp
}

type chatResult struct {
	out *inference.ChatResponse
	err error
}

// chat calls the provider and gives up after the orchestration timeout even
// if the provider ignores its context.
func (o *Orchestrator) chat(ctx context.Context, req *inference.ChatRequest) (*inference.ChatResponse, error) {
	cctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	done := make(chan chatResult, 1)
	go func() {
		out, err := o.provider.Chat(cctx, req)
		done <- chatResult{out: out, err: err}
	}()

	select {
	case r := <-done:
		return r.out, r.err
	case <-cctx.Done():
		return nil, cctx.Err()
	}
}

func (o *Orchestrator) fallback(resp Response, err error) Response {
	metrics.OrchestrationOutcomes.WithLabelValues("fallback").Inc()
	o.logger.Warn("using fallback answer", "error", err, "lang", resp.Language.Code)
	resp.Text = language.Fallback(resp.Language.Code)
	resp.Scheme = nil
	resp.Fallback = true
	return resp
}

// BuildPrompt assembles the reasoning prompt from recent history, the
// transcript and the matched scheme.
func BuildPrompt(history []Turn, transcript string, matched *scheme.Scheme, lang language.Language) string {
	var b strings.Builder
	b.WriteString("You are VOXTEND, an assistant that helps citizens of India understand government welfare schemes.\n")

	if len(history) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, t := range history {
			speaker := "User"
			if t.Role == RoleAssistant {
				speaker = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", speaker, t.Text)
		}
	}

	fmt.Fprintf(&b, "\nUser question: %s\n", transcript)

	if matched != nil {
		fmt.Fprintf(&b, "\nRelevant scheme: %s\n%s\n", matched.Name, matched.Description)
		if len(matched.Eligibility) > 0 {
			b.WriteString("Eligibility:\n")
			for _, e := range matched.Eligibility {
				fmt.Fprintf(&b, "- %s\n", e)
			}
		}
		if docs := matched.DocumentNames(); len(docs) > 0 {
			fmt.Fprintf(&b, "Required documents: %s\n", strings.Join(docs, ", "))
		}
	}

	fmt.Fprintf(&b, "\nAnswer briefly and clearly in %s, suitable for reading aloud.", lang.Name)
	return b.String()
}

// Clean strips emphasis markup and surrounding whitespace.
func Clean(text string) string {
	return strings.TrimSpace(strings.NewReplacer("*", "", "_", "").Replace(text))
}

func schemeID(s *scheme.Scheme) string {
	if s == nil {
		return ""
	}
	return s.ID
}
