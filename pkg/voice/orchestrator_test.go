package voice_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-voxtend/pkg/inference"
	"github.com/teslashibe/go-voxtend/pkg/language"
	"github.com/teslashibe/go-voxtend/pkg/scheme"
	"github.com/teslashibe/go-voxtend/pkg/voice"
)

func TestOrchestratorAnswersWithScheme(t *testing.T) {
	provider := inference.NewMock("**PM-KISAN** gives _income support_ to farmers.\n")
	o := voice.NewOrchestrator(provider, scheme.Default())

	resp := o.Handle(context.Background(), voice.Request{
		Transcript: "Tell me about PM-KISAN",
		Language:   language.MustGet("en"),
	})

	assert.Equal(t, "PM-KISAN gives income support to farmers.", resp.Text)
	require.NotNil(t, resp.Scheme)
	assert.Equal(t, "pm-kisan", resp.Scheme.ID)
	assert.False(t, resp.Fallback)
	assert.False(t, resp.Switched)
	assert.Equal(t, "en", resp.Language.Code)

	req := provider.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "en", req.Language)
	require.Len(t, req.Messages, 1)
	prompt := req.Messages[0].Content
	assert.Contains(t, prompt, "Tell me about PM-KISAN")
	assert.Contains(t, prompt, resp.Scheme.Name)
	assert.Contains(t, prompt, "Aadhaar Card")
	assert.Contains(t, prompt, "in English")
}

func TestOrchestratorDetectsScript(t *testing.T) {
	provider := inference.NewMock("उत्तर")
	o := voice.NewOrchestrator(provider, scheme.Default())

	resp := o.Handle(context.Background(), voice.Request{
		Transcript: "किसान योजना के बारे में बताइए",
		Language:   language.MustGet("en"),
	})

	assert.True(t, resp.Switched)
	assert.Equal(t, "hi", resp.Language.Code)
	assert.Equal(t, "hi", provider.LastRequest().Language)
	assert.Contains(t, provider.LastRequest().Messages[0].Content, "in Hindi")
}

func TestOrchestratorLatinKeepsLanguage(t *testing.T) {
	o := voice.NewOrchestrator(inference.NewMock("ok"), scheme.Default())

	resp := o.Handle(context.Background(), voice.Request{
		Transcript: "pension",
		Language:   language.MustGet("ta"),
	})

	assert.False(t, resp.Switched)
	assert.Equal(t, "ta", resp.Language.Code)
}

func TestOrchestratorBoundsHistory(t *testing.T) {
	provider := inference.NewMock("ok")
	o := voice.NewOrchestrator(provider, scheme.Default())

	var history []voice.Turn
	for i := 1; i <= 8; i++ {
		role := voice.RoleUser
		if i%2 == 0 {
			role = voice.RoleAssistant
		}
		history = append(history, voice.Turn{Role: role, Text: fmt.Sprintf("turn-%d", i)})
	}

	o.Handle(context.Background(), voice.Request{
		Transcript: "hello",
		Language:   language.MustGet("en"),
		History:    history,
	})

	prompt := provider.LastRequest().Messages[0].Content
	for i := 1; i <= 3; i++ {
		assert.NotContains(t, prompt, fmt.Sprintf("turn-%d\n", i))
	}
	assert.Contains(t, prompt, "Assistant: turn-4\n")
	assert.Contains(t, prompt, "User: turn-5\n")
	assert.Contains(t, prompt, "Assistant: turn-8\n")
}

func TestOrchestratorFallback(t *testing.T) {
	tests := []struct {
		name     string
		provider inference.Provider
		opts     []voice.Option
	}{
		{"network error", inference.WithError(errors.New("dial tcp: connection refused")), nil},
		{"missing credentials", inference.WithError(inference.ErrNoAPIKey), nil},
		{"empty answer", inference.NewMock("  ** __ "), nil},
		{"no provider", nil, nil},
		{
			name: "timeout",
			provider: &inference.Mock{
				ChatFunc: func(ctx context.Context, _ *inference.ChatRequest) (*inference.ChatResponse, error) {
					<-ctx.Done()
					return nil, ctx.Err()
				},
			},
			opts: []voice.Option{voice.WithOrchestrationTimeout(20 * time.Millisecond)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := voice.NewOrchestrator(tt.provider, scheme.Default(), tt.opts...)

			resp := o.Handle(context.Background(), voice.Request{
				Transcript: "Tell me about PM-KISAN",
				Language:   language.MustGet("hi"),
			})

			assert.Equal(t, language.Fallback("hi"), resp.Text)
			assert.Nil(t, resp.Scheme)
			assert.True(t, resp.Fallback)
		})
	}
}

func TestOrchestratorTimeoutIgnoredContext(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	provider := &inference.Mock{
		ChatFunc: func(context.Context, *inference.ChatRequest) (*inference.ChatResponse, error) {
			<-release
			return &inference.ChatResponse{Message: inference.NewAssistantMessage("too late")}, nil
		},
	}
	o := voice.NewOrchestrator(provider, scheme.Default(), voice.WithOrchestrationTimeout(30*time.Millisecond))

	start := time.Now()
	resp := o.Handle(context.Background(), voice.Request{
		Transcript: "Tell me about PM-KISAN",
		Language:   language.MustGet("en"),
	})

	assert.True(t, resp.Fallback)
	assert.Equal(t, language.Fallback("en"), resp.Text)
	assert.Less(t, time.Since(start), time.Second)
}

func TestBuildPrompt(t *testing.T) {
	s, err := scheme.Default().Get("ujjwala")
	require.NoError(t, err)

	prompt := voice.BuildPrompt(
		[]voice.Turn{
			{Role: voice.RoleUser, Text: "I need gas"},
			{Role: voice.RoleAssistant, Text: "Which state?"},
		},
		"Telangana",
		s,
		language.MustGet("te"),
	)

	assert.Contains(t, prompt, "User: I need gas\nAssistant: Which state?\n")
	assert.Contains(t, prompt, "User question: Telangana")
	assert.Contains(t, prompt, s.Name)
	for _, e := range s.Eligibility {
		assert.Contains(t, prompt, "- "+e)
	}
	assert.True(t, strings.HasSuffix(prompt, "in Telugu, suitable for reading aloud."))

	bare := voice.BuildPrompt(nil, "hello", nil, language.MustGet("en"))
	assert.NotContains(t, bare, "Conversation so far")
	assert.NotContains(t, bare, "Relevant scheme")
}

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"**bold** and _italic_", "bold and italic"},
		{"  \n*list item*\n ", "list item"},
		{"__", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, voice.Clean(tt.in), tt.in)
	}
}
