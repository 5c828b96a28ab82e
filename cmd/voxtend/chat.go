package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teslashibe/go-voxtend/internal/console"
	applog "github.com/teslashibe/go-voxtend/internal/log"
	"github.com/teslashibe/go-voxtend/pkg/scheme"
	"github.com/teslashibe/go-voxtend/pkg/voice"
)

func chatCmd() *cobra.Command {
	var (
		lang        string
		listen      bool
		serverAudio bool
		echoSpeech  bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant in the terminal",
		Long: `Start a conversation in the terminal. Typed lines are questions.

Commands:
  /listen        treat the next line as recognized speech
  /lang <code>   switch language (en, hi, te, ta, ...)
  /stop          stop speaking
  /history       show the conversation
  /quit          exit

With --listen every line goes through the speech recognition path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := applog.L()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := append(voiceOptions(cfg, logger), voice.WithLanguage(lang))
			if serverAudio {
				if synth := speechProvider(ctx, cfg, logger); synth != nil {
					defer synth.Close()
					opts = append(opts, voice.WithSynthesizer(synth))
				}
			}

			var speech io.Writer = io.Discard
			if echoSpeech {
				speech = cmd.OutOrStdout()
			}

			rec := console.NewRecognizer()
			orch := voice.NewOrchestrator(reasoningProvider(cfg, logger), scheme.Default(), opts...)
			sess, err := voice.NewSession(rec, console.NewSpeaker(speech), orch, opts...)
			if err != nil {
				return err
			}
			defer sess.Close()

			return runChat(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), sess, rec, listen)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "language code")
	cmd.Flags().BoolVar(&listen, "listen", false, "route every line through speech recognition")
	cmd.Flags().BoolVar(&serverAudio, "server-audio", false, "synthesize replies with the configured TTS providers")
	cmd.Flags().BoolVar(&echoSpeech, "echo-speech", false, "print what would be spoken")
	return cmd
}

// runChat drives a session from terminal lines until ctx ends or input closes.
func runChat(ctx context.Context, in io.Reader, out io.Writer, sess *voice.Session, rec *console.Recognizer, listen bool) error {
	unsub := sess.Subscribe(func(e voice.Event) {
		switch e.Type {
		case voice.EventTurn:
			if e.Turn.Role == voice.RoleAssistant {
				fmt.Fprintf(out, "assistant> %s\n", e.Turn.Text)
			}
		case voice.EventNotice:
			fmt.Fprintf(out, "! %s\n", e.Notice.Text)
		}
	})
	defer unsub()

	if err := sess.Start(ctx); err != nil {
		return err
	}

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	for {
		if listen && !rec.Listening() {
			if err := sess.StartListening(); err != nil && !errors.Is(err, voice.ErrAlreadyListening) {
				fmt.Fprintf(out, "! %v\n", err)
			}
		}

		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(l)
		}
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := chatCommand(out, sess, line); quit {
				return nil
			}
			continue
		}

		if rec.Deliver(line) {
			continue
		}
		if _, err := sess.Submit(ctx, line); err != nil {
			fmt.Fprintf(out, "! %v\n", err)
		}
	}
}

// chatCommand handles a slash command and reports whether to quit.
func chatCommand(out io.Writer, sess *voice.Session, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true
	case "/listen":
		if err := sess.StartListening(); err != nil {
			fmt.Fprintf(out, "! %v\n", err)
		}
	case "/stop":
		sess.StopSpeaking()
		sess.StopListening()
	case "/lang":
		if len(fields) < 2 {
			fmt.Fprintf(out, "! usage: /lang <code>\n")
			return false
		}
		if err := sess.SetLanguage(fields[1]); err != nil {
			fmt.Fprintf(out, "! %v\n", err)
		}
	case "/history":
		for _, t := range sess.Log().All() {
			fmt.Fprintf(out, "%s [%s] %s\n", t.Timestamp.Format("15:04:05"), t.Role, t.Text)
		}
	default:
		fmt.Fprintf(out, "! unknown command %s\n", fields[0])
	}
	return false
}
