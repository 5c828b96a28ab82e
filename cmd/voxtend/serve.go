package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	applog "github.com/teslashibe/go-voxtend/internal/log"
	"github.com/teslashibe/go-voxtend/pkg/bridge"
	"github.com/teslashibe/go-voxtend/pkg/reminder"
	"github.com/teslashibe/go-voxtend/pkg/scheme"
	"github.com/teslashibe/go-voxtend/pkg/voice"
	"github.com/teslashibe/go-voxtend/pkg/web"
)

func serveCmd() *cobra.Command {
	var (
		port      string
		staticDir string
		debug     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and browser voice bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			logger := applog.L()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			catalog := scheme.Default()
			synth := speechProvider(ctx, cfg, logger)
			if synth != nil {
				defer synth.Close()
			}

			orch := voice.NewOrchestrator(reasoningProvider(cfg, logger), catalog, voiceOptions(cfg, logger)...)
			bridgeOpts := []bridge.Option{
				bridge.WithOrchestrator(orch),
				bridge.WithVoiceOptions(voiceOptions(cfg, logger)...),
				bridge.WithLogger(logger),
			}
			if synth != nil {
				bridgeOpts = append(bridgeOpts, bridge.WithSynthesizer(synth))
			}

			store, err := reminder.NewJSONStore(cfg.RemindersPath())
			if err != nil {
				return err
			}

			srv := web.NewServer(
				web.WithAddr(":"+cfg.Port),
				web.WithStaticDir(staticDir),
				web.WithDebug(debug),
				web.WithCatalog(catalog),
				web.WithReminders(store),
				web.WithSynthesizer(synth),
				web.WithBridge(bridge.NewHub(bridgeOpts...)),
				web.WithLogger(logger),
			)

			notifier, err := reminder.NewNotifier(store, srv.StatusHub(),
				reminder.WithSchedule(cfg.ReminderSchedule),
				reminder.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			notifier.Start()
			defer func() { <-notifier.Stop().Done() }()

			applog.Component("serve").Info("voxtend starting",
				"version", version,
				"port", cfg.Port,
				"reasoning", cfg.HasReasoning(),
				"server_tts", synth != nil,
				"next_reminder_check", notifier.Next(),
			)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP port (default from VOXTEND_PORT)")
	cmd.Flags().StringVar(&staticDir, "static", "", "directory with the browser front end")
	cmd.Flags().BoolVar(&debug, "debug", false, "log every request")
	return cmd
}
