// voxtend: voice-enabled multilingual welfare-scheme assistant.
//
// Usage:
//
//	voxtend serve                 # HTTP API, browser voice bridge, reminders
//	voxtend chat --lang hi        # terminal conversation
//	voxtend schemes --category Healthcare
//	voxtend reminders add pm-kisan
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teslashibe/go-voxtend/internal/config"
	applog "github.com/teslashibe/go-voxtend/internal/log"
)

var version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "voxtend",
		Short:         "Voice assistant for government welfare schemes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applog.Init(resolveLogLevel(cfg, logLevel, cmd.Flags().Changed("log-level")))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(serveCmd(), chatCmd(), schemesCmd(), remindersCmd())
	return root
}

// resolveLogLevel prefers an explicit --log-level over VOXTEND_LOG_LEVEL.
func resolveLogLevel(cfg *config.Config, flagValue string, flagSet bool) string {
	if flagSet && flagValue != "" {
		return flagValue
	}
	return cfg.LogLevel
}

// loadConfig reads .env and the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
