package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jask/docqa/internal/config"
)

var configPath string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "docqa",
		Short:         "Ask questions about a folder of documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runChat,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default $DOCQA_CONFIG or ~/.config/docqa/config.toml)")

	root.AddCommand(newChatCommand(), newServeCommand(), newIngestCommand(), newConfigCommand(), newKeyCommand())
	return root
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, errors.Wrap(err, "config")
	}
	return cfg, nil
}

// setupLogging points the global logger at the log file (for the full-screen UI,
// which owns the terminal) or at a console writer on stderr.
func setupLogging(cfg config.LogConfig, toFile bool) (func(), error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !toFile {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return func() {}, nil
	}
	if cfg.File == "" {
		log.Logger = zerolog.Nop()
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, errors.Wrap(err, "mkdir log dir")
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}
