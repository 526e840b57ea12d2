package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jask/docqa/internal/askclient"
	"github.com/jask/docqa/internal/chat"
	"github.com/jask/docqa/internal/tui"
)

func newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the chat panel against a running backend",
		Args:  cobra.NoArgs,
		RunE:  runChat,
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg.Log, true)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client := askclient.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	log.Info().Str("backend", client.BaseURL()).Msg("starting chat")

	model := tui.New(ctx, client, tui.Options{
		Start:          chat.Position{X: cfg.UI.PanelX, Y: cfg.UI.PanelY},
		PanelWidth:     cfg.UI.PanelWidth,
		PanelHeight:    cfg.UI.PanelHeight,
		TypingInterval: cfg.UI.TypingInterval,
		TimeFormat:     cfg.UI.TimeFormat,
		DarkMode:       cfg.UI.DarkMode,
		BackendLabel:   client.BaseURL(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run ui")
	}
	return nil
}
