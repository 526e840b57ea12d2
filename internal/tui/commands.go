package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Asker sends a question to the backend.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// answerMsg carries the outcome of one backend exchange.
type answerMsg struct {
	question string
	answer   string
	err      error
}

// typingTickMsg advances the typing animation of generation gen.
type typingTickMsg struct {
	gen int
}

func askCmd(ctx context.Context, asker Asker, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := asker.Ask(ctx, question)
		return answerMsg{question: question, answer: answer, err: err}
	}
}

func typingTickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return typingTickMsg{gen: gen}
	})
}
