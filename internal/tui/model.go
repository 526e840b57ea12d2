// Package tui is the full-screen terminal front end of the chat panel. It translates
// keyboard and mouse events into chat.Widget operations and draws the panel floating
// over a themed backdrop.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"

	"github.com/jask/docqa/internal/chat"
)

// Options configures a Model.
type Options struct {
	Start          chat.Position
	PanelWidth     int
	PanelHeight    int
	TypingInterval time.Duration
	TimeFormat     string
	DarkMode       bool
	BackendLabel   string
	Clock          chat.Clock
}

// Model is the bubbletea model wrapping a chat.Widget.
type Model struct {
	ctx      context.Context
	asker    Asker
	widget   *chat.Widget
	input    textinput.Model
	keys     *KeyRegistry
	layout   panelLayout
	interval time.Duration
	label    string

	width  int
	height int
	scroll int
}

func New(ctx context.Context, asker Asker, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	interval := opts.TypingInterval
	if interval <= 0 {
		interval = 20 * time.Millisecond
	}
	layout := newPanelLayout(opts.PanelWidth, opts.PanelHeight)

	ti := textinput.New()
	ti.Prompt = inputPrompt
	ti.Placeholder = "Ask a question..."
	ti.CharLimit = 1000
	ti.Focus()

	return &Model{
		ctx:   ctx,
		asker: asker,
		widget: chat.New(opts.Start,
			chat.WithClock(opts.Clock),
			chat.WithTimeFormat(opts.TimeFormat),
			chat.WithDarkMode(opts.DarkMode),
		),
		input:    ti,
		keys:     NewKeyRegistry(),
		layout:   layout,
		interval: interval,
		label:    opts.BackendLabel,
	}
}

// Widget exposes the underlying state, mainly for tests.
func (m *Model) Widget() *chat.Widget { return m.widget }

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case answerMsg:
		if msg.err != nil {
			log.Error().Err(msg.err).Str("question", msg.question).Msg("ask failed")
		}
		gen := m.widget.Deliver(msg.answer, msg.err)
		m.scroll = 0
		return m, typingTickCmd(m.interval, gen)
	case typingTickMsg:
		m.scroll = 0
		if m.widget.Tick(msg.gen) {
			return m, typingTickCmd(m.interval, msg.gen)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg, scopePanel) {
	case actionQuit:
		return m, tea.Quit
	case actionSend:
		return m, m.send()
	case actionToggleTheme:
		m.widget.ToggleTheme()
		return m, nil
	case actionScrollUp:
		m.scrollBy(m.layout.bodyHeight / 2)
		return m, nil
	case actionScrollDown:
		m.scrollBy(-m.layout.bodyHeight / 2)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send submits the current input. Blank input and input while a request is
// outstanding leave everything untouched.
func (m *Model) send() tea.Cmd {
	question, ok := m.widget.Submit(m.input.Value())
	if !ok {
		return nil
	}
	m.input.SetValue("")
	m.scroll = 0
	log.Debug().Str("question", question).Msg("asking backend")
	return askCmd(m.ctx, m.asker, question)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	pos := m.widget.Position()
	pointer := chat.Position{X: msg.X, Y: msg.Y}
	rel := pointer.Sub(pos)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			switch {
			case m.layout.onToggle(rel.X, rel.Y):
				m.widget.ToggleTheme()
			case m.layout.onSend(rel.X, rel.Y):
				return m.send()
			case m.layout.onHeader(rel.X, rel.Y):
				m.widget.BeginDrag(pointer)
			}
		case tea.MouseButtonWheelUp:
			if m.layout.inBody(rel.X, rel.Y) {
				m.scrollBy(1)
			}
		case tea.MouseButtonWheelDown:
			if m.layout.inBody(rel.X, rel.Y) {
				m.scrollBy(-1)
			}
		}
	case tea.MouseActionMotion:
		m.widget.MoveDrag(pointer)
	case tea.MouseActionRelease:
		m.widget.EndDrag()
	}
	return nil
}

// scrollBy moves the body window by delta lines; positive scrolls toward older messages.
func (m *Model) scrollBy(delta int) {
	total := len(bodyLines(m.widget.Messages(), m.widget.Loading(), m.layout.contentWidth, NewStyles(lightPalette)))
	m.scroll = clampScroll(m.scroll+delta, total, m.layout.bodyHeight)
}

func (m *Model) View() string {
	st := NewStyles(PaletteFor(m.widget.DarkMode()))
	panel := renderPanel(m.layout, panelView{
		messages:    m.widget.Messages(),
		loading:     m.widget.Loading(),
		darkMode:    m.widget.DarkMode(),
		sendEnabled: m.widget.SendEnabled(),
		input:       m.input.View(),
		scroll:      m.scroll,
	}, st)

	if m.width <= 0 || m.height <= 0 {
		return panel
	}
	base := m.backdrop(st)
	pos := m.widget.Position()
	return overlayAt(base, panel, pos.X, pos.Y, m.width, m.height)
}

// backdrop fills the screen with the theme background and puts the key help on the last row.
func (m *Model) backdrop(st Styles) string {
	blank := st.Screen.Render(strings.Repeat(" ", m.width))
	rows := make([]string, m.height)
	for i := range rows {
		rows[i] = blank
	}
	rows[m.height-1] = st.Footer.Render(padRightANSI(m.footer(), m.width))
	return strings.Join(rows, "\n")
}

func (m *Model) footer() string {
	var parts []string
	for _, b := range m.keys.HelpBindings(scopePanel) {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "drag title to move")
	line := " " + strings.Join(parts, " • ")
	if m.label != "" {
		line += "  ·  " + m.label
	}
	return ansi.Truncate(line, m.width, "…")
}
