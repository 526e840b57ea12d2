package tui

import "github.com/charmbracelet/lipgloss"

// Palette is one set of semantic colors. Light is Catppuccin Latte, dark is Catppuccin Mocha.
// https://catppuccin.com/palette
type Palette struct {
	Name    string
	Base    lipgloss.Color
	Surface lipgloss.Color
	Border  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	User    lipgloss.Color
	Bot     lipgloss.Color
	Error   lipgloss.Color
}

var (
	lightPalette = Palette{
		Name:    "light",
		Base:    "#eff1f5",
		Surface: "#ccd0da",
		Border:  "#9ca0b0",
		Text:    "#4c4f69",
		Muted:   "#8c8fa1",
		Accent:  "#1e66f5",
		User:    "#8839ef",
		Bot:     "#179299",
		Error:   "#d20f39",
	}
	darkPalette = Palette{
		Name:    "dark",
		Base:    "#1e1e2e",
		Surface: "#313244",
		Border:  "#585b70",
		Text:    "#cdd6f4",
		Muted:   "#a6adc8",
		Accent:  "#89b4fa",
		User:    "#cba6f7",
		Bot:     "#94e2d5",
		Error:   "#f38ba8",
	}
)

// PaletteFor returns the palette for the current theme flag.
func PaletteFor(dark bool) Palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// Styles are the lipgloss styles derived from a palette.
type Styles struct {
	Screen    lipgloss.Style
	Border    lipgloss.Style
	Title     lipgloss.Style
	Toggle    lipgloss.Style
	Body      lipgloss.Style
	User      lipgloss.Style
	Bot       lipgloss.Style
	Timestamp lipgloss.Style
	Loading   lipgloss.Style
	Send      lipgloss.Style
	SendOff   lipgloss.Style
	Footer    lipgloss.Style
}

func NewStyles(p Palette) Styles {
	panel := lipgloss.NewStyle().Background(p.Surface)
	return Styles{
		Screen:    lipgloss.NewStyle().Background(p.Base),
		Border:    panel.Foreground(p.Border),
		Title:     panel.Foreground(p.Text).Bold(true),
		Toggle:    panel.Foreground(p.Accent).Bold(true),
		Body:      panel.Foreground(p.Text),
		User:      panel.Foreground(p.User),
		Bot:       panel.Foreground(p.Bot),
		Timestamp: panel.Foreground(p.Muted).Faint(true),
		Loading:   panel.Foreground(p.Muted).Italic(true),
		Send:      lipgloss.NewStyle().Foreground(p.Base).Background(p.Accent).Bold(true),
		SendOff:   lipgloss.NewStyle().Foreground(p.Muted).Background(p.Border),
		Footer:    lipgloss.NewStyle().Foreground(p.Muted).Background(p.Base),
	}
}
