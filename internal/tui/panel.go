package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jask/docqa/internal/chat"
)

const (
	panelTitle   = "📄 Document QA Chatbot"
	loadingLabel = "🤖 Typing..."
	sendLabel    = " Send "
	inputPrompt  = "> "

	minPanelWidth  = 24
	minPanelHeight = 6
)

// panelLayout is the fixed geometry of the panel, relative to its top-left corner.
//
//	row 0            ╭─ title ──────[☾]─╮   header: drag handle and theme toggle
//	rows 1..body     │ messages         │
//	row body+1       ├──────────────────┤
//	row body+2       │ > input   [Send] │
//	row body+3       ╰──────────────────╯
type panelLayout struct {
	width, height int
	bodyHeight    int
	contentWidth  int
	inputWidth    int
	inputRow      int
	toggleStart   int
	toggleEnd     int
	sendStart     int
	sendEnd       int
}

func newPanelLayout(width, height int) panelLayout {
	if width < minPanelWidth {
		width = minPanelWidth
	}
	if height < minPanelHeight {
		height = minPanelHeight
	}
	l := panelLayout{width: width, height: height}
	l.bodyHeight = height - 4
	l.contentWidth = width - 4
	sendW := ansi.StringWidth(sendLabel)
	l.inputWidth = l.contentWidth - sendW - 1
	l.inputRow = height - 2
	l.toggleStart = width - 5
	l.toggleEnd = width - 2
	l.sendStart = 2 + l.inputWidth + 1
	l.sendEnd = l.sendStart + sendW
	return l
}

// hit regions, in panel-relative coordinates

func (l panelLayout) inPanel(x, y int) bool {
	return x >= 0 && x < l.width && y >= 0 && y < l.height
}

func (l panelLayout) onHeader(x, y int) bool {
	return y == 0 && x >= 0 && x < l.width
}

func (l panelLayout) onToggle(x, y int) bool {
	return y == 0 && x >= l.toggleStart && x < l.toggleEnd
}

func (l panelLayout) onSend(x, y int) bool {
	return y == l.inputRow && x >= l.sendStart && x < l.sendEnd
}

func (l panelLayout) inBody(x, y int) bool {
	return y >= 1 && y <= l.bodyHeight && x > 0 && x < l.width-1
}

// panelView is everything renderPanel needs.
type panelView struct {
	messages    []chat.Message
	loading     bool
	darkMode    bool
	sendEnabled bool
	input       string
	scroll      int
}

func renderPanel(l panelLayout, v panelView, st Styles) string {
	rows := make([]string, 0, l.height)
	rows = append(rows, renderHeader(l, v.darkMode, st))

	body := visibleBody(bodyLines(v.messages, v.loading, l.contentWidth, st), l.bodyHeight, v.scroll)
	side := st.Border.Render("│")
	pad := st.Body.Render(" ")
	for _, line := range body {
		rows = append(rows, side+pad+fill(line, l.contentWidth, st)+pad+side)
	}

	rows = append(rows, st.Border.Render("├"+strings.Repeat("─", l.width-2)+"┤"))

	send := st.SendOff.Render(sendLabel)
	if v.sendEnabled {
		send = st.Send.Render(sendLabel)
	}
	rows = append(rows, side+pad+fill(ansi.Truncate(v.input, l.inputWidth, ""), l.inputWidth, st)+pad+send+pad+side)
	rows = append(rows, st.Border.Render("╰"+strings.Repeat("─", l.width-2)+"╯"))
	return strings.Join(rows, "\n")
}

func renderHeader(l panelLayout, dark bool, st Styles) string {
	toggle := "[☾]"
	if dark {
		toggle = "[☀]"
	}
	// ╭─ + title + dashes + toggle + ─╮
	room := l.width - 2 - 2 - ansi.StringWidth(toggle)
	title := " " + panelTitle + " "
	if ansi.StringWidth(title) > room {
		title = ansi.Truncate(title, room, "")
	}
	dashes := room - ansi.StringWidth(title)
	if dashes < 0 {
		dashes = 0
	}
	return st.Border.Render("╭─") +
		st.Title.Render(title) +
		st.Border.Render(strings.Repeat("─", dashes)) +
		st.Toggle.Render(toggle) +
		st.Border.Render("─╮")
}

// bodyLines renders the whole conversation, oldest first.
func bodyLines(messages []chat.Message, loading bool, width int, st Styles) []string {
	var lines []string
	wrapWidth := width - 2
	if wrapWidth < 1 {
		wrapWidth = 1
	}
	for i, m := range messages {
		if i > 0 {
			lines = append(lines, "")
		}
		style := st.Bot
		if m.Role == chat.RoleUser {
			style = st.User
		}
		var text []string
		if m.Text != "" {
			text = strings.Split(ansi.Wrap(m.Text, wrapWidth, ""), "\n")
		}
		for _, t := range text {
			lines = append(lines, style.Render(align(m.Role, t, width)))
		}
		lines = append(lines, st.Timestamp.Render(align(m.Role, m.Time, width)))
	}
	if loading {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, st.Loading.Render(loadingLabel))
	}
	return lines
}

// align right-justifies user lines and left-justifies bot lines within width.
func align(role chat.Role, s string, width int) string {
	s = ansi.Truncate(s, width, "")
	gap := width - ansi.StringWidth(s)
	if gap <= 0 {
		return s
	}
	if role == chat.RoleUser {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// visibleBody returns exactly height lines ending scroll lines above the newest one.
func visibleBody(lines []string, height, scroll int) []string {
	end := len(lines) - clampScroll(scroll, len(lines), height)
	start := end - height
	if start < 0 {
		start = 0
	}
	out := append([]string(nil), lines[start:end]...)
	for len(out) < height {
		out = append(out, "")
	}
	return out
}

// clampScroll bounds a scroll offset so the window never runs past the oldest line.
func clampScroll(scroll, total, height int) int {
	maxScroll := total - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		return maxScroll
	}
	if scroll < 0 {
		return 0
	}
	return scroll
}

// fill pads a rendered line with body-styled spaces to width.
func fill(s string, width int, st Styles) string {
	s = ansi.Truncate(s, width, "")
	if gap := width - ansi.StringWidth(s); gap > 0 {
		s += st.Body.Render(strings.Repeat(" ", gap))
	}
	return s
}
