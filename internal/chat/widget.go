// Package chat holds the state of the floating question/answer panel: where it sits,
// what has been said, whether a request is in flight and which theme is active.
// It has no I/O; the terminal program drives it with events and timer ticks.
package chat

import (
	"strings"
	"time"
)

// ErrorReply is typed out in place of an answer whenever the backend exchange fails.
const ErrorReply = "❌ Error contacting backend."

// Widget owns every piece of panel state.
type Widget struct {
	log        Log
	drag       *DragController
	typer      Typer
	loading    bool
	darkMode   bool
	clock      Clock
	timeFormat string
}

// Option customizes a Widget.
type Option func(*Widget)

func WithClock(c Clock) Option {
	return func(w *Widget) {
		if c != nil {
			w.clock = c
		}
	}
}

func WithTimeFormat(layout string) Option {
	return func(w *Widget) {
		if strings.TrimSpace(layout) != "" {
			w.timeFormat = layout
		}
	}
}

func WithDarkMode(on bool) Option {
	return func(w *Widget) { w.darkMode = on }
}

func New(start Position, opts ...Option) *Widget {
	w := &Widget{
		drag:       NewDragController(start),
		clock:      time.Now,
		timeFormat: DefaultTimeFormat,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Widget) Messages() []Message { return w.log.Messages() }
func (w *Widget) Loading() bool        { return w.loading }
func (w *Widget) DarkMode() bool       { return w.darkMode }
func (w *Widget) Position() Position   { return w.drag.Position() }
func (w *Widget) Dragging() bool       { return w.drag.Dragging() }
func (w *Widget) SendEnabled() bool    { return !w.loading }

// TypingGeneration identifies the most recent typing animation.
func (w *Widget) TypingGeneration() int { return w.typer.Generation() }

// LastMessage returns the newest log entry.
func (w *Widget) LastMessage() (Message, bool) { return w.log.Last() }

// BeginDrag starts moving the panel with the pointer.
func (w *Widget) BeginDrag(pointer Position) { w.drag.Begin(pointer) }

// MoveDrag follows the pointer while a drag is active.
func (w *Widget) MoveDrag(pointer Position) bool { return w.drag.Move(pointer) }

func (w *Widget) EndDrag() { w.drag.End() }

// Submit validates the input and, when accepted, appends the user message and enters
// the loading state. The returned question is what should be sent to the backend.
// Blank input and input arriving while a request is outstanding are rejected.
func (w *Widget) Submit(input string) (question string, ok bool) {
	if w.loading || strings.TrimSpace(input) == "" {
		return "", false
	}
	w.log.Append(Message{Role: RoleUser, Text: input, Time: w.now()})
	w.loading = true
	return input, true
}

// Deliver starts typing the backend result. A non-nil err replaces the answer with ErrorReply.
// It returns the generation the caller must pass to Tick.
func (w *Widget) Deliver(answer string, err error) int {
	if err != nil {
		answer = ErrorReply
	}
	return w.StartTyping(answer)
}

// StartTyping appends an empty bot message and begins revealing text into it.
func (w *Widget) StartTyping(text string) int {
	w.log.Append(Message{Role: RoleBot, Time: w.now()})
	w.loading = true
	return w.typer.Start(text)
}

// Tick reveals the next rune of the active animation. more reports whether another tick
// should be scheduled. Ticks from a finished or superseded animation are dropped.
func (w *Widget) Tick(gen int) (more bool) {
	revealed, done, ok := w.typer.Tick(gen)
	if !ok {
		return false
	}
	w.log.SetLastText(revealed)
	if done {
		w.loading = false
		return false
	}
	return true
}

// ToggleTheme flips dark mode and returns the new value.
func (w *Widget) ToggleTheme() bool {
	w.darkMode = !w.darkMode
	return w.darkMode
}

func (w *Widget) now() string {
	return w.clock().Format(w.timeFormat)
}
