package chat

import (
	"errors"
	"testing"
	"time"
)

func fixedClock() Clock {
	return func() time.Time { return time.Date(2026, 3, 2, 9, 41, 0, 0, time.UTC) }
}

func drain(t *testing.T, w *Widget, gen int) int {
	t.Helper()
	ticks := 1
	for w.Tick(gen) {
		ticks++
		if ticks > 10000 {
			t.Fatalf("animation did not finish")
		}
	}
	return ticks
}

func TestSubmitBlankIsNoop(t *testing.T) {
	w := New(Position{}, WithClock(fixedClock()))
	for _, in := range []string{"", "   ", "\t\n"} {
		if _, ok := w.Submit(in); ok {
			t.Fatalf("expected %q to be rejected", in)
		}
	}
	if len(w.Messages()) != 0 {
		t.Fatalf("expected empty log, got %d messages", len(w.Messages()))
	}
	if w.Loading() {
		t.Fatalf("did not expect loading after blank submit")
	}
}

func TestSubmitThenAnswerAppendsUserThenBot(t *testing.T) {
	w := New(Position{}, WithClock(fixedClock()))
	q, ok := w.Submit("What is the notice period?")
	if !ok || q != "What is the notice period?" {
		t.Fatalf("expected submit to be accepted, got %q %v", q, ok)
	}
	if !w.Loading() || w.SendEnabled() {
		t.Fatalf("expected send disabled while loading")
	}
	gen := w.Deliver("30 days", nil)
	drain(t, w, gen)

	msgs := w.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleUser || msgs[0].Text != "What is the notice period?" || msgs[0].Time != "09:41" {
		t.Fatalf("unexpected user message: %+v", msgs[0])
	}
	if msgs[1].Role != RoleBot || msgs[1].Text != "30 days" {
		t.Fatalf("unexpected bot message: %+v", msgs[1])
	}
	if w.Loading() {
		t.Fatalf("expected loading cleared after animation")
	}
}

func TestSubmitRejectedWhileLoading(t *testing.T) {
	w := New(Position{})
	if _, ok := w.Submit("first"); !ok {
		t.Fatalf("expected first submit accepted")
	}
	if _, ok := w.Submit("second"); ok {
		t.Fatalf("expected second submit rejected while request outstanding")
	}
	gen := w.Deliver("answer", nil)
	w.Tick(gen)
	if _, ok := w.Submit("third"); ok {
		t.Fatalf("expected submit rejected while typing")
	}
	drain(t, w, gen)
	if _, ok := w.Submit("fourth"); !ok {
		t.Fatalf("expected submit accepted after typing finished")
	}
	if got := len(w.Messages()); got != 3 {
		t.Fatalf("expected 3 messages, got %d", got)
	}
}

func TestDeliverErrorTypesFallback(t *testing.T) {
	w := New(Position{})
	w.Submit("hello")
	gen := w.Deliver("ignored", errors.New("dial tcp: connection refused"))
	drain(t, w, gen)
	last, _ := w.LastMessage()
	if last.Text != ErrorReply {
		t.Fatalf("expected fallback reply, got %q", last.Text)
	}
}

func TestTypingRevealsOneRunePerTick(t *testing.T) {
	w := New(Position{})
	w.Submit("q")
	gen := w.Deliver("héllo ❌", nil)
	want := []rune("héllo ❌")
	for i := 1; i <= len(want); i++ {
		more := w.Tick(gen)
		last, _ := w.LastMessage()
		if last.Text != string(want[:i]) {
			t.Fatalf("tick %d: expected %q, got %q", i, string(want[:i]), last.Text)
		}
		if i < len(want) && !more {
			t.Fatalf("tick %d: expected more ticks", i)
		}
		if i == len(want) && more {
			t.Fatalf("expected animation to stop on final tick")
		}
	}
	if w.Loading() {
		t.Fatalf("expected loading cleared")
	}
}

func TestTypingEmptyAnswerFinishesOnFirstTick(t *testing.T) {
	w := New(Position{})
	w.Submit("q")
	gen := w.Deliver("", nil)
	if !w.Loading() {
		t.Fatalf("expected loading until first tick")
	}
	if w.Tick(gen) {
		t.Fatalf("expected empty answer to finish immediately")
	}
	if w.Loading() {
		t.Fatalf("expected loading cleared")
	}
	last, _ := w.LastMessage()
	if last.Role != RoleBot || last.Text != "" {
		t.Fatalf("unexpected bot message %+v", last)
	}
}

func TestStaleTickIgnored(t *testing.T) {
	w := New(Position{})
	w.Submit("q")
	gen := w.Deliver("abc", nil)
	drain(t, w, gen)
	if w.Tick(gen) {
		t.Fatalf("expected finished generation to be dropped")
	}
	if w.Tick(gen + 1) {
		t.Fatalf("expected unknown generation to be dropped")
	}
	last, _ := w.LastMessage()
	if last.Text != "abc" {
		t.Fatalf("expected text untouched, got %q", last.Text)
	}
}

func TestToggleTheme(t *testing.T) {
	w := New(Position{}, WithDarkMode(true))
	if w.ToggleTheme() {
		t.Fatalf("expected dark mode off after toggle")
	}
	if !w.ToggleTheme() || !w.DarkMode() {
		t.Fatalf("expected dark mode on after second toggle")
	}
}

func TestWidgetTimeFormat(t *testing.T) {
	w := New(Position{}, WithClock(fixedClock()), WithTimeFormat("3:04PM"))
	w.Submit("hi")
	last, _ := w.LastMessage()
	if last.Time != "9:41AM" {
		t.Fatalf("expected 9:41AM, got %q", last.Time)
	}
}
