package chat

import "testing"

func TestDragFollowsPointerWithInitialOffset(t *testing.T) {
	d := NewDragController(Position{X: 10, Y: 5})
	d.Begin(Position{X: 14, Y: 6})
	offset := Position{X: 4, Y: 1}

	moves := []Position{{X: 20, Y: 6}, {X: 3, Y: 2}, {X: 40, Y: 25}}
	for _, p := range moves {
		d.Move(p)
		if got := d.Position(); got != p.Sub(offset) {
			t.Fatalf("after move to %+v expected %+v, got %+v", p, p.Sub(offset), got)
		}
	}
	d.End()
	if d.Dragging() {
		t.Fatalf("expected drag ended")
	}
	if got := d.Position(); got != (Position{X: 36, Y: 24}) {
		t.Fatalf("unexpected final position %+v", got)
	}
}

func TestDragMoveIgnoredWhenIdle(t *testing.T) {
	d := NewDragController(Position{X: 1, Y: 1})
	if d.Move(Position{X: 50, Y: 50}) {
		t.Fatalf("did not expect move without an active drag")
	}
	if d.Position() != (Position{X: 1, Y: 1}) {
		t.Fatalf("expected position unchanged")
	}
}

func TestDragNotClamped(t *testing.T) {
	d := NewDragController(Position{X: 2, Y: 2})
	d.Begin(Position{X: 5, Y: 4})
	d.Move(Position{X: 0, Y: 0})
	if got := d.Position(); got != (Position{X: -3, Y: -2}) {
		t.Fatalf("expected off-screen position, got %+v", got)
	}
}

func TestWidgetDragHelpers(t *testing.T) {
	w := New(Position{X: 4, Y: 2})
	w.BeginDrag(Position{X: 6, Y: 2})
	if !w.Dragging() {
		t.Fatalf("expected dragging")
	}
	if !w.MoveDrag(Position{X: 16, Y: 12}) {
		t.Fatalf("expected position change")
	}
	w.EndDrag()
	if w.MoveDrag(Position{X: 0, Y: 0}) {
		t.Fatalf("did not expect move after drag end")
	}
	if w.Position() != (Position{X: 14, Y: 12}) {
		t.Fatalf("unexpected position %+v", w.Position())
	}
}
