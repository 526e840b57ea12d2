package chat

// Position is the panel's top-left corner in terminal cells.
type Position struct {
	X int
	Y int
}

func (p Position) Sub(o Position) Position { return Position{X: p.X - o.X, Y: p.Y - o.Y} }

// DragController moves the panel with the pointer. Positions are never clamped, so the
// panel can end up partly or fully off-screen.
type DragController struct {
	pos      Position
	offset   Position
	dragging bool
}

func NewDragController(start Position) *DragController {
	return &DragController{pos: start}
}

func (d *DragController) Position() Position { return d.pos }
func (d *DragController) Dragging() bool     { return d.dragging }

// Begin records the pointer offset from the panel origin and enters the dragging state.
func (d *DragController) Begin(pointer Position) {
	d.offset = pointer.Sub(d.pos)
	d.dragging = true
}

// Move repositions the panel so the recorded offset stays under the pointer.
// It reports whether the position changed.
func (d *DragController) Move(pointer Position) bool {
	if !d.dragging {
		return false
	}
	next := pointer.Sub(d.offset)
	if next == d.pos {
		return false
	}
	d.pos = next
	return true
}

// End leaves the dragging state. Safe to call when no drag is active.
func (d *DragController) End() {
	d.dragging = false
	d.offset = Position{}
}
