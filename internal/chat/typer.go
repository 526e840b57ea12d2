package chat

// Typer reveals a target string one rune per tick.
type Typer struct {
	target []rune
	index  int
	active bool
	gen    int
}

// Start begins a new animation and returns its generation. Ticks carrying an older
// generation are ignored by Tick.
func (t *Typer) Start(text string) int {
	t.target = []rune(text)
	t.index = 0
	t.active = true
	t.gen++
	return t.gen
}

func (t *Typer) Generation() int { return t.gen }

// Tick advances the animation by one rune and returns the revealed prefix.
// done is true on the tick that completes the animation, including the first tick of an empty target.
func (t *Typer) Tick(gen int) (revealed string, done bool, ok bool) {
	if !t.active || gen != t.gen {
		return "", false, false
	}
	if t.index < len(t.target) {
		t.index++
	}
	revealed = string(t.target[:t.index])
	if t.index >= len(t.target) {
		t.active = false
		t.target = nil
		return revealed, true, true
	}
	return revealed, false, true
}
