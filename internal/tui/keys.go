package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

const (
	scopeGlobal = "global"
	scopePanel  = "panel"
)

const (
	actionQuit        Action = "quit"
	actionSend        Action = "send"
	actionToggleTheme Action = "toggle_theme"
	actionScrollUp    Action = "scroll_up"
	actionScrollDown  Action = "scroll_down"
)

// KeyRegistry resolves key presses to actions per scope, falling back to the global scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}
	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(scopeGlobal, actionQuit, []string{"ctrl+c", "esc"}, "quit")
	reg(scopePanel, actionSend, []string{"enter"}, "send")
	reg(scopePanel, actionToggleTheme, []string{"ctrl+t"}, "theme")
	reg(scopePanel, actionScrollUp, []string{"pgup", "ctrl+up"}, "scroll up")
	reg(scopePanel, actionScrollDown, []string{"pgdown", "ctrl+down"}, "scroll down")
	return r
}

func (r *KeyRegistry) Register(b Binding) {
	b.Keys = normalizeKeyList(b.Keys)
	for _, scope := range b.Scopes {
		bind := b
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &bind)
		idx := r.indexByScope[scope]
		if idx == nil {
			idx = make(map[string]*Binding)
			r.indexByScope[scope] = idx
		}
		for _, k := range bind.Keys {
			idx[k] = &bind
		}
	}
}

// Lookup finds the binding for a key in scope, then in the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	k := normalizeKeyName(keyName)
	if b := r.indexByScope[scope][k]; b != nil {
		return b
	}
	return r.indexByScope[scopeGlobal][k]
}

// Action resolves a key message, returning "" when nothing is bound.
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) Action {
	if b := r.Lookup(msg.String(), scope); b != nil {
		return b.Action
	}
	return ""
}

// HelpBindings returns the scope's bindings followed by the global ones, for the footer.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	var out []key.Binding
	for _, s := range []string{scope, scopeGlobal} {
		for _, b := range r.bindingsByScope[s] {
			out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
		}
		if scope == scopeGlobal {
			break
		}
	}
	return out
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if n := normalizeKeyName(k); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func normalizeKeyName(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
