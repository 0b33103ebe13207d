package keys

import "github.com/gdamore/tcell/v2"

// Binding ties a key event to a handler within a page scope.
type Binding struct {
	Key         tcell.Key
	Rune        rune
	Description string
	Handler     func()
	Visible     bool
}

// Matches returns true if the event matches this binding.
func (b *Binding) Matches(ev *tcell.EventKey) bool {
	if b.Key != tcell.KeyRune {
		return ev.Key() == b.Key
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == b.Rune
}

// Keymap holds bindings organized by page, in registration order so hint
// lines render stably.
type Keymap struct {
	global []*Binding
	pages  map[string][]*Binding
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{pages: make(map[string][]*Binding)}
}

// Global registers a binding active on every page.
func (k *Keymap) Global(b *Binding) {
	k.global = append(k.global, b)
}

// Page registers a binding active only on the named page.
func (k *Keymap) Page(page string, b *Binding) {
	k.pages[page] = append(k.pages[page], b)
}

// Hints returns visible binding descriptions for the given page, page
// bindings first.
func (k *Keymap) Hints(page string) []string {
	var hints []string
	for _, b := range k.pages[page] {
		if b.Visible {
			hints = append(hints, b.Description)
		}
	}
	for _, b := range k.global {
		if b.Visible {
			hints = append(hints, b.Description)
		}
	}
	return hints
}

// HandleEvent dispatches a key event to the first matching binding for the
// given page. Returns true if a handler ran.
func (k *Keymap) HandleEvent(page string, ev *tcell.EventKey) bool {
	for _, b := range k.pages[page] {
		if b.Matches(ev) {
			b.Handler()
			return true
		}
	}
	for _, b := range k.global {
		if b.Matches(ev) {
			b.Handler()
			return true
		}
	}
	return false
}
