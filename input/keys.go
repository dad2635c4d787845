package input

import "strings"

// Canonical key identifiers.
const (
	W          = "w"
	A          = "a"
	S          = "s"
	D          = "d"
	ArrowUp    = "arrowup"
	ArrowDown  = "arrowdown"
	ArrowLeft  = "arrowleft"
	ArrowRight = "arrowright"
	Space      = "space"
	Shift      = "shift"
	Alt        = "alt"
	Ctrl       = "ctrl"
	Escape     = "escape"
	R          = "r"
	Tab        = "tab"
)

// Run is the default combination name for the run modifier.
const Run = "run"

var (
	Forward    = []string{W, ArrowUp}
	Backward   = []string{S, ArrowDown}
	Left       = []string{A, ArrowLeft}
	Right      = []string{D, ArrowRight}
	Directions = []string{W, A, S, D, ArrowDown, ArrowLeft, ArrowRight, ArrowUp}
	Modifiers  = []string{Shift, Alt, Ctrl}
)

// Keys returns every key the sampler tracks up front.
func Keys() []string {
	out := make([]string, 0, len(Directions)+len(Modifiers)+1)
	out = append(out, Directions...)
	out = append(out, Modifiers...)
	return append(out, Space)
}

// Canonical lower-cases raw key text.
func Canonical(raw string) string {
	if raw == " " {
		return Space
	}
	return strings.ToLower(raw)
}
