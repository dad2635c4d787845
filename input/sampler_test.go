package input

import (
	"testing"

	"github.com/milk9111/menagerie/events"
)

func TestSamplerLastEventWins(t *testing.T) {
	type step struct {
		key  string
		down bool
	}
	cases := []struct {
		name  string
		steps []step
		query string
		want  bool
	}{
		{"unseen_key", nil, W, false},
		{"down", []step{{W, true}}, W, true},
		{"down_up", []step{{W, true}, {W, false}}, W, false},
		{"repeat_down", []step{{W, true}, {W, true}}, W, true},
		{"repeat_up", []step{{W, false}, {W, false}}, W, false},
		{"other_key_untouched", []step{{A, true}, {W, true}, {W, false}}, A, true},
		{"unknown_key_recorded", []step{{"f13", true}}, "f13", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSampler(Keys()...)
			for _, st := range c.steps {
				s.SetPressed(st.key, st.down)
			}
			if got := s.IsPressed(c.query); got != c.want {
				t.Fatalf("IsPressed(%q)=%v, want %v", c.query, got, c.want)
			}
		})
	}
}

func TestSamplerIsPressedAnyOf(t *testing.T) {
	s := NewSampler(Keys()...)
	s.SetPressed(ArrowUp, true)
	if !s.IsPressed(Forward...) {
		t.Fatalf("expected any-of forward to be true")
	}
	if s.IsPressed(Backward...) {
		t.Fatalf("expected backward to be false")
	}
	if s.IsPressed() {
		t.Fatalf("empty query should be false")
	}
}

func TestSamplerIsOn(t *testing.T) {
	cases := []struct {
		name  string
		down  []string
		query []string
		want  bool
	}{
		{"both_pressed", []string{Shift, W}, []string{Shift, W}, true},
		{"one_pressed", []string{W}, []string{Shift, W}, false},
		{"combo_satisfied", []string{Shift}, []string{Run}, true},
		{"combo_unsatisfied", []string{W}, []string{Run}, false},
		{"two_combos", []string{Shift, Ctrl}, []string{Run, "sneak"}, true},
		{"mixed_key_and_combo", []string{Shift}, []string{Run, W}, false},
		{"unknown_combo", []string{Shift}, []string{"fly"}, false},
		{"empty_query", nil, nil, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSampler(Keys()...)
			s.SetCombo(Run, Shift)
			s.SetCombo("sneak", Ctrl)
			for _, k := range c.down {
				s.SetPressed(k, true)
			}
			if got := s.IsOn(c.query...); got != c.want {
				t.Fatalf("IsOn(%v)=%v, want %v", c.query, got, c.want)
			}
		})
	}
}

func TestSamplerApplyCanonicalizes(t *testing.T) {
	s := NewSampler(Keys()...)

	s.Apply(KeyEvent{Key: "W", Down: true, Shift: true})
	if !s.IsPressed(W) {
		t.Fatalf("expected upper-case key to be lower-cased")
	}
	if !s.IsPressed(Shift) {
		t.Fatalf("expected shift from modifier flag")
	}

	s.Apply(KeyEvent{Key: " ", Down: true})
	if !s.IsPressed(Space) || !s.IsPressed(" ") {
		t.Fatalf("expected literal space to be recorded and mapped to %q", Space)
	}
	if s.IsPressed(Shift) {
		t.Fatalf("modifier flags must be refreshed from every event")
	}

	// Key text "Shift" does not drive the modifier; the flag does.
	s.Apply(KeyEvent{Key: "Shift", Down: true, Shift: false})
	if s.IsPressed(Shift) {
		t.Fatalf("shift must follow the event flag, not the key text")
	}
}

func TestSamplerPublishesTransitions(t *testing.T) {
	s := NewSampler(Keys()...)
	var got []events.Kind
	record := func(e events.Event) { got = append(got, e.Kind) }
	s.Events().Subscribe(events.KeyDown, record)
	s.Events().Subscribe(events.KeyUp, record)
	s.Events().Subscribe(events.KeyKind(W, true), record)
	s.Events().Subscribe(events.KeyKind(W, false), record)

	s.Apply(KeyEvent{Key: "w", Down: true})
	s.Apply(KeyEvent{Key: "w", Down: false})

	want := []events.Kind{events.KeyDown, "w down", events.KeyUp, "w up"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSamplerSnapshot(t *testing.T) {
	s := NewSampler(Keys()...)
	s.SetPressed(W, true)
	s.SetPressed(Shift, true)
	snap := s.Snapshot()
	if len(snap) != 2 || snap[0] != Shift || snap[1] != W {
		t.Fatalf("unexpected snapshot %v", snap)
	}
	s.Reset()
	if len(s.Snapshot()) != 0 {
		t.Fatalf("reset should release everything")
	}
}

func TestMouseDelta(t *testing.T) {
	var m Mouse
	m.Move(10, 10)
	if m.DX != 0 || m.DY != 0 {
		t.Fatalf("first move should not produce a delta")
	}
	m.Move(15, 7)
	if m.DX != 5 || m.DY != -3 {
		t.Fatalf("got delta %v,%v", m.DX, m.DY)
	}
	m.EndFrame()
	if m.DX != 0 || m.Wheel != 0 || m.Clicked {
		t.Fatalf("EndFrame should clear edges")
	}
}

func TestSamplerDefaultRunCombo(t *testing.T) {
	s := NewSampler(Keys()...)
	s.SetPressed(Shift, true)
	if !s.IsOn(Run) {
		t.Fatalf("run should map to shift without SetCombo")
	}

	s.SetCombo("dash", Space)
	s.SetCombo(Run, Ctrl)
	s.SetPressed(Space, true)
	if !s.IsOn("dash") || s.IsOn(Run) {
		t.Fatalf("SetCombo should add and override combinations")
	}

	s.ResetCombos()
	if s.IsOn("dash") {
		t.Fatalf("ResetCombos should drop custom combinations")
	}
	if !s.IsOn(Run) {
		t.Fatalf("ResetCombos should restore run -> shift")
	}
}
