package locomotion

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/menagerie/anim"
	"github.com/milk9111/menagerie/common"
	"github.com/milk9111/menagerie/events"
	"github.com/milk9111/menagerie/input"
)

const eps = 1e-9

func testClips() []anim.Clip {
	return []anim.Clip{
		{Name: "Idle", Duration: 2},
		{Name: "Walk", Duration: 1, Stride: 0.5},
		{Name: "Run", Duration: 0.5, Stride: 0.9},
	}
}

func newSampler() *input.Sampler {
	return input.NewSampler(input.Keys()...)
}

func newLoaded(t *testing.T, cfg Config) (*Controller, *[]ClipChange) {
	t.Helper()
	c, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var changes []ClipChange
	c.Events().Subscribe(events.ClipChanged, func(e events.Event) {
		changes = append(changes, e.Payload.(ClipChange))
	})
	c.Load(testClips())
	return c, &changes
}

func TestControllerClipSequence(t *testing.T) {
	c, changes := newLoaded(t, Config{Name: "Soldier"})
	keys := newSampler()
	var tr common.Transform

	steps := []struct {
		name      string
		press     map[string]bool
		wantClip  string
		wantFaded bool
	}{
		{"idle_first", nil, "Idle", false},
		{"forward_walks", map[string]bool{input.W: true}, "Walk", true},
		{"shift_runs", map[string]bool{input.Shift: true}, "Run", true},
		{"release_idles", map[string]bool{input.W: false, input.Shift: false}, "Idle", true},
	}

	for i, st := range steps {
		for k, v := range st.press {
			keys.SetPressed(k, v)
		}
		c.Update(1.0/60, keys, &tr)

		if c.Current() != st.wantClip {
			t.Fatalf("%s: current=%q, want %q", st.name, c.Current(), st.wantClip)
		}
		if len(*changes) != i+1 {
			t.Fatalf("%s: expected exactly one transition per step, got %d total", st.name, len(*changes))
		}
		got := (*changes)[i]
		if got.To != st.wantClip || got.Faded != st.wantFaded {
			t.Fatalf("%s: change=%+v, want to=%q faded=%v", st.name, got, st.wantClip, st.wantFaded)
		}
	}
}

func TestControllerDefaultConfigRunsWithShift(t *testing.T) {
	c, _ := newLoaded(t, DefaultConfig())
	keys := input.NewSampler()
	var tr common.Transform

	keys.Apply(input.KeyEvent{Key: "w", Down: true, Shift: true})
	c.Update(0.1, keys, &tr)
	if c.Current() != "Run" {
		t.Fatalf("current=%q, want Run", c.Current())
	}
	want := c.Config().WalkVelocity * c.Config().RunMultiplier * 0.1
	if math.Abs(tr.Position.Z()-want) > eps {
		t.Fatalf("z=%v, want %v", tr.Position.Z(), want)
	}
}

func TestControllerCrossFadeState(t *testing.T) {
	c, _ := newLoaded(t, Config{Name: "Soldier"})
	keys := newSampler()
	var tr common.Transform

	c.Update(0.01, keys, &tr)
	idle, _ := c.Library().Get("Idle")
	if idle.Fading() || idle.Weight() != 1 {
		t.Fatalf("first activation should play at full weight without a fade")
	}

	keys.SetPressed(input.W, true)
	c.Update(0.05, keys, &tr)
	walk, _ := c.Library().Get("Walk")
	if !idle.FadingOut() {
		t.Fatalf("previous clip should fade out")
	}
	if !walk.FadingIn() || !walk.Playing() {
		t.Fatalf("next clip should fade in and play")
	}

	// Past the fade window the outgoing clip stops.
	c.Update(0.3, keys, &tr)
	if idle.Playing() {
		t.Fatalf("idle should stop after its fade-out completes")
	}
	if walk.Weight() != 1 {
		t.Fatalf("walk weight=%v, want 1", walk.Weight())
	}
}

func TestControllerSteadyStateDoesNotRetrigger(t *testing.T) {
	c, changes := newLoaded(t, Config{Name: "Soldier"})
	keys := newSampler()
	keys.SetPressed(input.W, true)
	var tr common.Transform

	for i := 0; i < 10; i++ {
		c.Update(1.0/60, keys, &tr)
	}
	if len(*changes) != 1 {
		t.Fatalf("holding a key should transition once, got %d", len(*changes))
	}
	walk, _ := c.Library().Get("Walk")
	if walk.Time() <= 0 {
		t.Fatalf("mixer should keep advancing the playing clip")
	}
}

func TestControllerUpdateBeforeLoad(t *testing.T) {
	c, err := New(Config{Name: "Fox"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	keys := newSampler()
	keys.SetPressed(input.W, true)
	tr := common.Transform{}

	c.Update(1, keys, &tr)

	if c.Current() != "" {
		t.Fatalf("unloaded controller must not pick a clip")
	}
	if tr.Position.Len() != 0 {
		t.Fatalf("unloaded controller must not move the transform")
	}
}

func TestControllerFail(t *testing.T) {
	c, _ := New(Config{Name: "Fox", Model: "missing.glb"}, nil)
	failed := 0
	c.Events().Subscribe(events.LoadFailed, func(events.Event) { failed++ })

	c.Fail(errors.New("boom"))

	if c.Loaded() {
		t.Fatalf("failed controller must stay unloaded")
	}
	if c.Err() == nil || failed != 1 {
		t.Fatalf("expected error recorded and one failure event")
	}
}

func TestControllerActivate(t *testing.T) {
	c, _ := newLoaded(t, Config{Name: "Soldier"})
	keys := newSampler()
	var tr common.Transform
	c.Update(0.01, keys, &tr)

	idle, _ := c.Library().Get("Idle")
	if err := c.Activate("Sprint"); !errors.Is(err, anim.ErrClipNotFound) {
		t.Fatalf("expected ErrClipNotFound, got %v", err)
	}
	if c.Current() != "Idle" || !idle.Playing() || idle.Weight() != 1 {
		t.Fatalf("failed activation must not disturb the playing clip")
	}

	if err := c.Activate("Run"); err != nil {
		t.Fatalf("Activate(Run): %v", err)
	}
	if c.Current() != "Run" {
		t.Fatalf("current=%q, want Run", c.Current())
	}
	if idle.Playing() {
		t.Fatalf("direct activation stops other clips")
	}
}

func TestControllerMissingClipKeepsPrevious(t *testing.T) {
	c, changes := newLoaded(t, Config{Name: "Fox", RunClip: "Gallop"})
	missing := 0
	c.Events().Subscribe(events.ClipMissing, func(events.Event) { missing++ })
	keys := newSampler()
	var tr common.Transform

	keys.SetPressed(input.W, true)
	c.Update(0.01, keys, &tr)
	keys.SetPressed(input.Shift, true)
	c.Update(0.01, keys, &tr)
	c.Update(0.01, keys, &tr)

	if c.Current() != "Walk" {
		t.Fatalf("missing run clip should keep walk, got %q", c.Current())
	}
	if len(*changes) != 1 {
		t.Fatalf("no transition should happen to a missing clip")
	}
	if missing != 1 {
		t.Fatalf("missing clip should be reported once, got %d", missing)
	}
}

func TestControllerForwardDisplacement(t *testing.T) {
	cases := []struct {
		name    string
		yaw     float64
		running bool
		wantX   float64
		wantZ   float64
	}{
		{"yaw_0", 0, false, 0, 1},
		{"yaw_half_pi", math.Pi / 2, false, 1, 0},
		{"yaw_0_running", 0, true, 0, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl, _ := newLoaded(t, Config{Name: "Soldier", WalkVelocity: 2, RunMultiplier: 3})
			keys := newSampler()
			keys.SetPressed(input.W, true)
			keys.SetPressed(input.Shift, c.running)
			tr := common.Transform{Yaw: c.yaw}

			ctrl.Update(0.5, keys, &tr)

			if math.Abs(tr.Position.X()-c.wantX) > eps || math.Abs(tr.Position.Z()-c.wantZ) > eps {
				t.Fatalf("position=%v, want x=%v z=%v", tr.Position, c.wantX, c.wantZ)
			}
			if tr.Position.Y() != 0 {
				t.Fatalf("movement must stay on the floor plane")
			}
		})
	}
}

func TestControllerTurning(t *testing.T) {
	cases := []struct {
		name    string
		keys    []string
		running bool
		wantYaw float64
	}{
		{"left_increases", []string{input.A}, false, 0.5},
		{"right_decreases", []string{input.ArrowRight}, false, -0.5},
		{"left_running", []string{input.A}, true, 1.0},
		{"left_and_right_cancel", []string{input.A, input.D}, false, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl, _ := newLoaded(t, Config{Name: "Soldier", TurnVelocity: 1, RunMultiplier: 2})
			keys := newSampler()
			for _, k := range c.keys {
				keys.SetPressed(k, true)
			}
			keys.SetPressed(input.Shift, c.running)
			var tr common.Transform

			ctrl.Update(0.5, keys, &tr)

			if math.Abs(tr.Yaw-c.wantYaw) > eps {
				t.Fatalf("yaw=%v, want %v", tr.Yaw, c.wantYaw)
			}
		})
	}
}

func TestControllerBackwardContinuous(t *testing.T) {
	ctrl, _ := newLoaded(t, Config{Name: "Soldier", WalkVelocity: 2})
	keys := newSampler()
	keys.SetPressed(input.S, true)
	var tr common.Transform

	ctrl.Update(0.5, keys, &tr)

	if math.Abs(tr.Position.Z()+1) > eps {
		t.Fatalf("backward should reverse along facing, z=%v", tr.Position.Z())
	}
	if tr.Yaw != 0 {
		t.Fatalf("continuous policy keeps yaw when backing up")
	}
}

func TestControllerSnapPolicy(t *testing.T) {
	ctrl, _ := newLoaded(t, Config{Name: "Fox", TurnPolicy: TurnSnap, WalkVelocity: 2})
	keys := newSampler()
	var tr common.Transform

	keys.SetPressed(input.ArrowDown, true)
	ctrl.Update(0.5, keys, &tr)
	if tr.Yaw != math.Pi {
		t.Fatalf("backward should snap yaw to pi, got %v", tr.Yaw)
	}
	if math.Abs(tr.Position.Z()+1) > eps {
		t.Fatalf("snap backward should move along -Z, z=%v", tr.Position.Z())
	}

	keys.SetPressed(input.ArrowDown, false)
	keys.SetPressed(input.ArrowUp, true)
	ctrl.Update(0.5, keys, &tr)
	if tr.Yaw != 0 {
		t.Fatalf("forward should snap yaw to 0, got %v", tr.Yaw)
	}
	if math.Abs(tr.Position.Z()) > eps {
		t.Fatalf("expected to be back at the origin, z=%v", tr.Position.Z())
	}
}

func TestControllerReloadRebuildsLibrary(t *testing.T) {
	c, _ := newLoaded(t, Config{Name: "Soldier"})
	keys := newSampler()
	var tr common.Transform
	c.Update(0.01, keys, &tr)

	c.Load([]anim.Clip{{Name: "Idle", Duration: 1}})

	if c.Current() != "" {
		t.Fatalf("reload should forget the active clip")
	}
	if c.Library().Len() != 1 {
		t.Fatalf("reload should replace the library, len=%d", c.Library().Len())
	}
	if _, ok := c.Library().Get("Walk"); ok {
		t.Fatalf("old clips must be discarded on reload")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", DefaultConfig(), true},
		{"negative_velocity", Config{WalkVelocity: -1}.WithDefaults(), false},
		{"bad_policy", Config{TurnPolicy: "spin"}.WithDefaults(), false},
		{"snap", Config{TurnPolicy: TurnSnap}.WithDefaults(), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if (err == nil) != c.ok {
				t.Fatalf("Validate()=%v, want ok=%v", err, c.ok)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
