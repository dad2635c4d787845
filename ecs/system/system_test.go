package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/ecs/component"
	"github.com/milk9111/menagerie/ecs/entity"
	"github.com/milk9111/menagerie/events"
	"github.com/milk9111/menagerie/input"
	"github.com/milk9111/menagerie/model"
	"github.com/milk9111/menagerie/prefabs"
	"github.com/milk9111/menagerie/scene"
)

func newScene(t *testing.T) (*ecs.World, map[string]ecs.Entity) {
	t.Helper()
	spec, err := prefabs.LoadSceneSpec("scene.yaml")
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}
	w := ecs.NewWorld()
	chars, err := entity.BuildScene(w, spec, "")
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}
	byName := make(map[string]ecs.Entity, len(chars))
	for _, e := range chars {
		ch, _ := ecs.Get(w, e, component.CharacterComponent.Kind())
		byName[ch.Name] = e
	}
	return w, byName
}

func character(t *testing.T, w *ecs.World, e ecs.Entity) *component.Character {
	t.Helper()
	ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
	if !ok {
		t.Fatalf("%v is not a character", e)
	}
	return ch
}

// loadAll loads every character synchronously from the embedded manifests.
func loadAll(t *testing.T, w *ecs.World) {
	t.Helper()
	loader := model.NewDefault(prefabs.Load)
	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.ModelRefComponent.Kind(), func(e ecs.Entity, ch *component.Character, ref *component.ModelRef) {
		m, err := loader.Load(context.Background(), ref.Path)
		if err != nil {
			t.Fatalf("load %s: %v", ref.Path, err)
		}
		ch.Controller.Load(m.Clips)
		ref.Requested, ref.Done = true, true
	})
}

func runUntil(t *testing.T, w *ecs.World, s ecs.System, done func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !done() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out")
		}
		s.Update(w)
		time.Sleep(time.Millisecond)
	}
}

func eventsOf(w *ecs.World, kind ecs.EventKind) []ecs.Event {
	var out []ecs.Event
	for _, ev := range w.Events().Drain() {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func TestModelSystemLoadsAndStyles(t *testing.T) {
	w, chars := newScene(t)
	async := model.NewAsync(context.Background(), model.NewDefault(prefabs.Load))
	defer async.Close()
	ms := NewModelSystem(async)

	runUntil(t, w, ms, func() bool {
		return character(t, w, chars["soldier"]).Controller.Loaded() && character(t, w, chars["fox"]).Controller.Loaded()
	})

	if ms.Pending() != 0 {
		t.Fatalf("pending=%d after all loads finished", ms.Pending())
	}
	if got := eventsOf(w, ecs.EventLoaded); len(got) != 2 {
		t.Fatalf("loaded events=%d, want 2", len(got))
	}

	soldier := character(t, w, chars["soldier"]).Controller
	run, ok := soldier.Library().Get("CharacterArmature|Run")
	if !ok {
		t.Fatalf("soldier has no run clip")
	}
	if run.Clip().Stride != 0.9 || run.Clip().Bob != 0.08 {
		t.Fatalf("clip style not applied: %+v", run.Clip())
	}
}

func TestModelSystemFailureLeavesUnloaded(t *testing.T) {
	w, chars := newScene(t)
	boom := errors.New("corrupt file")
	async := model.NewAsync(context.Background(), model.LoaderFunc(func(ctx context.Context, path string) (*model.Model, error) {
		return nil, boom
	}))
	defer async.Close()
	ms := NewModelSystem(async)

	fox := character(t, w, chars["fox"]).Controller
	runUntil(t, w, ms, func() bool { return fox.Err() != nil })

	if !errors.Is(fox.Err(), boom) {
		t.Fatalf("err=%v, want %v", fox.Err(), boom)
	}
	if fox.Loaded() {
		t.Fatalf("failed character must stay unloaded")
	}
	ref, _ := ecs.Get(w, chars["fox"], component.ModelRefComponent.Kind())
	if !ref.Requested {
		t.Fatalf("failed load must not be retried")
	}
}

func TestModelSystemIgnoresSupersededResult(t *testing.T) {
	w, chars := newScene(t)
	release := make(chan struct{})
	async := model.NewAsync(context.Background(), model.LoaderFunc(func(ctx context.Context, path string) (*model.Model, error) {
		<-release
		return &model.Model{Path: path, Clips: nil}, nil
	}))
	defer async.Close()
	ms := NewModelSystem(async)

	ms.Update(w)
	ref, _ := ecs.Get(w, chars["fox"], component.ModelRefComponent.Kind())
	first := ref.Ticket

	ref.Requested = false
	ms.Update(w)
	if ref.Ticket == first {
		t.Fatalf("re-request should issue a new ticket")
	}
	close(release)

	fox := character(t, w, chars["fox"]).Controller
	runUntil(t, w, ms, func() bool { return ms.Pending() == 0 })
	if !fox.Loaded() {
		t.Fatalf("latest result should load the fox")
	}
	// Soldier once and fox once; the superseded fox result is dropped.
	if got := eventsOf(w, ecs.EventLoaded); len(got) != 2 {
		t.Fatalf("loaded events=%d, want 2", len(got))
	}
}

func TestLocomotionSystemModes(t *testing.T) {
	cases := []struct {
		name         string
		multi        bool
		foxMoves     bool
		soldierMoves bool
	}{
		{"single_player_only", false, false, true},
		{"multi_everyone", true, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, chars := newScene(t)
			loadAll(t, w)

			keys := input.NewSampler(input.Keys()...)
			keys.SetPressed(input.W, true)
			ls := NewLocomotionSystem(keys, c.multi)

			start := map[string]mgl64.Vec3{}
			for name, e := range chars {
				tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
				start[name] = tr.Position
			}
			for i := 0; i < 10; i++ {
				ls.Update(w)
			}

			moved := func(name string) bool {
				tr, _ := ecs.Get(w, chars[name], component.TransformComponent.Kind())
				return tr.Position.Sub(start[name]).Len() > 1e-9
			}
			if moved("soldier") != c.soldierMoves {
				t.Fatalf("soldier moved=%v, want %v", moved("soldier"), c.soldierMoves)
			}
			if moved("fox") != c.foxMoves {
				t.Fatalf("fox moved=%v, want %v", moved("fox"), c.foxMoves)
			}

			fox := character(t, w, chars["fox"]).Controller
			want := "Survey"
			if c.foxMoves {
				want = "Walk"
			}
			if fox.Current() != want {
				t.Fatalf("fox clip=%q, want %q", fox.Current(), want)
			}
		})
	}
}

func TestRespawn(t *testing.T) {
	w, chars := newScene(t)
	tr, _ := ecs.Get(w, chars["fox"], component.TransformComponent.Kind())
	tr.Position = mgl64.Vec3{9, 0, 9}
	tr.Yaw = 1

	if n := Respawn(w); n != 2 {
		t.Fatalf("respawned %d, want 2", n)
	}
	if tr.Position != (mgl64.Vec3{3, 0, 2}) || tr.Yaw != 3.1416 {
		t.Fatalf("fox not back at spawn: %+v", tr)
	}
}

type fakeDevice struct {
	keys    map[ebiten.Key]bool
	buttons map[ebiten.MouseButton]bool
	x, y    int
	wheel   float64
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{keys: map[ebiten.Key]bool{}, buttons: map[ebiten.MouseButton]bool{}}
}

func (f *fakeDevice) KeyPressed(k ebiten.Key) bool            { return f.keys[k] }
func (f *fakeDevice) MousePressed(b ebiten.MouseButton) bool { return f.buttons[b] }
func (f *fakeDevice) Cursor() (int, int)                     { return f.x, f.y }
func (f *fakeDevice) Wheel() (float64, float64)              { return 0, f.wheel }

func TestInputSystemKeys(t *testing.T) {
	dev := newFakeDevice()
	sampler := input.NewSampler(input.Keys()...)
	sampler.SetCombo(input.Run, input.Shift)
	is := NewInputSystemWithDevice(dev, sampler, nil)

	var downs []string
	sampler.Events().Subscribe(events.KeyDown, func(ev events.Event) {
		downs = append(downs, ev.Payload.(input.KeyEvent).Key)
	})

	dev.keys[ebiten.KeyW] = true
	dev.keys[ebiten.KeyShift] = true
	dev.keys[ebiten.KeyR] = true
	dev.keys[ebiten.KeySpace] = true
	is.Update(nil)

	for _, k := range []string{input.W, input.Shift, input.R, input.Space} {
		if !sampler.IsPressed(k) {
			t.Fatalf("%q should be pressed", k)
		}
	}
	if !sampler.IsOn(input.Run) {
		t.Fatalf("run combo should be on with shift held")
	}

	n := len(downs)
	if n == 0 {
		t.Fatalf("key presses should publish down events")
	}
	is.Update(nil)
	if len(downs) != n {
		t.Fatalf("held keys must not publish again")
	}

	dev.keys[ebiten.KeyShift] = false
	is.Update(nil)
	if sampler.IsPressed(input.Shift) || sampler.IsOn(input.Run) {
		t.Fatalf("shift released but still reported")
	}
}

func TestInputSystemResetRepublishesHeldKeys(t *testing.T) {
	dev := newFakeDevice()
	sampler := input.NewSampler(input.Keys()...)
	is := NewInputSystemWithDevice(dev, sampler, nil)

	dev.keys[ebiten.KeyW] = true
	is.Update(nil)
	sampler.Reset()
	is.Update(nil)
	if sampler.IsPressed(input.W) {
		t.Fatalf("without Reset the held key stays released in the sampler")
	}

	sampler.Reset()
	is.Reset()
	is.Update(nil)
	if !sampler.IsPressed(input.W) {
		t.Fatalf("held key should be pressed again after Reset")
	}
}

func TestInputSystemMouse(t *testing.T) {
	cases := []struct {
		name     string
		path     [][2]int
		dragging bool
		clicked  bool
	}{
		{"click", [][2]int{{100, 100}, {101, 100}}, false, true},
		{"drag", [][2]int{{100, 100}, {120, 110}, {140, 120}}, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dev := newFakeDevice()
			mouse := &input.Mouse{}
			is := NewInputSystemWithDevice(dev, nil, mouse)

			dev.buttons[ebiten.MouseButtonLeft] = true
			for _, p := range c.path {
				dev.x, dev.y = p[0], p[1]
				is.Update(nil)
			}
			if mouse.Dragging != c.dragging {
				t.Fatalf("dragging=%v, want %v", mouse.Dragging, c.dragging)
			}

			dev.buttons[ebiten.MouseButtonLeft] = false
			is.Update(nil)
			if mouse.Clicked != c.clicked {
				t.Fatalf("clicked=%v, want %v", mouse.Clicked, c.clicked)
			}
			is.Update(nil)
			if mouse.Clicked {
				t.Fatalf("click must last one frame")
			}
		})
	}
}

func TestReloadRequests(t *testing.T) {
	cases := []struct {
		name   string
		change prefabs.Change
		want   []string
		spec   bool
	}{
		{"fox_model", prefabs.Change{Path: "models/fox.yaml", Kind: prefabs.ChangeModel}, []string{"fox"}, false},
		{"soldier_prefab", prefabs.Change{Path: "soldier.yaml", Kind: prefabs.ChangeSpec}, []string{"soldier"}, true},
		{"fox_script", prefabs.Change{Path: "scripts/fox_clip.tengo", Kind: prefabs.ChangeScript}, []string{"fox"}, true},
		{"scene_file", prefabs.Change{Path: "scene.yaml", Kind: prefabs.ChangeSpec}, nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, chars := newScene(t)
			loadAll(t, w)

			if n := RequestReloads(w, c.change); n != len(c.want) {
				t.Fatalf("requests=%d, want %d", n, len(c.want))
			}
			NewReloadSystem().Update(w)

			reloaded := map[string]bool{}
			for _, name := range c.want {
				reloaded[name] = true
			}
			for name, e := range chars {
				ch := character(t, w, e)
				ref, _ := ecs.Get(w, e, component.ModelRefComponent.Kind())
				if ecs.Has(w, e, component.ReloadRequestComponent.Kind()) {
					t.Fatalf("%s: request not consumed", name)
				}
				if reloaded[name] {
					if ch.Controller.Loaded() || ref.Requested {
						t.Fatalf("%s: should be unloaded and awaiting a new load", name)
					}
					continue
				}
				if !ch.Controller.Loaded() {
					t.Fatalf("%s: untouched character was unloaded", name)
				}
			}
			if got := eventsOf(w, ecs.EventReloaded); len(got) != len(c.want) {
				t.Fatalf("reloaded events=%d, want %d", len(got), len(c.want))
			}
		})
	}
}

func TestPickingTransfersPlayer(t *testing.T) {
	w, chars := newScene(t)
	cam, ok := entity.Camera(w)
	if !ok {
		t.Fatalf("no camera")
	}
	x, y, ok := cam.View.Project(mgl64.Vec3{3, 0.45, 2})
	if !ok {
		t.Fatalf("fox not on screen")
	}

	mouse := &input.Mouse{}
	mouse.Move(x, y)
	ps := NewPickingSystem(scene.NewPicker(0), mouse)

	ps.Update(w)
	if !ecs.Has(w, chars["fox"], component.HoveredComponent.Kind()) {
		t.Fatalf("fox should be hovered")
	}
	if ecs.Has(w, chars["fox"], component.PlayerTagComponent.Kind()) {
		t.Fatalf("hover alone must not select")
	}

	mouse.Clicked = true
	ps.Update(w)
	if !ecs.Has(w, chars["fox"], component.PlayerTagComponent.Kind()) {
		t.Fatalf("click should make the fox the player")
	}
	if ecs.Has(w, chars["soldier"], component.PlayerTagComponent.Kind()) {
		t.Fatalf("soldier should lose the player tag")
	}
	if got := eventsOf(w, ecs.EventSelected); len(got) != 1 || got[0].Entity != chars["fox"] {
		t.Fatalf("selected events=%v", got)
	}

	mouse.Clicked = false
	mouse.Move(-1000, -1000)
	ps.Update(w)
	if len(w.Query(component.HoveredComponent.Kind())) != 0 {
		t.Fatalf("hover should clear when the cursor leaves")
	}
}

func TestCameraFollowsPlayer(t *testing.T) {
	w, chars := newScene(t)
	cam, _ := entity.Camera(w)
	cs := NewCameraSystem(&input.Mouse{})

	tr, _ := ecs.Get(w, chars["soldier"], component.TransformComponent.Kind())
	tr.Position = mgl64.Vec3{4, 0, 0}

	before := cam.Orbit.Target.Sub(tr.Position).Len()
	for i := 0; i < 60; i++ {
		cs.Update(w)
	}
	after := cam.Orbit.Target.Sub(tr.Position.Add(mgl64.Vec3{0, cam.Height, 0})).Len()
	if after >= before || after > 0.01 {
		t.Fatalf("orbit target did not converge on player: before=%v after=%v", before, after)
	}
	if cam.View.Target != cam.Orbit.Target {
		t.Fatalf("camera target not applied")
	}
}
