package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/menagerie/common"
	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/ecs/component"
	"github.com/milk9111/menagerie/ecs/entity"
	"github.com/milk9111/menagerie/ecs/system"
	"github.com/milk9111/menagerie/events"
	"github.com/milk9111/menagerie/fsm"
	"github.com/milk9111/menagerie/input"
	"github.com/milk9111/menagerie/model"
	"github.com/milk9111/menagerie/prefabs"
	"github.com/milk9111/menagerie/scene"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// Options are the command line choices that shape a Game.
type Options struct {
	Scene  string
	Player string
	Multi  bool
	Watch  bool
	Debug  bool

	// Device overrides where input is polled from; nil means ebiten.
	Device system.Device
}

type Game struct {
	opts   Options
	frames int
	multi  bool

	sampler *input.Sampler
	mouse   *input.Mouse
	async   *model.Async
	watcher *prefabs.Watcher
	machine *fsm.Machine

	world      *ecs.World
	scene      prefabs.SceneSpec
	input      *system.InputSystem
	models     *system.ModelSystem
	locomotion *system.LocomotionSystem
	render     *system.RenderSystem
	loading    *ecs.Scheduler
	running    *ecs.Scheduler

	hud     *HUD
	pauseUI *ebitenui.UI
	status  string

	width, height int

	wantPause   bool
	wantRebuild bool
}

func NewGame(opts Options) (*Game, error) {
	if opts.Scene == "" {
		opts.Scene = "scene.yaml"
	}
	g := &Game{
		opts:    opts,
		sampler: input.NewSampler(input.Keys()...),
		mouse:   &input.Mouse{},
		async:   model.NewAsync(context.Background(), model.NewDefault(prefabs.Load)),
		width:   baseWidth,
		height:  baseHeight,
	}

	g.machine = fsm.New()
	g.machine.AddState(stateLoading, &loadingState{g: g})
	g.machine.AddState(stateRunning, &runningState{g: g})
	g.machine.AddState(statePaused, &pausedState{g: g})

	bus := g.sampler.Events()
	bus.Subscribe(events.KeyKind(input.Escape, true), func(events.Event) { g.togglePause() })
	bus.Subscribe(events.KeyKind(input.R, true), func(events.Event) {
		if g.machine.Is(stateRunning) {
			g.respawn()
		}
	})
	bus.Subscribe(events.KeyKind(input.Tab, true), func(events.Event) {
		if g.machine.Is(stateRunning) {
			g.cyclePlayer()
		}
	})

	if err := g.build(); err != nil {
		g.async.Close()
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.DefaultDirs()...)
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// build loads the scene and replaces the world and every per-scene system.
func (g *Game) build() error {
	spec, err := prefabs.LoadSceneSpec(g.opts.Scene)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", g.opts.Scene, err)
	}

	world := ecs.NewWorld()
	if _, err := entity.BuildScene(world, spec, g.opts.Player); err != nil {
		return err
	}
	system.Resize(world, g.width, g.height)

	g.sampler.ResetCombos()
	for name, keys := range spec.Combos {
		g.sampler.SetCombo(name, keys...)
	}
	g.multi = g.opts.Multi || spec.Mode == prefabs.ModeMulti

	if g.opts.Device != nil {
		g.input = system.NewInputSystemWithDevice(g.opts.Device, g.sampler, g.mouse)
	} else {
		g.input = system.NewInputSystem(g.sampler, g.mouse)
	}
	g.models = system.NewModelSystem(g.async)
	g.locomotion = system.NewLocomotionSystem(g.sampler, g.multi)
	g.render = system.NewRenderSystem(spec.Floor)
	g.render.Debug = g.opts.Debug
	camera := system.NewCameraSystem(g.mouse)
	reload := system.NewReloadSystem()

	g.loading = ecs.NewScheduler(g.input, reload, g.models, camera, g.render)
	g.running = ecs.NewScheduler(
		g.input,
		reload,
		g.models,
		g.locomotion,
		system.NewPickingSystem(scene.NewPicker(spec.Floor.Y), g.mouse),
		camera,
		g.render,
	)

	g.world = world
	g.scene = spec
	g.status = fmt.Sprintf("scene %s: %d characters", spec.Name, len(spec.Characters))
	return g.machine.SetState(stateLoading)
}

func (g *Game) Update() error {
	g.frames++
	if err := g.tick(); err != nil {
		return err
	}

	if g.hud == nil {
		g.hud = NewHUD()
		g.pauseUI = NewPauseUI(g)
	}
	_, state := g.machine.Current()
	g.hud.Sync(g.world, state, g.multi, g.status)
	g.hud.Update()
	if g.machine.Is(statePaused) {
		g.pauseUI.Update()
	}
	return nil
}

// tick advances the simulation by one fixed step.
func (g *Game) tick() error {
	if g.wantRebuild {
		g.wantRebuild = false
		if err := g.build(); err != nil {
			log.Printf("rebuild: %v", err)
			g.status = err.Error()
		}
	}
	g.applyChanges()

	g.machine.Update(1.0 / common.TPS)

	if g.wantPause {
		g.wantPause = false
		switch {
		case g.machine.Is(stateRunning):
			return g.machine.SetState(statePaused)
		case g.machine.Is(statePaused):
			return g.machine.SetState(stateRunning)
		}
	}

	for _, evt := range g.world.Events().Drain() {
		g.report(evt)
	}
	return nil
}

// applyChanges turns watched file changes into reload requests.
func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}
	for _, change := range g.watcher.Drain() {
		if change.Kind == prefabs.ChangeSpec && change.Path == prefabs.Clean(g.opts.Scene) {
			log.Printf("scene %s changed, rebuilding", change.Path)
			g.wantRebuild = true
			continue
		}
		n := system.RequestReloads(g.world, change)
		log.Printf("%s %s changed, reloading %d characters", change.Kind, change.Path, n)
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("watch: %v", err)
	default:
	}
}

func (g *Game) report(evt ecs.Event) {
	name := evt.Entity.String()
	if ch, ok := ecs.Get(g.world, evt.Entity, component.CharacterComponent.Kind()); ok {
		name = ch.Name
	}
	switch evt.Kind {
	case ecs.EventLoaded:
		g.status = fmt.Sprintf("%s loaded %v", name, evt.Data)
	case ecs.EventLoadFailed:
		g.status = fmt.Sprintf("%s failed: %v", name, evt.Data)
	default:
		g.status = fmt.Sprintf("%s %s", name, evt.Kind)
	}
	log.Print(g.status)
}

// loaded reports whether the scene can start: one character is ready, or
// every load has finished and all of them failed.
func (g *Game) loaded() bool {
	ready, done := false, true
	ecs.ForEach2(g.world, component.CharacterComponent.Kind(), component.ModelRefComponent.Kind(), func(e ecs.Entity, ch *component.Character, ref *component.ModelRef) {
		ready = ready || ch.Controller.Loaded()
		done = done && ref.Done
	})
	return ready || done
}

func (g *Game) togglePause() {
	g.wantPause = true
}

func (g *Game) requestRebuild() {
	g.wantRebuild = true
}

func (g *Game) respawn() {
	n := system.Respawn(g.world)
	g.status = fmt.Sprintf("respawned %d characters", n)
}

func (g *Game) toggleMulti() {
	g.multi = !g.multi
	g.locomotion.Multi = g.multi
}

// cyclePlayer moves the player tag to the next character.
func (g *Game) cyclePlayer() {
	chars := g.world.Query(component.CharacterComponent.Kind())
	if len(chars) == 0 {
		return
	}
	next := chars[0]
	if cur, ok := entity.Player(g.world); ok {
		for i, e := range chars {
			if e == cur {
				next = chars[(i+1)%len(chars)]
				break
			}
		}
	}
	if err := entity.SetPlayer(g.world, next); err != nil {
		log.Printf("cycle player: %v", err)
		return
	}
	g.world.Events().Push(ecs.Event{Kind: ecs.EventSelected, Entity: next})
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.running.Draw(g.world, screen)
	if g.hud != nil {
		g.hud.Draw(screen)
	}
	if g.pauseUI != nil && g.machine.Is(statePaused) {
		g.pauseUI.Draw(screen)
	}
	if g.opts.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 8, g.height-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		system.Resize(g.world, g.width, g.height)
	}
	return g.width, g.height
}

// Close stops background loads and the file watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close watcher: %v", err)
		}
	}
	g.async.Close()
}
