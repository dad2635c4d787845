package system

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/menagerie/anim"
	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/ecs/component"
	"github.com/milk9111/menagerie/ecs/entity"
	"github.com/milk9111/menagerie/scene"
)

var (
	backgroundColor = color.RGBA{0xf4, 0xf4, 0xf0, 0xff}
	gridColor       = color.RGBA{0xd0, 0xd0, 0xd0, 0xff}
	axisColor       = color.RGBA{0xa8, 0xa8, 0xa8, 0xff}
	shadowColor     = color.RGBA{0x60, 0x60, 0x60, 0x80}
	playerColor     = color.RGBA{0xe0, 0xa8, 0x20, 0xff}
	hoverColor      = color.RGBA{0x30, 0x30, 0x30, 0xff}
	pendingColor    = color.RGBA{0xb0, 0xb0, 0xb8, 0xff}
	failedColor     = color.RGBA{0xc0, 0x30, 0x30, 0xff}
	labelOffset     = 14.0
)

// RenderSystem draws the floor grid and a procedural figure for each
// character. Leg swing and bob come from the character's blended pose, so a
// cross-fade shows as a gradual change of gait.
type RenderSystem struct {
	Floor scene.Floor
	Debug bool
}

func NewRenderSystem(floor scene.Floor) *RenderSystem {
	return &RenderSystem{Floor: floor}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil {
		return
	}
	screen.Fill(backgroundColor)

	cam, ok := entity.Camera(w)
	if !ok || cam.View == nil {
		return
	}
	p := painter{dst: screen, cam: cam.View}
	r.drawFloor(p)

	ents := w.Query(component.CharacterComponent.Kind(), component.TransformComponent.Kind(), component.AppearanceComponent.Kind())
	eye := cam.View.Position
	depth := make(map[ecs.Entity]float64, len(ents))
	for _, e := range ents {
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		depth[e] = tr.Position.Sub(eye).Len()
	}
	sort.SliceStable(ents, func(i, j int) bool { return depth[ents[i]] > depth[ents[j]] })

	for _, e := range ents {
		r.drawCharacter(w, p, e)
	}
}

func (r *RenderSystem) drawFloor(p painter) {
	for _, l := range r.Floor.Lines() {
		clr := gridColor
		if (l.A.X() == 0 && l.B.X() == 0) || (l.A.Z() == 0 && l.B.Z() == 0) {
			clr = axisColor
		}
		p.line(l.A, l.B, 1, clr)
	}
}

func (r *RenderSystem) drawCharacter(w *ecs.World, p painter, e ecs.Entity) {
	ch, _ := ecs.Get(w, e, component.CharacterComponent.Kind())
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	ap, _ := ecs.Get(w, e, component.AppearanceComponent.Kind())
	ctrl := ch.Controller

	body := ap.Color
	switch {
	case ctrl.Err() != nil:
		body = failedColor
	case !ctrl.Loaded():
		body = pendingColor
	}

	ringColor, ringWidth := color.Color(shadowColor), float32(1)
	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		ringColor, ringWidth = playerColor, 3
	} else if ecs.Has(w, e, component.HoveredComponent.Kind()) {
		ringColor, ringWidth = hoverColor, 2
	}
	p.ring(tr.Position, ap.Radius, ringWidth, ringColor)

	f := figure{
		pos:    tr.Position,
		facing: tr.Facing(),
		radius: ap.Radius,
		height: ap.Height,
		pose:   ctrl.Pose(),
		color:  body,
	}
	var head mgl64.Vec3
	if ap.Legs >= 4 {
		head = f.drawQuadruped(p)
	} else {
		head = f.drawBiped(p)
	}

	x, y, ok := p.cam.Project(head.Add(mgl64.Vec3{0, ap.Height * 0.15, 0}))
	if !ok {
		return
	}
	ebitenutil.DebugPrintAt(p.dst, r.label(ch), int(x)-24, int(y-labelOffset))
}

func (r *RenderSystem) label(ch *component.Character) string {
	ctrl := ch.Controller
	switch {
	case ctrl.Err() != nil:
		return ch.Name + " (failed)"
	case !ctrl.Loaded():
		return ch.Name + " (loading)"
	}
	text := ch.Name + ": " + ctrl.Current()
	if !r.Debug || ctrl.Library() == nil {
		return text
	}
	var parts []string
	for _, name := range ctrl.Mixer().Playing() {
		if a, ok := ctrl.Library().Get(name); ok {
			parts = append(parts, fmt.Sprintf("%s %.2f", name, a.Weight()))
		}
	}
	return text + "\n" + strings.Join(parts, "\n")
}

type figure struct {
	pos    mgl64.Vec3
	facing mgl64.Vec3
	radius float64
	height float64
	pose   anim.Pose
	color  color.RGBA
}

func up(h float64) mgl64.Vec3 { return mgl64.Vec3{0, h, 0} }

// side is the facing vector turned a quarter turn clockwise seen from above.
func (f figure) side() mgl64.Vec3 {
	return mgl64.Vec3{f.facing.Z(), 0, -f.facing.X()}
}

func (f figure) leg(p painter, hip, ground mgl64.Vec3, sign float64) {
	foot := ground.Add(f.facing.Mul(sign * f.pose.Swing * 0.5))
	p.line(hip, foot, 3, f.color)
}

func (f figure) drawBiped(p painter) mgl64.Vec3 {
	h, r, bob := f.height, f.radius, f.pose.Bob
	side := f.side().Mul(r * 0.3)
	hip := f.pos.Add(up(h*0.45 + bob))
	shoulder := f.pos.Add(up(h*0.78 + bob))
	head := f.pos.Add(up(h*0.9 + bob))

	f.leg(p, hip.Add(side), f.pos.Add(side), 1)
	f.leg(p, hip.Sub(side), f.pos.Sub(side), -1)
	p.line(hip, shoulder, 4, f.color)

	arm := f.side().Mul(r * 0.5)
	for _, s := range []float64{1, -1} {
		hand := shoulder.Add(arm.Mul(s)).Sub(up(h * 0.3)).Add(f.facing.Mul(-s * f.pose.Swing * 0.4))
		p.line(shoulder, hand, 2, f.color)
	}
	p.disc(head, h*0.09, f.color)
	p.line(head, head.Add(f.facing.Mul(h*0.12)), 2, f.color)
	return head
}

func (f figure) drawQuadruped(p painter) mgl64.Vec3 {
	h, r, bob := f.height, f.radius, f.pose.Bob
	side := f.side().Mul(r * 0.35)
	reach := f.facing.Mul(r * 0.6)

	front := f.pos.Add(reach)
	back := f.pos.Sub(reach)
	frontHip := front.Add(up(h*0.5 + bob))
	backHip := back.Add(up(h*0.5 + bob))

	f.leg(p, frontHip.Add(side), front.Add(side), 1)
	f.leg(p, frontHip.Sub(side), front.Sub(side), -1)
	f.leg(p, backHip.Add(side), back.Add(side), -1)
	f.leg(p, backHip.Sub(side), back.Sub(side), 1)
	p.line(backHip, frontHip, 5, f.color)

	head := frontHip.Add(f.facing.Mul(r * 0.35)).Add(up(h * 0.3))
	p.line(frontHip, head, 3, f.color)
	p.disc(head, h*0.12, f.color)
	tail := backHip.Sub(f.facing.Mul(r * 0.6)).Add(up(h*0.15 + f.pose.Swing*0.1))
	p.line(backHip, tail, 2, f.color)
	return head
}

type painter struct {
	dst *ebiten.Image
	cam *scene.Camera
}

func (p painter) line(a, b mgl64.Vec3, width float32, clr color.Color) {
	ax, ay, okA := p.cam.Project(a)
	bx, by, okB := p.cam.Project(b)
	if !okA || !okB {
		return
	}
	vector.StrokeLine(p.dst, float32(ax), float32(ay), float32(bx), float32(by), width, clr, true)
}

func (p painter) disc(center mgl64.Vec3, radius float64, clr color.Color) {
	cx, cy, ok := p.cam.Project(center)
	if !ok {
		return
	}
	ex, ey, ok := p.cam.Project(center.Add(up(radius)))
	if !ok {
		return
	}
	r := math.Hypot(ex-cx, ey-cy)
	vector.FillCircle(p.dst, float32(cx), float32(cy), float32(r), clr, true)
}

// ring draws a circle lying on the floor around center.
func (p painter) ring(center mgl64.Vec3, radius float64, width float32, clr color.Color) {
	const segments = 24
	prev := center.Add(mgl64.Vec3{radius, 0, 0})
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		next := center.Add(mgl64.Vec3{radius * math.Cos(a), 0, radius * math.Sin(a)})
		p.line(prev, next, width, clr)
		prev = next
	}
}
