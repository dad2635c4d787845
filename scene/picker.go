package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Intersection is one footprint under the cursor.
type Intersection struct {
	ID       uint64
	Point    mgl64.Vec3
	Distance float64
}

type footprint struct {
	body   *cp.Body
	shape  *cp.Shape
	radius float64
	height float64
}

// Picker indexes character footprints as circles on the floor plane. World X
// maps to space X and world Z maps to space Y.
type Picker struct {
	space *cp.Space
	feet  map[uint64]*footprint
	floor float64
}

func NewPicker(floorY float64) *Picker {
	return &Picker{
		space: cp.NewSpace(),
		feet:  make(map[uint64]*footprint),
		floor: floorY,
	}
}

// Sync places or moves the footprint for id. height is how tall the figure
// standing on it is.
func (p *Picker) Sync(id uint64, pos mgl64.Vec3, radius, height float64) {
	if p == nil || radius <= 0 {
		return
	}
	at := cp.Vector{X: pos.X(), Y: pos.Z()}
	f, ok := p.feet[id]
	if ok && f.radius != radius {
		p.Remove(id)
		ok = false
	}
	if !ok {
		body := cp.NewKinematicBody()
		body.SetPosition(at)
		shape := cp.NewCircle(body, radius, cp.Vector{})
		shape.UserData = id
		p.space.AddBody(body)
		p.space.AddShape(shape)
		shape.CacheBB()
		p.feet[id] = &footprint{body: body, shape: shape, radius: radius, height: height}
		return
	}
	f.height = height
	f.body.SetPosition(at)
	f.shape.CacheBB()
}

// Remove drops id's footprint. Unknown ids are ignored.
func (p *Picker) Remove(id uint64) {
	if p == nil {
		return
	}
	f, ok := p.feet[id]
	if !ok {
		return
	}
	p.space.RemoveShape(f.shape)
	p.space.RemoveBody(f.body)
	delete(p.feet, id)
}

func (p *Picker) Len() int {
	if p == nil {
		return 0
	}
	return len(p.feet)
}

// pickHeights are the fractions of a figure's height the cursor ray is tested at.
var pickHeights = []float64{0, 0.5, 1}

// Pick returns the footprints under screen point (x, y), nearest to the camera first.
func (p *Picker) Pick(x, y float64, cam *Camera) []Intersection {
	if p == nil || cam == nil || len(p.feet) == 0 {
		return nil
	}
	origin, dir := cam.Ray(x, y)

	hits := make(map[uint64]Intersection)
	for _, frac := range pickHeights {
		for id, f := range p.feet {
			if _, done := hits[id]; done {
				continue
			}
			h := p.floor + frac*f.height
			point, ok := IntersectPlaneY(origin, dir, h)
			if !ok {
				continue
			}
			if p.inside(f.shape, point) {
				hits[id] = Intersection{ID: id, Point: point, Distance: point.Sub(origin).Len()}
			}
		}
	}

	out := make([]Intersection, 0, len(hits))
	for _, hit := range hits {
		out = append(out, hit)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// inside reports whether point's floor projection lies within shape.
func (p *Picker) inside(shape *cp.Shape, point mgl64.Vec3) bool {
	return shape.PointQuery(cp.Vector{X: point.X(), Y: point.Z()}).Distance <= 0
}
