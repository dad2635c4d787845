package scene

import "github.com/go-gl/mathgl/mgl64"

// Floor is a square grid on the plane y = Y, centred on the origin.
type Floor struct {
	Size float64 `yaml:"size"`
	Step float64 `yaml:"step"`
	Y    float64 `yaml:"y"`
}

// Line is a segment in world space.
type Line struct {
	A, B mgl64.Vec3
}

// Lines returns the grid lines, both directions, outer edges included.
func (f Floor) Lines() []Line {
	if f.Size <= 0 || f.Step <= 0 {
		return nil
	}
	half := f.Size / 2
	n := int(f.Size/f.Step + 0.5)
	lines := make([]Line, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		v := -half + float64(i)*f.Step
		lines = append(lines,
			Line{mgl64.Vec3{v, f.Y, -half}, mgl64.Vec3{v, f.Y, half}},
			Line{mgl64.Vec3{-half, f.Y, v}, mgl64.Vec3{half, f.Y, v}},
		)
	}
	return lines
}
