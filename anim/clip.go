package anim

// Clip is a named animation sequence. Stride and Bob describe how the
// procedural figure moves while the clip plays.
type Clip struct {
	Name     string
	Duration float64
	Stride   float64
	Bob      float64
}
