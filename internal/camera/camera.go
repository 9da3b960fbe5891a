package camera

import (
	"fmt"
	"math"
	"strings"
)

type Mode string

const (
	ModeKeys    Mode = "keys"
	ModePointer Mode = "pointer"
	ModeAuto    Mode = "auto"
)

func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case ModeKeys:
		return ModeKeys, nil
	case ModePointer:
		return ModePointer, nil
	case ModeAuto:
		return ModeAuto, nil
	}
	return "", fmt.Errorf("unknown camera mode %q (want keys, pointer or auto)", name)
}

// Rig is a camera whose view stays anchored while the world scrolls past it.
// X is the left edge of the view in scene units.
type Rig struct {
	x        float64
	viewport float64
	Speed    float64

	// Smoothness controls how quickly velocity follows the input axis.
	// Range [0,1]. 1.0 = instant, lower values ease in and out.
	Smoothness float64
	velocity   float64
	Travelled  float64
}

func NewRig(x, viewportWidth, speed float64) *Rig {
	return &Rig{
		x:          x,
		viewport:   viewportWidth,
		Speed:      speed,
		Smoothness: 1,
	}
}

func (r *Rig) X() float64             { return r.x }
func (r *Rig) ViewportWidth() float64 { return r.viewport }
func (r *Rig) Velocity() float64      { return r.velocity }

func (r *Rig) SetViewportWidth(width float64) {
	r.viewport = width
}

// Step advances the camera by axis (-1 left, 1 right) for dt seconds and
// returns the horizontal scroll the background should receive this frame.
func (r *Rig) Step(axis, dt float64) float64 {
	axis = math.Max(-1, math.Min(1, axis))
	smoothness := math.Max(0, math.Min(1, r.Smoothness))

	target := axis * r.Speed
	r.velocity += (target - r.velocity) * smoothness
	if math.Abs(r.velocity) < 1e-6 {
		r.velocity = 0
	}

	moved := r.velocity * dt
	r.Travelled += moved
	return -moved
}

// PointerAxis maps a pointer X position to an axis in [-1, 1] relative to
// the screen center. Offsets inside deadzone (fraction of half width) give 0.
func PointerAxis(pointerX, screenWidth int, deadzone float64) float64 {
	if screenWidth <= 0 {
		return 0
	}
	half := float64(screenWidth) / 2
	offset := (float64(pointerX) - half) / half
	offset = math.Max(-1, math.Min(1, offset))

	if math.Abs(offset) <= deadzone {
		return 0
	}
	// Rescale so the axis starts at 0 on the deadzone edge.
	sign := 1.0
	if offset < 0 {
		sign = -1
	}
	return sign * (math.Abs(offset) - deadzone) / (1 - deadzone)
}
