package scene

import (
	gomath "math"

	"github.com/Faultbox/carousel/pkg/math"
)

// DegreesPerMs is how far the primary angle advances per millisecond of tick time.
const DegreesPerMs = 1.0 / 20.0

// Axis selects the active rotation axis.
type Axis int

// Rotation axes.
const (
	AxisNone Axis = iota
	AxisY
)

// String returns the config name of the axis.
func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "none"
}

// ParseAxis converts a config name to an Axis. Anything but "y" is AxisNone.
func ParseAxis(s string) Axis {
	if s == "y" {
		return AxisY
	}
	return AxisNone
}

// WrapAngle wraps degrees into [0, 360).
func WrapAngle(deg float32) float32 {
	w := float32(gomath.Mod(float64(deg), 360))
	if w < 0 {
		w += 360
	}
	// float32 rounding can land a tiny negative on exactly 360
	if w >= 360 {
		w = 0
	}
	return w
}

// OrbitAngle returns the self-spin angle of orbiting slots for the given
// primary angle and tick step.
func OrbitAngle(primary, step float32) float32 {
	return -WrapAngle(primary + step)
}

// Animator owns the animation state and one model matrix per slot.
// It is not safe for concurrent use.
type Animator struct {
	slots  []Slot
	models []math.Mat4

	angle   float32 // primary angle, degrees in [0, 360)
	axis    Axis
	enabled bool
}

// NewAnimator creates an animator with every model matrix at identity,
// animation enabled and rotation about Y.
func NewAnimator(slots []Slot) *Animator {
	models := make([]math.Mat4, len(slots))
	for i := range models {
		models[i] = math.Identity()
	}
	return &Animator{
		slots:   slots,
		models:  models,
		axis:    AxisY,
		enabled: true,
	}
}

// Len returns the number of slots.
func (a *Animator) Len() int {
	return len(a.slots)
}

// Slot returns the slot at index i.
func (a *Animator) Slot(i int) Slot {
	return a.slots[i]
}

// Model returns the current model matrix of slot i.
func (a *Animator) Model(i int) math.Mat4 {
	return a.models[i]
}

// Angle returns the primary angle in degrees.
func (a *Animator) Angle() float32 {
	return a.angle
}

// Axis returns the active rotation axis.
func (a *Animator) Axis() Axis {
	return a.axis
}

// SetAxis selects the active rotation axis.
func (a *Animator) SetAxis(axis Axis) {
	a.axis = axis
}

// Enabled reports whether ticks update the model matrices.
func (a *Animator) Enabled() bool {
	return a.enabled
}

// SetEnabled starts or stops the animation.
func (a *Animator) SetEnabled(on bool) {
	a.enabled = on
}

// Tick advances the animation by deltaMs and recomputes the model matrices.
// It returns false, leaving every matrix unchanged, while the animation is
// disabled; otherwise it returns true to request a redraw.
//
// With AxisNone the primary angle is reset to 0 and the tick contributes no
// rotation, so every animated slot shows its unrotated pose.
func (a *Animator) Tick(deltaMs float32) bool {
	if !a.enabled {
		return false
	}

	var step float32
	switch a.axis {
	case AxisNone:
		a.angle = 0
	case AxisY:
		step = deltaMs * DegreesPerMs
		a.angle = WrapAngle(a.angle + step)
	}

	world := math.Identity().Mul(math.RotateY(a.angle))

	for i, s := range a.slots {
		switch s.Kind {
		case KindStatic:
			// never animated
		case KindRotating:
			a.models[i] = world
		case KindPivot:
			a.models[i] = math.TranslateVec(s.Offset).
				Mul(world).
				Mul(math.TranslateVec(s.Offset.Mul(-1)))
		case KindOrbiting:
			spin := math.RotateY(OrbitAngle(a.angle, step))
			// applying the spin twice doubles the rate
			a.models[i] = math.TranslateVec(s.Offset).Mul(spin.Mul(spin))
		}
	}

	return true
}
