// Package camera provides the viewer camera: manual key-driven movement and
// an automatic dolly-and-sweep mode.
package camera

import (
	"github.com/Faultbox/carousel/pkg/math"
)

// Defaults and manual step sizes.
const (
	DefaultDistance float32 = -10.0

	DistanceStep float32 = 0.05
	OffsetStep   float32 = 0.025
	AngleStep    float32 = 1.0 // degrees
)

// Automatic mode dolly.
const (
	AutoDistanceLimit float32 = -18.0
	AutoDistanceStep  float32 = 0.1
)

// Automatic mode sweep step per tick, in degrees.
const (
	SweepYawStep   float32 = 0.5
	SweepPitchStep float32 = 0.02
)

// Yaw sweep phase boundaries in ticks. The counter wraps from yawCycleEnd
// back to yawLeadIn, so the initial hold runs only once.
const (
	yawLeadIn     = 10  // hold
	yawAdvanceEnd = 80  // advance
	yawPauseEnd   = 100 // hold
	yawReverseEnd = 240 // reverse
	yawRestEnd    = 250 // hold
	yawCycleEnd   = 320 // advance back to start
)

// Pitch sweep phase boundaries in ticks. The counter wraps from
// pitchCycleEnd to pitchLeadIn rather than zero.
const (
	pitchLeadIn   = 100  // hold
	pitchRiseEnd  = 550  // rise
	pitchCycleEnd = 1000 // fall
)

// Move is a single manual camera adjustment.
type Move int

// Manual moves.
const (
	MoveForward Move = iota
	MoveBack
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	PitchUp
	PitchDown
	YawLeft
	YawRight
)

// Camera holds the view scalars and derives the view matrix from them.
// The view is RotateX(pitch) * RotateY(yaw) * Translate(x, y, z).
// It is not safe for concurrent use.
type Camera struct {
	Distance float32 // z translation
	OffsetX  float32
	OffsetY  float32

	Yaw   float32 // manual, degrees
	Pitch float32 // manual, degrees

	SweepYaw   float32 // automatic, degrees
	SweepPitch float32 // automatic, degrees

	auto       bool
	yawTicks   int
	pitchTicks int

	view math.Mat4
}

// New returns a camera at its defaults in manual mode.
func New() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// ViewMatrix composes a view matrix from the given scalars.
func ViewMatrix(pitch, yaw, x, y, z float32) math.Mat4 {
	return math.RotateX(pitch).Mul(math.RotateY(yaw)).Mul(math.Translate(x, y, z))
}

// Reset restores every scalar and sweep counter to its default and rebuilds
// the view. The mode is left unchanged.
func (c *Camera) Reset() {
	auto := c.auto
	*c = Camera{
		Distance: DefaultDistance,
		auto:     auto,
	}
	c.rebuild()
}

// SetAuto switches between manual and automatic mode. Either switch resets
// the camera to its defaults.
func (c *Camera) SetAuto(on bool) {
	c.auto = on
	c.Reset()
}

// Auto reports whether the automatic sweep is active.
func (c *Camera) Auto() bool {
	return c.auto
}

// View returns the current view matrix.
func (c *Camera) View() math.Mat4 {
	return c.view
}

// Counters returns the yaw and pitch sweep tick counters.
func (c *Camera) Counters() (yaw, pitch int) {
	return c.yawTicks, c.pitchTicks
}

// Move applies one manual step and rebuilds the view. Moves are ignored in
// automatic mode; the return value reports whether the view changed.
func (c *Camera) Move(m Move) bool {
	if c.auto {
		return false
	}

	switch m {
	case MoveForward:
		c.Distance += DistanceStep
	case MoveBack:
		c.Distance -= DistanceStep
	case MoveLeft:
		c.OffsetX += OffsetStep
	case MoveRight:
		c.OffsetX -= OffsetStep
	case MoveUp:
		c.OffsetY -= OffsetStep
	case MoveDown:
		c.OffsetY += OffsetStep
	case PitchUp:
		c.Pitch -= AngleStep
	case PitchDown:
		c.Pitch += AngleStep
	case YawLeft:
		c.Yaw -= AngleStep
	case YawRight:
		c.Yaw += AngleStep
	default:
		return false
	}

	c.rebuild()
	return true
}

// Tick advances the automatic mode by one step. It returns false and does
// nothing in manual mode.
func (c *Camera) Tick() bool {
	if !c.auto {
		return false
	}

	if c.Distance > AutoDistanceLimit {
		c.Distance -= AutoDistanceStep
		if c.Distance < AutoDistanceLimit {
			c.Distance = AutoDistanceLimit
		}
	}

	c.SweepYaw += float32(yawDirection(c.yawTicks)) * SweepYawStep
	c.SweepPitch += float32(pitchDirection(c.pitchTicks)) * SweepPitchStep

	c.yawTicks++
	if c.yawTicks >= yawCycleEnd {
		c.yawTicks = yawLeadIn
	}
	c.pitchTicks++
	if c.pitchTicks >= pitchCycleEnd {
		c.pitchTicks = pitchLeadIn
	}

	c.rebuild()
	return true
}

// yawDirection returns the yaw sweep direction for tick t.
func yawDirection(t int) int {
	switch {
	case t < yawLeadIn:
		return 0
	case t < yawAdvanceEnd:
		return 1
	case t < yawPauseEnd:
		return 0
	case t < yawReverseEnd:
		return -1
	case t < yawRestEnd:
		return 0
	default:
		return 1
	}
}

// pitchDirection returns the pitch sweep direction for tick t.
func pitchDirection(t int) int {
	switch {
	case t < pitchLeadIn:
		return 0
	case t < pitchRiseEnd:
		return 1
	default:
		return -1
	}
}

func (c *Camera) rebuild() {
	c.view = ViewMatrix(c.Pitch+c.SweepPitch, c.Yaw+c.SweepYaw, c.OffsetX, c.OffsetY, c.Distance)
}
