package game

import (
	"github.com/Faultbox/carousel/internal/config"
	"github.com/Faultbox/carousel/internal/engine/camera"
	"github.com/Faultbox/carousel/internal/engine/scene"
	"github.com/Faultbox/carousel/pkg/math"
)

// State is everything the handlers mutate and the renderer reads.
// It is owned by the loop goroutine.
type State struct {
	Animator *scene.Animator
	Camera   *camera.Camera

	projCfg    config.ProjectionConfig
	projection math.Mat4
}

// NewState builds the initial state for the given slots and settings.
func NewState(slots []scene.Slot, cfg *config.Config) *State {
	s := &State{
		Animator: scene.NewAnimator(slots),
		Camera:   camera.New(),
		projCfg:  cfg.Projection,
	}

	s.Animator.SetEnabled(cfg.Animation.Enabled)
	s.Animator.SetAxis(scene.ParseAxis(cfg.Animation.Axis))
	if cfg.Animation.AutoCamera {
		s.Camera.SetAuto(true)
	}
	s.Resize(cfg.Window.Width, cfg.Window.Height)
	return s
}

// Resize rebuilds the projection for a new viewport. A zero height is
// treated as one pixel so the aspect stays finite.
func (s *State) Resize(width, height int) {
	if height <= 0 {
		height = 1
	}
	if width <= 0 {
		width = 1
	}
	aspect := float32(width) / float32(height)
	s.projection = math.Perspective(s.projCfg.FovY, aspect, s.projCfg.Near, s.projCfg.Far)
}

// Projection returns the current projection matrix.
func (s *State) Projection() math.Mat4 {
	return s.projection
}
