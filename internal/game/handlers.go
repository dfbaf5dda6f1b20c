package game

import (
	"github.com/Faultbox/carousel/internal/engine/camera"
	"github.com/Faultbox/carousel/internal/engine/input"
	"github.com/Faultbox/carousel/internal/engine/scene"
)

// Action tells the loop what to do after a handler ran.
type Action int

const (
	ActionNone Action = iota
	ActionRedraw
	ActionQuit
	ActionScreenshot
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionRedraw:
		return "redraw"
	case ActionQuit:
		return "quit"
	case ActionScreenshot:
		return "screenshot"
	default:
		return "unknown"
	}
}

var cameraKeys = map[input.Key]camera.Move{
	input.KeyW:     camera.MoveForward,
	input.KeyS:     camera.MoveBack,
	input.KeyA:     camera.MoveLeft,
	input.KeyD:     camera.MoveRight,
	input.KeyR:     camera.MoveUp,
	input.KeyF:     camera.MoveDown,
	input.KeyUp:    camera.PitchUp,
	input.KeyDown:  camera.PitchDown,
	input.KeyLeft:  camera.YawLeft,
	input.KeyRight: camera.YawRight,
}

// HandleKey applies a key press.
func (s *State) HandleKey(key input.Key) Action {
	if move, ok := cameraKeys[key]; ok {
		if s.Camera.Move(move) {
			return ActionRedraw
		}
		return ActionNone
	}

	switch key {
	case input.KeyM:
		s.Camera.SetAuto(true)
		return ActionRedraw
	case input.KeyN:
		s.Camera.SetAuto(false)
		return ActionRedraw
	case input.KeySpace:
		s.Animator.SetEnabled(!s.Animator.Enabled())
		return ActionRedraw
	case input.KeyF12:
		return ActionScreenshot
	case input.KeyEscape:
		return ActionQuit
	}
	return ActionNone
}

// HandleMouse applies a mouse button transition. Only presses act.
func (s *State) HandleMouse(button input.Button, pressed bool) Action {
	if !pressed {
		return ActionNone
	}

	switch button {
	case input.ButtonLeft:
		s.Animator.SetAxis(scene.AxisNone)
		s.Animator.SetEnabled(true)
		return ActionRedraw
	case input.ButtonMiddle:
		s.Animator.SetAxis(scene.AxisY)
		s.Animator.SetEnabled(true)
		return ActionRedraw
	case input.ButtonRight:
		return ActionQuit
	}
	return ActionNone
}

// Dispatch routes one input event to its handler.
func (s *State) Dispatch(e input.Event) Action {
	switch e.Type {
	case input.EventQuit:
		return ActionQuit
	case input.EventWindowResize:
		s.Resize(e.Width, e.Height)
		return ActionRedraw
	case input.EventKeyDown:
		return s.HandleKey(e.Key)
	case input.EventMouseDown:
		return s.HandleMouse(e.Button, true)
	case input.EventMouseUp:
		return s.HandleMouse(e.Button, false)
	}
	return ActionNone
}

// Idle advances the camera sweep and the animation by deltaMs.
func (s *State) Idle(deltaMs float32) Action {
	moved := s.Camera.Tick()
	animated := s.Animator.Tick(deltaMs)
	if moved || animated {
		return ActionRedraw
	}
	return ActionNone
}
