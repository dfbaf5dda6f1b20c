// Package input translates SDL2 events into SDL-free viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a viewer event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseDown
	EventMouseUp
)

// Key is a key the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyS
	KeyA
	KeyD
	KeyR
	KeyF
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyM
	KeyN
	KeySpace
	KeyF12
	KeyEscape
)

// Button is a mouse button.
type Button int

const (
	ButtonUnknown Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Button Button
	Width  int
	Height int
	MouseX int
	MouseY int
}

var keymap = map[sdl.Keycode]Key{
	sdl.K_w:      KeyW,
	sdl.K_s:      KeyS,
	sdl.K_a:      KeyA,
	sdl.K_d:      KeyD,
	sdl.K_r:      KeyR,
	sdl.K_f:      KeyF,
	sdl.K_UP:     KeyUp,
	sdl.K_DOWN:   KeyDown,
	sdl.K_LEFT:   KeyLeft,
	sdl.K_RIGHT:  KeyRight,
	sdl.K_m:      KeyM,
	sdl.K_n:      KeyN,
	sdl.K_SPACE:  KeySpace,
	sdl.K_F12:    KeyF12,
	sdl.K_ESCAPE: KeyEscape,
}

// TranslateKey maps an SDL keycode to a Key.
func TranslateKey(code sdl.Keycode) Key {
	if k, ok := keymap[code]; ok {
		return k
	}
	return KeyUnknown
}

// TranslateButton maps an SDL mouse button index to a Button.
func TranslateButton(b uint8) Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return ButtonRight
	default:
		return ButtonUnknown
	}
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			// Key repeat moves the camera continuously while held.
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if k := TranslateKey(e.Keysym.Sym); k != KeyUnknown {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: k})
			}

		case *sdl.MouseButtonEvent:
			t := EventMouseUp
			if e.Type == sdl.MOUSEBUTTONDOWN {
				t = EventMouseDown
			}
			i.events = append(i.events, Event{
				Type:   t,
				Button: TranslateButton(e.Button),
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
