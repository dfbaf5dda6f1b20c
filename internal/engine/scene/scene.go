// Package scene holds the object slot table and the per-tick model transform
// update for the carousel.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/carousel/internal/config"
)

// SlotCount is the number of objects in the built-in layout.
const SlotCount = 15

// ErrUnknownKind is returned for slot kinds outside the fixed set.
var ErrUnknownKind = errors.New("unknown slot kind")

// Kind tags how a slot's model matrix is derived each tick.
type Kind int

// Slot kinds.
const (
	// KindStatic slots are never animated (stand, top assembly, surroundings).
	KindStatic Kind = iota
	// KindRotating slots take the shared world rotation about the origin.
	KindRotating
	// KindPivot slots spin with the world rotation about their Offset.
	KindPivot
	// KindOrbiting slots spin about their own center at double rate in the
	// opposite direction and are then placed at Offset.
	KindOrbiting
)

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindRotating:
		return "rotating"
	case KindPivot:
		return "pivot"
	case KindOrbiting:
		return "orbiting"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a config name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "static":
		return KindStatic, nil
	case "rotating":
		return KindRotating, nil
	case "pivot":
		return KindPivot, nil
	case "orbiting":
		return KindOrbiting, nil
	default:
		return KindStatic, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Slot pairs a mesh file with its animation rule.
type Slot struct {
	Mesh   string
	Kind   Kind
	Offset mgl32.Vec3 // pivot point (KindPivot) or orbit offset (KindOrbiting)
}

// DefaultLayout returns the built-in 15-slot carousel.
func DefaultLayout() []Slot {
	return []Slot{
		{Mesh: "models/stand.obj", Kind: KindStatic},
		{Mesh: "models/ring.obj", Kind: KindRotating},
		{Mesh: "models/bar_01.obj", Kind: KindRotating},
		{Mesh: "models/bar_02.obj", Kind: KindRotating},
		{Mesh: "models/bar_03.obj", Kind: KindRotating},
		{Mesh: "models/bar_04.obj", Kind: KindRotating},
		{Mesh: "models/cone.obj", Kind: KindStatic}, // top assembly
		{Mesh: "models/ball_01.obj", Kind: KindOrbiting, Offset: mgl32.Vec3{2.5, 0.5, 0}},
		{Mesh: "models/ball_02.obj", Kind: KindOrbiting, Offset: mgl32.Vec3{-2.5, 0.5, 0}},
		{Mesh: "models/cone_small.obj", Kind: KindPivot, Offset: mgl32.Vec3{0, 0, 2.5}},
		{Mesh: "models/rectangle_small.obj", Kind: KindRotating},
		{Mesh: "models/rectangle_big.obj", Kind: KindRotating},
		{Mesh: "models/elliptic_ring.obj", Kind: KindRotating},
		{Mesh: "models/ellipse.obj", Kind: KindRotating},
		{Mesh: "models/surrounding.obj", Kind: KindStatic},
	}
}

// LayoutFromConfig builds the slot table from config, falling back to
// DefaultLayout when no slots are configured.
func LayoutFromConfig(slots []config.SlotConfig) ([]Slot, error) {
	if len(slots) == 0 {
		return DefaultLayout(), nil
	}

	layout := make([]Slot, 0, len(slots))
	for i, s := range slots {
		kind, err := ParseKind(s.Kind)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		layout = append(layout, Slot{
			Mesh:   s.Mesh,
			Kind:   kind,
			Offset: mgl32.Vec3(s.Offset),
		})
	}
	return layout, nil
}
