package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/carousel/internal/engine/scene"
	"github.com/Faultbox/carousel/internal/logger"
	"github.com/Faultbox/carousel/pkg/formats"
)

// MeshLoader loads a parsed mesh by path.
type MeshLoader interface {
	LoadMesh(path string) (*formats.OBJ, error)
}

// LoadMeshes loads one mesh per slot, in slot order. A failed load aborts
// unless placeholder is set, in which case the slot gets an empty mesh.
func LoadMeshes(loader MeshLoader, slots []scene.Slot, placeholder bool) ([]*formats.OBJ, error) {
	meshes := make([]*formats.OBJ, len(slots))
	missing := 0

	for i, slot := range slots {
		obj, err := loader.LoadMesh(slot.Mesh)
		if err != nil {
			if !placeholder {
				return nil, fmt.Errorf("loading slot %d mesh: %w", i, err)
			}
			logger.Warn("using empty placeholder mesh",
				zap.Int("slot", i),
				zap.String("mesh", slot.Mesh),
				zap.Error(err),
			)
			obj = &formats.OBJ{Name: slot.Mesh}
			missing++
		}
		meshes[i] = obj
	}

	logger.Info("scene meshes loaded",
		zap.Int("slots", len(slots)),
		zap.Int("placeholders", missing),
	)
	return meshes, nil
}
