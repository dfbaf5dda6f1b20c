package game

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/Faultbox/carousel/internal/assets"
	"github.com/Faultbox/carousel/internal/engine/scene"
	"github.com/Faultbox/carousel/internal/logger"
)

const triangleOBJ = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func testLoader() *assets.Manager {
	m := assets.NewManager()
	m.AddFS(fstest.MapFS{
		"models/a.obj": {Data: []byte(triangleOBJ)},
		"models/b.obj": {Data: []byte(triangleOBJ)},
	})
	return m
}

func TestLoadMeshes(t *testing.T) {
	logger.InitNop()
	slots := []scene.Slot{
		{Mesh: "models/a.obj", Kind: scene.KindStatic},
		{Mesh: "models/b.obj", Kind: scene.KindRotating},
		{Mesh: "models/a.obj", Kind: scene.KindRotating},
	}

	meshes, err := LoadMeshes(testLoader(), slots, false)
	if err != nil {
		t.Fatalf("LoadMeshes failed: %v", err)
	}
	if len(meshes) != len(slots) {
		t.Fatalf("got %d meshes, want %d", len(meshes), len(slots))
	}
	for i, m := range meshes {
		if m.TriangleCount() != 1 {
			t.Errorf("slot %d: got %d triangles", i, m.TriangleCount())
		}
	}
	if meshes[0] != meshes[2] {
		t.Error("shared mesh path should reuse the cached mesh")
	}
}

func TestLoadMeshesMissingIsFatal(t *testing.T) {
	logger.InitNop()
	slots := []scene.Slot{{Mesh: "models/a.obj"}, {Mesh: "models/gone.obj"}}

	_, err := LoadMeshes(testLoader(), slots, false)
	if !errors.Is(err, assets.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadMeshesPlaceholder(t *testing.T) {
	logger.InitNop()
	slots := []scene.Slot{{Mesh: "models/gone.obj"}, {Mesh: "models/a.obj"}}

	meshes, err := LoadMeshes(testLoader(), slots, true)
	if err != nil {
		t.Fatalf("LoadMeshes failed: %v", err)
	}
	if meshes[0] == nil || meshes[0].TriangleCount() != 0 {
		t.Errorf("expected empty placeholder, got %+v", meshes[0])
	}
	if meshes[1].TriangleCount() != 1 {
		t.Error("loaded slot should keep its mesh")
	}
}
