package formats

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const cubeOBJ = `# unit cube, quads
mtllib cube.mtl
o Cube
v -1 -1 -1
v  1 -1 -1
v  1  1 -1
v -1  1 -1
v -1 -1  1
v  1 -1  1
v  1  1  1
v -1  1  1
vn 0 0 1
vt 0 0
usemtl base
s off
f 1 2 3 4
f 5/1 6/1 7/1 8/1
f 1//1 2//1 6//1 5//1
f 4/1/1 3/1/1 7/1/1 8/1/1
f 1 4 8 5
f 2 3 7 6
`

func TestParseOBJ_Cube(t *testing.T) {
	obj, err := ParseOBJ([]byte(cubeOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if obj.Name != "Cube" {
		t.Errorf("expected name Cube, got %q", obj.Name)
	}
	if obj.VertexCount() != 8 {
		t.Errorf("expected 8 vertices, got %d", obj.VertexCount())
	}
	// 6 quads fan into 12 triangles
	if obj.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", obj.TriangleCount())
	}
	// mtllib, vn, vt, usemtl, s
	if obj.Skipped != 5 {
		t.Errorf("expected 5 skipped statements, got %d", obj.Skipped)
	}

	first := obj.Triangles[0]
	if first != [3]uint32{0, 1, 2} {
		t.Errorf("first triangle: got %v, want [0 1 2]", first)
	}
	second := obj.Triangles[1]
	if second != [3]uint32{0, 2, 3} {
		t.Errorf("second triangle: got %v, want [0 2 3]", second)
	}

	min, max := obj.Bounds()
	if min != [3]float32{-1, -1, -1} || max != [3]float32{1, 1, 1} {
		t.Errorf("bounds: got %v..%v", min, max)
	}
}

func TestParseOBJ_Flatten(t *testing.T) {
	obj, err := ParseOBJ([]byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	verts := obj.FlatVertices()
	if len(verts) != 9 || verts[3] != 1 || verts[7] != 1 {
		t.Errorf("FlatVertices: got %v", verts)
	}
	idx := obj.FlatIndices()
	if len(idx) != 3 || idx[0] != 0 || idx[1] != 1 || idx[2] != 2 {
		t.Errorf("FlatIndices: got %v", idx)
	}
}

func TestParseOBJ_NegativeIndices(t *testing.T) {
	obj, err := ParseOBJ([]byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if obj.Triangles[0] != [3]uint32{0, 1, 2} {
		t.Errorf("relative face: got %v, want [0 1 2]", obj.Triangles[0])
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "# nothing\n", ErrEmptyOBJ},
		{"short vertex", "v 1 2\n", ErrInvalidOBJVertex},
		{"bad vertex", "v 1 x 3\n", ErrInvalidOBJVertex},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrInvalidOBJFace},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrInvalidOBJFace},
		{"out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", ErrOBJIndexRange},
		{"relative before first", "v 0 0 0\nf -1 -2 -3\n", ErrOBJIndexRange},
		{"index wraps uint32", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 4294967297 2 3\n", ErrOBJIndexRange},
		{"index overflows int64", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 99999999999999999999 2 3\n", ErrOBJIndexRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test OBJ: %v", err)
	}

	obj, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if obj.TriangleCount() != 1 {
		t.Errorf("expected 1 triangle, got %d", obj.TriangleCount())
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}
