package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrEmptyOBJ         = errors.New("OBJ contains no vertices")
	ErrInvalidOBJVertex = errors.New("invalid OBJ vertex")
	ErrInvalidOBJFace   = errors.New("invalid OBJ face")
	ErrOBJIndexRange    = errors.New("OBJ face index out of range")
)

// OBJ is a parsed Wavefront OBJ triangle mesh.
// Only positions and faces are kept; polygons are fan-triangulated.
type OBJ struct {
	Name      string
	Vertices  [][3]float32
	Triangles [][3]uint32

	// Skipped counts statements the parser ignored (normals, texcoords,
	// materials, groups).
	Skipped int
}

// VertexCount returns the number of vertex positions.
func (o *OBJ) VertexCount() int {
	return len(o.Vertices)
}

// TriangleCount returns the number of triangles.
func (o *OBJ) TriangleCount() int {
	return len(o.Triangles)
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (o *OBJ) Bounds() (min, max [3]float32) {
	if len(o.Vertices) == 0 {
		return min, max
	}
	min, max = o.Vertices[0], o.Vertices[0]
	for _, v := range o.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return min, max
}

// FlatVertices returns the positions as a tightly packed xyz slice.
func (o *OBJ) FlatVertices() []float32 {
	out := make([]float32, 0, len(o.Vertices)*3)
	for _, v := range o.Vertices {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

// FlatIndices returns the triangle indices as a tightly packed slice.
func (o *OBJ) FlatIndices() []uint32 {
	out := make([]uint32, 0, len(o.Triangles)*3)
	for _, t := range o.Triangles {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}

// Validate checks that every triangle index references an existing vertex.
func (o *OBJ) Validate() error {
	n := uint32(len(o.Vertices))
	for i, t := range o.Triangles {
		for _, idx := range t {
			if idx >= n {
				return fmt.Errorf("%w: triangle %d references vertex %d of %d", ErrOBJIndexRange, i, idx, n)
			}
		}
	}
	return nil
}

// LoadOBJ reads and parses an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	return ParseOBJ(data)
}

// ParseOBJ parses OBJ data from bytes.
func ParseOBJ(data []byte) (*OBJ, error) {
	return ReadOBJ(bytes.NewReader(data))
}

// ReadOBJ parses OBJ data from a reader.
func ReadOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			obj.Vertices = append(obj.Vertices, v)

		case "f":
			if err := obj.addFace(fields[1:]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

		case "o":
			if obj.Name == "" && len(fields) > 1 {
				obj.Name = strings.Join(fields[1:], " ")
			}

		default:
			// vn, vt, g, s, l, usemtl, mtllib
			obj.Skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning OBJ: %w", err)
	}

	if len(obj.Vertices) == 0 {
		return nil, ErrEmptyOBJ
	}
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return obj, nil
}

// parseVertex parses "x y z [w]".
func parseVertex(fields []string) ([3]float32, error) {
	var v [3]float32
	if len(fields) < 3 {
		return v, fmt.Errorf("%w: expected 3 coordinates, got %d", ErrInvalidOBJVertex, len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, fmt.Errorf("%w: %v", ErrInvalidOBJVertex, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

// addFace parses a face of the form "v", "v/vt", "v//vn" or "v/vt/vn" and
// appends it as a triangle fan.
func (o *OBJ) addFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("%w: expected at least 3 vertices, got %d", ErrInvalidOBJFace, len(fields))
	}

	indices := make([]uint32, len(fields))
	for i, field := range fields {
		ref := field
		if slash := strings.IndexByte(field, '/'); slash >= 0 {
			ref = field[:slash]
		}

		idx, err := strconv.ParseInt(ref, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("%w: vertex reference %q", ErrOBJIndexRange, field)
		}
		if err != nil || idx == 0 {
			return fmt.Errorf("%w: bad vertex reference %q", ErrInvalidOBJFace, field)
		}

		// Negative references count back from the last vertex read so far.
		if idx < 0 {
			idx = int64(len(o.Vertices)) + idx + 1
			if idx <= 0 {
				return fmt.Errorf("%w: relative reference %q before first vertex", ErrOBJIndexRange, field)
			}
		}
		// Larger indices would wrap in the uint32 index buffer.
		if idx > math.MaxUint32 {
			return fmt.Errorf("%w: vertex reference %q", ErrOBJIndexRange, field)
		}
		indices[i] = uint32(idx - 1)
	}

	for i := 1; i+1 < len(indices); i++ {
		o.Triangles = append(o.Triangles, [3]uint32{indices[0], indices[i], indices[i+1]})
	}
	return nil
}
