// Package formats provides parsers for the mesh file formats the viewer loads.
//
// Only the geometry subset of Wavefront OBJ is read: vertex positions and
// faces. Everything else in the file is counted and ignored.
package formats
