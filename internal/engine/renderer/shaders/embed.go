// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// WireframeVertexShader transforms positions by the projection, view and
// model matrices.
//
//go:embed wireframe.vert
var WireframeVertexShader string

// WireframeFragmentShader is the fragment shader for wireframe rendering.
//
//go:embed wireframe.frag
var WireframeFragmentShader string
