// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// StageVertexShader is the vertex shader for stage geometry.
//
//go:embed stage.vert
var StageVertexShader string

// StageFragmentShader is the fragment shader for stage geometry.
//
//go:embed stage.frag
var StageFragmentShader string
