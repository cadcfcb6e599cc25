// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LambertVertexShader displaces the planet surface with layered noise.
//
//go:embed lambert.vert
var LambertVertexShader string

// LambertFragmentShader shades the displaced surface with a two-color ramp
// and a single directional light.
//
//go:embed lambert.frag
var LambertFragmentShader string

// FlatVertexShader passes the full-screen quad through untransformed.
//
//go:embed flat.vert
var FlatVertexShader string

// FlatFragmentShader paints the animated sky behind the planet.
//
//go:embed flat.frag
var FlatFragmentShader string
