// Package render copies decoded video pictures onto a GPU surface, one textured quad per frame.
package render

import "image"

// Handles to GPU objects owned by a Context.
type (
	Program uint32
	Buffer  uint32
	Texture uint32
)

// Wrap is a texture coordinate wrapping mode.
type Wrap int

const (
	ClampToEdge Wrap = iota
	Repeat
)

// Filter is a texture sampling filter.
type Filter int

const (
	Linear Filter = iota
	Nearest
)

// Mode is a primitive assembly mode.
type Mode int

const (
	Triangles Mode = iota
	TriangleStrip
)

// Context is the subset of a GL-style API the pipeline needs.
type Context interface {
	CreateProgram(vertex, fragment string) (Program, error)
	CreateBuffer(data []float32) (Buffer, error)
	CreateTexture() (Texture, error)
	VertexAttrib(program Program, name string, buffer Buffer, size int) error
	TexParameter(texture Texture, wrap Wrap, filter Filter)
	Viewport(x, y, width, height int)
	TexImage(texture Texture, frame image.Image) error
	DrawArrays(mode Mode, first, count int)
	DeleteProgram(Program)
	DeleteBuffer(Buffer)
	DeleteTexture(Texture)
}

// Surface is the visible drawing area. Context fails when no GPU context can be acquired.
type Surface interface {
	Context() (Context, error)
	SetSize(width, height int)
}

// Source is the decode collaborator seen from the render side.
type Source interface {
	Paused() bool
	Ended() bool
	NaturalSize() (width, height int)
	Frame() image.Image
}

// Scheduler runs a callback before the next display refresh.
type Scheduler interface {
	RequestFrame(func())
}

const vertexShader = `
attribute vec2 a_position;
attribute vec2 a_texCoord;
varying vec2 v_texCoord;
void main() {
  gl_Position = vec4(a_position, 0, 1);
  v_texCoord = a_texCoord;
}
`

const fragmentShader = `
precision mediump float;
uniform sampler2D u_image;
varying vec2 v_texCoord;
void main() {
  gl_FragColor = texture2D(u_image, v_texCoord);
}
`

// quad covers the whole viewport as a triangle strip.
var quad = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

// texCoords maps the quad with the vertical axis flipped, since pictures are stored top row first.
var texCoords = []float32{
	0, 1,
	1, 1,
	0, 0,
	1, 0,
}
