package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// rectVertexShader/rectFragmentShader draw one flat-colored 2D quad per
// draw call in canvas pixel space, the same "uniform color, flat
// fragment shader" shape the teacher uses for its crosshair/highlight
// overlays (main.go's simpleVertexShader/simpleFragmentShader), adapted
// from a 3D model/view/proj pipeline down to a single 2D ortho matrix.
const rectVertexShader = `#version 330 core
layout(location = 0) in vec2 aPos;
uniform mat4 proj;
uniform vec2 rectOrigin;
uniform vec2 rectSize;
void main() {
	vec2 p = rectOrigin + aPos * rectSize;
	gl_Position = proj * vec4(p, 0.0, 1.0);
}
`

const rectFragmentShader = `#version 330 core
uniform vec4 rectColor;
out vec4 FragColor;
void main() {
	FragColor = rectColor;
}
`

var unitQuad = []float32{
	0, 0,
	1, 0,
	1, 1,
	1, 1,
	0, 1,
	0, 0,
}

// glRasterSurface implements canvas.RasterSurface over a GLFW/OpenGL
// window: one shared unit-quad VBO, scaled and translated per fill via
// uniforms, same "compile once, draw many" shape as the teacher's cube
// instancing setup in main.go.
type glRasterSurface struct {
	window    *glfw.Window
	program   uint32
	vao, vbo  uint32
	projLoc   int32
	originLoc int32
	sizeLoc   int32
	colorLoc  int32
	fillColor color.RGBA
}

func newGLRasterSurface(window *glfw.Window) (*glRasterSurface, error) {
	program, err := newProgram(rectVertexShader, rectFragmentShader)
	if err != nil {
		return nil, err
	}

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(unitQuad)*4, gl.Ptr(unitQuad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	return &glRasterSurface{
		window:    window,
		program:   program,
		vao:       vao,
		vbo:       vbo,
		projLoc:   gl.GetUniformLocation(program, gl.Str("proj\x00")),
		originLoc: gl.GetUniformLocation(program, gl.Str("rectOrigin\x00")),
		sizeLoc:   gl.GetUniformLocation(program, gl.Str("rectSize\x00")),
		colorLoc:  gl.GetUniformLocation(program, gl.Str("rectColor\x00")),
		fillColor: color.RGBA{A: 255},
	}, nil
}

func (s *glRasterSurface) SetFillStyle(c color.RGBA) {
	s.fillColor = c
}

func (s *glRasterSurface) Size() (float64, float64) {
	w, h := s.window.GetSize()
	return float64(w), float64(h)
}

func (s *glRasterSurface) ortho() mgl32.Mat4 {
	w, h := s.Size()
	return mgl32.Ortho2D(0, float32(w), float32(h), 0)
}

func (s *glRasterSurface) FillRect(x, y, w, h float64) {
	gl.UseProgram(s.program)
	proj := s.ortho()
	gl.UniformMatrix4fv(s.projLoc, 1, false, &proj[0])
	gl.Uniform2f(s.originLoc, float32(x), float32(y))
	gl.Uniform2f(s.sizeLoc, float32(w), float32(h))
	r, g, b, a := s.fillColor.R, s.fillColor.G, s.fillColor.B, s.fillColor.A
	gl.Uniform4f(s.colorLoc, float32(r)/255, float32(g)/255, float32(b)/255, float32(a)/255)

	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// ClearRect clears the whole framebuffer to opaque black (spec §4.6
// "clear the render target to opaque black"); the region arguments are
// accepted for interface symmetry with a real 2D context but this
// surface only ever receives the full-canvas clear the engine issues
// once per frame.
func (s *glRasterSurface) ClearRect(x, y, w, h float64) {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func newProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		return 0, fmt.Errorf("link program: %v", log)
	}
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		return 0, fmt.Errorf("compile shader: %v", log)
	}
	return shader, nil
}
