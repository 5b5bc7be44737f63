// Package graphics implements the OpenGL side of the demo: shader programs,
// the light-shafts render targets and composite, and the drawable entities.
package graphics

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders
var shaderFiles embed.FS

// Shaders exposes the embedded GLSL sources.
var Shaders fs.FS = mustSub(shaderFiles, "shaders")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Shader represents an OpenGL shader program. Uniform locations are cached by name.
type Shader struct {
	ID        uint32
	locations map[string]int32
}

// NewShader compiles name.vert and name.frag from fsys, plus name.geom when present.
func NewShader(fsys fs.FS, name string) (*Shader, error) {
	vertexSource, err := fs.ReadFile(fsys, name+".vert")
	if err != nil {
		return nil, fmt.Errorf("could not read vertex shader %s: %w", name, err)
	}
	fragmentSource, err := fs.ReadFile(fsys, name+".frag")
	if err != nil {
		return nil, fmt.Errorf("could not read fragment shader %s: %w", name, err)
	}
	geometrySource, err := fs.ReadFile(fsys, name+".geom")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not read geometry shader %s: %w", name, err)
	}

	program, err := compileProgram(string(vertexSource), string(geometrySource), string(fragmentSource))
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", name, err)
	}
	return &Shader{ID: program, locations: make(map[string]int32)}, nil
}

// Use activates the shader program
func (s *Shader) Use() {
	gl.UseProgram(s.ID)
}

func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
	s.locations[name] = loc
	return loc
}

// SetBool sets a boolean uniform as an int
func (s *Shader) SetBool(name string, value bool) {
	var intValue int32
	if value {
		intValue = 1
	}
	gl.Uniform1i(s.location(name), intValue)
}

func (s *Shader) SetInt(name string, value int32) {
	gl.Uniform1i(s.location(name), value)
}

func (s *Shader) SetFloat(name string, value float32) {
	gl.Uniform1f(s.location(name), value)
}

func (s *Shader) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(s.location(name), v[0], v[1])
}

func (s *Shader) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(s.location(name), v[0], v[1], v[2])
}

func (s *Shader) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4f(s.location(name), v[0], v[1], v[2], v[3])
}

func (s *Shader) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(s.location(name), 1, false, &m[0])
}

func (s *Shader) Delete() {
	gl.DeleteProgram(s.ID)
}

// compileProgram links the stages; an empty geometry source skips that stage.
func compileProgram(vertexSrc, geometrySrc, fragmentSrc string) (uint32, error) {
	stages := []struct {
		src  string
		kind uint32
	}{
		{vertexSrc, gl.VERTEX_SHADER},
		{geometrySrc, gl.GEOMETRY_SHADER},
		{fragmentSrc, gl.FRAGMENT_SHADER},
	}

	program := gl.CreateProgram()
	var shaders []uint32
	defer func() {
		for _, sh := range shaders {
			gl.DeleteShader(sh)
		}
	}()
	for _, st := range stages {
		if st.src == "" {
			continue
		}
		sh, err := compileShader(st.src, st.kind)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, sh)
		shaders = append(shaders, sh)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	return program, nil
}

// Validate checks the program against the current GL state.
func (s *Shader) Validate() error {
	gl.ValidateProgram(s.ID)
	var status int32
	gl.GetProgramiv(s.ID, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		return fmt.Errorf("failed to validate program: %v", programLog(s.ID))
	}
	return nil
}

func programLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
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
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
