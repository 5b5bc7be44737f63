package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"lightshafts/internal/scene"
)

var shaftFields = []string{"samples", "exposure", "decay", "density", "weight"}

const (
	shadingBinding = 0
	shaftsBinding  = 1
)

// fullscreenQuad is two triangles covering clip space.
var fullscreenQuad = []float32{
	-1, -1, 1, -1, 1, 1,
	-1, -1, 1, 1, -1, 1,
}

// Device implements scene.Device on OpenGL: the two off-screen targets, the
// ShaftsParams block and the composite program.
type Device struct {
	log     *zap.Logger
	targets *renderTargets
	shader  *Shader
	params  *UniformBlock
	vao     uint32
	vbo     uint32

	screenW, screenH int
}

var _ scene.Device = (*Device)(nil)

// NewDevice allocates targets of the camera's render size. A current GL
// context is required.
func NewDevice(width, height int, log *zap.Logger) (*Device, error) {
	shader, err := NewShader(Shaders, "shafts")
	if err != nil {
		return nil, err
	}
	params, err := NewUniformBlock(shader.ID, "ShaftsParams", shaftsBinding, shaftFields...)
	if err != nil {
		shader.Delete()
		return nil, err
	}
	targets, err := newRenderTargets(width, height)
	if err != nil {
		params.Delete()
		shader.Delete()
		return nil, err
	}

	d := &Device{log: log, targets: targets, shader: shader, params: params}
	gl.GenVertexArrays(1, &d.vao)
	gl.GenBuffers(1, &d.vbo)
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(fullscreenQuad)*4, gl.Ptr(fullscreenQuad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := CheckError("light shafts setup"); err != nil {
		d.Dispose()
		return nil, err
	}
	log.Debug("render targets ready", zap.Int("width", width), zap.Int("height", height))
	return d, nil
}

// SetScreenSize sets the default framebuffer viewport, which may differ from
// the render size on high-density displays.
func (d *Device) SetScreenSize(width, height int) {
	d.screenW, d.screenH = width, height
}

func (d *Device) BindTarget(t scene.Target, width, height int) {
	switch t {
	case scene.TargetNormal:
		d.targets.bindLayer(normalLayer)
	case scene.TargetOcclusion:
		d.targets.bindLayer(occlusionLayer)
	default:
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		if d.screenW > 0 && d.screenH > 0 {
			width, height = d.screenW, d.screenH
		}
	}
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) UploadShaftParams(p scene.ShaftParams) {
	d.params.SetInt("samples", p.Samples)
	d.params.SetFloat("exposure", p.Exposure)
	d.params.SetFloat("decay", p.Decay)
	d.params.SetFloat("density", p.Density)
	d.params.SetFloat("weight", p.Weight)
	d.params.Flush()
}

func (d *Device) Composite(lightScreen mgl32.Vec2) {
	gl.Disable(gl.DEPTH_TEST)

	d.shader.Use()
	d.shader.SetVec2("lightScreenPos", lightScreen)
	d.shader.SetInt("tex", 0)
	d.params.Bind()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, d.targets.color)

	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(fullscreenQuad)/2))
	gl.BindVertexArray(0)

	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)
	gl.Enable(gl.DEPTH_TEST)
}

func (d *Device) Dispose() {
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteBuffers(1, &d.vbo)
	d.targets.Delete()
	d.params.Delete()
	d.shader.Delete()
}

// CheckError drains the GL error queue and reports the first error.
func CheckError(op string) error {
	var first uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == 0 {
			first = code
		}
	}
	if first != 0 {
		return fmt.Errorf("%s: GL error 0x%x", op, first)
	}
	return nil
}
