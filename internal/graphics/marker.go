package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"lightshafts/internal/scene"
)

// Marker draws the light as a round billboard expanded from a single point by
// a geometry shader. It takes the light's position and colour at draw time.
type Marker struct {
	shader *Shader
	vao    uint32
}

var _ scene.Entity = (*Marker)(nil)

func NewMarker() (*Marker, error) {
	shader, err := NewShader(Shaders, "marker")
	if err != nil {
		return nil, err
	}
	mk := &Marker{shader: shader}
	// Core profile refuses draws without a bound vertex array.
	gl.GenVertexArrays(1, &mk.vao)
	return mk, nil
}

func (mk *Marker) Draw(ctx scene.DrawContext) {
	mk.shader.Use()
	mk.shader.SetMat4("viewProjectionMatrix", ctx.Camera.ViewProjection())
	mk.shader.SetVec2("scale", ctx.Light.MarkerSize)
	mk.shader.SetVec4("color", ctx.Light.Diffuse)
	mk.shader.SetVec3("lightPosition", ctx.Light.Position)

	gl.BindVertexArray(mk.vao)
	gl.DrawArrays(gl.POINTS, 0, 1)
	gl.BindVertexArray(0)
}

func (mk *Marker) Dispose() {
	gl.DeleteVertexArrays(1, &mk.vao)
	mk.shader.Delete()
}
