package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"lightshafts/internal/config"
	"lightshafts/internal/mesh"
	"lightshafts/internal/scene"
	"lightshafts/internal/transform"
)

var shadingFields = []string{
	"material.emission",
	"material.ambient",
	"material.diffuse",
	"material.specular",
	"material.shininess",
	"lightSource.ambient",
	"lightSource.diffuse",
	"lightSource.specular",
	"lightSource.attenuation",
}

// Model is a translated, Blinn-Phong shaded mesh. Material and light terms
// live in the Shading uniform block; only the light diffuse changes at runtime.
type Model struct {
	Position mgl32.Vec3

	shader  *Shader
	shading *UniformBlock
	diffuse mgl32.Vec4

	vao, vbo, ebo uint32
	count         int32
}

var (
	_ scene.Entity        = (*Model)(nil)
	_ scene.LightingCache = (*Model)(nil)
	_ scene.Positioned    = (*Model)(nil)
)

func NewModel(m *mesh.Mesh, pos mgl32.Vec3, mat config.MaterialSettings, light *scene.Light) (*Model, error) {
	shader, err := NewShader(Shaders, "model")
	if err != nil {
		return nil, err
	}
	shading, err := NewUniformBlock(shader.ID, "Shading", shadingBinding, shadingFields...)
	if err != nil {
		shader.Delete()
		return nil, err
	}

	shading.SetVec4("material.emission", mat.Emission)
	shading.SetVec4("material.ambient", mat.Ambient)
	shading.SetVec4("material.diffuse", mat.Diffuse)
	shading.SetVec4("material.specular", mat.Specular)
	shading.SetFloat("material.shininess", mat.Shininess)
	shading.SetVec4("lightSource.ambient", light.Ambient)
	shading.SetVec4("lightSource.diffuse", light.Diffuse)
	shading.SetVec4("lightSource.specular", light.Specular)
	shading.SetVec3("lightSource.attenuation", light.Attenuation)
	shading.Flush()

	md := &Model{
		Position: pos,
		shader:   shader,
		shading:  shading,
		diffuse:  light.Diffuse,
		count:    int32(len(m.Indices)),
	}
	md.upload(m)
	if err := CheckError("model setup"); err != nil {
		md.Dispose()
		return nil, err
	}
	return md, nil
}

func (md *Model) upload(m *mesh.Mesh) {
	verts := m.Interleaved()
	stride := int32(mesh.FloatsPerVertex * 4)

	gl.GenVertexArrays(1, &md.vao)
	gl.GenBuffers(1, &md.vbo)
	gl.GenBuffers(1, &md.ebo)
	gl.BindVertexArray(md.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, md.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, md.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))

	gl.BindVertexArray(0)
}

// SyncLight copies the light diffuse into the Shading block when it changed.
func (md *Model) SyncLight(l *scene.Light) {
	if l.Diffuse == md.diffuse {
		return
	}
	md.diffuse = l.Diffuse
	md.shading.SetVec4("lightSource.diffuse", l.Diffuse)
	md.shading.Flush()
}

func (md *Model) SetPosition(p mgl32.Vec3) {
	md.Position = p
}

func (md *Model) Draw(ctx scene.DrawContext) {
	md.shader.Use()
	md.shading.Bind()

	md.shader.SetMat4("modelViewProjectionMatrix", ctx.Camera.ViewProjection().Mul4(transform.Translation(md.Position)))
	occlusion := ctx.Mode == scene.DrawOcclusion
	md.shader.SetBool("occlusion", occlusion)
	if !occlusion {
		md.shader.SetVec3("lightPosition", transform.RelativeTo(ctx.Light.Position, md.Position))
		md.shader.SetVec3("eyePosition", transform.RelativeTo(ctx.Camera.Position(), md.Position))
	}

	gl.BindVertexArray(md.vao)
	gl.DrawElements(gl.TRIANGLES, md.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (md *Model) Dispose() {
	gl.DeleteVertexArrays(1, &md.vao)
	gl.DeleteBuffers(1, &md.vbo)
	gl.DeleteBuffers(1, &md.ebo)
	md.shading.Delete()
	md.shader.Delete()
}
