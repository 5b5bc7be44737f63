package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// ImguiRenderer draws imgui draw data with OpenGL 4.1.
type ImguiRenderer struct {
	shader      *Shader
	fontTexture uint32
	vao         uint32
	vbo, ebo    uint32
}

// NewImguiRenderer uploads the font atlas of io and prepares the buffers.
func NewImguiRenderer(io imgui.IO) (*ImguiRenderer, error) {
	shader, err := NewShader(Shaders, "imgui")
	if err != nil {
		return nil, err
	}
	r := &ImguiRenderer{shader: shader}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	vertexSize, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(posOffset))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(uvOffset))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), gl.PtrOffset(colOffset))
	gl.BindVertexArray(0)

	image := io.Fonts().TextureDataAlpha8()
	gl.GenTextures(1, &r.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(image.Width), int32(image.Height), 0, gl.RED, gl.UNSIGNED_BYTE, image.Pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	io.Fonts().SetTextureID(imgui.TextureID(r.fontTexture))

	if err := CheckError("imgui setup"); err != nil {
		r.Dispose()
		return nil, err
	}
	return r, nil
}

// Render draws data into the default framebuffer. displaySize is in window
// coordinates, framebufferSize in pixels.
func (r *ImguiRenderer) Render(displaySize, framebufferSize [2]float32, data imgui.DrawData) {
	fbW, fbH := framebufferSize[0], framebufferSize[1]
	if fbW <= 0 || fbH <= 0 || !data.Valid() {
		return
	}
	data.ScaleClipRects(imgui.Vec2{X: fbW / displaySize[0], Y: fbH / displaySize[1]})

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(fbW), int32(fbH))

	r.shader.Use()
	r.shader.SetInt("Texture", 0)
	r.shader.SetMat4("ProjMtx", mgl32.Ortho2D(0, displaySize[0], displaySize[1], 0))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range data.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)
		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		offset := 0
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			clip := cmd.ClipRect()
			gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
			gl.Scissor(int32(clip.X), int32(fbH)-int32(clip.W), int32(clip.Z-clip.X), int32(clip.W-clip.Y))
			gl.DrawElements(gl.TRIANGLES, int32(cmd.ElementCount()), drawType, gl.PtrOffset(offset))
			offset += cmd.ElementCount() * indexSize
		}
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (r *ImguiRenderer) Dispose() {
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteTextures(1, &r.fontTexture)
	r.shader.Delete()
}
