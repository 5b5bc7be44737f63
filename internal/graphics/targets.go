package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	occlusionLayer = 0
	normalLayer    = 1
)

// renderTargets is a pair of framebuffers over two-layer colour and depth
// texture arrays, so the composite can sample both passes through one sampler.
type renderTargets struct {
	color  uint32
	depth  uint32
	fbo    [2]uint32
	width  int32
	height int32
}

func newRenderTargets(width, height int) (*renderTargets, error) {
	rt := &renderTargets{width: int32(width), height: int32(height)}

	gl.GenTextures(1, &rt.color)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, rt.color)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA8, rt.width, rt.height, 2, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	setArrayParams(gl.LINEAR)

	gl.GenTextures(1, &rt.depth)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, rt.depth)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.DEPTH_COMPONENT24, rt.width, rt.height, 2, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	setArrayParams(gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)

	gl.GenFramebuffers(2, &rt.fbo[0])
	for layer, fbo := range rt.fbo {
		gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
		gl.FramebufferTextureLayer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, rt.color, 0, int32(layer))
		gl.FramebufferTextureLayer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, rt.depth, 0, int32(layer))
		if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			rt.Delete()
			return nil, fmt.Errorf("render target layer %d incomplete: 0x%x", layer, status)
		}
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return rt, nil
}

func setArrayParams(filter int32) {
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

func (rt *renderTargets) bindLayer(layer int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo[layer])
}

func (rt *renderTargets) Delete() {
	gl.DeleteFramebuffers(2, &rt.fbo[0])
	gl.DeleteTextures(1, &rt.color)
	gl.DeleteTextures(1, &rt.depth)
}
