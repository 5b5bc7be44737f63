package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"lightshafts/internal/config"
	"lightshafts/internal/transform"
)

// Target names a framebuffer the render passes draw into.
type Target int

const (
	// TargetScreen is the default framebuffer.
	TargetScreen Target = iota
	// TargetNormal receives the lit scene (colour array layer 1).
	TargetNormal
	// TargetOcclusion receives silhouettes against the backlight (layer 0).
	TargetOcclusion
)

func (t Target) String() string {
	switch t {
	case TargetScreen:
		return "screen"
	case TargetNormal:
		return "normal"
	case TargetOcclusion:
		return "occlusion"
	}
	return "unknown"
}

// Device is the slice of the rendering context the pass sequencer drives.
type Device interface {
	// BindTarget makes t current and sets a width x height viewport.
	BindTarget(t Target, width, height int)
	Clear(color mgl32.Vec4)
	// UploadShaftParams writes the GPU parameter block.
	UploadShaftParams(p ShaftParams)
	// Composite samples both off-screen layers and draws the full-screen quad.
	Composite(lightScreen mgl32.Vec2)
}

// ShaftParams drive the radial blur. BackLight only scales the occlusion clear
// colour and never reaches the GPU block.
type ShaftParams struct {
	Samples   int32
	Exposure  float32
	Decay     float32
	Density   float32
	Weight    float32
	BackLight float32
}

func ParamsFrom(s config.ShaftSettings) ShaftParams {
	return ShaftParams{
		Samples:   int32(s.Samples),
		Exposure:  s.Exposure,
		Decay:     s.Decay,
		Density:   s.Density,
		Weight:    s.Weight,
		BackLight: s.BackLight,
	}
}

func (p ShaftParams) sameBlock(o ShaftParams) bool {
	return p.Samples == o.Samples && p.Exposure == o.Exposure && p.Decay == o.Decay &&
		p.Density == o.Density && p.Weight == o.Weight
}

// Shafts sequences the normal, occlusion and composite passes. Render is the
// only way to run them, so the order cannot be broken by callers.
type Shafts struct {
	// Params may be edited at any time; Refresh pushes changes to the GPU.
	Params ShaftParams

	dev      Device
	uploaded ShaftParams
	synced   bool
}

func NewShafts(dev Device, p ShaftParams) *Shafts {
	return &Shafts{Params: p, dev: dev}
}

// Refresh uploads the parameter block when it differs from the last upload.
func (sh *Shafts) Refresh() {
	if sh.synced && sh.Params.sameBlock(sh.uploaded) {
		return
	}
	sh.dev.UploadShaftParams(sh.Params)
	sh.uploaded = sh.Params
	sh.synced = true
}

// Render draws one frame of the effect.
func (sh *Shafts) Render(s *Scene) {
	w, h := s.Camera.RenderSize()
	ctx := DrawContext{Camera: s.Camera, Light: s.Light}

	sh.dev.BindTarget(TargetNormal, w, h)
	sh.dev.Clear(s.BgColor)
	ctx.Mode = DrawFull
	for _, e := range s.entities {
		e.Draw(ctx)
	}

	sh.dev.BindTarget(TargetOcclusion, w, h)
	sh.dev.Clear(s.Light.Diffuse.Mul(sh.Params.BackLight))
	ctx.Mode = DrawOcclusion
	if s.marker != nil {
		s.marker.Draw(ctx)
	}
	for _, e := range s.entities {
		e.Draw(ctx)
	}

	sh.dev.BindTarget(TargetScreen, w, h)
	sh.dev.Clear(mgl32.Vec4{0, 0, 0, 1})
	sh.dev.Composite(transform.ProjectToScreen(s.Camera.ViewProjection(), s.Light.Position))
}
