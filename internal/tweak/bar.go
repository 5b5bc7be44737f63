// Package tweak draws the parameter panel used to edit the light shafts at
// runtime.
package tweak

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"

	"lightshafts/internal/scene"
)

type floatRange struct {
	min, max float32
}

var (
	samplesRange   = [2]int32{1, 1000}
	exposureRange  = floatRange{0.0001, 1}
	decayRange     = floatRange{0.0001, 2}
	densityRange   = floatRange{0.0001, 2}
	weightRange    = floatRange{0.0001, 100}
	backLightRange = floatRange{0, 1}
)

// Bar is the tweak panel. It edits the scene in place; the scene pushes the
// changes to the GPU on its next update.
type Bar struct {
	Visible bool

	model mgl32.Vec3
}

func New(modelPosition mgl32.Vec3) *Bar {
	return &Bar{Visible: true, model: modelPosition}
}

func (b *Bar) Toggle() {
	b.Visible = !b.Visible
}

// SetModelPosition resyncs the panel after the model was moved elsewhere.
func (b *Bar) SetModelPosition(p mgl32.Vec3) {
	b.model = p
}

// Draw builds the panel for the current imgui frame. It reports whether any
// value changed.
func (b *Bar) Draw(s *scene.Scene) bool {
	if !b.Visible {
		return false
	}
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.SetNextWindowSizeV(imgui.Vec2{X: 300, Y: 0}, imgui.ConditionFirstUseEver)
	if !imgui.BeginV("Parameters", &b.Visible, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return false
	}
	defer imgui.End()

	changed := editShafts(imguiWidgets{}, &s.Shafts.Params)

	imgui.Separator()
	changed = imgui.ColorEdit4("BGColor", (*[4]float32)(&s.BgColor)) || changed
	if imgui.ColorEdit4("LightColor", (*[4]float32)(&s.Light.Diffuse)) {
		s.Light.Diffuse[3] = 1
		changed = true
	}

	imgui.Separator()
	moved := imgui.DragFloat3V("Model", (*[3]float32)(&b.model), 0.01, -100, 100, "%.2f", 0)
	if moved {
		for _, e := range s.Entities() {
			if m, ok := e.(scene.Positioned); ok {
				m.SetPosition(b.model)
			}
		}
	}
	return changed || moved
}

// widgets is the part of imgui the shaft sliders use.
type widgets interface {
	SliderInt(label string, v *int32, lo, hi int32) bool
	SliderFloat(label string, v *float32, r floatRange, flags imgui.SliderFlags) bool
}

type imguiWidgets struct{}

func (imguiWidgets) SliderInt(label string, v *int32, lo, hi int32) bool {
	return imgui.SliderInt(label, v, lo, hi)
}

func (imguiWidgets) SliderFloat(label string, v *float32, r floatRange, flags imgui.SliderFlags) bool {
	return imgui.SliderFloatV(label, v, r.min, r.max, "%.4f", flags)
}

// editShafts shows one slider per parameter. A value is clamped to its slider
// range only after the user changed it; loaded values stay as they are.
func editShafts(w widgets, p *scene.ShaftParams) bool {
	changed := false
	if w.SliderInt("Samples", &p.Samples, samplesRange[0], samplesRange[1]) {
		p.Samples = min(max(p.Samples, samplesRange[0]), samplesRange[1])
		changed = true
	}
	floats := []struct {
		label string
		v     *float32
		r     floatRange
		flags imgui.SliderFlags
	}{
		{"Exposure", &p.Exposure, exposureRange, imgui.SliderFlagsLogarithmic},
		{"Decay", &p.Decay, decayRange, 0},
		{"Density", &p.Density, densityRange, 0},
		{"Weight", &p.Weight, weightRange, imgui.SliderFlagsLogarithmic},
		{"BackLight", &p.BackLight, backLightRange, 0},
	}
	for _, f := range floats {
		if w.SliderFloat(f.label, f.v, f.r, f.flags) {
			*f.v = mgl32.Clamp(*f.v, f.r.min, f.r.max)
			changed = true
		}
	}
	return changed
}
