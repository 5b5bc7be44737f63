package tweak

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/stretchr/testify/assert"

	"lightshafts/internal/scene"
)

// scripted stores and reports a change only for labels it holds a value for.
type scripted struct {
	ints   map[string]int32
	floats map[string]float32
	seen   []string
}

func (w *scripted) SliderInt(label string, v *int32, _, _ int32) bool {
	w.seen = append(w.seen, label)
	n, ok := w.ints[label]
	if ok {
		*v = n
	}
	return ok
}

func (w *scripted) SliderFloat(label string, v *float32, _ floatRange, _ imgui.SliderFlags) bool {
	w.seen = append(w.seen, label)
	f, ok := w.floats[label]
	if ok {
		*v = f
	}
	return ok
}

func TestUntouchedValuesAreKept(t *testing.T) {
	in := scene.ShaftParams{Samples: 0, Exposure: 3, Decay: 2.5, Density: 0, Weight: 250, BackLight: 1.5}
	p := in
	w := &scripted{}

	assert.False(t, editShafts(w, &p))
	assert.Equal(t, in, p)
	assert.Equal(t, []string{"Samples", "Exposure", "Decay", "Density", "Weight", "BackLight"}, w.seen)
}

func TestEditedValueIsClamped(t *testing.T) {
	p := scene.ShaftParams{Samples: 0, Decay: 1}
	w := &scripted{floats: map[string]float32{"Decay": 5}}

	assert.True(t, editShafts(w, &p))
	assert.Equal(t, float32(2), p.Decay)
	assert.Equal(t, int32(0), p.Samples)
}

func TestEditedSamplesAreClamped(t *testing.T) {
	p := scene.ShaftParams{Samples: 100, Weight: 0.5}
	w := &scripted{ints: map[string]int32{"Samples": 5000}, floats: map[string]float32{"Weight": -1}}

	assert.True(t, editShafts(w, &p))
	assert.Equal(t, int32(1000), p.Samples)
	assert.Equal(t, float32(0.0001), p.Weight)
}

func TestValidEditIsUnchanged(t *testing.T) {
	p := scene.ShaftParams{Samples: 100, Exposure: 0.0034, Decay: 1, Density: 0.84, Weight: 5.65, BackLight: 0.5}
	w := &scripted{floats: map[string]float32{"Density": 0.5}}

	assert.True(t, editShafts(w, &p))
	assert.Equal(t, float32(0.5), p.Density)
	assert.Equal(t, float32(0.0034), p.Exposure)
}

func TestToggle(t *testing.T) {
	b := New(mgl32.Vec3{})
	assert.True(t, b.Visible)
	b.Toggle()
	assert.False(t, b.Visible)
}
