package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"lightshafts/internal/config"
)

// Light is a movable point light. Colours are plain fields so the tweak bar
// can edit them in place; readers always see the current value.
type Light struct {
	Position mgl32.Vec3
	Ambient  mgl32.Vec4
	Diffuse  mgl32.Vec4
	Specular mgl32.Vec4
	// Attenuation is (constant, linear, quadratic).
	Attenuation mgl32.Vec3
	// MarkerSize is the billboard scale, already corrected for the render aspect.
	MarkerSize mgl32.Vec2

	speed   float32
	moveDir mgl32.Vec3
}

func NewLight(s config.LightSettings, ratio float32) *Light {
	diffuse := s.Diffuse
	diffuse[3] = 1
	return &Light{
		Position:    s.Position,
		Ambient:     s.Ambient,
		Diffuse:     diffuse,
		Specular:    s.Specular,
		Attenuation: s.Attenuation,
		MarkerSize:  mgl32.Vec2{s.MarkerSize.X(), s.MarkerSize.Y() * ratio},
		speed:       s.Speed,
	}
}

func (l *Light) SetDirection(move mgl32.Vec3) {
	l.moveDir = move
}

// Update moves the light along world axes.
func (l *Light) Update(dt float32) {
	l.Position = l.Position.Add(l.moveDir.Mul(l.speed * dt))
}
