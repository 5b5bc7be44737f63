// Package scene owns the simulated state of the demo (camera, light, entities)
// and the order in which it is updated and drawn.
package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"lightshafts/internal/config"
)

// DrawMode selects how an entity shades itself.
type DrawMode int

const (
	// DrawFull applies ambient, diffuse and specular lighting.
	DrawFull DrawMode = iota
	// DrawOcclusion renders a flat silhouette.
	DrawOcclusion
)

// DrawContext is handed to every entity for each pass.
type DrawContext struct {
	Mode   DrawMode
	Camera *Camera
	Light  *Light
}

// Entity is anything drawn by the render passes.
type Entity interface {
	Draw(ctx DrawContext)
}

// LightingCache is implemented by entities that keep a copy of light
// parameters on the GPU.
type LightingCache interface {
	SyncLight(l *Light)
}

// Positioned entities can be moved by the tweak bar or a config reload.
type Positioned interface {
	SetPosition(p mgl32.Vec3)
}

type disposer interface {
	Dispose()
}

// Controls reports the movement requested for the camera and the light.
type Controls interface {
	CameraDirections() (move mgl32.Vec3, rotate mgl32.Vec2, moving bool)
	LightDirection() (move mgl32.Vec3, moving bool)
}

// Scene holds exactly one camera and one light.
type Scene struct {
	BgColor mgl32.Vec4
	Camera  *Camera
	Light   *Light
	Shafts  *Shafts

	controls Controls
	entities []Entity
	marker   Entity
}

// New builds the camera, then the light, then the pass sequencer. Entities are
// attached afterwards so they can read camera and light while being built.
func New(s config.Settings, dev Device, controls Controls) (*Scene, error) {
	if dev == nil {
		return nil, errors.New("scene: rendering device is not ready")
	}
	if controls == nil {
		return nil, errors.New("scene: no input controls")
	}
	cam := NewCamera(s.Camera)
	return &Scene{
		BgColor:  s.ClearColor,
		Camera:   cam,
		Light:    NewLight(s.Light, cam.Ratio()),
		Shafts:   NewShafts(dev, ParamsFrom(s.Shafts)),
		controls: controls,
	}, nil
}

func (s *Scene) Attach(e Entity) {
	s.entities = append(s.entities, e)
}

// SetMarker sets the light's billboard, drawn only in the occlusion pass.
func (s *Scene) SetMarker(e Entity) {
	s.marker = e
}

func (s *Scene) Entities() []Entity {
	return s.entities
}

// OnRun advances the simulation. It never draws.
func (s *Scene) OnRun(dt float64) {
	if move, rotate, ok := s.controls.CameraDirections(); ok {
		s.Camera.SetDirections(move, rotate)
		s.Camera.Update(float32(dt))
	}
	if move, ok := s.controls.LightDirection(); ok {
		s.Light.SetDirection(move)
		s.Light.Update(float32(dt))
	}

	// The tweak bar may have changed colours or parameters without any movement.
	for _, e := range s.entities {
		if lc, ok := e.(LightingCache); ok {
			lc.SyncLight(s.Light)
		}
	}
	s.Shafts.Refresh()
}

// OnDraw renders one frame. It never mutates simulation state.
func (s *Scene) OnDraw() {
	s.Shafts.Render(s)
}

// ApplyTunables replaces the runtime-editable values, e.g. after a config reload.
func (s *Scene) ApplyTunables(t config.Tunables) {
	s.BgColor = t.ClearColor
	s.Light.Diffuse = t.LightDiffuse
	s.Light.Diffuse[3] = 1
	s.Shafts.Params = ParamsFrom(t.Shafts)
	for _, e := range s.entities {
		if p, ok := e.(Positioned); ok {
			p.SetPosition(t.ModelPosition)
		}
	}
}

// Dispose releases the GPU resources held by entities and the marker.
func (s *Scene) Dispose() {
	for _, e := range append(s.entities, s.marker) {
		if d, ok := e.(disposer); ok {
			d.Dispose()
		}
	}
	s.entities = nil
	s.marker = nil
}
