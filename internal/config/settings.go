package config

import "github.com/go-gl/mathgl/mgl32"

// DefaultPath is where the demo looks for its configuration.
const DefaultPath = "Data/config.ini"

type WindowSettings struct {
	Width, Height int
	Title         string
	Fullscreen    bool
}

// CameraSettings. FOV is in degrees, rotation angles in radians.
type CameraSettings struct {
	RenderWidth, RenderHeight int
	FOV, Near, Far            float32
	Position                  mgl32.Vec3
	Rotation                  mgl32.Vec2
	Speed, RotateSpeed        float32
}

type LightSettings struct {
	Position                   mgl32.Vec3
	Ambient, Diffuse, Specular mgl32.Vec4
	// Attenuation holds the constant, linear and quadratic factors.
	Attenuation mgl32.Vec3
	Speed       float32
	MarkerSize  mgl32.Vec2
}

type ModelSettings struct {
	Position mgl32.Vec3
	// Path points at a glTF file; when empty Shape selects a generated mesh.
	Path  string
	Shape string
}

type MaterialSettings struct {
	Emission, Ambient, Diffuse, Specular mgl32.Vec4
	Shininess                            float32
}

type ShaftSettings struct {
	BackLight float32
	Exposure  float32
	Decay     float32
	Density   float32
	Weight    float32
	Samples   int
}

type EngineSettings struct {
	UpdatePeriod float64
	RenderPeriod float64
	// Idle sleeps between polls instead of spinning.
	Idle     bool
	LogLevel string
	Watch    bool
}

// Settings is the typed view of every tunable the demo reads at startup.
type Settings struct {
	Window     WindowSettings
	Camera     CameraSettings
	Light      LightSettings
	Model      ModelSettings
	Material   MaterialSettings
	Shafts     ShaftSettings
	ClearColor mgl32.Vec4
	Engine     EngineSettings
}

// Tunables is the subset that the tweak bar edits and a reload may replace.
type Tunables struct {
	ClearColor    mgl32.Vec4
	LightDiffuse  mgl32.Vec4
	Shafts        ShaftSettings
	ModelPosition mgl32.Vec3
}

func (s Settings) Tunables() Tunables {
	return Tunables{
		ClearColor:    s.ClearColor,
		LightDiffuse:  s.Light.Diffuse,
		Shafts:        s.Shafts,
		ModelPosition: s.Model.Position,
	}
}

// Read applies the defaults for every key src does not define.
func Read(src Source) Settings {
	r := reader{src}
	var s Settings

	s.Window = WindowSettings{
		Width:      src.GetInteger("Window", "Width", 640),
		Height:     src.GetInteger("Window", "Height", 780),
		Title:      src.GetString("Window", "Title", "NoName"),
		Fullscreen: src.GetBoolean("Window", "Fullscreen", false),
	}

	s.Camera = CameraSettings{
		RenderWidth:  src.GetInteger("Camera", "Width", 640),
		RenderHeight: src.GetInteger("Camera", "Height", 480),
		FOV:          r.real("Camera", "FOV", 90),
		Near:         r.real("Camera", "Near", 1),
		Far:          r.real("Camera", "Far", 64),
		Position:     r.vec3("Camera", "Pos_", mgl32.Vec3{0, 0, 2}),
		Rotation:     mgl32.Vec2{r.real("Camera", "Rot_X", 0), r.real("Camera", "Rot_Y", 0)},
		Speed:        r.real("Camera", "Speed", 10),
		RotateSpeed:  r.real("Camera", "Rot_Speed", 10),
	}

	s.Light = LightSettings{
		Position: r.vec3("Light", "Pos_", mgl32.Vec3{}),
		Ambient:  r.color("Light", "Ambient_", mgl32.Vec3{1, 1, 1}).Vec4(1),
		Diffuse:  r.color("Light", "Diffuse_", mgl32.Vec3{}).Vec4(1),
		Specular: r.color("Light", "Specular_", mgl32.Vec3{1, 1, 1}).Vec4(1),
		Attenuation: mgl32.Vec3{
			r.real("Light", "ConstantAttenuation", 0),
			r.real("Light", "LinearAttenuation", 0),
			r.real("Light", "QuadraticAttenuation", 0),
		},
		Speed:      r.real("Light", "Speed", 0.1),
		MarkerSize: mgl32.Vec2{r.real("Light", "Marker_Size_X", 1), r.real("Light", "Marker_Size_Y", 1)},
	}

	s.Model = ModelSettings{
		Position: r.vec3("Model", "Pos_", mgl32.Vec3{}),
		Path:     src.GetString("Model", "Path", ""),
		Shape:    src.GetString("Model", "Shape", "torus"),
	}

	s.Material = MaterialSettings{
		Emission:  r.rgba("Material", "Emission_", mgl32.Vec4{}),
		Ambient:   r.rgba("Material", "Ambient_", mgl32.Vec4{1, 1, 1, 1}),
		Diffuse:   r.rgba("Material", "Diffuse_", mgl32.Vec4{1, 1, 1, 1}),
		Specular:  r.rgba("Material", "Specular_", mgl32.Vec4{1, 1, 1, 1}),
		Shininess: r.real("Material", "Shininess", 1),
	}

	s.Shafts = ShaftSettings{
		BackLight: r.real("Shafts", "BackLightColor", 0),
		Exposure:  r.real("Shafts", "Exposure", 0),
		Decay:     r.real("Shafts", "Decay", 0),
		Density:   r.real("Shafts", "Density", 0),
		Weight:    r.real("Shafts", "Weight", 0),
		Samples:   src.GetInteger("Shafts", "Samples", 0),
	}

	s.ClearColor = r.rgba("Render", "ClearColor_", mgl32.Vec4{0, 0, 0, 1})

	s.Engine = EngineSettings{
		UpdatePeriod: src.GetReal("Engine", "UpdatePeriod", 0.008333333),
		RenderPeriod: src.GetReal("Engine", "RenderPeriod", 0.016666667),
		Idle:         src.GetBoolean("Engine", "Idle", true),
		LogLevel:     src.GetString("Engine", "LogLevel", "info"),
		Watch:        src.GetBoolean("Engine", "Watch", true),
	}
	return s
}

type reader struct{ src Source }

func (r reader) real(section, key string, def float32) float32 {
	return float32(r.src.GetReal(section, key, float64(def)))
}

// vec3 reads prefix+X, prefix+Y and prefix+Z.
func (r reader) vec3(section, prefix string, def mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		r.real(section, prefix+"X", def[0]),
		r.real(section, prefix+"Y", def[1]),
		r.real(section, prefix+"Z", def[2]),
	}
}

func (r reader) color(section, prefix string, def mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		r.real(section, prefix+"R", def[0]),
		r.real(section, prefix+"G", def[1]),
		r.real(section, prefix+"B", def[2]),
	}
}

func (r reader) rgba(section, prefix string, def mgl32.Vec4) mgl32.Vec4 {
	return r.color(section, prefix, def.Vec3()).Vec4(r.real(section, prefix+"A", def[3]))
}
