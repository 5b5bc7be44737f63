package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"lightshafts/internal/config"
	"lightshafts/internal/transform"
)

var (
	baseLook = mgl32.Vec3{0, 0, -1}
	baseUp   = mgl32.Vec3{0, 1, 0}
)

// Camera is a free-flying camera steered by a move direction in its own frame
// and a rotate direction in (yaw, pitch).
type Camera struct {
	position mgl32.Vec3
	look     mgl32.Vec3
	up       mgl32.Vec3
	// rotation is (yaw, pitch) in radians; pitch stays within [-pi/2, pi/2].
	rotation mgl32.Vec2

	fov         float32
	ratio       float32
	near, far   float32
	renderW     int
	renderH     int
	moveSpeed   float32
	rotateSpeed float32

	moveDir   mgl32.Vec3
	rotateDir mgl32.Vec2

	projection mgl32.Mat4
	view       mgl32.Mat4
	viewProj   mgl32.Mat4
}

// NewCamera builds the projection once and derives the initial view.
func NewCamera(s config.CameraSettings) *Camera {
	c := &Camera{
		position:    s.Position,
		rotation:    s.Rotation,
		fov:         transform.Radians(s.FOV),
		ratio:       float32(s.RenderWidth) / float32(s.RenderHeight),
		near:        s.Near,
		far:         s.Far,
		renderW:     s.RenderWidth,
		renderH:     s.RenderHeight,
		moveSpeed:   s.Speed,
		rotateSpeed: s.RotateSpeed,
	}
	c.projection = transform.Perspective(c.fov, c.ratio, c.near, c.far)
	c.Update(0)
	return c
}

// SetDirections stores the input for the next Update.
func (c *Camera) SetDirections(move mgl32.Vec3, rotate mgl32.Vec2) {
	c.moveDir = move
	c.rotateDir = rotate
}

// Update advances orientation then position and recomputes the view.
func (c *Camera) Update(dt float32) {
	c.rotation = c.rotation.Add(c.rotateDir.Mul(c.rotateSpeed * dt))
	c.rotation[1] = transform.ClampPitch(c.rotation[1])

	rot := transform.CameraRotation(c.rotation[1], c.rotation[0])
	c.position = c.position.Add(transform.TransformVector(c.moveDir.Mul(c.moveSpeed*dt), rot))

	c.look = c.position.Add(transform.TransformVector(baseLook, rot))
	c.up = transform.TransformVector(baseUp, rot)

	c.view = transform.LookAt(c.position, c.look, c.up)
	c.viewProj = c.projection.Mul4(c.view)
}

func (c *Camera) Position() mgl32.Vec3       { return c.position }
func (c *Camera) Look() mgl32.Vec3           { return c.look }
func (c *Camera) Up() mgl32.Vec3             { return c.up }
func (c *Camera) Rotation() mgl32.Vec2       { return c.rotation }
func (c *Camera) Projection() mgl32.Mat4     { return c.projection }
func (c *Camera) View() mgl32.Mat4           { return c.view }
func (c *Camera) ViewProjection() mgl32.Mat4 { return c.viewProj }

// Ratio is the render aspect ratio, fixed at construction.
func (c *Camera) Ratio() float32 { return c.ratio }

// RenderSize is the off-screen target size in pixels.
func (c *Camera) RenderSize() (int, int) { return c.renderW, c.renderH }
