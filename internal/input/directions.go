package input

import "github.com/go-gl/mathgl/mgl32"

// AxisBinding adds Sign to one axis of a movement direction while Action is held.
type AxisBinding struct {
	Action Action
	Axis   int
	Sign   float32
}

// CameraAxes moves the camera in its own frame: forward is -Z.
var CameraAxes = []AxisBinding{
	{ActionCameraForward, 2, -1},
	{ActionCameraBackward, 2, 1},
	{ActionCameraLeft, 0, -1},
	{ActionCameraRight, 0, 1},
}

// LightAxes moves the light along world axes.
var LightAxes = []AxisBinding{
	{ActionLightForward, 2, -1},
	{ActionLightBackward, 2, 1},
	{ActionLightLeft, 0, -1},
	{ActionLightRight, 0, 1},
	{ActionLightUp, 1, 1},
	{ActionLightDown, 1, -1},
}

// Direction sums the contributions of held actions. The second result reports
// whether any binding was held, even if opposite keys cancel out.
func Direction(s *State, table []AxisBinding) (mgl32.Vec3, bool) {
	var dir mgl32.Vec3
	held := false
	for _, b := range table {
		if s.IsActive(b.Action) {
			dir[b.Axis] += b.Sign
			held = true
		}
	}
	return dir, held
}

// LookTracker turns pointer motion into a rotate direction while the look
// trigger is held.
type LookTracker struct {
	last mgl32.Vec2
}

// Poll returns the pointer delta since the previous poll when looking, zero
// otherwise. The reference position follows the pointer either way so that
// pressing the trigger never produces a jump.
func (lt *LookTracker) Poll(s *State) (mgl32.Vec2, bool) {
	cur := s.Cursor()
	defer func() { lt.last = cur }()
	if !s.IsActive(ActionCameraLook) || s.PointerCaptured() {
		return mgl32.Vec2{}, false
	}
	return cur.Sub(lt.last), true
}

// Controller exposes the input state as per-entity movement directions.
type Controller struct {
	state *State
	look  LookTracker
}

func NewController(s *State) *Controller {
	return &Controller{state: s}
}

func (c *Controller) CameraDirections() (mgl32.Vec3, mgl32.Vec2, bool) {
	move, moving := Direction(c.state, CameraAxes)
	rotate, looking := c.look.Poll(c.state)
	return move, rotate, moving || looking
}

func (c *Controller) LightDirection() (mgl32.Vec3, bool) {
	return Direction(c.state, LightAxes)
}
