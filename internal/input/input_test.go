package input_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"lightshafts/internal/input"
)

func TestEdges(t *testing.T) {
	s := input.NewState()
	s.Set(input.ActionQuit, true)
	assert.True(t, s.IsActive(input.ActionQuit))
	assert.True(t, s.JustPressed(input.ActionQuit))

	// Key repeat is not a new press.
	s.PostUpdate()
	s.Set(input.ActionQuit, true)
	assert.False(t, s.JustPressed(input.ActionQuit))

	s.Set(input.ActionQuit, false)
	assert.True(t, s.JustReleased(input.ActionQuit))
	assert.False(t, s.IsActive(input.ActionQuit))
	s.PostUpdate()
	assert.False(t, s.JustReleased(input.ActionQuit))

	s.Set(input.ActionCount, true)
	assert.False(t, s.IsActive(input.ActionCount))
}

func TestCameraDirection(t *testing.T) {
	s := input.NewState()
	dir, moving := input.Direction(s, input.CameraAxes)
	assert.False(t, moving)
	assert.Equal(t, mgl32.Vec3{}, dir)

	s.Set(input.ActionCameraForward, true)
	s.Set(input.ActionCameraRight, true)
	dir, moving = input.Direction(s, input.CameraAxes)
	assert.True(t, moving)
	assert.Equal(t, mgl32.Vec3{1, 0, -1}, dir)
}

func TestLightDirection(t *testing.T) {
	cases := map[input.Action]mgl32.Vec3{
		input.ActionLightForward:  {0, 0, -1},
		input.ActionLightBackward: {0, 0, 1},
		input.ActionLightLeft:     {-1, 0, 0},
		input.ActionLightRight:    {1, 0, 0},
		input.ActionLightUp:       {0, 1, 0},
		input.ActionLightDown:     {0, -1, 0},
	}
	for action, want := range cases {
		t.Run(action.String(), func(t *testing.T) {
			s := input.NewState()
			s.Set(action, true)
			dir, moving := input.NewController(s).LightDirection()
			assert.True(t, moving)
			assert.Equal(t, want, dir)
		})
	}
}

func TestLookTracker(t *testing.T) {
	s := input.NewState()
	c := input.NewController(s)

	s.SetCursor(100, 100)
	_, rot, moving := c.CameraDirections()
	assert.False(t, moving)
	assert.Equal(t, mgl32.Vec2{}, rot)

	// Motion since the previous poll counts once the trigger is held.
	s.SetCursor(120, 90)
	s.Set(input.ActionCameraLook, true)
	_, rot, moving = c.CameraDirections()
	assert.True(t, moving)
	assert.Equal(t, mgl32.Vec2{20, -10}, rot)

	_, rot, moving = c.CameraDirections()
	assert.True(t, moving)
	assert.Equal(t, mgl32.Vec2{}, rot)

	s.SetCursor(125, 95)
	_, rot, _ = c.CameraDirections()
	assert.Equal(t, mgl32.Vec2{5, 5}, rot)
}

func TestLookIgnoredWhilePointerCaptured(t *testing.T) {
	s := input.NewState()
	c := input.NewController(s)
	s.Set(input.ActionCameraLook, true)
	s.SetPointerCaptured(true)
	s.SetCursor(50, 50)
	_, rot, moving := c.CameraDirections()
	assert.False(t, moving)
	assert.Equal(t, mgl32.Vec2{}, rot)
}
