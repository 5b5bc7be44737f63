package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"lightshafts/internal/input"
)

// keyBindings maps physical keys onto logical actions.
var keyBindings = map[glfw.Key]input.Action{
	glfw.KeyW: input.ActionCameraForward,
	glfw.KeyS: input.ActionCameraBackward,
	glfw.KeyA: input.ActionCameraLeft,
	glfw.KeyD: input.ActionCameraRight,

	glfw.KeyY: input.ActionLightForward,
	glfw.KeyH: input.ActionLightBackward,
	glfw.KeyG: input.ActionLightLeft,
	glfw.KeyJ: input.ActionLightRight,
	glfw.KeyI: input.ActionLightUp,
	glfw.KeyK: input.ActionLightDown,

	glfw.KeyEscape: input.ActionQuit,
	glfw.KeyF1:     input.ActionToggleTweakBar,
	glfw.KeyF2:     input.ActionToggleStats,
	glfw.KeyF5:     input.ActionReloadConfig,
}

var mouseBindings = map[glfw.MouseButton]input.Action{
	glfw.MouseButtonRight: input.ActionCameraLook,
}

// KeyAction returns the action bound to key.
func KeyAction(key glfw.Key) (input.Action, bool) {
	a, ok := keyBindings[key]
	return a, ok
}

// ButtonAction returns the action bound to a mouse button.
func ButtonAction(b glfw.MouseButton) (input.Action, bool) {
	a, ok := mouseBindings[b]
	return a, ok
}

// RouteKey applies a key event to s and reports whether it asks to quit.
// While an overlay has the keyboard, presses are left to it but releases
// still go through, so no action stays held.
func RouteKey(s *input.State, key glfw.Key, action glfw.Action, captured bool) (quit bool) {
	a, ok := KeyAction(key)
	if !ok {
		return false
	}
	switch action {
	case glfw.Release:
		s.Set(a, false)
	case glfw.Press:
		if captured {
			return false
		}
		s.Set(a, true)
		return a == input.ActionQuit
	}
	return false
}
