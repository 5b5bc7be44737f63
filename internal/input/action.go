// Package input turns device state into the logical actions and movement
// directions the scene consumes. It has no windowing dependency; the platform
// layer feeds it.
package input

// Action represents a logical control, not a physical key
type Action int

const (
	ActionCameraForward Action = iota
	ActionCameraBackward
	ActionCameraLeft
	ActionCameraRight
	ActionCameraLook

	ActionLightForward
	ActionLightBackward
	ActionLightLeft
	ActionLightRight
	ActionLightUp
	ActionLightDown

	ActionQuit
	ActionToggleTweakBar
	ActionToggleStats
	ActionReloadConfig
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	ActionCameraForward:  "camera.forward",
	ActionCameraBackward: "camera.backward",
	ActionCameraLeft:     "camera.left",
	ActionCameraRight:    "camera.right",
	ActionCameraLook:     "camera.look",
	ActionLightForward:   "light.forward",
	ActionLightBackward:  "light.backward",
	ActionLightLeft:      "light.left",
	ActionLightRight:     "light.right",
	ActionLightUp:        "light.up",
	ActionLightDown:      "light.down",
	ActionQuit:           "quit",
	ActionToggleTweakBar: "toggle.tweakbar",
	ActionToggleStats:    "toggle.stats",
	ActionReloadConfig:   "reload.config",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}
