package input

import "github.com/go-gl/mathgl/mgl32"

// State tracks which actions are held plus the pointer position. Edges are
// detected as events arrive and cleared by PostUpdate once per update tick.
// Everything runs on the loop thread, so there is no locking.
type State struct {
	current      [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	cursor mgl32.Vec2
	// captured is set while an overlay owns the pointer.
	captured bool
}

func NewState() *State {
	return &State{}
}

// Set records a press or release of action.
func (s *State) Set(action Action, pressed bool) {
	if action < 0 || action >= ActionCount {
		return
	}
	if pressed && !s.current[action] {
		s.justPressed[action] = true
	}
	if !pressed && s.current[action] {
		s.justReleased[action] = true
	}
	s.current[action] = pressed
}

func (s *State) SetCursor(x, y float32) {
	s.cursor = mgl32.Vec2{x, y}
}

func (s *State) Cursor() mgl32.Vec2 {
	return s.cursor
}

// SetPointerCaptured marks the pointer as owned by an overlay; look input is
// ignored meanwhile.
func (s *State) SetPointerCaptured(c bool) {
	s.captured = c
}

func (s *State) PointerCaptured() bool {
	return s.captured
}

// PostUpdate clears the edge flags; call it at the end of each update tick.
func (s *State) PostUpdate() {
	for i := range ActionCount {
		s.justPressed[i] = false
		s.justReleased[i] = false
	}
}

// IsActive returns true while the action is held
func (s *State) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return s.current[action]
}

// JustPressed returns true only in the tick the action went down
func (s *State) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return s.justPressed[action]
}

// JustReleased returns true only in the tick the action went up
func (s *State) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return s.justReleased[action]
}
