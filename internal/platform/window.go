// Package platform owns the glfw window and forwards its events to the input
// state and the imgui context.
package platform

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
	"go.uber.org/zap"

	"lightshafts/internal/config"
	"lightshafts/internal/input"
)

// Window is the OS window with a current OpenGL 4.1 core context.
type Window struct {
	*glfw.Window

	log   *zap.Logger
	state *input.State
	io    *imgui.IO

	// pressed latches clicks shorter than one frame for imgui.
	pressed [3]bool
	lastNew float64

	onClose func()
}

// Open initialises glfw and creates the window. glfw.Terminate is called by
// Close.
func Open(s config.WindowSettings, state *input.State, log *zap.Logger) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	var monitor *glfw.Monitor
	if s.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}
	win, err := glfw.CreateWindow(s.Width, s.Height, s.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("init gl: %w", err)
	}
	// The loop paces frames itself.
	glfw.SwapInterval(0)
	gl.Enable(gl.DEPTH_TEST)

	log.Info("window opened",
		zap.String("title", s.Title),
		zap.Int("width", s.Width),
		zap.Int("height", s.Height),
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))))

	w := &Window{Window: win, log: log, state: state}
	w.installCallbacks()
	return w, nil
}

// OnClose registers fn to run when the user closes the window or presses the
// quit key.
func (w *Window) OnClose(fn func()) {
	w.onClose = fn
}

func (w *Window) requestClose() {
	if w.onClose != nil {
		w.onClose()
	}
}

func (w *Window) installCallbacks() {
	w.SetCloseCallback(func(*glfw.Window) {
		w.requestClose()
	})

	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		captured := false
		if w.io != nil {
			w.forwardKey(key, action)
			captured = w.io.WantCaptureKeyboard()
		}
		if RouteKey(w.state, key, action, captured) {
			w.requestClose()
		}
	})

	w.SetCharCallback(func(_ *glfw.Window, char rune) {
		if w.io != nil {
			w.io.AddInputCharacters(string(char))
		}
	})

	w.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if w.io != nil && action == glfw.Press && button >= 0 && int(button) < len(w.pressed) {
			w.pressed[button] = true
		}
		if a, ok := ButtonAction(button); ok {
			w.state.Set(a, action == glfw.Press)
		}
	})

	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.state.SetCursor(float32(x), float32(y))
	})

	w.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		if w.io != nil {
			w.io.AddMouseWheelDelta(float32(dx), float32(dy))
		}
	})
}

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) {
	return w.GetFramebufferSize()
}

// Close destroys the window and terminates glfw.
func (w *Window) Close() {
	w.Destroy()
	glfw.Terminate()
}
