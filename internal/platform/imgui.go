package platform

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
)

// AttachImgui routes window events to io and sets the key map.
func (w *Window) AttachImgui(io *imgui.IO) {
	w.io = io
	io.KeyMap(imgui.KeyTab, int(glfw.KeyTab))
	io.KeyMap(imgui.KeyLeftArrow, int(glfw.KeyLeft))
	io.KeyMap(imgui.KeyRightArrow, int(glfw.KeyRight))
	io.KeyMap(imgui.KeyUpArrow, int(glfw.KeyUp))
	io.KeyMap(imgui.KeyDownArrow, int(glfw.KeyDown))
	io.KeyMap(imgui.KeyPageUp, int(glfw.KeyPageUp))
	io.KeyMap(imgui.KeyPageDown, int(glfw.KeyPageDown))
	io.KeyMap(imgui.KeyHome, int(glfw.KeyHome))
	io.KeyMap(imgui.KeyEnd, int(glfw.KeyEnd))
	io.KeyMap(imgui.KeyInsert, int(glfw.KeyInsert))
	io.KeyMap(imgui.KeyDelete, int(glfw.KeyDelete))
	io.KeyMap(imgui.KeyBackspace, int(glfw.KeyBackspace))
	io.KeyMap(imgui.KeySpace, int(glfw.KeySpace))
	io.KeyMap(imgui.KeyEnter, int(glfw.KeyEnter))
	io.KeyMap(imgui.KeyEscape, int(glfw.KeyEscape))
	io.KeyMap(imgui.KeyA, int(glfw.KeyA))
	io.KeyMap(imgui.KeyC, int(glfw.KeyC))
	io.KeyMap(imgui.KeyV, int(glfw.KeyV))
	io.KeyMap(imgui.KeyX, int(glfw.KeyX))
	io.KeyMap(imgui.KeyY, int(glfw.KeyY))
	io.KeyMap(imgui.KeyZ, int(glfw.KeyZ))
	w.lastNew = glfw.GetTime()
}

func (w *Window) forwardKey(key glfw.Key, action glfw.Action) {
	switch action {
	case glfw.Press:
		w.io.KeyPress(int(key))
	case glfw.Release:
		w.io.KeyRelease(int(key))
	}
	w.io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
	w.io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
	w.io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
	w.io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
}

// NewImguiFrame feeds sizes, timing and the pointer to imgui. It also tells
// the input state whether the pointer belongs to the overlay.
func (w *Window) NewImguiFrame() {
	if w.io == nil {
		return
	}
	winW, winH := w.GetSize()
	w.io.SetDisplaySize(imgui.Vec2{X: float32(winW), Y: float32(winH)})

	now := glfw.GetTime()
	if dt := float32(now - w.lastNew); dt > 0 {
		w.io.SetDeltaTime(dt)
	}
	w.lastNew = now

	if w.GetAttrib(glfw.Focused) != 0 {
		x, y := w.GetCursorPos()
		w.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	} else {
		w.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}
	for i := range w.pressed {
		down := w.pressed[i] || w.GetMouseButton(glfw.MouseButton(i)) == glfw.Press
		w.io.SetMouseButtonDown(i, down)
		w.pressed[i] = false
	}
	w.state.SetPointerCaptured(w.io.WantCaptureMouse())
}

// DisplaySize and FramebufferSizeF are the two sizes the imgui renderer needs.
func (w *Window) DisplaySize() [2]float32 {
	x, y := w.GetSize()
	return [2]float32{float32(x), float32(y)}
}

func (w *Window) FramebufferSizeF() [2]float32 {
	x, y := w.GetFramebufferSize()
	return [2]float32{float32(x), float32(y)}
}
