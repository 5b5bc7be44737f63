package main

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
	"go.uber.org/zap"

	"lightshafts/internal/config"
	"lightshafts/internal/graphics"
	"lightshafts/internal/input"
	"lightshafts/internal/loop"
	"lightshafts/internal/platform"
	"lightshafts/internal/profiling"
	"lightshafts/internal/scene"
	"lightshafts/internal/tweak"
)

// slowRender is the render duration above which a tick gets logged.
const slowRender = 50 * time.Millisecond

var statsColor = mgl32.Vec3{1, 1, 0.6}

// app binds the window, the scene and the overlays to the loop. Every method
// runs on the main thread.
type app struct {
	log        *zap.Logger
	configPath string

	win      *platform.Window
	state    *input.State
	device   *graphics.Device
	scene    *scene.Scene
	text     *graphics.TextRenderer
	imguiCtx *imgui.Context
	imgui    *graphics.ImguiRenderer
	bar      *tweak.Bar
	watcher  *config.Watcher
	loop     *loop.Loop

	// pollEvents and now are glfw.PollEvents and glfw.GetTime in a live window.
	pollEvents func()
	now        loop.Clock

	prof      *profiling.Profiler
	ups, fps  profiling.Rate
	showStats bool
}

var _ loop.Stepper = (*app)(nil)

func (a *app) Update(dt float64) {
	defer a.prof.Track("update")()

	if a.state.JustPressed(input.ActionToggleTweakBar) {
		a.bar.Toggle()
	}
	if a.state.JustPressed(input.ActionToggleStats) {
		a.showStats = !a.showStats
	}
	if a.state.JustPressed(input.ActionReloadConfig) || (a.watcher != nil && a.watcher.Changed()) {
		a.reload()
	}

	func() { defer a.prof.Track("scene.OnRun")(); a.scene.OnRun(dt) }()
	a.state.PostUpdate()
	// Events land after the edges are cleared, so the next tick sees them.
	func() { defer a.prof.Track("glfw.PollEvents")(); a.pollEvents() }()
	a.ups.Tick(a.now())
}

// reload re-reads the config file and applies the runtime-editable values.
// On failure the current values stay.
func (a *app) reload() {
	src, err := config.Load(a.configPath)
	if err != nil {
		a.log.Warn("config reload failed", zap.Error(err))
		return
	}
	t := config.Read(src).Tunables()
	a.scene.ApplyTunables(t)
	a.bar.SetModelPosition(t.ModelPosition)
	a.log.Info("config reloaded", zap.String("path", a.configPath))
}

func (a *app) Render() {
	start := time.Now()

	func() { defer a.prof.Track("scene.OnDraw")(); a.scene.OnDraw() }()

	if a.showStats {
		func() { defer a.prof.Track("stats")(); a.drawStats() }()
	}
	func() { defer a.prof.Track("tweak")(); a.drawTweakBar() }()
	func() { defer a.prof.Track("glfw.SwapBuffers")(); a.win.SwapBuffers() }()
	a.fps.Tick(a.now())

	if took := time.Since(start); took > slowRender {
		a.log.Debug("slow render",
			zap.Duration("took", took),
			zap.String("top", a.prof.TopN(3)))
	}
	a.prof.Reset()
}

func (a *app) drawStats() {
	cam, light := a.scene.Camera, a.scene.Light
	p := a.scene.Shafts.Params
	lines := []string{
		fmt.Sprintf("%.0f fps  %.0f ups", a.fps.PerSecond(), a.ups.PerSecond()),
		fmt.Sprintf("camera %.2f %.2f %.2f", cam.Position()[0], cam.Position()[1], cam.Position()[2]),
		fmt.Sprintf("light  %.2f %.2f %.2f", light.Position[0], light.Position[1], light.Position[2]),
		fmt.Sprintf("samples %d  exposure %.4f  decay %.3f", p.Samples, p.Exposure, p.Decay),
		fmt.Sprintf("density %.3f  weight %.3f", p.Density, p.Weight),
		"frame " + a.prof.TopN(2),
	}
	_, winH := a.win.GetSize()
	a.text.RenderLines(lines, 10, float32(winH)-110, 1, statsColor)
}

func (a *app) drawTweakBar() {
	a.win.NewImguiFrame()
	imgui.NewFrame()
	if a.bar.Draw(a.scene) {
		a.log.Debug("parameters edited", zap.Int32("samples", a.scene.Shafts.Params.Samples))
	}
	imgui.Render()
	a.imgui.Render(a.win.DisplaySize(), a.win.FramebufferSizeF(), imgui.RenderedDrawData())
}

// Dispose releases everything setup created, in reverse order. It tolerates a
// partially built app.
func (a *app) Dispose() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("config watcher close", zap.Error(err))
		}
	}
	if a.imgui != nil {
		a.imgui.Dispose()
	}
	if a.imguiCtx != nil {
		a.imguiCtx.Destroy()
	}
	if a.text != nil {
		a.text.Dispose()
	}
	if a.scene != nil {
		a.scene.Dispose()
	}
	if a.device != nil {
		a.device.Dispose()
	}
	if a.win != nil {
		a.win.Close()
	}
}
