package main

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
	"go.uber.org/zap"

	"lightshafts/internal/config"
	"lightshafts/internal/graphics"
	"lightshafts/internal/input"
	"lightshafts/internal/loop"
	"lightshafts/internal/mesh"
	"lightshafts/internal/platform"
	"lightshafts/internal/profiling"
	"lightshafts/internal/scene"
	"lightshafts/internal/tweak"
)

const statsFontPx = 16

// setup brings the subsystems up in dependency order: window and context,
// pass targets, scene, entities, overlays, loop. Anything already created is
// torn down if a later step fails.
func setup(s config.Settings, configPath string, log *zap.Logger) (a *app, err error) {
	a = &app{
		log:        log,
		configPath: configPath,
		state:      input.NewState(),
		prof:       profiling.New(),
		pollEvents: glfw.PollEvents,
		now:        glfw.GetTime,
	}
	defer func() {
		if err != nil {
			a.Dispose()
			a = nil
		}
	}()

	a.win, err = platform.Open(s.Window, a.state, log)
	if err != nil {
		return a, err
	}
	fbW, fbH := a.win.FramebufferSize()

	renderW, renderH := s.Camera.RenderWidth, s.Camera.RenderHeight
	a.device, err = graphics.NewDevice(renderW, renderH, log)
	if err != nil {
		return a, fmt.Errorf("render targets: %w", err)
	}
	a.device.SetScreenSize(fbW, fbH)

	a.scene, err = scene.New(s, a.device, input.NewController(a.state))
	if err != nil {
		return a, err
	}

	m, err := mesh.Load(s.Model.Path, s.Model.Shape)
	if err != nil {
		return a, err
	}
	model, err := graphics.NewModel(m, s.Model.Position, s.Material, a.scene.Light)
	if err != nil {
		return a, fmt.Errorf("model: %w", err)
	}
	a.scene.Attach(model)
	marker, err := graphics.NewMarker()
	if err != nil {
		return a, fmt.Errorf("light marker: %w", err)
	}
	a.scene.SetMarker(marker)
	log.Info("scene ready",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("indices", len(m.Indices)),
		zap.String("model", modelName(s.Model)))

	atlas, err := graphics.NewFontAtlas(statsFontPx)
	if err != nil {
		return a, fmt.Errorf("font: %w", err)
	}
	winW, winH := a.win.GetSize()
	a.text, err = graphics.NewTextRenderer(atlas, winW, winH)
	if err != nil {
		return a, fmt.Errorf("stats overlay: %w", err)
	}

	a.imguiCtx = imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")
	a.imgui, err = graphics.NewImguiRenderer(io)
	if err != nil {
		return a, fmt.Errorf("tweak bar: %w", err)
	}
	a.win.AttachImgui(&io)
	a.bar = tweak.New(s.Model.Position)

	if s.Engine.Watch {
		// A missing watcher only disables hot reload.
		if a.watcher, err = config.Watch(configPath, log); err != nil {
			log.Warn("config watch disabled", zap.Error(err))
			err = nil
		}
	}

	a.loop = loop.New(a.now, a, s.Engine.UpdatePeriod, s.Engine.RenderPeriod)
	if s.Engine.Idle {
		a.loop.SetIdler(loop.NewIdler())
	}
	a.win.OnClose(a.loop.Stop)
	return a, nil
}

func modelName(s config.ModelSettings) string {
	if s.Path != "" {
		return s.Path
	}
	return s.Shape
}
