package scene_test

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightshafts/internal/config"
	"lightshafts/internal/scene"
	"lightshafts/internal/transform"
)

const eps = 1e-4

// recorder is a Device that logs every call.
type recorder struct {
	calls     []string
	bound     []scene.Target
	clears    map[scene.Target]mgl32.Vec4
	current   scene.Target
	uploads   []scene.ShaftParams
	composite []mgl32.Vec2
}

func newRecorder() *recorder {
	return &recorder{clears: make(map[scene.Target]mgl32.Vec4)}
}

func (r *recorder) BindTarget(t scene.Target, w, h int) {
	r.current = t
	r.bound = append(r.bound, t)
	r.calls = append(r.calls, "bind:"+t.String())
}

func (r *recorder) Clear(c mgl32.Vec4) {
	r.clears[r.current] = c
	r.calls = append(r.calls, "clear")
}

func (r *recorder) UploadShaftParams(p scene.ShaftParams) {
	r.uploads = append(r.uploads, p)
}

func (r *recorder) Composite(pos mgl32.Vec2) {
	r.composite = append(r.composite, pos)
	r.calls = append(r.calls, "composite")
}

type entity struct {
	name    string
	log     *[]string
	diffuse []mgl32.Vec4
	pos     mgl32.Vec3
}

func (e *entity) Draw(ctx scene.DrawContext) {
	*e.log = append(*e.log, fmt.Sprintf("draw:%s:%d", e.name, ctx.Mode))
}

func (e *entity) SyncLight(l *scene.Light) {
	e.diffuse = append(e.diffuse, l.Diffuse)
}

func (e *entity) SetPosition(p mgl32.Vec3) { e.pos = p }

type controls struct {
	move      mgl32.Vec3
	rotate    mgl32.Vec2
	camMoving bool
	lightMove mgl32.Vec3
	lightOn   bool
}

func (c *controls) CameraDirections() (mgl32.Vec3, mgl32.Vec2, bool) {
	return c.move, c.rotate, c.camMoving
}

func (c *controls) LightDirection() (mgl32.Vec3, bool) {
	return c.lightMove, c.lightOn
}

func settings() config.Settings {
	s := config.Read(config.FromMap(nil))
	s.Camera.Position = mgl32.Vec3{}
	s.Camera.Speed = 1
	s.Camera.RotateSpeed = 1
	s.Light.Speed = 2
	s.Light.Diffuse = mgl32.Vec4{1, 0.5, 0.25, 1}
	s.Shafts = config.ShaftSettings{BackLight: 0.5, Exposure: 0.0034, Decay: 1, Density: 0.84, Weight: 5.65, Samples: 100}
	return s
}

func newScene(t *testing.T) (*scene.Scene, *recorder, *controls) {
	t.Helper()
	dev := newRecorder()
	ctl := &controls{}
	s, err := scene.New(settings(), dev, ctl)
	require.NoError(t, err)
	return s, dev, ctl
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := scene.New(settings(), nil, &controls{})
	assert.Error(t, err)
	_, err = scene.New(settings(), newRecorder(), nil)
	assert.Error(t, err)
}

func TestCameraIdleUpdateIsIdempotent(t *testing.T) {
	s := settings()
	s.Camera.Position = mgl32.Vec3{1, 2, 3}
	s.Camera.Rotation = mgl32.Vec2{0.4, -0.2}
	cam := scene.NewCamera(s.Camera)

	pos, view, vp := cam.Position(), cam.View(), cam.ViewProjection()
	for _, dt := range []float32{0, 0.008, 1, 100} {
		cam.Update(dt)
		assert.Equal(t, pos, cam.Position())
		assert.Equal(t, view, cam.View())
		assert.Equal(t, vp, cam.ViewProjection())
	}
}

func TestCameraPitchStaysClamped(t *testing.T) {
	cam := scene.NewCamera(settings().Camera)
	cam.SetDirections(mgl32.Vec3{}, mgl32.Vec2{3, 250})
	for range 20 {
		cam.Update(0.1)
		assert.LessOrEqual(t, cam.Rotation().Y(), transform.HalfPi)
	}
	assert.Equal(t, transform.HalfPi, cam.Rotation().Y())

	cam.SetDirections(mgl32.Vec3{}, mgl32.Vec2{0, -1000})
	for range 20 {
		cam.Update(0.1)
		assert.GreaterOrEqual(t, cam.Rotation().Y(), -transform.HalfPi)
	}
	assert.Equal(t, -transform.HalfPi, cam.Rotation().Y())
	// Yaw is never clamped.
	assert.Greater(t, cam.Rotation().X(), float32(5.5))
}

func TestCameraMovesInItsOwnFrame(t *testing.T) {
	s := settings()
	s.Camera.Rotation = mgl32.Vec2{mgl32.DegToRad(90), 0}
	cam := scene.NewCamera(s.Camera)

	cam.SetDirections(mgl32.Vec3{0, 0, -1}, mgl32.Vec2{})
	cam.Update(1)
	assert.InDelta(t, 1, cam.Position().X(), eps)
	assert.InDelta(t, 0, cam.Position().Y(), eps)
	assert.InDelta(t, 0, cam.Position().Z(), eps)

	look := cam.Look().Sub(cam.Position())
	assert.InDelta(t, 1, look.X(), eps)
	assert.InDelta(t, 0, look.Z(), eps)
}

func TestCameraRatioAndProjectionAreFixed(t *testing.T) {
	s := settings()
	s.Camera.RenderWidth, s.Camera.RenderHeight = 800, 400
	cam := scene.NewCamera(s.Camera)
	proj := cam.Projection()
	assert.Equal(t, float32(2), cam.Ratio())

	cam.SetDirections(mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 1})
	cam.Update(0.5)
	assert.Equal(t, proj, cam.Projection())
	w, h := cam.RenderSize()
	assert.Equal(t, []int{800, 400}, []int{w, h})
}

func TestLightUpdate(t *testing.T) {
	s := settings()
	l := scene.NewLight(s.Light, 1.5)
	assert.Equal(t, mgl32.Vec2{1, 1.5}, l.MarkerSize)

	l.SetDirection(mgl32.Vec3{0, 1, -1})
	l.Update(0.25)
	assert.Equal(t, mgl32.Vec3{0, 0.5, -0.5}, l.Position)
}

func TestLightDiffuseAlphaIsOpaque(t *testing.T) {
	s := settings()
	s.Light.Diffuse = mgl32.Vec4{0.2, 0.2, 0.2, 0}
	assert.Equal(t, float32(1), scene.NewLight(s.Light, 1).Diffuse.W())
}

func TestOnRunUpdatesOnlyWhatMoves(t *testing.T) {
	s, _, ctl := newScene(t)
	camPos, lightPos := s.Camera.Position(), s.Light.Position

	// Directions without the moving flag are ignored.
	ctl.move = mgl32.Vec3{1, 0, 0}
	ctl.lightMove = mgl32.Vec3{1, 0, 0}
	s.OnRun(1)
	assert.Equal(t, camPos, s.Camera.Position())
	assert.Equal(t, lightPos, s.Light.Position)

	ctl.lightOn = true
	s.OnRun(0.5)
	assert.Equal(t, camPos, s.Camera.Position())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, s.Light.Position)

	ctl.camMoving = true
	s.OnRun(1)
	assert.InDelta(t, 1, s.Camera.Position().X(), eps)
}

func TestOnRunSyncsLightEveryTick(t *testing.T) {
	s, dev, _ := newScene(t)
	var log []string
	e := &entity{name: "model", log: &log}
	s.Attach(e)

	s.OnRun(0.1)
	s.Light.Diffuse = mgl32.Vec4{0, 1, 0, 1}
	s.OnRun(0.1)

	require.Len(t, e.diffuse, 2)
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, e.diffuse[1])
	assert.Empty(t, log, "OnRun must not draw")
	assert.Empty(t, dev.bound, "OnRun must not bind targets")
}

func TestShaftParamsUploadOnlyOnChange(t *testing.T) {
	s, dev, _ := newScene(t)

	s.OnRun(0.1)
	s.OnRun(0.1)
	require.Len(t, dev.uploads, 1)
	assert.Equal(t, int32(100), dev.uploads[0].Samples)

	// The backlight factor is not part of the GPU block.
	s.Shafts.Params.BackLight = 0.9
	s.OnRun(0.1)
	assert.Len(t, dev.uploads, 1)

	s.Shafts.Params.Decay = 0.95
	s.OnRun(0.1)
	require.Len(t, dev.uploads, 2)
	assert.Equal(t, float32(0.95), dev.uploads[1].Decay)
}

func TestRenderPassOrder(t *testing.T) {
	s, dev, _ := newScene(t)
	a := &entity{name: "a", log: &dev.calls}
	b := &entity{name: "b", log: &dev.calls}
	marker := &entity{name: "marker", log: &dev.calls}
	s.Attach(a)
	s.Attach(b)
	s.SetMarker(marker)

	s.OnDraw()

	assert.Equal(t, []scene.Target{scene.TargetNormal, scene.TargetOcclusion, scene.TargetScreen}, dev.bound)
	assert.Equal(t, []string{
		"bind:normal", "clear", "draw:a:0", "draw:b:0",
		"bind:occlusion", "clear", "draw:marker:1", "draw:a:1", "draw:b:1",
		"bind:screen", "clear", "composite",
	}, dev.calls)
}

func TestRenderClearColors(t *testing.T) {
	s, dev, _ := newScene(t)
	s.BgColor = mgl32.Vec4{0.1, 0.2, 0.3, 1}
	s.OnDraw()

	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 1}, dev.clears[scene.TargetNormal])
	assert.Equal(t, mgl32.Vec4{0.5, 0.25, 0.125, 0.5}, dev.clears[scene.TargetOcclusion])
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, dev.clears[scene.TargetScreen])
}

func TestLightColorVisibleSameTick(t *testing.T) {
	s, dev, _ := newScene(t)
	var log []string
	e := &entity{name: "model", log: &log}
	s.Attach(e)

	s.OnRun(0.1)
	s.OnDraw()

	s.Light.Diffuse = mgl32.Vec4{0, 0, 1, 1}
	s.OnRun(0.1)
	s.OnDraw()

	assert.Equal(t, mgl32.Vec4{0, 0, 1, 1}, e.diffuse[len(e.diffuse)-1])
	assert.Equal(t, mgl32.Vec4{0, 0, 0.5, 0.5}, dev.clears[scene.TargetOcclusion])
}

func TestCompositeLightAtViewCentre(t *testing.T) {
	s, dev, _ := newScene(t)
	s.Light.Position = mgl32.Vec3{0, 0, -10}
	s.OnDraw()

	require.Len(t, dev.composite, 1)
	assert.InDelta(t, 0.5, dev.composite[0].X(), eps)
	assert.InDelta(t, 0.5, dev.composite[0].Y(), eps)
}

func TestApplyTunables(t *testing.T) {
	s, _, _ := newScene(t)
	var log []string
	e := &entity{name: "model", log: &log}
	s.Attach(e)

	s.ApplyTunables(config.Tunables{
		ClearColor:    mgl32.Vec4{1, 1, 1, 1},
		LightDiffuse:  mgl32.Vec4{0.3, 0.3, 0.3, 0},
		Shafts:        config.ShaftSettings{Samples: 12},
		ModelPosition: mgl32.Vec3{0, -1, 0},
	})
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, s.BgColor)
	assert.Equal(t, mgl32.Vec4{0.3, 0.3, 0.3, 1}, s.Light.Diffuse)
	assert.Equal(t, int32(12), s.Shafts.Params.Samples)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, e.pos)
}
