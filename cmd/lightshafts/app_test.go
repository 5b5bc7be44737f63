package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lightshafts/internal/config"
	"lightshafts/internal/input"
	"lightshafts/internal/profiling"
	"lightshafts/internal/scene"
	"lightshafts/internal/tweak"
)

type nullDevice struct{}

func (nullDevice) BindTarget(scene.Target, int, int)   {}
func (nullDevice) Clear(mgl32.Vec4)                    {}
func (nullDevice) UploadShaftParams(scene.ShaftParams) {}
func (nullDevice) Composite(mgl32.Vec2)                {}

// lightLog records when the scene hands it the light.
type lightLog struct{ events *[]string }

func (l lightLog) Draw(scene.DrawContext) {}
func (l lightLog) SyncLight(*scene.Light) { *l.events = append(*l.events, "run") }

func newTestApp(t *testing.T, events *[]string) *app {
	t.Helper()
	state := input.NewState()
	s, err := scene.New(config.Read(config.FromMap(nil)), nullDevice{}, input.NewController(state))
	require.NoError(t, err)
	s.Attach(lightLog{events})
	return &app{
		log:        zap.NewNop(),
		state:      state,
		scene:      s,
		bar:        tweak.New(mgl32.Vec3{}),
		prof:       profiling.New(),
		pollEvents: func() { *events = append(*events, "poll") },
		now:        func() float64 { return 0 },
	}
}

func TestUpdateRunsSceneBeforeEvents(t *testing.T) {
	var events []string
	a := newTestApp(t, &events)

	a.Update(0.01)
	assert.Equal(t, []string{"run", "poll"}, events)
}

func TestKeyFromEventsActsNextTick(t *testing.T) {
	var events []string
	a := newTestApp(t, &events)
	a.pollEvents = func() { a.state.Set(input.ActionToggleStats, true) }

	a.Update(0.01)
	assert.False(t, a.showStats)

	a.pollEvents = func() {}
	a.Update(0.01)
	assert.True(t, a.showStats)

	// The edge is consumed once.
	a.Update(0.01)
	assert.True(t, a.showStats)
}
