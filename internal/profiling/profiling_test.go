package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type steppedClock struct {
	t    time.Time
	step time.Duration
}

func (c *steppedClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func TestTrackAndTopN(t *testing.T) {
	clk := &steppedClock{step: 2 * time.Millisecond}
	p := New()
	p.now = clk.now

	p.Track("render")()
	p.Track("render")()
	clk.step = 500 * time.Microsecond
	p.Track("update")()

	assert.Equal(t, 4*time.Millisecond, p.Get("render"))
	assert.Equal(t, "render:4ms, update:0.5ms", p.TopN(5))
	assert.Equal(t, "render:4ms", p.TopN(1))

	p.Reset()
	assert.Empty(t, p.Snapshot())
	assert.Equal(t, "", p.TopN(3))
}

func TestFormatMs(t *testing.T) {
	assert.Equal(t, "1.2ms", FormatMs(1240*time.Microsecond))
	assert.Equal(t, "3ms", FormatMs(3*time.Millisecond))
}

func TestRate(t *testing.T) {
	var r Rate
	for i := 0; i <= 60; i++ {
		r.Tick(float64(i) / 60)
	}
	assert.InDelta(t, 61, r.PerSecond(), 0.01)

	for i := 1; i <= 30; i++ {
		r.Tick(1 + float64(i)/30)
	}
	assert.InDelta(t, 30, r.PerSecond(), 0.01)
}
