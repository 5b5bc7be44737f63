package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now float64 }

func (c *fakeClock) Now() float64 { return c.now }

type counter struct {
	updates  []float64
	renders  int
	onRender func()
}

func (c *counter) Update(dt float64) { c.updates = append(c.updates, dt) }

func (c *counter) Render() {
	c.renders++
	if c.onRender != nil {
		c.onRender()
	}
}

// Binary fractions keep the accumulator arithmetic exact.
const (
	updatePeriod = 0.25
	renderPeriod = 0.5
)

func newLoop() (*Loop, *fakeClock, *counter) {
	clk := &fakeClock{}
	c := &counter{}
	return New(clk.Now, c, updatePeriod, renderPeriod), clk, c
}

func TestNothingDue(t *testing.T) {
	l, clk, c := newLoop()
	clk.now = 0.125
	updated, rendered := l.Poll()
	assert.False(t, updated)
	assert.False(t, rendered)
	assert.Empty(t, c.updates)
	assert.Zero(t, c.renders)
}

func TestUpdatesAreBatched(t *testing.T) {
	l, clk, c := newLoop()
	clk.now = 3*updatePeriod + 0.125
	updated, _ := l.Poll()

	assert.True(t, updated)
	require.Len(t, c.updates, 1)
	assert.Equal(t, 3*updatePeriod, c.updates[0])

	rem, _ := l.Pending()
	assert.Less(t, rem, updatePeriod)
	assert.Equal(t, 0.125, rem)
}

func TestSplitDeltasSumToThreePeriods(t *testing.T) {
	l, clk, c := newLoop()
	var total float64
	for _, d := range []float64{0.125, 0.0625, 0.0625, 0.25, 0.25} {
		clk.now += d
		l.Poll()
	}
	for _, u := range c.updates {
		total += u
	}
	assert.Equal(t, 3*updatePeriod, total)
	assert.Len(t, c.updates, 3)
	rem, _ := l.Pending()
	assert.Zero(t, rem)
}

func TestRenderKeepsExactPeriodPending(t *testing.T) {
	l, clk, c := newLoop()
	clk.now = 2 * renderPeriod
	_, rendered := l.Poll()
	assert.True(t, rendered)
	assert.Equal(t, 1, c.renders)

	_, rem := l.Pending()
	assert.Equal(t, renderPeriod, rem)

	// No time passes, yet one whole period is still pending.
	_, rendered = l.Poll()
	assert.True(t, rendered)
	assert.Equal(t, 2, c.renders)
}

func TestRenderDropsStaleTime(t *testing.T) {
	l, clk, c := newLoop()
	clk.now = 5*renderPeriod + 0.125
	_, rendered := l.Poll()
	assert.True(t, rendered)
	assert.Equal(t, 1, c.renders)

	_, rem := l.Pending()
	assert.Equal(t, 0.125, rem)

	clk.now += 0.25
	_, rendered = l.Poll()
	assert.False(t, rendered)
	assert.Equal(t, 1, c.renders)
}

func TestUpdateRunsBeforeRender(t *testing.T) {
	l, clk, c := newLoop()
	var seen int
	c.onRender = func() { seen = len(c.updates) }
	clk.now = renderPeriod + 0.125
	l.Poll()
	assert.Equal(t, 1, seen)
}

func TestRunStops(t *testing.T) {
	l, clk, c := newLoop()
	c.onRender = func() {
		if c.renders == 3 {
			l.Stop()
		}
	}
	var slept []time.Duration
	l.SetIdler(&Idler{sleep: func(d time.Duration) {
		slept = append(slept, d)
		clk.now += d.Seconds()
	}, slack: 0})

	assert.True(t, l.Running())
	l.Run()
	assert.False(t, l.Running())
	assert.Equal(t, 3, c.renders)
	assert.NotEmpty(t, slept)
}

func TestIdlerKeepsSlack(t *testing.T) {
	var got []time.Duration
	i := &Idler{sleep: func(d time.Duration) { got = append(got, d) }, slack: time.Millisecond}
	i.Wait(500 * time.Microsecond)
	i.Wait(5 * time.Millisecond)
	assert.Equal(t, []time.Duration{4 * time.Millisecond}, got)
}
