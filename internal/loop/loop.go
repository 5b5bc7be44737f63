// Package loop runs update and render at independent fixed periods.
package loop

import (
	"math"
	"sync/atomic"
	"time"
)

// Clock returns the current time in seconds.
type Clock func() float64

// Stepper receives the ticks.
type Stepper interface {
	// Update advances the simulation by dt, the sum of all whole update
	// periods that elapsed since the previous update.
	Update(dt float64)
	Render()
}

// Loop accumulates wall-clock time and fires update and render ticks. Update
// time is drained into one batched tick; render time beyond one period is
// dropped, so rendering never replays frames.
type Loop struct {
	clock        Clock
	step         Stepper
	updatePeriod float64
	renderPeriod float64

	prev      float64
	updateAcc float64
	renderAcc float64

	stopped atomic.Bool
	idle    *Idler
}

func New(clock Clock, step Stepper, updatePeriod, renderPeriod float64) *Loop {
	return &Loop{
		clock:        clock,
		step:         step,
		updatePeriod: updatePeriod,
		renderPeriod: renderPeriod,
		prev:         clock(),
	}
}

// SetIdler makes Run sleep between polls until the next tick is due.
func (l *Loop) SetIdler(i *Idler) {
	l.idle = i
}

// Poll runs whatever ticks are due and returns immediately otherwise.
func (l *Loop) Poll() (updated, rendered bool) {
	now := l.clock()
	delta := now - l.prev
	l.prev = now
	l.updateAcc += delta
	l.renderAcc += delta

	var updateDelta float64
	for l.updateAcc >= l.updatePeriod {
		l.updateAcc -= l.updatePeriod
		updateDelta += l.updatePeriod
		updated = true
	}
	if updated {
		l.step.Update(updateDelta)
	}

	// An accumulator exactly at the period is left pending, so the next
	// poll draws again.
	if l.renderAcc >= l.renderPeriod {
		for l.renderAcc > l.renderPeriod {
			l.renderAcc -= l.renderPeriod
		}
		l.step.Render()
		rendered = true
	}
	return updated, rendered
}

// Run polls until Stop is called.
func (l *Loop) Run() {
	l.prev = l.clock()
	for !l.stopped.Load() {
		l.Poll()
		if l.idle != nil {
			l.idle.Wait(l.untilNext())
		}
	}
}

// Stop ends Run after the current poll. It may be called from any goroutine.
func (l *Loop) Stop() {
	l.stopped.Store(true)
}

func (l *Loop) Running() bool {
	return !l.stopped.Load()
}

// Pending returns the accumulated, not yet consumed update and render time.
func (l *Loop) Pending() (update, render float64) {
	return l.updateAcc, l.renderAcc
}

func (l *Loop) untilNext() time.Duration {
	next := math.Min(l.updatePeriod-l.updateAcc, l.renderPeriod-l.renderAcc)
	if next <= 0 {
		return 0
	}
	return time.Duration(next * float64(time.Second))
}
