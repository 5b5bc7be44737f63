// Package profiling measures where the time of a tick goes.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Profiler accumulates named durations until Reset.
// Usage: defer prof.Track("scene.OnRun")()
type Profiler struct {
	now    func() time.Time
	totals map[string]time.Duration
}

func New() *Profiler {
	return &Profiler{now: time.Now, totals: make(map[string]time.Duration)}
}

// Track returns a stop function that records the elapsed time under name.
func (p *Profiler) Track(name string) func() {
	start := p.now()
	return func() {
		p.totals[name] += p.now().Sub(start)
	}
}

func (p *Profiler) Reset() {
	clear(p.totals)
}

func (p *Profiler) Get(name string) time.Duration {
	return p.totals[name]
}

// Snapshot returns a copy of the current totals.
func (p *Profiler) Snapshot() map[string]time.Duration {
	out := make(map[string]time.Duration, len(p.totals))
	for k, v := range p.totals {
		out[k] = v
	}
	return out
}

// TopN formats the n largest totals, e.g. "render.Scene:4.2ms, update.Scene:0.3ms".
func (p *Profiler) TopN(n int) string {
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(p.totals))
	for k, v := range p.totals {
		list = append(list, pair{k, v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		parts = append(parts, fmt.Sprintf("%s:%s", e.name, FormatMs(e.dur)))
	}
	return strings.Join(parts, ", ")
}

// FormatMs keeps one decimal and drops a trailing ".0".
func FormatMs(d time.Duration) string {
	s := fmt.Sprintf("%.1f", float64(d.Microseconds())/1000)
	return strings.TrimSuffix(s, ".0") + "ms"
}

// Rate counts events per second over consecutive one-second windows.
type Rate struct {
	start   float64
	count   int
	perSec  float64
	started bool
}

// Tick records one event at time now (seconds).
func (r *Rate) Tick(now float64) {
	if !r.started {
		r.start, r.started = now, true
	}
	r.count++
	if elapsed := now - r.start; elapsed >= 1 {
		r.perSec = float64(r.count) / elapsed
		r.count = 0
		r.start = now
	}
}

// PerSecond is the rate measured over the last completed window.
func (r *Rate) PerSecond() float64 {
	return r.perSec
}
