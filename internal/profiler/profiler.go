// Package profiler accumulates elapsed ticks for named blocks of work and
// reports where a run spent its time.
package profiler

import (
	"fmt"
	"io"
	"sync"

	"perflab/internal/clock"
)

type block struct {
	name  string
	ticks uint64
	calls uint64
}

// Profiler tracks named blocks. Blocks report in the order they were first
// started.
type Profiler struct {
	mu     sync.Mutex
	now    clock.Source
	order  []*block
	byName map[string]*block
}

// New returns a profiler backed by the monotonic clock.
func New() *Profiler {
	return NewWithSource(clock.Ticks)
}

// NewWithSource returns a profiler reading ticks from src.
func NewWithSource(src clock.Source) *Profiler {
	return &Profiler{
		now:    src,
		byName: make(map[string]*block),
	}
}

// Start begins timing the named block and returns the function that stops it.
// The usual form is:
//
//	defer p.Start("parse")()
func (p *Profiler) Start(name string) func() {
	start := p.now()
	return func() {
		elapsed := p.now() - start

		p.mu.Lock()
		defer p.mu.Unlock()
		b, ok := p.byName[name]
		if !ok {
			b = &block{name: name}
			p.byName[name] = b
			p.order = append(p.order, b)
		}
		b.ticks += elapsed
		b.calls++
	}
}

// Reset discards all recorded blocks.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.order = nil
	p.byName = make(map[string]*block)
}

// Report writes the accumulated timings to w.
func (p *Profiler) Report(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var total uint64
	for _, b := range p.order {
		total += b.ticks
	}

	fmt.Fprintf(w, "Total time: %.4fms (%d ticks, tick rate %d)\n",
		clock.ToDuration(total).Seconds()*1_000, total, clock.TicksPerSecond)

	for _, b := range p.order {
		pct := 0.0
		if total > 0 {
			pct = float64(b.ticks) / float64(total) * 100
		}
		fmt.Fprintf(w, "  %s: %.4fms %d ticks (%.2f%%)\n",
			b.name, clock.ToDuration(b.ticks).Seconds()*1_000, b.ticks, pct)
	}
}

var std = New()

// Start times a block on the process-global profiler.
func Start(name string) func() { return std.Start(name) }

// Reset clears the process-global profiler.
func Reset() { std.Reset() }

// Report writes the process-global profiler's timings to w.
func Report(w io.Writer) { std.Report(w) }
