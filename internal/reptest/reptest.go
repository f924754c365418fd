// Package reptest repeats a unit of work until a time budget runs out and
// tracks the fastest, slowest and average trial. Only the stretch between
// BeginTimed and EndTimed counts toward a trial, so setup cost can be kept
// out of the numbers.
package reptest

import (
	"fmt"
	"io"
	"math"
	"time"

	"perflab/internal/clock"
)

// Metrics aggregates one trial, or a sum of trials.
type Metrics struct {
	Ticks      uint64
	Bytes      uint64
	PageFaults uint64
	Trials     uint64
}

// Summary holds the results of a finished test.
type Summary struct {
	Min   Metrics
	Max   Metrics
	Total Metrics
}

// Avg returns the per-trial average of the totals.
func (s Summary) Avg() Metrics {
	n := s.Total.Trials
	if n == 0 {
		return Metrics{}
	}
	return Metrics{
		Ticks:      s.Total.Ticks / n,
		Bytes:      s.Total.Bytes / n,
		PageFaults: s.Total.PageFaults / n,
		Trials:     1,
	}
}

// Config sets up a Tester. Zero fields fall back to the monotonic clock, the
// process page-fault counter, a 10 second budget and silent progress.
type Config struct {
	Duration      time.Duration
	ExpectedBytes uint64
	Now           clock.Source
	Faults        func() uint64
	Progress      io.Writer
}

type testerState int

const (
	stateNotStarted testerState = iota
	stateTesting
	stateDone
)

// Tester drives the trial loop:
//
//	for t.NextTrial() {
//		t.BeginTimed()
//		n := work()
//		t.EndTimed()
//		t.CountBytes(n)
//	}
//	if err := t.Err(); err != nil { ... }
type Tester struct {
	now      clock.Source
	faults   func() uint64
	progress io.Writer

	deadline uint64
	expected uint64

	cur   Metrics
	min   Metrics
	max   Metrics
	total Metrics
	state testerState
	err   error
}

// New creates a Tester whose deadline starts counting immediately.
func New(cfg Config) *Tester {
	if cfg.Now == nil {
		cfg.Now = clock.Ticks
	}
	if cfg.Faults == nil {
		cfg.Faults = PageFaults
	}
	if cfg.Progress == nil {
		cfg.Progress = io.Discard
	}
	if cfg.Duration <= 0 {
		cfg.Duration = 10 * time.Second
	}

	return &Tester{
		now:      cfg.Now,
		faults:   cfg.Faults,
		progress: cfg.Progress,
		deadline: cfg.Now() + clock.FromDuration(cfg.Duration),
		expected: cfg.ExpectedBytes,
		min:      Metrics{Ticks: math.MaxUint64},
	}
}

// NextTrial folds the previous trial into the running totals and reports
// whether another trial should run.
func (t *Tester) NextTrial() bool {
	if t.state == stateDone {
		return false
	}

	if t.state == stateTesting {
		t.total.Ticks += t.cur.Ticks
		t.total.Bytes += t.cur.Bytes
		t.total.PageFaults += t.cur.PageFaults

		if t.cur.Ticks < t.min.Ticks {
			t.min = t.cur
			t.min.Trials = 1
		}
		if t.cur.Ticks > t.max.Ticks {
			t.max = t.cur
			t.max.Trials = 1
		}
	}

	if t.now() >= t.deadline {
		if t.state == stateTesting && t.expected != 0 && t.cur.Bytes != t.expected {
			t.err = fmt.Errorf("reptest: trial processed %d bytes, expected %d", t.cur.Bytes, t.expected)
		}
		t.state = stateDone
		fmt.Fprint(t.progress, "\r")
		return false
	}

	if t.state == stateTesting {
		fmt.Fprintf(t.progress, "\rTrial %d: min %.4fms",
			t.total.Trials, clock.ToDuration(t.min.Ticks).Seconds()*1_000)
	}

	t.total.Trials++
	t.cur = Metrics{}
	t.state = stateTesting
	return true
}

// BeginTimed marks the start of the measured stretch of the current trial.
func (t *Tester) BeginTimed() {
	t.cur.Ticks -= t.now()
	t.cur.PageFaults -= t.faults()
}

// EndTimed marks the end of the measured stretch. Every BeginTimed must be
// balanced by an EndTimed before the trial's metrics are read.
func (t *Tester) EndTimed() {
	t.cur.Ticks += t.now()
	t.cur.PageFaults += t.faults()
}

// CountBytes records bytes processed by the current trial.
func (t *Tester) CountBytes(n uint64) {
	t.cur.Bytes += n
}

// Err reports whether any trial processed a byte count different from the
// expected total.
func (t *Tester) Err() error {
	return t.err
}

// Summary returns the collected results. Valid once NextTrial has returned
// false.
func (t *Tester) Summary() Summary {
	min := t.min
	if min.Ticks == math.MaxUint64 {
		min = Metrics{}
	}
	return Summary{Min: min, Max: t.max, Total: t.total}
}
