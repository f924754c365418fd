// Package clock reads a monotonic tick counter with as little overhead as
// possible. Ticks come from the runtime's internal monotonic clock, so they
// never decrease while the process is running, but they have no epoch and
// should be treated as opaque outside of this package.
package clock

import (
	"time"
	_ "unsafe" // for go:linkname
)

//go:noescape
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// TicksPerSecond is the rate of the tick counter.
const TicksPerSecond uint64 = 1_000_000_000

// Source produces tick readings. It exists so commands and testers can swap
// in a fixed or scripted counter in tests.
type Source func() uint64

// Ticks returns the current value of the monotonic counter.
func Ticks() uint64 {
	return uint64(nanotime())
}

// Since returns the ticks elapsed since start.
func Since(start uint64) uint64 {
	return Ticks() - start
}

// ToDuration converts a tick delta to a wall duration. Whole seconds are
// split off first so the scaling cannot overflow.
func ToDuration(ticks uint64) time.Duration {
	secs := ticks / TicksPerSecond
	rem := ticks % TicksPerSecond
	return time.Duration(secs)*time.Second + time.Duration(rem*uint64(time.Second)/TicksPerSecond)
}

// FromDuration converts a wall duration to a tick delta.
func FromDuration(d time.Duration) uint64 {
	ns := uint64(d.Nanoseconds())
	secs := ns / uint64(time.Second)
	rem := ns % uint64(time.Second)
	return secs*TicksPerSecond + rem*TicksPerSecond/uint64(time.Second)
}
