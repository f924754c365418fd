package profiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClock returns successive values from vals, repeating the last one.
func scriptedClock(vals ...uint64) func() uint64 {
	i := 0
	return func() uint64 {
		v := vals[i]
		if i < len(vals)-1 {
			i++
		}
		return v
	}
}

func TestBlocksAccumulate(t *testing.T) {
	p := NewWithSource(scriptedClock(100, 250, 250, 400))

	stop := p.Start("read")
	stop()
	stop = p.Start("read")
	stop()

	var sb strings.Builder
	p.Report(&sb)
	out := sb.String()

	assert.Contains(t, out, "read")
	assert.Contains(t, out, "300 ticks")
	assert.Contains(t, out, "100.00%")
}

func TestReportOrderAndPercent(t *testing.T) {
	// parse takes 300 ticks, sum takes 100.
	p := NewWithSource(scriptedClock(0, 300, 300, 400))

	p.Start("parse")()
	p.Start("sum")()

	var sb strings.Builder
	p.Report(&sb)
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "400 ticks")
	assert.Contains(t, lines[1], "parse")
	assert.Contains(t, lines[1], "75.00%")
	assert.Contains(t, lines[2], "sum")
	assert.Contains(t, lines[2], "25.00%")
}

func TestReset(t *testing.T) {
	p := NewWithSource(scriptedClock(0, 10))
	p.Start("work")()
	p.Reset()

	var sb strings.Builder
	p.Report(&sb)
	assert.NotContains(t, sb.String(), "work")
	assert.Contains(t, sb.String(), "0 ticks")
}

func TestGlobalProfiler(t *testing.T) {
	Reset()
	Start("block")()

	var sb strings.Builder
	Report(&sb)
	assert.Contains(t, sb.String(), "block")

	Reset()
}
