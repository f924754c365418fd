package reptest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickingClock advances a fixed step per reading.
func tickingClock(step uint64) func() uint64 {
	var now uint64
	return func() uint64 {
		now += step
		return now
	}
}

func noFaults() uint64 { return 0 }

func TestTrialLoopCollectsMinMaxAvg(t *testing.T) {
	tester := New(Config{
		Duration:      100 * time.Nanosecond,
		ExpectedBytes: 64,
		Now:           tickingClock(5),
		Faults:        noFaults,
	})

	trials := 0
	for tester.NextTrial() {
		tester.BeginTimed()
		tester.EndTimed()
		tester.CountBytes(64)
		trials++
	}

	require.NoError(t, tester.Err())
	require.Greater(t, trials, 1)

	sum := tester.Summary()
	assert.Equal(t, uint64(trials), sum.Total.Trials)
	assert.Equal(t, uint64(trials)*64, sum.Total.Bytes)

	// Every timed stretch spans exactly one 5-tick step.
	assert.Equal(t, uint64(5), sum.Min.Ticks)
	assert.Equal(t, uint64(5), sum.Max.Ticks)
	assert.Equal(t, uint64(5), sum.Avg().Ticks)
	assert.Equal(t, uint64(64), sum.Avg().Bytes)
}

func TestByteCountMismatchIsAnError(t *testing.T) {
	tester := New(Config{
		Duration:      40 * time.Nanosecond,
		ExpectedBytes: 100,
		Now:           tickingClock(5),
		Faults:        noFaults,
	})

	for tester.NextTrial() {
		tester.BeginTimed()
		tester.EndTimed()
		tester.CountBytes(99)
	}

	err := tester.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "99")
	assert.Contains(t, err.Error(), "100")
}

func TestNoTrialsWhenBudgetAlreadySpent(t *testing.T) {
	var now uint64 = 1000
	tester := New(Config{
		Duration: time.Nanosecond,
		Now: func() uint64 {
			now += 1000
			return now
		},
		Faults: noFaults,
	})

	ran := false
	for tester.NextTrial() {
		tester.BeginTimed()
		tester.EndTimed()
		ran = true
		break
	}

	if ran {
		t.Skip("clock granularity allowed one trial")
	}
	assert.NoError(t, tester.Err())
	assert.Equal(t, uint64(0), tester.Summary().Total.Trials)
	assert.Equal(t, uint64(0), tester.Summary().Min.Ticks)
}

func TestPageFaultDelta(t *testing.T) {
	faults := uint64(10)
	tester := New(Config{
		Duration:      30 * time.Nanosecond,
		Now:           tickingClock(5),
		Faults:        func() uint64 { faults += 3; return faults },
	})

	for tester.NextTrial() {
		tester.BeginTimed()
		tester.EndTimed()
	}

	sum := tester.Summary()
	require.Greater(t, sum.Total.Trials, uint64(0))
	// Each Begin/End pair observes two readings 3 faults apart.
	assert.Equal(t, uint64(3), sum.Min.PageFaults)
}

func TestProgressIsWritten(t *testing.T) {
	var buf bytes.Buffer
	tester := New(Config{
		Duration: 200 * time.Nanosecond,
		Now:      tickingClock(5),
		Faults:   noFaults,
		Progress: &buf,
	})

	for tester.NextTrial() {
		tester.BeginTimed()
		tester.EndTimed()
	}

	assert.Contains(t, buf.String(), "Trial")
}

func TestReadStrategiesSeeWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.bin")
	payload := bytes.Repeat([]byte("perflab"), 10_000)
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	size, err := FileSize(path)
	require.NoError(t, err)
	require.Equal(t, uint64(len(payload)), size)

	scratch := make([]byte, size)
	for _, s := range ReadStrategies() {
		n, err := s.Run(path, scratch)
		require.NoError(t, err, s.Name)
		assert.Equal(t, size, n, s.Name)
	}
}

func TestPageFaultsCounterIsUsable(t *testing.T) {
	// Touch fresh memory between readings and expect the counter not to go
	// backwards. Platforms without fault accounting report zero throughout.
	before := PageFaults()
	big := make([]byte, 4<<20)
	for i := 0; i < len(big); i += 4096 {
		big[i] = 1
	}
	after := PageFaults()
	assert.GreaterOrEqual(t, after, before)
	_ = big
}
