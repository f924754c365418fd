package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"perflab/internal/reptest"
	"perflab/internal/store"
)

func plain(t *testing.T) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
}

func TestFormatMetricsTimeOnly(t *testing.T) {
	plain(t)

	out := FormatMetrics(reptest.Metrics{Ticks: 5_000_000})
	assert.Equal(t, "5.0000ms", out)
}

func TestFormatMetricsWithThroughput(t *testing.T) {
	plain(t)

	// 1 MiB in 1ms is exactly 1024^2/1024^3*1000 = 0.9766 GB/s.
	out := FormatMetrics(reptest.Metrics{Ticks: 1_000_000, Bytes: 1 << 20})
	assert.Contains(t, out, "1.0000ms")
	assert.Contains(t, out, "1.000mb")
	assert.Contains(t, out, "0.98gb/s")
}

func TestFormatMetricsWithFaults(t *testing.T) {
	plain(t)

	out := FormatMetrics(reptest.Metrics{Ticks: 1_000_000, Bytes: 4096, PageFaults: 2})
	assert.Contains(t, out, "PF: 2 (2.0000k/fault)")
}

func TestRenderSummary(t *testing.T) {
	plain(t)

	sum := reptest.Summary{
		Min:   reptest.Metrics{Ticks: 1_000_000, Trials: 1},
		Max:   reptest.Metrics{Ticks: 3_000_000, Trials: 1},
		Total: reptest.Metrics{Ticks: 4_000_000, Trials: 2},
	}

	out := RenderSummary("read file.json", sum)
	assert.Contains(t, out, "read file.json")
	assert.Contains(t, out, "Min: 1.0000ms")
	assert.Contains(t, out, "Max: 3.0000ms")
	assert.Contains(t, out, "Avg: 2.0000ms")
}

func TestRenderRegression(t *testing.T) {
	plain(t)

	out := RenderRegression("repeat:whole-file", 100.0, 78.0, 22.0)
	assert.Contains(t, out, "repeat:whole-file")
	assert.Contains(t, out, "22.0%")
	assert.Contains(t, out, "100.00 -> 78.00 MB/s")
}

func TestRenderRunsEmpty(t *testing.T) {
	plain(t)
	assert.Equal(t, "no runs recorded\n", RenderRuns(nil))
}

func TestRenderRunsTable(t *testing.T) {
	plain(t)

	runs := []store.Run{
		{
			ID:             2,
			Kind:           "repeat:whole-file",
			Label:          "pairs.json",
			Bytes:          1 << 20,
			ElapsedNs:      2_500_000,
			ThroughputMBps: 400.0,
			PageFaults:     12,
			Trials:         80,
			CreatedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	out := RenderRuns(runs)
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "repeat:whole-file")
	assert.Contains(t, out, "pairs.json")
	assert.Contains(t, out, "400.00")
	assert.Contains(t, out, "2025-06-01 12:00:00")
}
