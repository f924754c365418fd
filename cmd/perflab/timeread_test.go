package main

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockTicks(t *testing.T, value uint64) {
	t.Helper()
	orig := ticksNow
	ticksNow = func() uint64 { return value }
	t.Cleanup(func() { ticksNow = orig })
}

func TestTimereadPrintsMockedTicks(t *testing.T) {
	t.Chdir(t.TempDir())
	mockTicks(t, 123456789)

	out, err := executeCommand(t, "timeread")
	require.NoError(t, err)
	assert.Equal(t, "Time is 123456789\n", out)
}

func TestTimereadPrintsZero(t *testing.T) {
	t.Chdir(t.TempDir())
	mockTicks(t, 0)

	out, err := executeCommand(t, "timeread")
	require.NoError(t, err)
	assert.Equal(t, "Time is 0\n", out)
}

func TestTimereadRealClockFormat(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := executeCommand(t, "timeread")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out, "Time is "), "got: %q", out)
	require.True(t, strings.HasSuffix(out, "\n"))

	ticks, err := strconv.ParseUint(strings.TrimSuffix(strings.TrimPrefix(out, "Time is "), "\n"), 10, 64)
	require.NoError(t, err)
	assert.Positive(t, ticks)
}
