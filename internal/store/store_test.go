package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	s, err := New(Config{Type: "sqlite", ConnectionString: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListRuns(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		id, err := s.SaveRun(Run{
			Kind:           "fill",
			Label:          "buffer",
			Bytes:          1048576,
			ElapsedNs:      int64(1000 * (i + 1)),
			ThroughputMBps: float64(100 * (i + 1)),
			Trials:         1,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		assert.Greater(t, id, int64(0))
	}

	runs, err := s.ListRuns("fill", 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.Equal(t, int64(3000), runs[0].ElapsedNs)
	assert.Equal(t, int64(1000), runs[2].ElapsedNs)
	assert.Equal(t, "buffer", runs[0].Label)
	assert.Equal(t, int64(1048576), runs[0].Bytes)
}

func TestListRunsFiltersByKind(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveRun(Run{Kind: "fill"})
	require.NoError(t, err)
	_, err = s.SaveRun(Run{Kind: "repeat:whole-file"})
	require.NoError(t, err)

	runs, err := s.ListRuns("fill", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "fill", runs[0].Kind)

	all, err := s.ListRuns("", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListRunsLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := s.SaveRun(Run{Kind: "repeat:chunked", CreatedAt: time.Now().Add(time.Duration(i) * time.Second)})
		require.NoError(t, err)
	}

	runs, err := s.ListRuns("repeat:chunked", 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestLatestRun(t *testing.T) {
	s := newTestStore(t)

	latest, err := s.LatestRun("fill")
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = s.SaveRun(Run{Kind: "fill", ThroughputMBps: 50, CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = s.SaveRun(Run{Kind: "fill", ThroughputMBps: 75, CreatedAt: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	latest, err = s.LatestRun("fill")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 75.0, latest.ThroughputMBps)
}

func TestFactoryErrors(t *testing.T) {
	_, err := New(Config{Type: "mongodb"})
	assert.Error(t, err)

	_, err = New(Config{Type: "postgres"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection string")
}

func TestFactoryDefaultsToSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.db")
	s, err := New(Config{ConnectionString: path})
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*SQLiteStore)
	assert.True(t, ok)
}
