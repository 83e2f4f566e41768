package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailLogAndRecent(t *testing.T) {
	trail, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	defer trail.Close()

	require.NoError(t, trail.Log("search", "/data", true, "matches:3", 120*time.Millisecond))
	require.NoError(t, trail.Log("search-uploaded", "2 files", false, "staging failed", 5*time.Millisecond))

	entries, err := trail.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "search-uploaded", entries[0].Op)
	assert.False(t, entries[0].Success)
	assert.Equal(t, "staging failed", entries[0].Detail)
	assert.Equal(t, "search", entries[1].Op)
	assert.True(t, entries[1].Success)
	assert.Equal(t, int64(120), entries[1].DurationMS)
}

func TestTrailRecentLimit(t *testing.T) {
	trail, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	defer trail.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, trail.Log("search", "", true, "", time.Millisecond))
	}

	entries, err := trail.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestNilTrailIsNoOp(t *testing.T) {
	var trail *Trail

	assert.NoError(t, trail.Log("search", "", true, "", 0))
	entries, err := trail.Recent(10)
	assert.NoError(t, err)
	assert.Nil(t, entries)
	assert.NoError(t, trail.Close())
}
