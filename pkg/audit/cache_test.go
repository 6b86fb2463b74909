package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/renderaudit/pkg/rules"
)

func TestReportCache_HitAndInvalidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "App.jsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	cache, err := NewReportCache(8)
	require.NoError(t, err)

	_, ok := cache.Get(path)
	assert.False(t, ok)

	rep := FileReport{File: path, Summary: rules.Summary{TotalIssues: 2}}
	cache.Put(path, rep)

	got, ok := cache.Get(path)
	require.True(t, ok)
	assert.Equal(t, 2, got.Summary.TotalIssues)
	assert.Equal(t, 1, cache.Len())

	cache.Invalidate(path)
	_, ok = cache.Get(path)
	assert.False(t, ok)
}

func TestReportCache_StaleOnModification(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "App.jsx")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	cache, err := NewReportCache(8)
	require.NoError(t, err)
	cache.Put(path, FileReport{File: path})

	// Force a different modtime; coarse filesystem clocks need the nudge.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	_, ok := cache.Get(path)
	assert.False(t, ok, "modified files are never served from cache")
	assert.Equal(t, 0, cache.Len(), "the stale entry is dropped")
}

func TestReportCache_DeletedFileMiss(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "App.jsx")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	cache, err := NewReportCache(8)
	require.NoError(t, err)
	cache.Put(path, FileReport{File: path})
	require.NoError(t, os.Remove(path))

	_, ok := cache.Get(path)
	assert.False(t, ok)
}

func TestReportCache_UnreadablePathNotCached(t *testing.T) {
	cache, err := NewReportCache(8)
	require.NoError(t, err)

	cache.Put(filepath.Join(t.TempDir(), "missing.jsx"), FileReport{})
	assert.Equal(t, 0, cache.Len())
}
