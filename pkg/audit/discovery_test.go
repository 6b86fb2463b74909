package audit

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("// stub\n"), 0644))
	}
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func TestDiscoverFiles_IncludeExtensions(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"src/App.jsx",
		"src/hooks/useAuth.ts",
		"src/index.tsx",
		"src/styles.css",
		"README.md",
	)

	files, err := DiscoverFiles(dir, DefaultConfig())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"App.jsx", "useAuth.ts", "index.tsx"}, baseNames(files))
}

func TestDiscoverFiles_DefaultExclusions(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"src/App.jsx",
		"node_modules/react/index.js",
		"dist/bundle.js",
		"src/__tests__/App.test.jsx",
		"src/App.test.jsx",
		"src/Button.stories.tsx",
	)

	files, err := DiscoverFiles(dir, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"App.jsx"}, baseNames(files))
}

func TestDiscoverFiles_Sorted(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "b.jsx", "a.jsx", "c/d.jsx")

	files, err := DiscoverFiles(dir, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, sort.StringsAreSorted(files))
	assert.Len(t, files, 3)
}

func TestDiscoverFiles_AbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.jsx")

	files, err := DiscoverFiles(dir, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, filepath.IsAbs(files[0]))
}

func TestDiscoverFiles_CustomInclude(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.jsx", "b.tsx")

	cfg := DefaultConfig()
	cfg.Include = []string{"**/*.tsx"}
	files, err := DiscoverFiles(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.tsx"}, baseNames(files))
}

func TestDiscoverFiles_InvalidPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Include = []string{"[unclosed"}
	_, err := DiscoverFiles(t.TempDir(), cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Exclude = []string{"[unclosed"}
	_, err = DiscoverFiles(t.TempDir(), cfg)
	assert.Error(t, err)
}
