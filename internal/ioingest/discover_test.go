package ioingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFloatIDs(t *testing.T) {
	t.Run("finds profile files sorted", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "1902670_prof.nc")
		touch(t, dir, "1902669_prof.nc")
		touch(t, dir, "1902669_meta.nc")
		touch(t, dir, "readme.txt")
		touch(t, dir, "_prof.nc")
		require.NoError(t,
			os.Mkdir(filepath.Join(dir, "5906000_prof.nc"), 0755))

		ids, err := discoverFloatIDs(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"1902669", "1902670"}, ids)
	})

	t.Run("empty directory yields no IDs", func(t *testing.T) {
		ids, err := discoverFloatIDs(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		_, err := discoverFloatIDs(filepath.Join(t.TempDir(), "no-such"))
		assert.Error(t, err)
	})
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), nil, 0644)
	require.NoError(t, err)
}
