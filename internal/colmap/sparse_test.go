package colmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdirs(t *testing.T, parts ...string) string {
	t.Helper()
	dir := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestResolveSparseDir(t *testing.T) {
	t.Run("prefers sparse/0", func(t *testing.T) {
		src := t.TempDir()
		mkdirs(t, src, "sparse", "0")

		got, err := ResolveSparseDir(src)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(src, "sparse", "0"), got)
	})

	t.Run("falls back to flat sparse", func(t *testing.T) {
		src := t.TempDir()
		mkdirs(t, src, "sparse")

		got, err := ResolveSparseDir(src)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(src, "sparse"), got)
	})

	t.Run("missing yields ErrNoSparse", func(t *testing.T) {
		_, err := ResolveSparseDir(t.TempDir())
		assert.ErrorIs(t, err, ErrNoSparse)
	})
}

func TestFindPoseFile(t *testing.T) {
	t.Run("text variant", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "images.txt", "# empty\n")

		got, err := FindPoseFile(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "images.txt"), got)
	})

	t.Run("text preferred over binary", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "images.txt", "# empty\n")
		write(t, dir, "images.bin", "\x00")

		got, err := FindPoseFile(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "images.txt"), got)
	})

	t.Run("binary only", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "images.bin", "\x00")

		_, err := FindPoseFile(dir)
		assert.ErrorIs(t, err, ErrBinaryOnly)
	})

	t.Run("neither variant", func(t *testing.T) {
		_, err := FindPoseFile(t.TempDir())
		assert.ErrorIs(t, err, ErrNoPoseData)
	})
}

func TestCopyAux(t *testing.T) {
	t.Run("copies first camera variant and all point variants", func(t *testing.T) {
		sparse := t.TempDir()
		out := t.TempDir()
		write(t, sparse, "cameras.txt", "PINHOLE")
		write(t, sparse, "cameras.bin", "\x01")
		write(t, sparse, "points3D.txt", "1 0 0 0")
		write(t, sparse, "points3D.ply", "ply")

		copied, err := CopyAux(sparse, out)
		require.NoError(t, err)
		assert.Equal(t, []string{"cameras.txt", "points3D.txt", "points3D.ply"}, copied)

		data, err := os.ReadFile(filepath.Join(out, "cameras.txt"))
		require.NoError(t, err)
		assert.Equal(t, "PINHOLE", string(data))

		_, err = os.Stat(filepath.Join(out, "cameras.bin"))
		assert.True(t, os.IsNotExist(err), "only the first camera variant should be copied")
	})

	t.Run("binary cameras when no text", func(t *testing.T) {
		sparse := t.TempDir()
		out := t.TempDir()
		write(t, sparse, "cameras.bin", "\x01")

		copied, err := CopyAux(sparse, out)
		require.NoError(t, err)
		assert.Equal(t, []string{"cameras.bin"}, copied)
	})

	t.Run("nothing to copy", func(t *testing.T) {
		copied, err := CopyAux(t.TempDir(), t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, copied)
	})
}
