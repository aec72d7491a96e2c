package mirror

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFileBlockSizes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	content := []byte("0123456789abcdef-not-a-multiple-of-the-block")
	require.NoError(t, os.WriteFile(src, content, 0o644))

	for _, blockSize := range []int{1, 3, 4096} {
		dst := filepath.Join(dir, "dst.bin")
		written, err := copyFile(src, dst, blockSize)
		require.NoError(t, err)
		assert.Equal(t, int64(len(content)), written)
		assert.Equal(t, string(content), readFile(t, dst))
		require.NoError(t, os.Remove(dst))
	}
}

func TestCopyFileTruncatesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("short"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("previous content that was much longer"), 0o644))

	_, err := copyFile(src, dst, 4096)
	require.NoError(t, err)
	assert.Equal(t, "short", readFile(t, dst))
}

func TestCopyFileEmpty(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "empty")
	dst := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(src, nil, 0o644))

	written, err := copyFile(src, dst, 4096)
	require.NoError(t, err)
	assert.Equal(t, int64(0), written)
	assert.FileExists(t, dst)
}

func TestCopyFilePropagatesTimes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("content"), 0o644))

	want := time.Date(2019, 3, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, want, want))

	_, err := copyFile(src, dst, 4096)
	require.NoError(t, err)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(want), "mtime %v, want %v", info.ModTime(), want)
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := copyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "out"), 4096)
	assert.Error(t, err)
}

func TestCopyTimesDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "srcdir")
	dst := filepath.Join(dir, "dstdir")
	require.NoError(t, os.Mkdir(src, 0o755))
	require.NoError(t, os.Mkdir(dst, 0o755))

	want := time.Date(2022, 8, 9, 10, 11, 12, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, want, want))

	require.NoError(t, copyTimes(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(want))
}
