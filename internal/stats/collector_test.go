package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorCounters(t *testing.T) {
	c := NewCollector()

	c.AddFilesSeen(3)
	c.AddFilesCopied(2)
	c.AddFilesUnchanged(1)
	c.AddFilesExcluded(1)
	c.AddFilesFailed(1)
	c.AddBytesCopied(4096)
	c.AddDirsCreated(2)

	snap := c.Snapshot()
	assert.Equal(t, int64(3), snap.FilesSeen)
	assert.Equal(t, int64(2), snap.FilesCopied)
	assert.Equal(t, int64(1), snap.FilesUnchanged)
	assert.Equal(t, int64(1), snap.FilesExcluded)
	assert.Equal(t, int64(1), snap.FilesFailed)
	assert.Equal(t, int64(4096), snap.BytesCopied)
	assert.Equal(t, int64(2), snap.DirsCreated)
	assert.GreaterOrEqual(t, snap.Elapsed.Nanoseconds(), int64(0))
}

func TestSnapshotString(t *testing.T) {
	c := NewCollector()
	c.AddFilesSeen(2)
	c.AddFilesCopied(1)

	s := c.Snapshot().String()
	assert.Contains(t, s, "seen=2")
	assert.Contains(t, s, "copied=1")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{1073741824, "1.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in))
	}
}
