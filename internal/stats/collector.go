// Package stats tracks mirror run counters.
package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector accumulates run statistics using atomic counters. The
// engine owns the writes; presenters only read snapshots.
type Collector struct {
	filesSeen      atomic.Int64
	filesCopied    atomic.Int64
	filesUnchanged atomic.Int64
	filesExcluded  atomic.Int64
	filesFailed    atomic.Int64
	bytesCopied    atomic.Int64
	dirsCreated    atomic.Int64
	startTime      time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

func (c *Collector) AddFilesSeen(n int64)      { c.filesSeen.Add(n) }
func (c *Collector) AddFilesCopied(n int64)    { c.filesCopied.Add(n) }
func (c *Collector) AddFilesUnchanged(n int64) { c.filesUnchanged.Add(n) }
func (c *Collector) AddFilesExcluded(n int64)  { c.filesExcluded.Add(n) }
func (c *Collector) AddFilesFailed(n int64)    { c.filesFailed.Add(n) }
func (c *Collector) AddBytesCopied(n int64)    { c.bytesCopied.Add(n) }
func (c *Collector) AddDirsCreated(n int64)    { c.dirsCreated.Add(n) }

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesSeen      int64
	FilesCopied    int64
	FilesUnchanged int64
	FilesExcluded  int64
	FilesFailed    int64
	BytesCopied    int64
	DirsCreated    int64
	Elapsed        time.Duration
}

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesSeen:      c.filesSeen.Load(),
		FilesCopied:    c.filesCopied.Load(),
		FilesUnchanged: c.filesUnchanged.Load(),
		FilesExcluded:  c.filesExcluded.Load(),
		FilesFailed:    c.filesFailed.Load(),
		BytesCopied:    c.bytesCopied.Load(),
		DirsCreated:    c.dirsCreated.Load(),
		Elapsed:        c.Elapsed(),
	}
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"seen=%d copied=%d unchanged=%d excluded=%d failed=%d bytes=%d dirs=%d",
		s.FilesSeen, s.FilesCopied, s.FilesUnchanged, s.FilesExcluded,
		s.FilesFailed, s.BytesCopied, s.DirsCreated,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
