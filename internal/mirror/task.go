package mirror

import (
	"io/fs"
	"time"
)

// TaskType identifies the kind of filesystem entry a task describes.
type TaskType int

const (
	Dir TaskType = iota
	File
)

// Task describes a single source entry discovered by the scanner.
type Task struct {
	SrcPath string // absolute source path
	DstPath string // absolute destination path
	RelPath string // path relative to the source root
	Type    TaskType
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
	AccTime time.Time
}
