// Package event defines the progress events the mirror engine emits.
package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	RunStarted Type = iota + 1
	DirCreated
	FileCopied
	FileUnchanged
	FileExcluded
	FileFailed
	RunCompleted
)

var typeNames = [...]string{
	RunStarted:    "RunStarted",
	DirCreated:    "DirCreated",
	FileCopied:    "FileCopied",
	FileUnchanged: "FileUnchanged",
	FileExcluded:  "FileExcluded",
	FileFailed:    "FileFailed",
	RunCompleted:  "RunCompleted",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the engine.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // relative to the source root
	Size      int64  // bytes written (FileCopied)
	Error     error  // set for FileFailed
}
