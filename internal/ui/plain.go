package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/Kuchukov/Rolling-s/internal/event"
	"github.com/Kuchukov/Rolling-s/internal/stats"
)

// plainPresenter outputs one line per action to stdout and periodic
// progress to stderr.
type plainPresenter struct {
	w          io.Writer
	errW       io.Writer
	stats      *stats.Collector
	verbose    bool
	noProgress bool
}

func (p *plainPresenter) Run(events <-chan event.Event) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-ticker.C:
			if !p.noProgress {
				p.printProgress()
			}
		}
	}
}

func (p *plainPresenter) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.RunStarted:
		fmt.Fprintf(p.w, "mirroring %s\n", ev.Path)
	case event.FileCopied:
		fmt.Fprintf(p.w, "copy: %s  %s\n", ev.Path, FormatBytes(ev.Size))
	case event.FileUnchanged:
		if p.verbose {
			fmt.Fprintf(p.w, "unchanged: %s\n", ev.Path)
		}
	case event.FileExcluded:
		fmt.Fprintf(p.w, "exclude: %s\n", ev.Path)
	case event.FileFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "failed: %s  %s\n", ev.Path, errMsg)
	case event.DirCreated:
		if p.verbose {
			fmt.Fprintf(p.w, "mkdir: %s\n", ev.Path)
		}
	case event.RunCompleted:
		// summary is printed by the caller
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	fmt.Fprintf(p.errW, "progress: %s files seen, %s copied (%s)\n",
		FormatCount(snap.FilesSeen),
		FormatCount(snap.FilesCopied),
		FormatBytes(snap.BytesCopied),
	)
}

func (p *plainPresenter) Summary() string {
	return completionSummary(p.stats.Snapshot())
}
