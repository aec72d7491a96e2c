package ui

import (
	"fmt"

	"github.com/Kuchukov/Rolling-s/internal/stats"
)

// completionSummary builds a final summary line from a snapshot.
// Format: done ✓  seen 48,917  copied 312  unchanged 48,600  size 2.1 GiB  avg 641 MB/s  time 3m 17s  errors 0
func completionSummary(snap stats.Snapshot) string {
	avgSpeed := 0.0
	if snap.Elapsed.Seconds() > 0 {
		avgSpeed = float64(snap.BytesCopied) / snap.Elapsed.Seconds()
	}

	icon := "✓"
	if snap.FilesFailed > 0 {
		icon = "✗"
	}

	base := fmt.Sprintf("done %s  seen %s  copied %s  unchanged %s  size %s  avg %s  time %s",
		icon,
		FormatCount(snap.FilesSeen),
		FormatCount(snap.FilesCopied),
		FormatCount(snap.FilesUnchanged),
		FormatBytes(snap.BytesCopied),
		FormatRate(avgSpeed),
		FormatDuration(snap.Elapsed),
	)

	if snap.FilesExcluded > 0 {
		base += fmt.Sprintf("  excluded %s", FormatCount(snap.FilesExcluded))
	}

	base += fmt.Sprintf("  errors %d", snap.FilesFailed)

	return base
}
