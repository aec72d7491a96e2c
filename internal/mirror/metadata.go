package mirror

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// copyTimes propagates access and modification times from src to dst
// with nanosecond precision. Applies to files and directories alike.
//
// Birth (creation) time is assigned by the filesystem and cannot be
// set through any syscall on the supported platforms, so it is not
// propagated. That is a non-error: timestamps beyond atime/mtime are
// best-effort only.
func copyTimes(srcPath, dstPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", srcPath, err)
	}

	atime := info.ModTime()
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		atime = atimeFromStat(stat)
	}

	times := []unix.Timespec{
		unix.NsecToTimespec(atime.UnixNano()),
		unix.NsecToTimespec(info.ModTime().UnixNano()),
	}
	if err := unix.UtimesNanoAt(unix.AT_FDCWD, dstPath, times, 0); err != nil {
		return fmt.Errorf("utimensat %s: %w", dstPath, err)
	}
	return nil
}
