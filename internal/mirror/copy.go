package mirror

import (
	"fmt"
	"io"
	"os"
)

// copyFile copies the contents of srcPath to dstPath in reads/writes
// of at most blockSize bytes, truncating any existing destination,
// then propagates timestamps. Returns the number of bytes written.
func copyFile(srcPath, dstPath string, blockSize int) (int64, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", srcPath, err)
	}
	defer src.Close()

	srcInfo, err := src.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", srcPath, err)
	}

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", dstPath, err)
	}

	var written int64
	buf := make([]byte, blockSize)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				dst.Close()
				return written, fmt.Errorf("write %s: %w", dstPath, werr)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			dst.Close()
			return written, fmt.Errorf("read %s: %w", srcPath, rerr)
		}
	}

	if err := dst.Close(); err != nil {
		return written, fmt.Errorf("close %s: %w", dstPath, err)
	}

	if err := copyTimes(srcPath, dstPath); err != nil {
		return written, err
	}
	return written, nil
}
