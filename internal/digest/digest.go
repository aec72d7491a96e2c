// Package digest computes content fingerprints used for change detection.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Algorithm identifies a supported digest algorithm.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	BLAKE3 Algorithm = "blake3"
)

// ErrUnsupportedAlgorithm is returned for algorithm names outside the
// supported set.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

// Parse validates an algorithm name from user input.
func Parse(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case SHA256:
		return SHA256, nil
	case BLAKE3:
		return BLAKE3, nil
	default:
		return "", fmt.Errorf("%w: %q (want sha256 or blake3)", ErrUnsupportedAlgorithm, name)
	}
}

func (a Algorithm) String() string { return string(a) }

// hashChunkSize is the read size used while hashing. It is fixed and
// independent of the copy block size.
const hashChunkSize = 4096

// newHasher returns a fresh incremental hasher for the algorithm.
//
//nolint:ireturn // hash.Hash is the natural return type here
func newHasher(algo Algorithm) (hash.Hash, error) {
	switch algo {
	case SHA256:
		return sha256.New(), nil
	case BLAKE3:
		return blake3.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algo)
	}
}

// File computes the digest of the file at path, returning the
// lowercase hex-encoded digest. Identical content always yields an
// identical digest under the same algorithm.
func File(path string, algo Algorithm) (string, error) {
	h, err := newHasher(algo)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, hashChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n]) // hash.Hash writes never fail
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("hash %s: %w", path, err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
