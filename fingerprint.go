package mzml

import (
	"encoding/binary"
	"os"

	"github.com/cespare/xxhash/v2"
)

const fingerprintSampleSize = 4096

// Fingerprint computes an advisory xxhash signature of path's size plus a
// sample of its head and tail bytes. It is never persisted and never
// consulted for correctness — only used for diagnostics and tests that
// want to assert two opens observed the same underlying bytes.
func Fingerprint(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, NewIndexError(ErrIO, "fingerprint", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return 0, NewIndexError(ErrIO, "fingerprint", err)
	}
	size := stat.Size()

	h := xxhash.New()
	var sizeBuf [8]byte
	binary.LittleEndian.PutUint64(sizeBuf[:], uint64(size))
	h.Write(sizeBuf[:])

	head := make([]byte, fingerprintSampleSize)
	if n, _ := f.ReadAt(head, 0); n > 0 {
		h.Write(head[:n])
	}

	if size > fingerprintSampleSize {
		tailStart := size - fingerprintSampleSize
		tail := make([]byte, fingerprintSampleSize)
		if n, _ := f.ReadAt(tail, tailStart); n > 0 {
			h.Write(tail[:n])
		}
	}

	return h.Sum64(), nil
}
