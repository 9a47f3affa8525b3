package mzml

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJumpFixture(t *testing.T) (path string, scanOffset map[int]int64) {
	t.Helper()
	var buf bytes.Buffer
	scanOffset = make(map[int]int64)

	buf.WriteString("<mzML><run><spectrumList count=\"10\">\n")
	for i := 1; i <= 10; i++ {
		scanOffset[i] = int64(buf.Len())
		fmt.Fprintf(&buf, "<spectrum index=\"%d\" id=\"%d\" defaultArrayLength=\"0\"></spectrum>\n", i-1, i)
	}
	buf.WriteString("</spectrumList></run></mzML>\n")

	path = filepath.Join(t.TempDir(), "jump.mzml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path, scanOffset
}

func extremesOnly(scanOffset map[int]int64) (map[Identifier]OffsetEntry, SeekList) {
	offsets := map[Identifier]OffsetEntry{
		IntID(1):  {Start: scanOffset[1]},
		IntID(10): {Start: scanOffset[10]},
	}
	var sl SeekList
	sl.Insert(1, scanOffset[1])
	sl.Insert(10, scanOffset[10])
	return offsets, sl
}

func TestBinarySearchFindsUnindexedScan(t *testing.T) {
	path, scanOffset := writeJumpFixture(t)
	offsets, sl := extremesOnly(scanOffset)
	cfg := DefaultConfig()

	entry, err := BinarySearch(path, 5, offsets, &sl, cfg)
	require.NoError(t, err)
	assert.Equal(t, scanOffset[5], entry.Start)

	// Having landed on scan 5, the offset map learns about it.
	_, ok := offsets[IntID(5)]
	assert.True(t, ok)
}

func TestBinarySearchOutOfRange(t *testing.T) {
	path, scanOffset := writeJumpFixture(t)
	offsets, sl := extremesOnly(scanOffset)
	cfg := DefaultConfig()

	_, err := BinarySearch(path, 20, offsets, &sl, cfg)
	require.Error(t, err)
	var ierr *IndexError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, ErrOutOfRange, ierr.Kind)
}

func TestBinarySearchDirectHit(t *testing.T) {
	path, scanOffset := writeJumpFixture(t)
	offsets, sl := extremesOnly(scanOffset)
	cfg := DefaultConfig()

	entry, err := BinarySearch(path, 1, offsets, &sl, cfg)
	require.NoError(t, err)
	assert.Equal(t, scanOffset[1], entry.Start)
}
