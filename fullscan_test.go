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

func writeFullScanFixture(t *testing.T, mismatch bool) (path string, scanOffset map[int]int64) {
	t.Helper()
	var buf bytes.Buffer
	scanOffset = make(map[int]int64)

	declaredCount := 3
	if mismatch {
		declaredCount = 99
	}

	buf.WriteString("<mzML><run>\n")
	fmt.Fprintf(&buf, "<spectrumList count=\"%d\">\n", declaredCount)
	for i := 1; i <= 3; i++ {
		scanOffset[i] = int64(buf.Len())
		fmt.Fprintf(&buf, "<spectrum index=\"%d\" id=\"%d\" defaultArrayLength=\"0\"></spectrum>\n", i-1, i)
	}
	buf.WriteString("</spectrumList>\n")
	buf.WriteString("<chromatogramList count=\"1\">\n")
	buf.WriteString("<chromatogram index=\"0\" id=\"TIC\" defaultArrayLength=\"0\"></chromatogram>\n")
	buf.WriteString("</chromatogramList>\n</run></mzML>\n")

	path = filepath.Join(t.TempDir(), "fullscan.mzml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path, scanOffset
}

func TestRebuildIndex(t *testing.T) {
	path, scanOffset := writeFullScanFixture(t, false)

	result, err := RebuildIndex(path, nil)
	require.NoError(t, err)
	assert.False(t, result.CountWarned)

	for i := 1; i <= 3; i++ {
		entry, ok := result.Offsets[IntID(i)]
		require.True(t, ok)
		assert.Equal(t, scanOffset[i], entry.Start)
	}
	_, ok := result.Offsets[StringID("TIC")]
	assert.True(t, ok)
}

func TestRebuildIndexCountMismatchWarns(t *testing.T) {
	path, _ := writeFullScanFixture(t, true)

	result, err := RebuildIndex(path, nil)
	require.NoError(t, err)
	assert.True(t, result.CountWarned)
}
