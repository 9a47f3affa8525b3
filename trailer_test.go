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

func writeTrailerFixture(t *testing.T) (path string, trailerOffset, ticOffset, specOffset int64) {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("<mzML><run>\n")
	specOffset = int64(buf.Len())
	buf.WriteString("<spectrum index=\"0\" id=\"1\" defaultArrayLength=\"0\"></spectrum>\n")
	ticOffset = int64(buf.Len())
	buf.WriteString("<chromatogram index=\"0\" id=\"TIC\" defaultArrayLength=\"0\"></chromatogram>\n")
	buf.WriteString("</run>\n")

	trailerOffset = int64(buf.Len())
	buf.WriteString("<indexList count=\"2\">\n<index name=\"spectrum\">\n")
	fmt.Fprintf(&buf, "<offset idRef=\"scan=1\">%d</offset>\n", specOffset)
	buf.WriteString("</index>\n<index name=\"chromatogram\">\n")
	fmt.Fprintf(&buf, "<offset idRef=\"TIC\">%d</offset>\n", ticOffset)
	buf.WriteString("</index>\n</indexList>\n")
	fmt.Fprintf(&buf, "<indexListOffset>%d</indexListOffset>\n", trailerOffset)
	buf.WriteString("</mzML>\n")

	path = filepath.Join(t.TempDir(), "trailer.mzml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path, trailerOffset, ticOffset, specOffset
}

func TestDiscoverTrailer(t *testing.T) {
	path, trailerOffset, ticOffset, _ := writeTrailerFixture(t)

	info, err := DiscoverTrailer(path)
	require.NoError(t, err)
	assert.True(t, info.Found)
	assert.True(t, info.HasTIC)
	assert.Equal(t, trailerOffset, info.TrailerOffset)
	assert.Equal(t, ticOffset, info.TICOffset)
}

func TestDiscoverTrailerAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-trailer.mzml")
	require.NoError(t, os.WriteFile(path, []byte("<mzML><run></run></mzML>\n"), 0o644))

	info, err := DiscoverTrailer(path)
	require.NoError(t, err)
	assert.False(t, info.Found)
	assert.False(t, info.HasTIC)
}

func TestReadIndex(t *testing.T) {
	path, trailerOffset, _, specOffset := writeTrailerFixture(t)

	entries, err := ReadIndex(path, trailerOffset, nil)
	require.NoError(t, err)

	entry, ok := entries[IntID(1)]
	require.True(t, ok)
	assert.Equal(t, specOffset, entry.Start)
}

func TestReadIndexCustomRegex(t *testing.T) {
	path, trailerOffset, _, specOffset := writeTrailerFixture(t)

	entries, err := ReadIndex(path, trailerOffset, SpecIndexDefault)
	require.NoError(t, err)

	entry, ok := entries[IntID(1)]
	require.True(t, ok)
	assert.Equal(t, specOffset, entry.Start)
}
