package mzml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStableAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mzml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 10000)), 0o644))

	a, err := Fingerprint(path)
	require.NoError(t, err)
	b, err := Fingerprint(path)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFingerprintDiffersOnContentChange(t *testing.T) {
	pathA := filepath.Join(t.TempDir(), "a.mzml")
	pathB := filepath.Join(t.TempDir(), "b.mzml")
	require.NoError(t, os.WriteFile(pathA, []byte(strings.Repeat("x", 10000)), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte(strings.Repeat("y", 10000)), 0o644))

	a, err := Fingerprint(pathA)
	require.NoError(t, err)
	b, err := Fingerprint(pathB)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFingerprintDiffersOnSizeChange(t *testing.T) {
	pathA := filepath.Join(t.TempDir(), "a.mzml")
	pathB := filepath.Join(t.TempDir(), "b.mzml")
	require.NoError(t, os.WriteFile(pathA, []byte(strings.Repeat("x", 100)), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte(strings.Repeat("x", 200)), 0o644))

	a, err := Fingerprint(pathA)
	require.NoError(t, err)
	b, err := Fingerprint(pathB)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFingerprintSmallFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.mzml")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0o644))

	fp, err := Fingerprint(path)
	require.NoError(t, err)
	assert.NotZero(t, fp)
}

func TestFingerprintMissingFile(t *testing.T) {
	_, err := Fingerprint(filepath.Join(t.TempDir(), "absent.mzml"))
	require.Error(t, err)
	var ierr *IndexError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, ErrIO, ierr.Kind)
}
