package mzml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 512, cfg.ReadChunkSize)
	assert.Equal(t, 12, cfg.CarryOverMax)
	assert.Equal(t, 40, cfg.JumpIterationCap)
	assert.Equal(t, 10, cfg.CloseRangeScans)
	assert.Equal(t, 0.1, cfg.OvershootScale)
	assert.Equal(t, 5e-6, cfg.MeasuredPrecision)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.kdl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesSelectedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mzmlindex.kdl")
	doc := "jump_iteration_cap 80\nclose_range_scans 20\nmeasured_precision 1e-5\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.JumpIterationCap)
	assert.Equal(t, 20, cfg.CloseRangeScans)
	assert.Equal(t, 1e-5, cfg.MeasuredPrecision)
	// Unmentioned fields keep their spec-mandated defaults.
	assert.Equal(t, DefaultConfig().ReadChunkSize, cfg.ReadChunkSize)
}

func TestLoadConfigInvalidDocumentErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.kdl")
	require.NoError(t, os.WriteFile(path, []byte("this is not { valid kdl"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	var ierr *IndexError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, ErrCorruptIndex, ierr.Kind)
}
