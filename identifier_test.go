package mzml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierString(t *testing.T) {
	assert.Equal(t, "5", IntID(5).String())
	assert.Equal(t, "scan=5", StringID("scan=5").String())
	assert.Equal(t, "TIC", TICID.String())
}

func TestSeekListInsertSortedAndDedup(t *testing.T) {
	var sl SeekList
	assert.True(t, sl.Insert(5, 100))
	assert.True(t, sl.Insert(1, 10))
	assert.True(t, sl.Insert(10, 500))
	assert.False(t, sl.Insert(5, 999))

	assert.True(t, sl.sorted())
	assert.Equal(t, 3, len(sl))
	assert.Equal(t, int64(999), sl[1].Offset)
}

func TestSeekListBounds(t *testing.T) {
	var sl SeekList
	_, _, ok := sl.Bounds()
	assert.False(t, ok)

	sl.Insert(1, 10)
	sl.Insert(10, 500)
	first, last, ok := sl.Bounds()
	assert.True(t, ok)
	assert.Equal(t, 1, first.ScanID)
	assert.Equal(t, 10, last.ScanID)
}

func TestSeekListStraddle(t *testing.T) {
	var sl SeekList
	sl.Insert(1, 10)
	sl.Insert(10, 500)
	sl.Insert(5, 200)

	before, after, ok := sl.Straddle(7)
	assert.True(t, ok)
	assert.Equal(t, 5, before.ScanID)
	assert.Equal(t, 10, after.ScanID)

	exact, exact2, ok := sl.Straddle(5)
	assert.True(t, ok)
	assert.Equal(t, 5, exact.ScanID)
	assert.Equal(t, 5, exact2.ScanID)

	_, _, ok = sl.Straddle(0)
	assert.False(t, ok)
	_, _, ok = sl.Straddle(11)
	assert.False(t, ok)
}
