package mzml

import (
	"io"
	"os"
)

// jumpHistory tracks consecutive same-direction jumps, used to scale the
// next tentative jump distance (§4.E.iii).
type jumpHistory struct {
	forwards  int
	backwards int
}

// BinarySearch performs the binary-style jump search for an integer scan
// id, consulting and extending offsets and seekList in place as it
// learns new (scan, offset) pairs. It fails with OutOfRange if target
// falls outside the seek list's bounds, and NotFound if the iteration
// cap is exhausted without locating target.
func BinarySearch(path string, target int, offsets map[Identifier]OffsetEntry, seekList *SeekList, cfg *Config) (OffsetEntry, error) {
	first, last, ok := seekList.Bounds()
	if !ok {
		return OffsetEntry{}, NewIndexError(ErrNotFound, "binary_search", nil)
	}
	if target < first.ScanID || target > last.ScanID {
		return OffsetEntry{}, NewIndexError(ErrOutOfRange, "binary_search", nil)
	}
	if entry, ok := offsets[IntID(target)]; ok {
		return entry, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return OffsetEntry{}, NewIndexError(ErrIO, "binary_search", err)
	}
	defer f.Close()

	hist := jumpHistory{}
	offsetScale := 1.0

	for iter := 0; iter < cfg.JumpIterationCap; iter++ {
		before, after, ok := seekList.Straddle(target)
		if !ok {
			break
		}
		if before.ScanID == target {
			return OffsetEntry{Start: before.Offset}, nil
		}
		if after.ScanID == target {
			return OffsetEntry{Start: after.Offset}, nil
		}

		spread := after.ScanID - before.ScanID
		if spread == 0 {
			break
		}
		avg := float64(after.Offset-before.Offset) / float64(spread)

		var candidate int64
		forward := target-before.ScanID <= after.ScanID-target

		if forward {
			hist.backwards = 0
			hist.forwards++
			if target-before.ScanID < cfg.CloseRangeScans {
				candidate = before.Offset
			} else {
				candidate = before.Offset + int64(float64(hist.forwards)*offsetScale*avg*float64(target-before.ScanID))
			}
		} else {
			hist.forwards = 0
			hist.backwards++
			if after.ScanID-target < cfg.CloseRangeScans {
				candidate = after.Offset
			} else {
				candidate = after.Offset - int64(float64(hist.backwards)*offsetScale*avg*float64(after.ScanID-target))
			}
		}
		if candidate < 0 {
			candidate = 0
		}

		matches, _ := readWindow(f, candidate, cfg.JumpChunkSize, 100)
		if len(matches) == 0 {
			break
		}

		var hitTarget bool
		var hitOffset int64
		for _, m := range matches {
			if forward {
				if m.scan > target {
					offsetScale = cfg.OvershootScale
					hist.forwards = 0
				} else {
					offsetScale = 1.0
				}
			} else {
				if m.scan < target {
					offsetScale = cfg.OvershootScale
					hist.backwards = 0
				} else {
					offsetScale = 1.0
				}
			}

			ident := IntID(m.scan)
			if _, exists := offsets[ident]; !exists {
				offsets[ident] = OffsetEntry{Start: m.offset}
				seekList.Insert(m.scan, m.offset)
			}

			if m.scan == target {
				hitTarget = true
				hitOffset = m.offset
				break
			}
		}

		if hitTarget {
			return readFragmentAt(f, hitOffset, cfg.JumpChunkSize)
		}
	}

	return OffsetEntry{}, NewIndexError(ErrNotFound, "binary_search", nil)
}

// specMatch is one SPEC_OPEN hit inside a read window: its recovered scan
// number and absolute byte offset.
type specMatch struct {
	scan   int
	offset int64
}

// readWindow reads up to maxChunks consecutive chunkSize-byte chunks from
// startOffset into one buffer and returns every SPEC_OPEN match found in
// it, in file order (§4.E.iii step 5: "find all SPEC_OPEN matches"). This
// is what lets a single jump — including one snapped to a known offset
// under the close-range safeguard — learn every intervening scan in its
// window rather than only the first, which is what makes the safeguard
// useful: landing exactly on a known offset is only progress if the read
// that follows can see past it. readErr reports whether nothing at all
// could be read from startOffset, whatever the cause (EOF included).
func readWindow(f *os.File, startOffset int64, chunkSize, maxChunks int) (matches []specMatch, readErr bool) {
	var buf []byte
	for i := 0; i < maxChunks; i++ {
		chunk := make([]byte, chunkSize)
		n, err := f.ReadAt(chunk, startOffset+int64(len(buf)))
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			break
		}
	}
	for _, loc := range SpecOpen.FindAllSubmatchIndex(buf, -1) {
		// SpecOpen captures whichever of index/id appears first into its
		// first pair and the other into its second; pull id out by name
		// rather than assuming position, the way fullscan.go's ExtractID
		// does, since mzML conventionally writes index before id.
		idStr, ok := ExtractID(SpecIDSimple, buf[loc[0]:loc[1]])
		if !ok {
			continue
		}
		s, ok := ExtractTrailingScan(idStr)
		if !ok {
			s, ok = ExtractScanInString(idStr)
		}
		if !ok {
			continue
		}
		matches = append(matches, specMatch{scan: s, offset: startOffset + int64(loc[0])})
	}
	return matches, len(buf) == 0
}

// scanForSpecOpen reads up to maxChunks consecutive chunkSize-byte chunks
// from startOffset and returns the scan number and absolute offset of
// the first SPEC_OPEN match found, extracted via TrailingScanDigits. Used
// by the interpolation search (§4.E.iv), which estimates one candidate
// position per iteration rather than learning every match in a window.
func scanForSpecOpen(f *os.File, startOffset int64, chunkSize, maxChunks int) (scan int, abs int64, found bool) {
	var buf []byte
	pos := startOffset

	for i := 0; i < maxChunks; i++ {
		chunk := make([]byte, chunkSize)
		n, err := f.ReadAt(chunk, pos+int64(len(buf)))
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if loc := SpecOpen.FindSubmatchIndex(buf); loc != nil {
			if idStr, ok := ExtractID(SpecIDSimple, buf[loc[0]:loc[1]]); ok {
				s, ok := ExtractTrailingScan(idStr)
				if !ok {
					s, ok = ExtractScanInString(idStr)
				}
				if ok {
					return s, startOffset + int64(loc[0]), true
				}
			}
		}
		if err != nil {
			break
		}
	}
	return 0, 0, false
}

// readFragmentAt seeks to start and reads forward until the matching
// close tag is found, returning the resolved OffsetEntry (§4.E.iii step 6).
func readFragmentAt(f *os.File, start int64, chunkSize int) (OffsetEntry, error) {
	sr := io.NewSectionReader(f, start, 1<<62)
	data, err := ReadToSpecEnd(sr, chunkSize)
	if err != nil {
		return OffsetEntry{}, err
	}
	return OffsetEntry{Start: start, End: start + int64(len(data)), HasEnd: true}, nil
}
