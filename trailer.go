package mzml

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"regexp"
	"strconv"
)

// TrailerInfo is the result of DiscoverTrailer: the byte offset of the
// <indexListOffset> element's own trailer (the start of the index list
// entries), the TIC chromatogram's trailer offset if observed, and
// whether a usable trailer was found at all.
type TrailerInfo struct {
	TrailerOffset int64
	TICOffset     int64
	HasTIC        bool
	Found         bool
}

const trailerSlabSize = 1024
const trailerBudget = 10 * 1024

// DiscoverTrailer walks backwards from end-of-file in 1 KiB slabs, up to
// a 10 KiB budget, looking for the TIC offset line and the
// indexListOffset locator (§4.B).
func DiscoverTrailer(path string) (TrailerInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return TrailerInfo{}, NewIndexError(ErrIO, "discover_trailer", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return TrailerInfo{}, NewIndexError(ErrIO, "discover_trailer", err)
	}
	size := stat.Size()

	info := TrailerInfo{}
	var scanned int64
	var buf []byte

	for scanned < trailerBudget && scanned < size {
		scanned += trailerSlabSize
		if scanned > size {
			scanned = size
		}
		slab := make([]byte, trailerSlabSize)
		n, err := f.ReadAt(slab, size-scanned)
		if err != nil && err != io.EOF {
			return TrailerInfo{}, NewIndexError(ErrIO, "discover_trailer", err)
		}
		buf = append(slab[:n], buf...)

		for _, line := range bytes.Split(buf, []byte("\n")) {
			if !info.HasTIC {
				if m := TICOffset.FindSubmatch(line); m != nil {
					if v, err := strconv.ParseInt(string(m[1]), 10, 64); err == nil {
						info.TICOffset = v
						info.HasTIC = true
					}
				}
			}
			if !info.Found {
				if m := IndexListOffset.FindSubmatch(line); m != nil {
					if v, err := strconv.ParseInt(string(m[1]), 10, 64); err == nil {
						info.TrailerOffset = v
						info.Found = true
					}
				}
			}
			// The SpecIndexSciex match result is discarded: it records
			// nothing about the trailer and does not gate the stop
			// condition.
			_ = SpecIndexSciex.FindSubmatch(line)
		}

		if info.Found && info.HasTIC {
			break
		}
	}

	return info, nil
}

// ReadIndex seeks to trailerOffset and line-iterates to EOF, emitting
// (Identifier, offset) pairs parsed from the index list (§4.B). indexRegex,
// if non-nil, replaces SpecIndexDefault as the primary matcher; its first
// capture group is coerced to an integer scan id when possible, else kept
// as a string Identifier.
func ReadIndex(path string, trailerOffset int64, indexRegex *regexp.Regexp) (map[Identifier]OffsetEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewIndexError(ErrIO, "read_index", err)
	}
	defer f.Close()

	if _, err := f.Seek(trailerOffset, io.SeekStart); err != nil {
		return nil, NewIndexError(ErrCorruptIndex, "read_index", err)
	}

	out := make(map[Identifier]OffsetEntry)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for sc.Scan() {
		line := sc.Bytes()

		if indexRegex != nil {
			m := indexRegex.FindSubmatch(line)
			if m == nil || len(m) < 3 {
				continue
			}
			nativeID := string(m[1])
			off, err := strconv.ParseInt(string(m[2]), 10, 64)
			if err != nil {
				continue
			}
			if n, err := strconv.Atoi(nativeID); err == nil {
				out[IntID(n)] = OffsetEntry{Start: off}
			} else {
				out[StringID(nativeID)] = OffsetEntry{Start: off}
			}
			continue
		}

		if m := SpecIndexDefault.FindSubmatch(line); m != nil && len(m[1]) > 0 {
			nativeID := string(m[1])
			offset := string(m[2])
			if n, err := strconv.Atoi(nativeID); err == nil {
				if off, err := strconv.ParseInt(offset, 10, 64); err == nil {
					out[IntID(n)] = OffsetEntry{Start: off}
				}
			}
			continue
		}

		if m := SimIndexSciex.FindSubmatch(line); m != nil {
			nativeID := string(m[1])
			offset := string(m[2])
			off, err := strconv.ParseInt(offset, 10, 64)
			if err != nil {
				continue
			}
			if scan, ok := ExtractScanInString(nativeID); ok {
				out[IntID(scan)] = OffsetEntry{Start: off}
			} else {
				out[StringID(nativeID)] = OffsetEntry{Start: off}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return out, NewIndexError(ErrIO, "read_index", err)
	}

	return out, nil
}
