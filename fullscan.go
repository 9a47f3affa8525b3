package mzml

import (
	"os"
	"regexp"
	"strconv"
)

const fullScanChunkSize = 8 * 1024
const fullScanLookback = 100

var listCountPattern = regexp.MustCompile(`<(spectrum|chromatogram)List count="([0-9]+)">`)

// RebuildResult is the outcome of a full-scan rebuild: the recovered
// Offset Map plus the advisory flag raised when a declared list count
// disagrees with the number of entries actually observed.
type RebuildResult struct {
	Offsets     map[Identifier]OffsetEntry
	CountWarned bool
}

// RebuildIndex performs a sequential 8 KiB-chunked scan of the whole
// file with a 100-byte carry-over prepended to every non-initial chunk,
// recovering spectrum and chromatogram open-tag offsets when the
// trailer is absent or untrusted (§4.C).
func RebuildIndex(path string, indexRegex *regexp.Regexp) (RebuildResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return RebuildResult{}, NewIndexError(ErrIO, "rebuild_index", err)
	}
	defer f.Close()

	idPattern := SpecIDSimple
	if indexRegex != nil {
		idPattern = indexRegex
	}

	result := RebuildResult{Offsets: make(map[Identifier]OffsetEntry)}

	declared := map[string]int{}
	observed := map[string]int{}

	chunk := make([]byte, fullScanChunkSize)
	var lookback []byte
	var chunkStart int64
	first := true

	for {
		n, rerr := f.Read(chunk)
		if n > 0 {
			data := append(append([]byte(nil), lookback...), chunk[:n]...)
			base := chunkStart
			if !first {
				base -= int64(len(lookback))
			}
			first = false

			for _, m := range listCountPattern.FindAllSubmatch(data, -1) {
				kind := string(m[1])
				if v, err := strconv.Atoi(string(m[2])); err == nil {
					declared[kind] = v
				}
			}

			for _, loc := range SpecOpen.FindAllSubmatchIndex(data, -1) {
				frag := data[loc[0]:loc[1]]
				if id, ok := ExtractID(idPattern, frag); ok {
					scan, ok := ExtractTrailingScan(id)
					ident := StringID(id)
					if ok {
						ident = IntID(scan)
					}
					abs := base + int64(loc[0])
					if _, exists := result.Offsets[ident]; !exists {
						result.Offsets[ident] = OffsetEntry{Start: abs}
						observed["spectrum"]++
					}
				}
			}

			for _, loc := range ChromOpen.FindAllSubmatchIndex(data, -1) {
				id := string(data[loc[2]:loc[3]])
				abs := base + int64(loc[0])
				ident := StringID(id)
				if _, exists := result.Offsets[ident]; !exists {
					result.Offsets[ident] = OffsetEntry{Start: abs}
					observed["chromatogram"]++
				}
			}

			if len(data) > fullScanLookback {
				lookback = append([]byte(nil), data[len(data)-fullScanLookback:]...)
			} else {
				lookback = append([]byte(nil), data...)
			}
			chunkStart += int64(n)
		}
		if rerr != nil {
			break
		}
	}

	for kind, want := range declared {
		if observed[kind] != want {
			result.CountWarned = true
			warn("fullscan", "declared %sList count=%d but observed %d entries", kind, want, observed[kind])
		}
	}

	return result, nil
}
