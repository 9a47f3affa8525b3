package mzml

import (
	"os"
)

const interpolationFallbackCutoff = 100

// InterpolationSearch performs the interpolation search for an integer
// scan id (§4.E.iv). Once a probe lands within the fallback cutoff of
// target it switches to a forward linear scan (after an overshoot, it
// first walks backward); a repeated probe of the same scan only adjusts
// the jump scaling. When a probe position yields no SPEC_OPEN match it
// hands off to BinarySearch; it does not fall back to a linear scan in
// that case.
//
// The distilled behaviour this is modelled on bisected a mapping object
// directly rather than a sorted list of integer keys, which is a bug:
// bisection needs an ordered sequence, not a hash map. This function
// bisects nothing itself; it only records the scans it learns in the
// seek list, and the one bisection on this path is BinarySearch's, over
// the seek list, which is kept sorted by ScanID.
func InterpolationSearch(path string, target int, fileSize int64, offsets map[Identifier]OffsetEntry, seekList *SeekList, cfg *Config) (OffsetEntry, error) {
	if entry, ok := offsets[IntID(target)]; ok {
		return entry, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return OffsetEntry{}, NewIndexError(ErrIO, "interpolation_search", err)
	}
	defer f.Close()

	pos := fileSize / 2
	upper := fileSize
	lower := int64(0)
	jumperScaling := 1.0
	lastScan := -1

	for iter := 0; iter < cfg.JumpIterationCap; iter++ {
		scan, abs, found := scanForSpecOpen(f, pos, cfg.JumpChunkSize, 1)
		if !found {
			// No SPEC_OPEN at this position: treat as an EOF-like
			// condition and fall back to the jump search, which walks
			// from the nearest known lower-keyed offset.
			return BinarySearch(path, target, offsets, seekList, cfg)
		}

		ident := IntID(scan)
		if _, exists := offsets[ident]; !exists {
			offsets[ident] = OffsetEntry{Start: abs}
			seekList.Insert(scan, abs)
		}

		if scan == target {
			return readFragmentAt(f, abs, cfg.JumpChunkSize)
		}

		diff := scan - target
		switch {
		case diff > 0 && diff < interpolationFallbackCutoff:
			// Overshot but close: ids only increase going forward, so a
			// forward linear scan from here would walk away from target.
			// Back up chunk by chunk until the probed scan drops to or
			// below target, then hand off to the forward linear scan.
			walkPos := pos
			walkScan := scan
			for iter := 0; walkScan > target && iter < cfg.JumpIterationCap; iter++ {
				next := walkPos - int64(cfg.JumpChunkSize)
				if next < 0 {
					next = 0
				}
				walkPos = next
				if s, _, found := scanForSpecOpen(f, walkPos, cfg.JumpChunkSize, 1); found {
					walkScan = s
				}
				if walkPos == 0 {
					break
				}
			}
			return linearScanFrom(f, walkPos, target, cfg)
		case diff < -1 && diff > -interpolationFallbackCutoff:
			return linearScanFrom(f, abs, target, cfg)
		}

		if scan == lastScan {
			if scan > target {
				jumperScaling -= 0.1
			} else {
				jumperScaling += 0.1
			}
		}
		lastScan = scan

		scaling := float64(target) / float64(scan)
		if scan > target {
			upper = pos
			pos = int64(float64(pos) * scaling * jumperScaling)
			if pos < lower {
				pos = lower
			}
		} else {
			lower = pos
			pos = int64(float64(pos) * scaling * jumperScaling)
			if pos > upper {
				pos = upper
			}
		}
		if pos < 0 {
			pos = 0
		}
		if pos >= fileSize {
			pos = fileSize - 1
		}
	}

	return OffsetEntry{}, NewIndexError(ErrNotFound, "interpolation_search", nil)
}

// linearScanFrom sweeps forward from startOffset looking for target,
// used once interpolation has narrowed within the fallback cutoff.
func linearScanFrom(f *os.File, startOffset int64, target int, cfg *Config) (OffsetEntry, error) {
	pos := startOffset
	for i := 0; i < cfg.ProbeChunkLimit; i++ {
		scan, abs, found := scanForSpecOpen(f, pos, cfg.JumpChunkSize, 1)
		if !found {
			return OffsetEntry{}, NewIndexError(ErrNotFound, "interpolation_search", nil)
		}
		if scan == target {
			return readFragmentAt(f, abs, cfg.JumpChunkSize)
		}
		pos = abs + int64(cfg.JumpChunkSize)
	}
	return OffsetEntry{}, NewIndexError(ErrNotFound, "interpolation_search", nil)
}
