package mzml

import (
	"os"
	"regexp"
)

const probeChunkSize = 128 * 1024
const probeChunkLimit = 100

// ProbeExtremes discovers the first and last spectrum id and byte offset
// by scanning the file head and tail (§4.D). It returns zero, one, or
// two entries depending on how much of the file is parsable.
//
// The original implementation this is modelled on computed the absolute
// offset of the head-pass match as seeker.tell() - chunk_size + match.start,
// which is wrong for the very first chunk (tell() has not yet advanced by
// a full chunk_size when fewer bytes were read, and there is no prior
// chunk to subtract). Here the head pass tracks each chunk's own starting
// offset directly, so no such correction is needed.
func ProbeExtremes(path string, indexRegex *regexp.Regexp) ([]SeekPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewIndexError(ErrIO, "probe_extremes", err)
	}
	defer f.Close()

	idPattern := SpecIDSimple
	if indexRegex != nil {
		idPattern = indexRegex
	}

	var points []SeekPoint

	if sp, ok := probeHead(f, idPattern); ok {
		points = append(points, sp)
	}

	stat, err := f.Stat()
	if err != nil {
		return points, NewIndexError(ErrIO, "probe_extremes", err)
	}
	if sp, ok := probeTail(f, stat.Size(), idPattern); ok {
		if len(points) == 0 || sp.ScanID != points[0].ScanID {
			points = append(points, sp)
		}
	}

	return points, nil
}

func probeHead(f *os.File, idPattern *regexp.Regexp) (SeekPoint, bool) {
	var buf []byte
	var chunkOffset int64

	for i := 0; i < probeChunkLimit; i++ {
		chunk := make([]byte, probeChunkSize)
		chunkStart := chunkOffset
		n, err := f.ReadAt(chunk, chunkOffset)
		chunkOffset += int64(n)
		if n > 0 {
			buf = append(buf, chunk[:n]...)

			if loc := SpecOpenSimple.FindIndex(chunk[:n]); loc != nil {
				abs := chunkStart + int64(loc[0])
				frag := chunk[loc[0]:n]
				id, ok := ExtractID(idPattern, frag)
				scan := 0
				if ok {
					scan, _ = ExtractTrailingScan(id)
				}
				return SeekPoint{ScanID: scan, Offset: abs}, true
			}
		}
		if err != nil {
			break
		}
	}
	return SeekPoint{}, false
}

func probeTail(f *os.File, size int64, idPattern *regexp.Regexp) (SeekPoint, bool) {
	var buf []byte
	pos := size

	for i := 0; i < probeChunkLimit && pos > 0; i++ {
		readSize := int64(probeChunkSize)
		if readSize > pos {
			readSize = pos
		}
		pos -= readSize
		chunk := make([]byte, readSize)
		if _, err := f.ReadAt(chunk, pos); err != nil {
			break
		}
		buf = append(chunk, buf...)

		locs := SpecOpenSimple.FindAllIndex(buf, -1)
		if len(locs) > 0 {
			last := locs[len(locs)-1]
			abs := pos + int64(last[0])
			frag := buf[last[0]:]
			id, ok := ExtractID(idPattern, frag)
			scan := 0
			if ok {
				scan, _ = ExtractTrailingScan(id)
			}
			return SeekPoint{ScanID: scan, Offset: abs}, true
		}
	}
	return SeekPoint{}, false
}
