package mzml

import (
	"io"
)

// carryExtend reads past the end of buf, one byte at a time from r, until
// it hits '>', '<', or a space, or until it has appended max bytes —
// whichever comes first. This is the "chunked byte stream with carry-over"
// primitive, used by ReadToSpecEnd and SearchSubstring so that a tag or
// pattern match is not split across a chunk boundary. The full-scan
// indexer carries a 100-byte lookback between chunks instead, and the
// jump and interpolation searches' window reads do not carry-extend.
func carryExtend(r io.Reader, buf []byte, max int) []byte {
	var one [1]byte
	for i := 0; i < max; i++ {
		n, err := r.Read(one[:])
		if n == 0 || err != nil {
			break
		}
		buf = append(buf, one[0])
		switch one[0] {
		case '>', '<', ' ':
			return buf
		}
	}
	return buf
}

// ReadToSpecEnd advances r in chunkSize-byte reads from the current
// position, accumulating into a rolling buffer and carry-extending after
// each read (§4.E.i), until either "</spectrum>" or "</chromatogram>" is
// found. It returns the bytes from the starting position through one
// past the matched close tag.
func ReadToSpecEnd(r io.Reader, chunkSize int) ([]byte, error) {
	if chunkSize <= 0 {
		chunkSize = 512
	}
	var buf []byte
	chunk := make([]byte, chunkSize)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			buf = carryExtend(r, buf, 12)

			if loc := SpecClose.FindIndex(buf); loc != nil {
				return buf[:loc[1]], nil
			}
			if loc := ChromClose.FindIndex(buf); loc != nil {
				return buf[:loc[1]], nil
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil, NewIndexError(ErrCorruptIndex, "read_to_spec_end", io.ErrUnexpectedEOF)
			}
			return nil, NewIndexError(ErrIO, "read_to_spec_end", err)
		}
	}
}

// FragmentKindOf classifies a fragment's root element by its opening
// bytes.
func FragmentKindOf(data []byte) FragmentKind {
	switch {
	case hasPrefixTag(data, "<spectrum"):
		return KindSpectrum
	case hasPrefixTag(data, "<chromatogram"):
		return KindChromatogram
	default:
		return KindUnknown
	}
}

func hasPrefixTag(data []byte, tag string) bool {
	if len(data) < len(tag) {
		return false
	}
	return string(data[:len(tag)]) == tag
}
