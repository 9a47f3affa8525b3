package mzml

import (
	"io"
	"os"
	"strings"
)

const substringScanChunkSize = 8 * 512

// SearchSubstring performs the linear forward scan of §4.E.ii: starting
// at offset zero, it looks for a spectrum whose id contains sub or a
// chromatogram whose id equals sub, returning the delimited fragment.
func SearchSubstring(path, sub string) (Fragment, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fragment{}, NewIndexError(ErrIO, "search_linear", err)
	}
	defer f.Close()

	pattern := ScanFragmentPattern(sub)

	var buf []byte
	var base int64
	chunk := make([]byte, substringScanChunkSize)

	for {
		n, rerr := f.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			buf = carryExtend(f, buf, 12)

			if loc := pattern.FindSubmatchIndex(buf); loc != nil {
				id := string(buf[loc[4]:loc[5]])
				if strings.Contains(id, sub) {
					start := base + int64(loc[0])
					return delimitFragmentAt(f, start, 512)
				}
			}
			if loc := ChromOpen.FindSubmatchIndex(buf); loc != nil {
				id := string(buf[loc[2]:loc[3]])
				if id == sub {
					start := base + int64(loc[0])
					return delimitFragmentAt(f, start, 512)
				}
			}

			const keep = 256
			if len(buf) > keep {
				base += int64(len(buf) - keep)
				buf = buf[len(buf)-keep:]
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				return Fragment{}, NewIndexError(ErrNotFound, "search_linear", nil)
			}
			return Fragment{}, NewIndexError(ErrIO, "search_linear", rerr)
		}
	}
}

func delimitFragmentAt(f *os.File, start int64, chunkSize int) (Fragment, error) {
	sr := io.NewSectionReader(f, start, 1<<62)
	data, err := ReadToSpecEnd(sr, chunkSize)
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{Kind: FragmentKindOf(data), Data: data}, nil
}
