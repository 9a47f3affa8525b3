package mzml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mzidx/mzmlindex/spectrum"
	"github.com/mzidx/mzmlindex/xmlscan"
)

// Index is the offset index and seek engine (§2 component E, wired to
// A–D). Construct one with Open.
type Index struct {
	path      string
	cfg       *Config
	indexRe   *regexp.Regexp
	encoding  string

	mu        sync.Mutex
	offsets   map[Identifier]OffsetEntry
	seekList  SeekList

	group singleflight.Group

	textMu   sync.Mutex
	textFile *os.File
}

// Open constructs an Index for path. The constructor runs the Extremes
// Probe (D), then either the Trailer Reader (B) or, if no trailer is
// found and buildFromScratch is true, the Full-Scan Indexer (C) — per
// the dependency order D → {B, C} named in §2.
//
// indexRegex, if non-nil, overrides SPEC_ID_SIMPLE for every component
// that extracts an id attribute. cfg defaults to DefaultConfig() when nil.
func Open(path string, encoding string, buildFromScratch bool, indexRegex *regexp.Regexp, cfg *Config) (*Index, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, NewIndexError(ErrIO, "open", err)
	}

	idx := &Index{
		path:     path,
		cfg:      cfg,
		indexRe:  indexRegex,
		encoding: encoding,
		offsets:  make(map[Identifier]OffsetEntry),
	}

	extremes, err := ProbeExtremes(path, indexRegex)
	if err != nil {
		return nil, err
	}
	for _, sp := range extremes {
		idx.seekList.Insert(sp.ScanID, sp.Offset)
	}

	trailer, err := DiscoverTrailer(path)
	if err != nil {
		return nil, err
	}

	switch {
	case trailer.Found:
		entries, err := ReadIndex(path, trailer.TrailerOffset, indexRegex)
		if err != nil {
			return nil, err
		}
		for id, entry := range entries {
			idx.offsets[id] = entry
			if id.Kind == KindInt {
				idx.seekList.Insert(id.Int, entry.Start)
			}
		}
		if trailer.HasTIC {
			idx.offsets[TICID] = OffsetEntry{Start: trailer.TICOffset}
		}
	case buildFromScratch:
		rebuilt, err := RebuildIndex(path, indexRegex)
		if err != nil {
			return nil, err
		}
		for id, entry := range rebuilt.Offsets {
			idx.offsets[id] = entry
			if id.Kind == KindInt {
				idx.seekList.Insert(id.Int, entry.Start)
			}
		}
	default:
		warn("open", "no trailer found in %s and build_from_scratch is false; offset map is empty", path)
	}

	return idx, nil
}

// Get resolves request to a Record, dispatching among direct lookup,
// TIC streaming, substring search, and binary/interpolation jump search
// (§4.E). Concurrent Get calls for the same identifier are collapsed
// into a single underlying search via singleflight. Calls for different
// identifiers are not serialised against each other; the offset map and
// seek list are read and updated under idx.mu, which the integer-search
// path holds for the whole of its search.
func (idx *Index) Get(req Request) (Record, error) {
	key := req.Identifier().String()
	v, err, _ := idx.group.Do(key, func() (interface{}, error) {
		return idx.get(req)
	})
	if err != nil {
		return nil, err
	}
	return v.(Record), nil
}

func (idx *Index) get(req Request) (Record, error) {
	id := req.Identifier()

	if id.Kind == KindTIC {
		return idx.getTIC()
	}

	idx.mu.Lock()
	entry, direct := idx.offsets[id]
	idx.mu.Unlock()

	if direct {
		frag, err := idx.readEntry(entry)
		if err != nil {
			return nil, err
		}
		return idx.buildRecord(frag)
	}

	if id.Kind == KindString {
		frag, err := SearchSubstring(idx.path, id.Str)
		if err != nil {
			return nil, err
		}
		return idx.buildRecord(frag)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	entry, err := BinarySearch(idx.path, id.Int, idx.offsets, &idx.seekList, idx.cfg)
	if err != nil {
		entry, err = InterpolationSearch(idx.path, id.Int, idx.fileSize(), idx.offsets, &idx.seekList, idx.cfg)
		if err != nil {
			return nil, err
		}
	}
	frag, err := idx.readEntryLocked(entry)
	if err != nil {
		return nil, err
	}
	return idx.buildRecord(frag)
}

func (idx *Index) fileSize() int64 {
	stat, err := os.Stat(idx.path)
	if err != nil {
		return 0
	}
	return stat.Size()
}

func (idx *Index) readEntry(entry OffsetEntry) (Fragment, error) {
	return delimitFragmentFromPath(idx.path, entry.Start, idx.cfg.ReadChunkSize)
}

func (idx *Index) readEntryLocked(entry OffsetEntry) (Fragment, error) {
	return delimitFragmentFromPath(idx.path, entry.Start, idx.cfg.JumpChunkSize)
}

func delimitFragmentFromPath(path string, start int64, chunkSize int) (Fragment, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fragment{}, NewIndexError(ErrIO, "get", err)
	}
	defer f.Close()
	return delimitFragmentAt(f, start, chunkSize)
}

func (idx *Index) buildRecord(frag Fragment) (Record, error) {
	switch frag.Kind {
	case KindSpectrum:
		return spectrum.ParseSpectrum(frag.Data, idx.cfg.MeasuredPrecision)
	case KindChromatogram:
		return spectrum.ParseChromatogram(frag.Data, idx.cfg.MeasuredPrecision)
	default:
		return nil, NewIndexError(ErrCorruptIndex, "get", fmt.Errorf("fragment root not recognised"))
	}
}

// getTIC stream-parses the file as XML events looking for the first
// chromatogram element whose id is TIC (§4.E dispatch case 1).
func (idx *Index) getTIC() (Record, error) {
	f, err := os.Open(idx.path)
	if err != nil {
		return nil, NewIndexError(ErrIO, "get_tic", err)
	}
	defer f.Close()

	const streamChunk = 64 * 1024
	buf := make([]byte, 0, streamChunk)
	scanner := xmlscan.NewScanner(buf)
	dec := xml.NewTokenDecoder(xmlscan.NewTokenReader(scanner))

	chunk := make([]byte, streamChunk)
	for {
		tok, terr := dec.Token()
		if terr == io.EOF {
			n, rerr := f.Read(chunk)
			if n > 0 {
				scanner.Grow(chunk[:n])
				continue
			}
			if rerr != nil {
				return nil, NewIndexError(ErrNotFound, "get_tic", nil)
			}
			continue
		}
		if terr != nil {
			return nil, NewIndexError(ErrIO, "get_tic", terr)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "chromatogram" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "id" && attr.Value == "TIC" {
				return idx.readTICFragment(f, scanner)
			}
		}
	}
}

func (idx *Index) readTICFragment(f *os.File, scanner *xmlscan.Scanner) (Record, error) {
	// The decoder has already consumed the <chromatogram …> start tag;
	// back up to its '<' so the fragment begins with the open tag.
	start := bytes.LastIndexByte(scanner.Bytes(0, scanner.Offset()), '<')
	for {
		token, _, err := scanner.Next()
		if err == io.EOF {
			chunk := make([]byte, 64*1024)
			n, rerr := f.Read(chunk)
			if n > 0 {
				scanner.Grow(chunk[:n])
				continue
			}
			if rerr != nil {
				return nil, NewIndexError(ErrCorruptIndex, "get_tic", io.ErrUnexpectedEOF)
			}
			continue
		}
		if err != nil {
			return nil, NewIndexError(ErrIO, "get_tic", err)
		}
		if string(token) == "</chromatogram>" {
			end := scanner.Offset()
			return spectrum.ParseChromatogram(scanner.Bytes(start, end), idx.cfg.MeasuredPrecision)
		}
	}
}

// Read is a thin passthrough over a persistent text handle opened on
// first use (§6).
func (idx *Index) Read(size int) ([]byte, error) {
	idx.textMu.Lock()
	defer idx.textMu.Unlock()

	if idx.textFile == nil {
		f, err := os.Open(idx.path)
		if err != nil {
			return nil, NewIndexError(ErrUnsupportedEncoding, "read", err)
		}
		idx.textFile = f
	}

	buf := make([]byte, size)
	n, err := idx.textFile.Read(buf)
	if err != nil && err != io.EOF {
		return nil, NewIndexError(ErrIO, "read", err)
	}
	return buf[:n], nil
}

// Close releases the persistent text handle, if one was opened.
func (idx *Index) Close() error {
	idx.textMu.Lock()
	defer idx.textMu.Unlock()
	if idx.textFile == nil {
		return nil
	}
	err := idx.textFile.Close()
	idx.textFile = nil
	return err
}

// Fingerprint returns an advisory xxhash signature of the underlying
// file (§3 Fingerprint).
func (idx *Index) Fingerprint() (uint64, error) {
	return Fingerprint(idx.path)
}
