package mzml

import (
	"fmt"
	"os"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// Config carries every tunable constant named in the component design:
// chunk sizes, probe budgets, jump iteration caps. DefaultConfig returns
// the literal values the seek engine is specified against; overriding
// them is an explicit opt-in for benchmarking against unusual mzML
// converters, never required for correctness.
type Config struct {
	// ReadChunkSize is the size of the buffered reads performed while
	// scanning forward for a spectrum's closing tag (§4.E.i).
	ReadChunkSize int
	// CarryOverMax is the number of extra bytes a chunked scan will read
	// past ReadChunkSize to avoid splitting a tag or pattern match. The
	// chunked scans (ReadToSpecEnd, SearchSubstring) pass a fixed 12 to
	// carryExtend and do not read this field.
	CarryOverMax int
	// TrailerLookback defaults to 100. No component reads it:
	// DiscoverTrailer searches up to the last 10 KiB of the file (§4.B)
	// with fixed constants, and the full-scan indexer's 100-byte
	// carry-over (§4.C) is also a fixed constant.
	TrailerLookback int
	// ProbeChunkSize is the chunk size of ProbeExtremes's head/tail scan
	// (§4.D). ProbeExtremes uses its own fixed 128 KiB constant and does
	// not read this field.
	ProbeChunkSize int
	// ProbeChunkLimit defaults to the 100-chunk cap of ProbeExtremes's
	// head/tail scan (§4.D), which ProbeExtremes applies as a fixed
	// constant. This field is read only by the interpolation search's
	// linear scan, as its cap on forward probes.
	ProbeChunkLimit int
	// JumpChunkSize is the chunk size used while linearly scanning after
	// a jump search lands (§4.E.iii).
	JumpChunkSize int
	// JumpIterationCap bounds the number of jump/adjust iterations before
	// the jump search gives up with NotFound (§4.E.iii); it also bounds
	// the interpolation search's iterations and its backward walk.
	JumpIterationCap int
	// CloseRangeScans is the scan-count distance within which the jump
	// search prefers a direct linear scan over another jump (§4.E.iii).
	CloseRangeScans int
	// OvershootScale is the fraction of the remaining distance the jump
	// search's offset_scale is adjusted by after an overshoot (§4.E.iii).
	OvershootScale float64
	// MeasuredPrecision is the m/z measurement precision handed to the
	// deserializer contract (§6).
	MeasuredPrecision float64
}

// DefaultConfig returns the spec-mandated defaults. These values are
// normative: the component design names them literally, and most
// callers should use DefaultConfig() unmodified.
func DefaultConfig() *Config {
	return &Config{
		ReadChunkSize:     512,
		CarryOverMax:      12,
		TrailerLookback:   100,
		ProbeChunkSize:    128 * 1024,
		ProbeChunkLimit:   100,
		JumpChunkSize:     12800,
		JumpIterationCap:  40,
		CloseRangeScans:   10,
		OvershootScale:    0.1,
		MeasuredPrecision: 5e-6,
	}
}

// LoadConfig returns DefaultConfig() overlaid with any overrides found in
// the KDL document at path. A missing file is not an error: defaults are
// returned verbatim. A present-but-unparseable file is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, NewIndexError(ErrIO, "load_config", err)
	}

	doc, err := kdl.Parse(strings.NewReader(string(content)))
	if err != nil {
		return nil, NewIndexError(ErrCorruptIndex, "load_config", fmt.Errorf("parse %s: %w", path, err))
	}

	for _, n := range doc.Nodes {
		switch kdlNodeName(n) {
		case "read_chunk_size":
			if v, ok := kdlIntArg(n); ok {
				cfg.ReadChunkSize = v
			}
		case "carry_over_max":
			if v, ok := kdlIntArg(n); ok {
				cfg.CarryOverMax = v
			}
		case "trailer_lookback":
			if v, ok := kdlIntArg(n); ok {
				cfg.TrailerLookback = v
			}
		case "probe_chunk_size":
			if v, ok := kdlIntArg(n); ok {
				cfg.ProbeChunkSize = v
			}
		case "probe_chunk_limit":
			if v, ok := kdlIntArg(n); ok {
				cfg.ProbeChunkLimit = v
			}
		case "jump_chunk_size":
			if v, ok := kdlIntArg(n); ok {
				cfg.JumpChunkSize = v
			}
		case "jump_iteration_cap":
			if v, ok := kdlIntArg(n); ok {
				cfg.JumpIterationCap = v
			}
		case "close_range_scans":
			if v, ok := kdlIntArg(n); ok {
				cfg.CloseRangeScans = v
			}
		case "overshoot_scale":
			if v, ok := kdlFloatArg(n); ok {
				cfg.OvershootScale = v
			}
		case "measured_precision":
			if v, ok := kdlFloatArg(n); ok {
				cfg.MeasuredPrecision = v
			}
		}
	}

	return cfg, nil
}

func kdlNodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func kdlIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func kdlFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
