package mzml

import "fmt"

// ErrorKind classifies the failure modes named in the seek engine's error
// handling design: which strategies may recover from it and which must
// surface it to the caller.
type ErrorKind string

const (
	// ErrOutOfRange is returned when a numeric request falls outside
	// [first_scan, last_scan].
	ErrOutOfRange ErrorKind = "out_of_range"
	// ErrNotFound is returned when a request is absent from the Offset
	// Map and every search strategy has been exhausted.
	ErrNotFound ErrorKind = "not_found"
	// ErrCorruptIndex is returned when a trailer offset points outside
	// the file, or an indexed entry does not resolve to a spectrum or
	// chromatogram open tag.
	ErrCorruptIndex ErrorKind = "corrupt_index"
	// ErrIO wraps an underlying read/seek failure.
	ErrIO ErrorKind = "io_error"
	// ErrUnsupportedEncoding is returned when the text handle cannot be
	// opened with the requested encoding.
	ErrUnsupportedEncoding ErrorKind = "unsupported_encoding"
)

// IndexError is the single error type the engine and its components
// return. Op names the operation that failed (e.g. "binary_search",
// "discover_trailer"); Err is the underlying cause, if any.
type IndexError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewIndexError constructs an IndexError, wrapping an optional cause.
func NewIndexError(kind ErrorKind, op string, cause error) *IndexError {
	return &IndexError{Kind: kind, Op: op, Err: cause}
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mzml: %s %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("mzml: %s %s", e.Op, e.Kind)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *IndexError) Unwrap() error { return e.Err }

// Is reports whether target names the same ErrorKind, so callers can write
// errors.Is(err, mzml.ErrNotFound.Sentinel()) style checks via Kind.
func (e *IndexError) Is(target error) bool {
	other, ok := target.(*IndexError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Sentinel returns a bare *IndexError of this kind, suitable for errors.Is
// comparisons: errors.Is(err, mzml.ErrNotFound.Sentinel()).
func (k ErrorKind) Sentinel() *IndexError { return &IndexError{Kind: k} }
