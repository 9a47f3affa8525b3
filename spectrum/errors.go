package spectrum

import "errors"

var (
	errNotSpectrum     = errors.New("spectrum: fragment root is not a <spectrum> element")
	errNotChromatogram = errors.New("spectrum: fragment root is not a <chromatogram> element")
)
