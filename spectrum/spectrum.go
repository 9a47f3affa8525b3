// Package spectrum builds minimal typed objects from the raw XML
// fragments the seek engine extracts. It implements the "consumer
// contract" the engine's core is specified against — a real mzML object
// model (peak arrays, CV params, precursor trees) is out of scope; this
// package exists so the engine is usable end to end.
package spectrum

import (
	"strconv"

	"github.com/mzidx/mzmlindex/xmlscan"
)

// DefaultMeasuredPrecision is the default m/z measurement precision for
// ParseSpectrum and ParseChromatogram, equal to the engine's default
// Config.MeasuredPrecision. The engine passes its Config value and does
// not read this constant.
const DefaultMeasuredPrecision = 5e-6

// Spectrum is the minimal typed object built from a <spectrum> fragment.
type Spectrum struct {
	id                 string
	defaultArrayLength int
	measuredPrecision  float64
	raw                []byte
}

// ID returns the spectrum's native id attribute.
func (s *Spectrum) ID() string { return s.id }

// Raw returns the original XML fragment bytes.
func (s *Spectrum) Raw() []byte { return s.raw }

// DefaultArrayLength returns the declared defaultArrayLength attribute,
// or 0 if absent or unparsable.
func (s *Spectrum) DefaultArrayLength() int { return s.defaultArrayLength }

// MeasuredPrecision returns the precision this Spectrum was built with.
func (s *Spectrum) MeasuredPrecision() float64 { return s.measuredPrecision }

// Chromatogram is the minimal typed object built from a <chromatogram>
// fragment.
type Chromatogram struct {
	id  string
	raw []byte
}

// ID returns the chromatogram's native id attribute.
func (c *Chromatogram) ID() string { return c.id }

// Raw returns the original XML fragment bytes.
func (c *Chromatogram) Raw() []byte { return c.raw }

// ParseSpectrum builds a Spectrum from a single <spectrum>…</spectrum>
// fragment, reading its id and defaultArrayLength attributes off the
// opening tag without decoding the rest of the element.
func ParseSpectrum(root []byte, measuredPrecision float64) (*Spectrum, error) {
	s := xmlscan.NewScanner(root)
	token, _, err := s.Next()
	if err != nil {
		return nil, err
	}
	name, attrsToken := xmlscan.Element(token)
	if string(name) != "spectrum" {
		return nil, errNotSpectrum
	}

	idVal, err := xmlscan.Attr(attrsToken, []byte("id"))
	if err != nil {
		return nil, err
	}
	decodedID, err := xmlscan.DecodeEntities(idVal)
	if err != nil {
		return nil, err
	}

	length := 0
	if lenVal, err := xmlscan.Attr(attrsToken, []byte("defaultArrayLength")); err == nil && lenVal != nil {
		length, _ = strconv.Atoi(string(lenVal))
	}

	return &Spectrum{
		id:                 string(decodedID),
		defaultArrayLength: length,
		measuredPrecision:  measuredPrecision,
		raw:                root,
	}, nil
}

// ParseChromatogram builds a Chromatogram from a single
// <chromatogram>…</chromatogram> fragment.
func ParseChromatogram(root []byte, measuredPrecision float64) (*Chromatogram, error) {
	s := xmlscan.NewScanner(root)
	token, _, err := s.Next()
	if err != nil {
		return nil, err
	}
	name, attrsToken := xmlscan.Element(token)
	if string(name) != "chromatogram" {
		return nil, errNotChromatogram
	}

	idVal, err := xmlscan.Attr(attrsToken, []byte("id"))
	if err != nil {
		return nil, err
	}
	decodedID, err := xmlscan.DecodeEntities(idVal)
	if err != nil {
		return nil, err
	}

	return &Chromatogram{
		id:  string(decodedID),
		raw: root,
	}, nil
}
