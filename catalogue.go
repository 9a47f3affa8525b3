package mzml

import "regexp"

// Pattern Catalogue (§4.A). These byte-regexes are the external contract
// between the index and the files it reads: their exact forms are
// normative, not an implementation detail. SPEC_ID_SIMPLE may be
// overridden per Open call by a caller-supplied index_regex; every other
// pattern here is fixed.
var (
	// SpecOpen matches a <spectrum …> opening tag and captures pairs of
	// (key, value) attribute fragments, sufficient to recover id.
	SpecOpen = regexp.MustCompile(`<spectrum[^>]*?(index|id)="([^"]*)".*?(index|id)="([^"]*)"`)

	// SpecOpenSimple matches literally "<spectrum " (trailing space).
	SpecOpenSimple = regexp.MustCompile(`<spectrum `)

	// SpecIDSimple captures the id="…" attribute value as its first
	// group. The default pattern a caller's index_regex may override.
	SpecIDSimple = regexp.MustCompile(`<spectrum[^>]*\bid="([^"]*)"`)

	// SpecClose matches a spectrum closing tag.
	SpecClose = regexp.MustCompile(`</spectrum>`)

	// ChromOpen matches a chromatogram opening tag, capturing id.
	ChromOpen = regexp.MustCompile(`<chromatogram\s[^>]*?\bid="([^"]*)"`)

	// ChromClose matches a chromatogram closing tag.
	ChromClose = regexp.MustCompile(`</chromatogram>`)

	// IndexListOffset matches <indexListOffset>N</indexListOffset>,
	// capturing N.
	IndexListOffset = regexp.MustCompile(`<indexListOffset>([0-9]*)</indexListOffset>`)

	// TICOffset matches the TIC chromatogram's trailer entry, e.g.
	// nativeID="TIC">N</offset.
	TICOffset = regexp.MustCompile(`(?:nativeID|idRef)="TIC">([0-9]*)</offset`)

	// SpecIndexDefault captures (nativeID, offset) from a default mzML
	// trailer entry: scan=N">N</offset> or nativeID="N">N</offset>.
	SpecIndexDefault = regexp.MustCompile(`(?:scan=|nativeID=")([0-9]*)">([0-9]*)</offset>`)

	// SpecIndexSciex is the SCIEX-converted-file variant, keyed by
	// cycle= rather than scan=/nativeID=.
	SpecIndexSciex = regexp.MustCompile(`cycle=([0-9]*) experiment=[0-9]*">([0-9]*)</offset>`)

	// SimIndex captures (nativeID, offset) from a SIM/idRef-style
	// trailer entry.
	SimIndex = regexp.MustCompile(`idRef="([^"]*)">([0-9]*)</offset>`)

	// SimIndexSciex is the SCIEX-converted SIM variant.
	SimIndexSciex = regexp.MustCompile(`idRef="sample=[0-9]* period=[0-9]* cycle=([0-9]*) experiment=[0-9]*">([0-9]*)</offset>`)

	// TrailingScanDigits extracts the final run of digits from an id
	// string, interpreted as the scan number.
	TrailingScanDigits = regexp.MustCompile(`([0-9]+)$`)

	// ScanInString matches scan=N or scanId=N anywhere in an id.
	ScanInString = regexp.MustCompile(`scan(?:Id)?=([0-9]+)`)
)

// ScanFragmentPattern compiles the dynamic substring-search pattern used
// by the linear fallback (§4.E.ii): a spectrum open tag whose id contains
// sub, followed eventually by defaultArrayLength. sub is regexp-escaped
// before being embedded.
func ScanFragmentPattern(sub string) *regexp.Regexp {
	escaped := regexp.QuoteMeta(sub)
	return regexp.MustCompile(`<spectrum[^>]*?(?:index|id)="([^"]*)"[^>]*?id="([^"]*` + escaped + `[^"]*)"[^>]*?defaultArrayLength="[0-9]+">`)
}

// ExtractID runs pattern over id using SpecIDSimple semantics: the first
// capture group is the id attribute value. A caller-supplied index_regex
// must follow the same one-capture-group convention to be used in place
// of SpecIDSimple.
func ExtractID(pattern *regexp.Regexp, line []byte) (string, bool) {
	m := pattern.FindSubmatch(line)
	if m == nil || len(m) < 2 {
		return "", false
	}
	return string(m[1]), true
}

// ExtractTrailingScan extracts the trailing run of digits from id and
// reports whether any were found.
func ExtractTrailingScan(id string) (int, bool) {
	m := TrailingScanDigits.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	return atoiOrZero(m[1]), true
}

// ExtractScanInString looks for an embedded scan=N or scanId=N token
// anywhere in id.
func ExtractScanInString(id string) (int, bool) {
	m := ScanInString.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	return atoiOrZero(m[1]), true
}

func atoiOrZero(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
