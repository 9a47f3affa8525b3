package xmlscan

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// DecodeEntities resolves any XML entities (named or numeric) present in
// in, returning a newly allocated slice. If in contains no entities it
// is returned unchanged.
func DecodeEntities(in []byte) ([]byte, error) {
	start := bytes.IndexRune(in, '&')
	if start == -1 {
		return in, nil
	}
	buf := make([]byte, len(in))
	size := copy(buf, in[:start])
	start++
	for {
		end := bytes.IndexRune(in[start:], ';')
		if end == -1 {
			return in, errors.New("xmlscan: expected ';' to end XML entity, not found")
		}
		if in[start] == '#' {
			offset := start + 1
			base := 10
			if in[start+1] == 'x' {
				base = 16
				offset++
			}
			str := unsafeString(in[offset : start+end])
			num, err := strconv.ParseInt(str, base, 32)
			if err != nil {
				return in, fmt.Errorf("xmlscan: failed to decode %q: %w", str, err)
			}
			size += utf8.EncodeRune(buf[size:], rune(num))
		} else {
			entity := unsafeString(in[start : start+end])
			switch entity {
			case "lt":
				buf[size] = '<'
				size++
			case "gt":
				buf[size] = '>'
				size++
			case "amp":
				buf[size] = '&'
				size++
			case "apos":
				buf[size] = '\''
				size++
			case "quot":
				buf[size] = '"'
				size++
			default:
				decoded, ok := xml.HTMLEntity[entity]
				if !ok {
					return in, fmt.Errorf("xmlscan: unknown XML entity %q", entity)
				}
				size += copy(buf[size:], decoded)
			}
		}
		if idx := bytes.IndexRune(in[start+end:], '&'); idx != -1 {
			start += end + idx + 1
		} else {
			size += copy(buf[size:], in[start+end+1:])
			return buf[:size], nil
		}
	}
}
