package xmlscan

import (
	"bytes"
	"errors"
	"fmt"
	"unicode"
)

var (
	errAttrKeyWhitespace = errors.New(`xmlscan: expected attr to have a non-whitespace key`)
	errAttrPrefix        = errors.New(`xmlscan: expected attr value to start with '"'`)
	errAttrSuffix        = errors.New(`xmlscan: expected attr value to end with '"'`)
)

// IsElement reports whether token is an element (as opposed to a
// ProcInst or Directive).
func IsElement(token []byte) bool {
	return len(token) >= 3 && token[0] == '<' && token[1] != '!' && token[1] != '?'
}

// IsSelfClosing reports whether token is a self-closing element (<a/>).
func IsSelfClosing(token []byte) bool {
	if len(token) <= 2 {
		return false
	}
	return token[len(token)-2] == '/'
}

// IsEndElement reports whether token is a </element>.
func IsEndElement(token []byte) bool {
	return len(token) >= 2 && token[0] == '<' && token[1] == '/'
}

// IsStartElement is the inverse of IsEndElement.
func IsStartElement(token []byte) bool {
	return len(token) >= 2 && token[0] == '<' && token[1] != '/'
}

// Element splits a token into its name and raw attribute section, e.g.
// `<spectrum id="5">` -> (`spectrum`, `id="5"`).
func Element(token []byte) (name []byte, attrs []byte) {
	if len(token) < 3 {
		return nil, nil
	}
	end := len(token) - 1
	start := 1
	if token[start] == '/' {
		start++
	}
	if token[end-1] == '/' {
		end--
	}
	if space := bytes.IndexByte(token[start:end], ' '); space != -1 {
		return token[start : start+space], token[space+start+1 : end]
	}
	return token[start:end], nil
}

func notSpace(r rune) bool {
	return !unicode.IsSpace(r)
}

// RawAttrs calls f with the offsets of each key="value" pair found in
// attrsToken, stopping early if f returns false.
func RawAttrs(attrsToken []byte, f func(keyStart, keyEnd, valueStart, valueEnd int) bool) error {
	offset := 0
	for offset < len(attrsToken) {
		equals := bytes.IndexByte(attrsToken[offset:], '=')
		if equals == -1 {
			break
		}
		equals += offset

		keyStart := offset
		if idx := bytes.IndexFunc(attrsToken[offset:equals], notSpace); idx == -1 {
			return errAttrKeyWhitespace
		} else if idx > 0 {
			keyStart += idx
		}
		keyEnd := keyStart
		if idx := bytes.LastIndexFunc(attrsToken[keyStart:equals], notSpace); idx > 0 {
			keyEnd += idx + 1
		}
		equals++

		valueStart := bytes.IndexByte(attrsToken[equals:], '"')
		if valueStart == -1 {
			return errAttrPrefix
		}
		valueStart += equals + 1
		valueEnd := bytes.IndexByte(attrsToken[valueStart:], '"')
		if valueEnd == -1 {
			return errAttrSuffix
		}
		valueEnd += valueStart
		offset = valueEnd + 1

		if !f(keyStart, keyEnd, valueStart, valueEnd) {
			return nil
		}
	}
	if idx := bytes.IndexFunc(attrsToken[offset:], notSpace); idx != -1 {
		return fmt.Errorf("xmlscan: unexpected %q after attrs", string(attrsToken[offset+idx]))
	}
	return nil
}

// Attrs calls f for each key="value" pair in attrsToken. Values are not
// entity-decoded.
func Attrs(attrsToken []byte, f func(key, value []byte) bool) error {
	return RawAttrs(attrsToken, func(keyStart, keyEnd, valueStart, valueEnd int) bool {
		return f(attrsToken[keyStart:keyEnd], attrsToken[valueStart:valueEnd])
	})
}

// RawAttr returns the byte offsets of a single attribute's value, or
// (-1, -1) if attrKey is not present.
func RawAttr(attrsToken, attrKey []byte) (start, stop int, err error) {
	start, stop = -1, -1
	err = RawAttrs(attrsToken, func(keyStart, keyStop, valueStart, valueStop int) bool {
		if bytes.Equal(attrsToken[keyStart:keyStop], attrKey) {
			start, stop = valueStart, valueStop
			return false
		}
		return true
	})
	return
}

// Attr returns a single attribute's (non-decoded) value, or nil if
// attrKey is absent.
func Attr(attrsToken, attrKey []byte) ([]byte, error) {
	start, stop, err := RawAttr(attrsToken, attrKey)
	if err != nil {
		return nil, err
	} else if start == -1 {
		return nil, nil
	}
	return attrsToken[start:stop], nil
}
