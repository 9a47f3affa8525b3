package xmlscan

import "bytes"

// SplitName splits an element or attribute name into its (space, local)
// parts, e.g. `foo:bar` -> (`foo`, `bar`); an unqualified name returns a
// nil space.
func SplitName(token []byte) (space, local []byte) {
	if idx := bytes.IndexByte(token, ':'); idx != -1 {
		return token[:idx], token[idx+1:]
	}
	return nil, token
}
