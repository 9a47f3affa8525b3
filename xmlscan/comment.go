package xmlscan

// IsComment reports whether token is a comment (<!--).
func IsComment(token []byte) bool {
	return len(token) > 4 && token[0] == '<' && token[1] == '!' && token[2] == '-' && token[3] == '-'
}

// Comment extracts the contents of a comment token.
func Comment(token []byte) []byte {
	if len(token) <= 7 {
		return nil
	}
	return token[4 : len(token)-3]
}

// IsDirective reports whether token is a directive (<!text>, not a
// comment).
func IsDirective(token []byte) bool {
	return len(token) >= 4 && token[0] == '<' && token[1] == '!' && token[2] != '-' && token[3] != '-'
}

// Directive extracts the contents of a directive token.
func Directive(token []byte) []byte {
	if len(token) < 3 {
		return nil
	}
	return token[2 : len(token)-1]
}

// IsProcInst reports whether token is a processing instruction
// (<?target inst?>).
func IsProcInst(token []byte) bool {
	return len(token) >= 2 && token[1] == '?'
}
