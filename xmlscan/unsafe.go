package xmlscan

import "unsafe"

// unsafeString performs a zero-copy string conversion from buf.
// https://github.com/golang/go/issues/25484 has more info on this; the
// implementation is roughly what strings.Builder does internally.
//
// Callers must not mutate buf after this call, and the Scanner's
// contract — its buffer is immutable for the tokenizer's lifetime —
// is what makes this safe to use on token slices it returns.
func unsafeString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}
