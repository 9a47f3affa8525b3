package xmlscan

import "bytes"

// ProcInst extracts the target and instruction from a processing
// instruction token, e.g. `<?xml version="1.0"?>` -> (`xml`, `version="1.0"`).
func ProcInst(token []byte) (target, inst []byte) {
	if idx := bytes.IndexByte(token, ' '); idx != -1 {
		return token[2:idx], token[idx+1 : len(token)-2]
	}
	return token[2 : len(token)-2], nil
}
