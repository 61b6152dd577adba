package htmldoc

import "golang.org/x/net/html"

// decodeEntities implements the spec's "entity decoder" collaborator
// (spec §1, §9): an in-place transformation that resolves &amp;/&#x...;
// sequences, writing only to buf[0:newLen] with newLen <= len(buf).
//
// golang.org/x/net/html.UnescapeString already does exactly this
// transformation (named and numeric character references -> UTF-8).
// Almost every reference decodes to no more bytes than it was encoded
// in; a few named ones that map to two code points (&nGt;, &nLt;) grow
// by one byte, which the check below catches.
func decodeEntities(buf []byte) []byte {
	if len(buf) == 0 {
		return buf
	}
	decoded := html.UnescapeString(string(buf))
	if len(decoded) > len(buf) {
		// The contract forbids growth: fall back to the original
		// bytes rather than overflow the arena slot.
		return buf
	}
	n := copy(buf, decoded)
	return buf[:n]
}
