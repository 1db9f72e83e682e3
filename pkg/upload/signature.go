// Package upload gate-keeps user-supplied files: true-type detection by
// magic number and pixel-level image scrubbing. Declared MIME types and
// file extensions are never trusted on their own.
package upload

import (
	"encoding/hex"
	"io"
	"strings"
)

// signatures maps leading-byte hex prefixes to their file format.
// The prefix is matched against the uppercase hex of the first 4 bytes.
var signatures = []struct {
	prefix string
	format string
}{
	{"FFD8FF", "jpeg"},
	{"89504E47", "png"},
	{"47494638", "gif"},
	{"25504446", "pdf"},
}

// DetectFormat reads the first 4 bytes from r and returns the format whose
// magic number matches. ok is false on a short read or when no signature
// matches.
func DetectFormat(r io.Reader) (format string, ok bool) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return "", false
	}

	hexHead := strings.ToUpper(hex.EncodeToString(head[:]))
	for _, sig := range signatures {
		if strings.HasPrefix(hexHead, sig.prefix) {
			return sig.format, true
		}
	}

	return "", false
}

// VerifySignature reports whether the content of r begins with a known
// file signature (jpeg, png, gif or pdf). Read errors count as rejection.
func VerifySignature(r io.Reader) bool {
	_, ok := DetectFormat(r)
	return ok
}
