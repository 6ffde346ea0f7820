package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Digest hashes the trimmed parts, separated by a NUL byte so ("ab","c") and ("a","bc") differ.
func Digest(parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(strings.TrimSpace(p)))
	}
	return hex.EncodeToString(h.Sum(nil))
}
