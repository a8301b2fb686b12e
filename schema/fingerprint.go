package schema

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2s"
)

// Fingerprint returns the stable content hash identifying a document.
// Same bytes, same fingerprint; used as the cache key everywhere.
func Fingerprint(raw []byte) string {
	h, _ := blake2s.New256(nil)
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil))
}
