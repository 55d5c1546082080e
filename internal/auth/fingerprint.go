package auth

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a short BLAKE2b digest of token, safe to store in place
// of the token itself. The digest is keyed only when key is non-empty; config
// loading rejects an empty key whenever runs are audited. Keys longer than 64
// bytes are hashed first.
func Fingerprint(key, token string) string {
	if token == "" {
		return ""
	}
	k := []byte(key)
	if len(k) > blake2b.Size {
		sum := blake2b.Sum512(k)
		k = sum[:]
	}
	h, err := blake2b.New256(k)
	if err != nil {
		// key length is bounded by blake2b.Size above
		return ""
	}
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil)[:12])
}
