package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// IntegrityGuard verifies HMAC signatures over client-supplied ciphertext
// fields before they are persisted. The server never sees the plaintext of
// these fields; the signature only proves the ciphertext was produced by a
// holder of the shared application secret and was not altered in transit.
type IntegrityGuard struct {
	key []byte
}

// NewIntegrityGuard constructs an [IntegrityGuard] keyed with the shared
// application integrity secret.
func NewIntegrityGuard(key string) *IntegrityGuard {
	return &IntegrityGuard{key: []byte(key)}
}

// Sign computes the hex-encoded HMAC-SHA256 signature of value.
func (g *IntegrityGuard) Sign(value string) string {
	mac := hmac.New(sha256.New, g.key)
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyMAC reports whether macHex is a valid signature over value.
// Comparison uses hmac.Equal; a malformed hex signature is simply invalid.
func (g *IntegrityGuard) VerifyMAC(value, macHex string) bool {
	expected, err := hex.DecodeString(macHex)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, g.key)
	mac.Write([]byte(value))
	return hmac.Equal(expected, mac.Sum(nil))
}
