package crypto

import (
	"io"
	"time"
)

// Envelope is the stream transform contract consumed by the document
// pipeline. Implemented by [StreamEnvelope].
type Envelope interface {
	EncryptForUpload(plaintext io.Reader) (io.Reader, string, error)
	DecryptForDownload(ciphertext io.Reader, ivHex string) (io.Reader, error)
}

// EphemeralTokens is the purpose-bound token contract consumed by the
// signup bridge and the public access gateway. Implemented by [TokenMinter].
type EphemeralTokens interface {
	Issue(payload map[string]string, ttl time.Duration) (string, error)
	Verify(token string) map[string]string
}

// FieldSigner is the integrity-signature contract over client-supplied
// ciphertext fields. Implemented by [IntegrityGuard].
type FieldSigner interface {
	Sign(value string) string
	VerifyMAC(value, macHex string) bool
}
