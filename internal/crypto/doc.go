// Package crypto implements the cryptographic core of go-doc-vault:
// process-lifetime key derivation, the document stream-cipher envelope,
// compact HMAC-signed ephemeral tokens, integrity signatures over
// client-supplied ciphertext fields, and the legacy salted-MD5 key
// derivation used for card display fields.
package crypto
