// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"sync"

	"golang.org/x/crypto/scrypt"
)

// fileKeySalt is the fixed derivation salt for the process-lifetime
// document key. The secret itself is per-deployment; the salt only
// domain-separates this derivation from other uses of the same secret.
const fileKeySalt = "go-doc-vault/file-key/v1"

// scrypt parameters for the file-key derivation. N=2^15 keeps cold-start
// latency in the tens of milliseconds on server hardware.
const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	fileKeyBytes = 32
)

// KeyChain owns the process-lifetime symmetric key material for the
// document pipeline.
//
// The key is derived lazily on first use and cached for the lifetime of the
// process behind a sync.Once; concurrent first calls block until the single
// derivation finishes. When the configured secret is empty every call
// returns [ErrNoEncryptionSecret] — there is no plaintext fallback.
type KeyChain struct {
	secret string

	once sync.Once
	key  []byte
	err  error
}

// NewKeyChain constructs a [KeyChain] over the configured encryption
// secret. The secret may be empty; in that case derivation fails on first
// use rather than at construction, so metadata-only deployments can start.
func NewKeyChain(secret string) *KeyChain {
	return &KeyChain{secret: secret}
}

// FileKey returns the 256-bit document encryption key, deriving it on the
// first call via scrypt over the configured secret and a fixed salt.
//
// Returns [ErrNoEncryptionSecret] if the secret is absent, or the scrypt
// error if derivation itself fails. The result (key or error) is cached.
func (k *KeyChain) FileKey() ([]byte, error) {
	k.once.Do(func() {
		if k.secret == "" {
			k.err = ErrNoEncryptionSecret
			return
		}
		k.key, k.err = scrypt.Key([]byte(k.secret), []byte(fileKeySalt), scryptN, scryptR, scryptP, fileKeyBytes)
	})

	return k.key, k.err
}
