// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// StreamEnvelope is the encrypt-on-write / decrypt-on-read transform
// wrapping document byte streams on their way to and from the remote blob
// store.
//
// Both directions are pass-through [cipher.StreamReader] stages: bytes are
// transformed as the downstream consumer pulls them, so arbitrarily large
// payloads flow through without being buffered in memory, and a slow
// consumer naturally throttles the producer.
type StreamEnvelope struct {
	keys *KeyChain
}

// NewStreamEnvelope constructs a [StreamEnvelope] over the given key chain.
func NewStreamEnvelope(keys *KeyChain) *StreamEnvelope {
	return &StreamEnvelope{keys: keys}
}

// EncryptForUpload wraps plaintext in an AES-256-CTR encrypting reader
// keyed with the process-lifetime file key and a fresh random IV.
//
// The IV is returned hex-encoded and must be persisted alongside the blob's
// metadata record; it is not embedded in the blob itself. A new IV is drawn
// from crypto/rand for every call, so encrypting the same plaintext twice
// yields different ciphertexts.
//
// If key material is unavailable the call fails before any byte of
// plaintext is consumed.
func (e *StreamEnvelope) EncryptForUpload(plaintext io.Reader) (io.Reader, string, error) {
	key, err := e.keys.FileKey()
	if err != nil {
		return nil, "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, "", fmt.Errorf("create cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, "", fmt.Errorf("generate iv: %w", err)
	}

	stream := cipher.NewCTR(block, iv)
	return cipher.StreamReader{S: stream, R: plaintext}, hex.EncodeToString(iv), nil
}

// DecryptForDownload wraps ciphertext in an AES-256-CTR decrypting reader
// using the IV that was stored with the document's metadata record.
//
// Returns [ErrInvalidIV] when ivHex cannot be decoded or does not match the
// cipher block size, and the key-derivation error when key material is
// unavailable. No bytes are read from ciphertext on failure.
func (e *StreamEnvelope) DecryptForDownload(ciphertext io.Reader, ivHex string) (io.Reader, error) {
	key, err := e.keys.FileKey()
	if err != nil {
		return nil, err
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != aes.BlockSize {
		return nil, ErrInvalidIV
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	stream := cipher.NewCTR(block, iv)
	return cipher.StreamReader{S: stream, R: ciphertext}, nil
}
