package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"encoding/base64"
)

// legacySaltHeader is the OpenSSL-compatible magic prefix of a salted
// ciphertext blob: "Salted__" followed by an 8-byte salt, then ciphertext.
const legacySaltHeader = "Salted__"

const (
	legacyKeyLen = 32
	legacyIVLen  = aes.BlockSize
)

// EVPBytesToKey derives key and IV material from a passphrase and salt
// using the legacy OpenSSL EVP_BytesToKey scheme with MD5 and one
// iteration: D_1 = MD5(pass ‖ salt), D_n = MD5(D_{n-1} ‖ pass ‖ salt),
// concatenated until keyLen+ivLen bytes are produced.
//
// This scheme is cryptographically weak and exists ONLY for compatibility
// with card-field blobs produced by legacy clients (CryptoJS-style
// AES.encrypt with a passphrase). It must not be used for new material.
func EVPBytesToKey(passphrase, salt []byte, keyLen, ivLen int) (key, iv []byte) {
	var derived []byte
	var block []byte

	for len(derived) < keyLen+ivLen {
		h := md5.New()
		h.Write(block)
		h.Write(passphrase)
		h.Write(salt)
		block = h.Sum(nil)
		derived = append(derived, block...)
	}

	return derived[:keyLen], derived[keyLen : keyLen+ivLen]
}

// DecryptLegacyBlob decodes and decrypts a base64 "Salted__" blob produced
// by the legacy static-passphrase card encryption path (AES-256-CBC with
// EVP_BytesToKey/MD5 derivation and PKCS#7 padding).
//
// Returns [ErrInvalidLegacyBlob] for any structural defect: bad base64,
// missing or short salt header, ciphertext not a whole number of blocks,
// or invalid padding after decryption. Used server-side solely to recover
// display values (e.g. the last four digits of a card number).
func DecryptLegacyBlob(b64, passphrase string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, ErrInvalidLegacyBlob
	}

	headerLen := len(legacySaltHeader) + 8
	if len(blob) < headerLen || !bytes.HasPrefix(blob, []byte(legacySaltHeader)) {
		return nil, ErrInvalidLegacyBlob
	}

	salt := blob[len(legacySaltHeader):headerLen]
	ciphertext := blob[headerLen:]
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrInvalidLegacyBlob
	}

	key, iv := EVPBytesToKey([]byte(passphrase), salt, legacyKeyLen, legacyIVLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return pkcs7Unpad(plaintext)
}

// pkcs7Unpad strips PKCS#7 padding, rejecting impossible pad values.
func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrInvalidLegacyBlob
	}

	pad := int(data[len(data)-1])
	if pad == 0 || pad > aes.BlockSize || pad > len(data) {
		return nil, ErrInvalidLegacyBlob
	}

	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, ErrInvalidLegacyBlob
		}
	}

	return data[:len(data)-pad], nil
}
