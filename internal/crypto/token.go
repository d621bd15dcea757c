// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// tokenDelimiter separates the serialized body from its hex signature
// inside the base64 wrapper. The signature is hex so it can never contain
// the delimiter itself; the body is located with the LAST delimiter index.
const tokenDelimiter = "."

// ephemeralBody is the signed payload of an ephemeral token. The HMAC is
// computed over the exact JSON serialization of this struct.
type ephemeralBody struct {
	Payload    map[string]string `json:"payload"`
	IssuedAt   int64             `json:"issued_at"`
	TTLSeconds int64             `json:"ttl_seconds"`
}

// TokenMinter creates and validates compact, self-contained, HMAC-signed
// ephemeral tokens. Tokens carry an arbitrary string payload, a creation
// timestamp, and an expiry window; nothing is persisted server-side.
//
// Two token families share this mechanism: the signup bridge token
// (payload {mobile}) and the public QR bearer token (payload
// {access_object_id, owner_id, role}).
type TokenMinter struct {
	secret []byte

	// now is injectable for expiry tests.
	now func() time.Time
}

// NewTokenMinter constructs a [TokenMinter] signing with the given secret.
func NewTokenMinter(secret string) *TokenMinter {
	return &TokenMinter{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue serializes payload together with the issue timestamp and ttl,
// signs the serialized bytes with HMAC-SHA256, and returns
// base64url(body "." hex(signature)).
func (m *TokenMinter) Issue(payload map[string]string, ttl time.Duration) (string, error) {
	body, err := json.Marshal(ephemeralBody{
		Payload:    payload,
		IssuedAt:   m.now().Unix(),
		TTLSeconds: int64(ttl.Seconds()),
	})
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, m.secret)
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	token := string(body) + tokenDelimiter + signature
	return base64.RawURLEncoding.EncodeToString([]byte(token)), nil
}

// Verify reverses [TokenMinter.Issue] and returns the embedded payload, or
// nil when the token is invalid for ANY reason: base64 or JSON decode
// failure, missing delimiter, signature mismatch, or expiry. Callers treat
// a nil payload uniformly as unauthorized — the method deliberately does
// not distinguish malformed from expired from forged tokens.
func (m *TokenMinter) Verify(token string) map[string]string {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil
	}

	cut := strings.LastIndex(string(raw), tokenDelimiter)
	if cut < 0 {
		return nil
	}
	body, signatureHex := raw[:cut], string(raw[cut+1:])

	signature, err := hex.DecodeString(signatureHex)
	if err != nil {
		return nil
	}

	mac := hmac.New(sha256.New, m.secret)
	mac.Write(body)
	if !hmac.Equal(signature, mac.Sum(nil)) {
		return nil
	}

	var decoded ephemeralBody
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil
	}

	issuedAt := time.Unix(decoded.IssuedAt, 0)
	if m.now().Sub(issuedAt) > time.Duration(decoded.TTLSeconds)*time.Second {
		return nil
	}

	return decoded.Payload
}
