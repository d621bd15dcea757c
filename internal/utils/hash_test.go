// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

const testHashKey = "test-secret-key"

func TestHashString_Deterministic(t *testing.T) {
	sig1 := HashString("user-password", testHashKey)
	sig2 := HashString("user-password", testHashKey)

	if sig1 != sig2 {
		t.Fatal("HashString must be deterministic for the same input and key")
	}

	if _, err := hex.DecodeString(sig1); err != nil {
		t.Fatalf("HashString must return hex, got %q: %v", sig1, err)
	}
}

func TestHashString_DifferentKeysDiffer(t *testing.T) {
	sig1 := HashString("user-password", "key-one")
	sig2 := HashString("user-password", "key-two")

	if sig1 == sig2 {
		t.Fatal("different keys must produce different signatures")
	}
}

func TestHashString_DifferentDataDiffers(t *testing.T) {
	sig1 := HashString("password-one", testHashKey)
	sig2 := HashString("password-two", testHashKey)

	if sig1 == sig2 {
		t.Fatal("different inputs must produce different signatures")
	}
}

func TestHashString_MatchesDirectHMAC(t *testing.T) {
	h := hmac.New(sha256.New, []byte(testHashKey))
	h.Write([]byte("user-password"))
	expected := hex.EncodeToString(h.Sum(nil))

	if got := HashString("user-password", testHashKey); got != expected {
		t.Fatalf("unexpected signature\nwant: %s\ngot:  %s", expected, got)
	}
}
