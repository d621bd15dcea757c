package http

import (
	"bytes"
	cryptoaes "crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-doc-vault/internal/crypto"
	"github.com/MKhiriev/go-doc-vault/models"
)

// ---- Helpers ----

// encryptLegacyBlob produces a ciphertext in the salted static-key format
// the card listing path decrypts.
func encryptLegacyBlob(t *testing.T, plaintext, passphrase string) string {
	t.Helper()

	salt := []byte("12345678")
	key, iv := crypto.EVPBytesToKey([]byte(passphrase), salt, 32, cryptoaes.BlockSize)

	block, err := cryptoaes.NewCipher(key)
	require.NoError(t, err)

	padLen := cryptoaes.BlockSize - len(plaintext)%cryptoaes.BlockSize
	padded := append([]byte(plaintext), bytes.Repeat([]byte{byte(padLen)}, padLen)...)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	blob := append([]byte("Salted__"), salt...)
	blob = append(blob, ciphertext...)
	return base64.StdEncoding.EncodeToString(blob)
}

func signedTestCard(t *testing.T, title string) models.Card {
	t.Helper()

	guard := crypto.NewIntegrityGuard(testIntegrityKey)
	numberCiphertext := encryptLegacyBlob(t, "4111 1111 1111 1111", testLegacyPassphrase)
	cvvCiphertext := encryptLegacyBlob(t, "123", testLegacyPassphrase)

	return models.Card{
		Title:            title,
		NumberCiphertext: numberCiphertext,
		NumberHMAC:       guard.Sign(numberCiphertext),
		CVVCiphertext:    cvvCiphertext,
		CVVHMAC:          guard.Sign(cvvCiphertext),
		Holder:           "CARD HOLDER",
		Expiry:           "12/30",
	}
}

// ---- Create ----

func TestCreateCard_ValidSignaturesPersist(t *testing.T) {
	env := newTestEnv(t)
	authHeader := signup(t, env, "cardholder", "secret-password", "+79990001122")

	rr := postJSON(t, env, "/api/cards", signedTestCard(t, "Main card"),
		map[string]string{"Authorization": authHeader})

	require.Equal(t, http.StatusCreated, rr.Code)
	var created models.Card
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "**** **** **** 1111", created.MaskedNumber)
}

func TestCreateCard_TamperedCiphertextForbidden(t *testing.T) {
	env := newTestEnv(t)
	authHeader := signup(t, env, "cardholder", "secret-password", "+79990001122")

	card := signedTestCard(t, "Tampered")
	card.NumberCiphertext = encryptLegacyBlob(t, "5555 5555 5555 4444", testLegacyPassphrase)

	rr := postJSON(t, env, "/api/cards", card, map[string]string{"Authorization": authHeader})

	assert.Equal(t, http.StatusForbidden, rr.Code)

	env.cards.mu.Lock()
	stored := len(env.cards.cards)
	env.cards.mu.Unlock()
	assert.Zero(t, stored, "nothing may persist after an integrity failure")
}

func TestCreateCard_MissingSignatureRejected(t *testing.T) {
	env := newTestEnv(t)
	authHeader := signup(t, env, "cardholder", "secret-password", "+79990001122")

	card := signedTestCard(t, "No signature")
	card.NumberHMAC = ""

	rr := postJSON(t, env, "/api/cards", card, map[string]string{"Authorization": authHeader})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateCard_CVVWithoutSignatureRejected(t *testing.T) {
	env := newTestEnv(t)
	authHeader := signup(t, env, "cardholder", "secret-password", "+79990001122")

	card := signedTestCard(t, "CVV unsigned")
	card.CVVHMAC = ""

	rr := postJSON(t, env, "/api/cards", card, map[string]string{"Authorization": authHeader})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateCard_BadExpiryRejected(t *testing.T) {
	env := newTestEnv(t)
	authHeader := signup(t, env, "cardholder", "secret-password", "+79990001122")

	card := signedTestCard(t, "Bad expiry")
	card.Expiry = "13/30"

	rr := postJSON(t, env, "/api/cards", card, map[string]string{"Authorization": authHeader})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ---- List ----

func TestListCards_ReturnsMaskedNumbers(t *testing.T) {
	env := newTestEnv(t)
	authHeader := signup(t, env, "cardholder", "secret-password", "+79990001122")

	rr := postJSON(t, env, "/api/cards", signedTestCard(t, "Main card"),
		map[string]string{"Authorization": authHeader})
	require.Equal(t, http.StatusCreated, rr.Code)

	listResp := getWithAuth(t, env, "/api/cards", authHeader)
	require.Equal(t, http.StatusOK, listResp.Code)

	var resp cardsResponse
	require.NoError(t, json.Unmarshal(listResp.Body.Bytes(), &resp))
	require.Len(t, resp.Cards, 1)
	assert.Equal(t, "**** **** **** 1111", resp.Cards[0].MaskedNumber)
	assert.Equal(t, "Main card", resp.Cards[0].Title)
}

func TestListCards_OwnerScoped(t *testing.T) {
	env := newTestEnv(t)
	aliceAuth := signup(t, env, "alice", "secret-password", "+79990001122")
	bobAuth := signup(t, env, "bob", "secret-password", "+79990003344")

	rr := postJSON(t, env, "/api/cards", signedTestCard(t, "Alice card"),
		map[string]string{"Authorization": aliceAuth})
	require.Equal(t, http.StatusCreated, rr.Code)

	listResp := getWithAuth(t, env, "/api/cards", bobAuth)
	require.Equal(t, http.StatusOK, listResp.Code)

	var resp cardsResponse
	require.NoError(t, json.Unmarshal(listResp.Body.Bytes(), &resp))
	assert.Empty(t, resp.Cards)
}

// ---- Delete ----

func TestDeleteCard_Succeeds(t *testing.T) {
	env := newTestEnv(t)
	authHeader := signup(t, env, "cardholder", "secret-password", "+79990001122")

	rr := postJSON(t, env, "/api/cards", signedTestCard(t, "Doomed card"),
		map[string]string{"Authorization": authHeader})
	require.Equal(t, http.StatusCreated, rr.Code)
	var created models.Card
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodDelete, "/api/cards/"+created.ID, nil)
	req.Header.Set("Authorization", authHeader)
	require.Equal(t, http.StatusNoContent, env.do(t, req).Code)

	listResp := getWithAuth(t, env, "/api/cards", authHeader)
	var resp cardsResponse
	require.NoError(t, json.Unmarshal(listResp.Body.Bytes(), &resp))
	assert.Empty(t, resp.Cards)
}

func TestDeleteCard_UnknownID(t *testing.T) {
	env := newTestEnv(t)
	authHeader := signup(t, env, "cardholder", "secret-password", "+79990001122")

	req := httptest.NewRequest(http.MethodDelete, "/api/cards/no-such-card", nil)
	req.Header.Set("Authorization", authHeader)

	assert.Equal(t, http.StatusNotFound, env.do(t, req).Code)
}
