package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-doc-vault/models"
)

// ---- Helpers ----

func postJSON(t *testing.T, env *testEnv, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return env.do(t, req)
}

// signup runs the full identity-check and registration flow and returns
// the session Authorization header value.
func signup(t *testing.T, env *testEnv, login, password, mobile string) string {
	t.Helper()

	rr := postJSON(t, env, "/api/user/check", checkIdentityRequest{Mobile: mobile}, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var tokenResp models.SignupTokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tokenResp))
	require.NotEmpty(t, tokenResp.SignupToken)

	rr = postJSON(t, env, "/api/user/register", registerRequest{
		SignupToken: tokenResp.SignupToken,
		Login:       login,
		Password:    password,
		Name:        "Test User",
	}, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	authHeader := rr.Header().Get("Authorization")
	require.NotEmpty(t, authHeader)
	return authHeader
}

// ---- Signup bridge ----

func TestCheckIdentity_ReturnsSignupToken(t *testing.T) {
	env := newTestEnv(t)

	rr := postJSON(t, env, "/api/user/check", checkIdentityRequest{Mobile: "+79990001122"}, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.SignupTokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SignupToken)
}

func TestCheckIdentity_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/user/check", bytes.NewReader([]byte("{not json")))
	rr := env.do(t, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister_FullFlowIssuesSession(t *testing.T) {
	env := newTestEnv(t)

	authHeader := signup(t, env, "alice", "secret-password", "+79990001122")

	assert.Contains(t, authHeader, "Bearer ")
}

func TestRegister_GarbageSignupTokenRejected(t *testing.T) {
	env := newTestEnv(t)

	rr := postJSON(t, env, "/api/user/register", registerRequest{
		SignupToken: "not-a-real-token",
		Login:       "bob",
		Password:    "secret-password",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRegister_DuplicateLoginConflicts(t *testing.T) {
	env := newTestEnv(t)

	signup(t, env, "carol", "secret-password", "+79990001122")

	rr := postJSON(t, env, "/api/user/check", checkIdentityRequest{Mobile: "+79990003344"}, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var tokenResp models.SignupTokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tokenResp))

	rr = postJSON(t, env, "/api/user/register", registerRequest{
		SignupToken: tokenResp.SignupToken,
		Login:       "carol",
		Password:    "another-password",
	}, nil)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

// ---- Login ----

func TestLogin_Succeeds(t *testing.T) {
	env := newTestEnv(t)
	signup(t, env, "dave", "secret-password", "+79990001122")

	rr := postJSON(t, env, "/api/user/login", models.User{Login: "dave", Password: "secret-password"}, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Authorization"), "Bearer ")
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	signup(t, env, "erin", "secret-password", "+79990001122")

	rr := postJSON(t, env, "/api/user/login", models.User{Login: "erin", Password: "wrong"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	rr := postJSON(t, env, "/api/user/login", models.User{Login: "nobody", Password: "whatever"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
