package fyers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"networth/src/clients/fyers"
	"networth/src/utils"
	requests "networth/src/utils/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAppIDHash(t *testing.T) {
	// sha256("APP-100:secret")
	hash := fyers.GenerateAppIDHash("APP-100", "secret")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, fyers.GenerateAppIDHash("APP-100", "secret"))
	assert.NotEqual(t, hash, fyers.GenerateAppIDHash("APP-100", "other"))
}

func TestValidateAuthCode(t *testing.T) {
	var received fyers.ValidateAuthCodeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/validate-authcode", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(fyers.TokenSchema{
			Status:      "ok",
			AccessToken: "access-123",
			ExpiresIn:   86400,
		})
	}))
	defer server.Close()

	client := &fyers.FyersServiceClient{
		API:     requests.NewExternalAPIService(nil),
		BaseURL: server.URL,
	}

	token, err := client.ValidateAuthCode(context.Background(), "APP-100", "secret", "auth-code")
	require.NoError(t, err)

	assert.Equal(t, "access-123", token.AccessToken)
	assert.Equal(t, "authorization_code", received.GrantType)
	assert.Equal(t, "auth-code", received.Code)
	assert.Equal(t, fyers.GenerateAppIDHash("APP-100", "secret"), received.AppIDHash)
}

func TestValidateAuthCodeProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"s": "error", "message": "invalid auth code"})
	}))
	defer server.Close()

	client := &fyers.FyersServiceClient{
		API:     requests.NewExternalAPIService(nil),
		BaseURL: server.URL,
	}

	_, err := client.ValidateAuthCode(context.Background(), "APP-100", "secret", "bad-code")

	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 502, httpErr.Code)
}

func TestValidateAuthCodeMissingAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(fyers.TokenSchema{Status: "error", Message: "code expired"})
	}))
	defer server.Close()

	client := &fyers.FyersServiceClient{
		API:     requests.NewExternalAPIService(nil),
		BaseURL: server.URL,
	}

	_, err := client.ValidateAuthCode(context.Background(), "APP-100", "secret", "expired")

	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 502, httpErr.Code)
}
