package fyers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"networth/src/config"
	"networth/src/utils"
	requests "networth/src/utils/requests"
)

type FyersServiceClientI interface {
	ValidateAuthCode(ctx context.Context, appID, appSecret, code string) (*TokenSchema, error)
}

// FyersServiceClient exchanges Fyers auth codes for access tokens.
type FyersServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of FyersServiceClient
func NewClient(cfg *config.Config) *FyersServiceClient {
	return &FyersServiceClient{
		API:     requests.NewExternalAPIService(nil),
		BaseURL: cfg.ExternalClients.Fyers.BaseURL,
	}
}

// GenerateAppIDHash builds the sha256 hash of "appId:appSecret" the provider
// expects in exchange requests.
func GenerateAppIDHash(appID, appSecret string) string {
	sum := sha256.Sum256([]byte(appID + ":" + appSecret))
	return hex.EncodeToString(sum[:])
}

// ValidateAuthCode calls the provider's validate-authcode endpoint. Provider
// errors are logged with full detail and wrapped as a generic upstream
// failure for the caller.
func (s *FyersServiceClient) ValidateAuthCode(ctx context.Context, appID, appSecret, code string) (*TokenSchema, error) {
	logger := utils.LoggerFromContext(ctx)

	body := &ValidateAuthCodeRequest{
		GrantType: "authorization_code",
		AppIDHash: GenerateAppIDHash(appID, appSecret),
		Code:      code,
	}

	resp, err := s.API.Post(s.BaseURL+"/api/v3/validate-authcode", "", nil, body)
	if err != nil {
		logger.Errorf("fyers validate-authcode request failed: %v", err)
		return nil, utils.UpstreamError("fyers")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		logger.Errorf("fyers validate-authcode returned %d: %s", resp.StatusCode, string(detail))
		return nil, utils.UpstreamError("fyers")
	}

	var token TokenSchema
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		logger.Errorf("fyers validate-authcode returned unexpected body: %v", err)
		return nil, utils.UpstreamError("fyers")
	}
	if token.AccessToken == "" {
		logger.Errorf("fyers validate-authcode returned no access token: %s", token.Message)
		return nil, fmt.Errorf("no access token received from fyers: %w", utils.UpstreamError("fyers"))
	}

	return &token, nil
}
