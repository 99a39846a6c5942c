package plaid

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"networth/src/config"
	"networth/src/utils"
	requests "networth/src/utils/requests"
)

type PlaidServiceClientI interface {
	CreateLinkToken(ctx context.Context, userID string) (*LinkTokenResponse, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (*ExchangeResponse, error)
	GetTransactions(ctx context.Context, accessToken, startDate, endDate string) (*TransactionsResponse, error)
}

// PlaidServiceClient wraps the Plaid REST API for link-token creation, token
// exchange and transaction pulls.
type PlaidServiceClient struct {
	API          *requests.ExternalAPIService
	BaseURL      string
	ClientID     string
	Secret       string
	ClientName   string
	CountryCodes []string
}

// NewClient creates a new instance of PlaidServiceClient
func NewClient(cfg *config.Config) *PlaidServiceClient {
	countryCodes := strings.Split(cfg.ExternalClients.Plaid.CountryCodes, ",")
	if cfg.ExternalClients.Plaid.CountryCodes == "" {
		countryCodes = []string{"US"}
	}
	return &PlaidServiceClient{
		API:          requests.NewExternalAPIService(nil),
		BaseURL:      cfg.ExternalClients.Plaid.BaseURL,
		ClientID:     cfg.ExternalClients.Plaid.ClientID,
		Secret:       cfg.ExternalClients.Plaid.Secret,
		ClientName:   cfg.ExternalClients.Plaid.ClientName,
		CountryCodes: countryCodes,
	}
}

// plaidVersion pins the API version for every request.
const plaidVersion = "2020-09-14"

func (s *PlaidServiceClient) post(ctx context.Context, endpoint string, body, result interface{}) error {
	logger := utils.LoggerFromContext(ctx)

	resp, err := s.API.PostWithHeaders(s.BaseURL+endpoint, "", body, map[string]string{
		"Plaid-Version": plaidVersion,
	})
	if err != nil {
		logger.Errorf("plaid %s request failed: %v", endpoint, err)
		return utils.UpstreamError("plaid")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		logger.Errorf("plaid %s returned %d: %s", endpoint, resp.StatusCode, string(detail))
		return utils.UpstreamError("plaid")
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		logger.Errorf("plaid %s returned unexpected body: %v", endpoint, err)
		return utils.UpstreamError("plaid")
	}
	return nil
}

func (s *PlaidServiceClient) CreateLinkToken(ctx context.Context, userID string) (*LinkTokenResponse, error) {
	body := &linkTokenRequest{
		ClientID:     s.ClientID,
		Secret:       s.Secret,
		ClientName:   s.ClientName,
		Language:     "en",
		CountryCodes: s.CountryCodes,
		User:         linkUser{ClientUserID: userID},
		Products:     []string{"transactions"},
	}
	var result LinkTokenResponse
	if err := s.post(ctx, "/link/token/create", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *PlaidServiceClient) ExchangePublicToken(ctx context.Context, publicToken string) (*ExchangeResponse, error) {
	body := &exchangeRequest{
		ClientID:    s.ClientID,
		Secret:      s.Secret,
		PublicToken: publicToken,
	}
	var result ExchangeResponse
	if err := s.post(ctx, "/item/public_token/exchange", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *PlaidServiceClient) GetTransactions(ctx context.Context, accessToken, startDate, endDate string) (*TransactionsResponse, error) {
	body := &transactionsRequest{
		ClientID:    s.ClientID,
		Secret:      s.Secret,
		AccessToken: accessToken,
		StartDate:   startDate,
		EndDate:     endDate,
		Options:     transactionOptions{Count: 100, Offset: 0},
	}
	var result TransactionsResponse
	if err := s.post(ctx, "/transactions/get", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
