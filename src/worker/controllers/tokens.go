package controllers

import (
	"context"
	"fmt"
	"strings"

	"networth/src/models"
	"networth/src/repositories"
	"networth/src/schemas"
	"networth/src/utils"

	"github.com/google/uuid"
)

type TokensControllerI interface {
	ExchangeFyersCode(ctx context.Context, req *schemas.ExchangeTokenRequest) (*schemas.SaveTokenResponse, error)
	SaveToken(ctx context.Context, req *schemas.SaveTokenRequest) (*schemas.SaveTokenResponse, error)
	GetActiveToken(ctx context.Context, userID, appID string, includeToken bool) (*schemas.GetTokenResponse, error)
	RevokeToken(ctx context.Context, req *schemas.RevokeTokenRequest) (*schemas.RevokeTokenResponse, error)
	SaveFyersToken(ctx context.Context, req *schemas.SaveFyersTokenRequest) (*models.FyersToken, error)
	GetFyersToken(ctx context.Context, userID string) (*models.FyersToken, error)
	ListFyersTokens(ctx context.Context) ([]models.FyersToken, error)
	DeactivateExpiredTokens(ctx context.Context) (int, error)
}

func missingFields(pairs map[string]string) error {
	var missing []string
	for field, value := range pairs {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return utils.ValidationError(fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}
	return nil
}

// deriveUserID falls back to a deterministic id hashed from the auth code
// when the caller did not supply one.
func deriveUserID(authCode, userID string) string {
	if userID != "" {
		return userID
	}
	return uuid.NewMD5(uuid.NameSpaceOID, []byte(authCode)).String()
}

// ExchangeFyersCode exchanges an auth code with the provider and persists
// the issued token as the active credential for the derived user.
func (c *Controller) ExchangeFyersCode(ctx context.Context, req *schemas.ExchangeTokenRequest) (*schemas.SaveTokenResponse, error) {
	if err := missingFields(map[string]string{
		"code":      req.Code,
		"appId":     req.AppID,
		"appSecret": req.AppSecret,
	}); err != nil {
		return nil, err
	}

	logger := utils.LoggerFromContext(ctx)
	logger.Infof("token exchange request for app %s", req.AppID)

	providerToken, err := c.FyersClient.ValidateAuthCode(ctx, req.AppID, req.AppSecret, req.Code)
	if err != nil {
		return nil, err
	}

	userID := deriveUserID(req.Code, req.UserID)

	token := &models.OAuthToken{
		UserID:      userID,
		AppID:       req.AppID,
		AccessToken: providerToken.AccessToken,
		TokenType:   "Bearer",
		Source:      models.TokenSourceOAuthExchange,
	}
	if providerToken.RefreshToken != "" {
		token.RefreshToken = &providerToken.RefreshToken
	}
	if providerToken.ExpiresIn > 0 {
		expiresIn := providerToken.ExpiresIn
		token.ExpiresIn = &expiresIn
	}
	if providerToken.Scope != "" {
		scope := providerToken.Scope
		token.Scope = &scope
	}

	if err := c.TokenRepo.Create(ctx, token, nil); err != nil {
		return nil, err
	}

	return &schemas.SaveTokenResponse{
		Success:   true,
		Message:   "Token exchanged and saved successfully",
		TokenID:   token.ID,
		UserID:    userID,
		ExpiresIn: token.ExpiresIn,
		TokenType: token.TokenType,
	}, nil
}

// SaveToken stores an already-obtained token, deactivating any active token
// for the same (user, app) in the same transaction.
func (c *Controller) SaveToken(ctx context.Context, req *schemas.SaveTokenRequest) (*schemas.SaveTokenResponse, error) {
	if err := missingFields(map[string]string{
		"userId":      req.UserID,
		"accessToken": req.AccessToken,
		"appId":       req.AppID,
	}); err != nil {
		return nil, err
	}

	tokenType := req.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	token := &models.OAuthToken{
		UserID:       req.UserID,
		AppID:        req.AppID,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		TokenType:    tokenType,
		ExpiresIn:    req.ExpiresIn,
		Scope:        req.Scope,
		Source:       models.TokenSourceDirectSave,
	}

	tx, err := c.TokenRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	replaced, err := c.TokenRepo.DeactivateActive(ctx, req.UserID, req.AppID, tx)
	if err != nil {
		return nil, err
	}
	if err = c.TokenRepo.Create(ctx, token, tx); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &schemas.SaveTokenResponse{
		Success:        true,
		Message:        "Token saved successfully",
		TokenID:        token.ID,
		UserID:         req.UserID,
		ReplacedTokens: replaced,
	}, nil
}

// GetActiveToken returns the newest active token for a user. The raw token
// value is only included on explicit request.
func (c *Controller) GetActiveToken(ctx context.Context, userID, appID string, includeToken bool) (*schemas.GetTokenResponse, error) {
	if userID == "" {
		return nil, utils.ValidationError("user ID is required")
	}

	token, err := c.TokenRepo.GetActive(ctx, userID, appID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, utils.NotFound("no active token found for user")
		}
		return nil, err
	}

	resp := &schemas.GetTokenResponse{
		Success:   true,
		TokenID:   token.ID,
		UserID:    token.UserID,
		TokenType: token.TokenType,
		ExpiresIn: token.ExpiresIn,
		Scope:     token.Scope,
		AppID:     token.AppID,
		CreatedAt: token.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if includeToken {
		resp.AccessToken = token.AccessToken
	}
	return resp, nil
}

// RevokeToken deactivates one token by id, or every active token for a user
// (optionally narrowed to one app).
func (c *Controller) RevokeToken(ctx context.Context, req *schemas.RevokeTokenRequest) (*schemas.RevokeTokenResponse, error) {
	if req.UserID == "" && req.TokenID == "" {
		return nil, utils.ValidationError("either userId or tokenId is required")
	}

	if req.TokenID != "" {
		if err := c.TokenRepo.RevokeByID(ctx, req.TokenID); err != nil {
			if repositories.IsNotFound(err) {
				return nil, utils.NotFound("token not found")
			}
			return nil, err
		}
		return &schemas.RevokeTokenResponse{
			Success:      true,
			Message:      "Token revoked successfully",
			RevokedCount: 1,
		}, nil
	}

	count, err := c.TokenRepo.RevokeAllActive(ctx, req.UserID, req.AppID)
	if err != nil {
		return nil, err
	}
	return &schemas.RevokeTokenResponse{
		Success:      true,
		Message:      fmt.Sprintf("%d token(s) revoked successfully", count),
		RevokedCount: count,
	}, nil
}

// SaveFyersToken upserts the per-user Fyers record posted by the client
// after login.
func (c *Controller) SaveFyersToken(ctx context.Context, req *schemas.SaveFyersTokenRequest) (*models.FyersToken, error) {
	if err := missingFields(map[string]string{
		"user_id":       req.UserID,
		"code":          req.Code,
		"access_token":  req.AccessToken,
		"refresh_token": req.RefreshToken,
	}); err != nil {
		return nil, err
	}

	token := &models.FyersToken{
		UserID:       req.UserID,
		Code:         req.Code,
		Status:       req.Status,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		Message:      req.Message,
	}
	if err := c.FyersTokenRepo.Upsert(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

func (c *Controller) GetFyersToken(ctx context.Context, userID string) (*models.FyersToken, error) {
	if userID == "" {
		return nil, utils.ValidationError("user ID is required")
	}
	token, err := c.FyersTokenRepo.GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, utils.NotFound("token not found")
		}
		return nil, err
	}
	return token, nil
}

func (c *Controller) ListFyersTokens(ctx context.Context) ([]models.FyersToken, error) {
	return c.FyersTokenRepo.GetAll(ctx)
}

// DeactivateExpiredTokens is the periodic sweep run by the scheduler.
func (c *Controller) DeactivateExpiredTokens(ctx context.Context) (int, error) {
	return c.TokenRepo.DeactivateExpired(ctx)
}
