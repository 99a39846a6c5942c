package schemas

// ExchangeTokenRequest exchanges a Fyers auth code for an access token.
type ExchangeTokenRequest struct {
	Code      string `json:"code"`
	AppID     string `json:"appId"`
	AppSecret string `json:"appSecret"`
	UserID    string `json:"userId,omitempty"`
}

// SaveTokenRequest stores an already-obtained token directly.
type SaveTokenRequest struct {
	UserID       string  `json:"userId"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken *string `json:"refreshToken,omitempty"`
	TokenType    string  `json:"tokenType,omitempty"`
	ExpiresIn    *int64  `json:"expiresIn,omitempty"`
	Scope        *string `json:"scope,omitempty"`
	AppID        string  `json:"appId"`
}

type SaveTokenResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	TokenID        string `json:"tokenId"`
	UserID         string `json:"userId"`
	ReplacedTokens int    `json:"replacedTokens,omitempty"`
	ExpiresIn      *int64 `json:"expiresIn,omitempty"`
	TokenType      string `json:"tokenType,omitempty"`
}

type GetTokenResponse struct {
	Success     bool    `json:"success"`
	TokenID     string  `json:"tokenId"`
	UserID      string  `json:"userId"`
	TokenType   string  `json:"tokenType"`
	ExpiresIn   *int64  `json:"expiresIn,omitempty"`
	Scope       *string `json:"scope,omitempty"`
	AppID       string  `json:"appId"`
	CreatedAt   string  `json:"createdAt"`
	AccessToken string  `json:"accessToken,omitempty"`
}

type RevokeTokenRequest struct {
	UserID  string `json:"userId,omitempty"`
	TokenID string `json:"tokenId,omitempty"`
	AppID   string `json:"appId,omitempty"`
}

type RevokeTokenResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RevokedCount int    `json:"revokedCount"`
}

// SaveFyersTokenRequest mirrors the Fyers redirect payload posted by the
// client after login.
type SaveFyersTokenRequest struct {
	UserID       string `json:"user_id"`
	Code         string `json:"code"`
	Status       string `json:"s"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Message      string `json:"message"`
}

// Plaid schemas

type PlaidExchangeRequest struct {
	PublicToken string `json:"public_token"`
	UserID      string `json:"userId"`
}

type PlaidLinkTokenRequest struct {
	UserID string `json:"userId"`
}

type PlaidLinkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

type PlaidTransactionsRequest struct {
	UserID    string `json:"userId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
