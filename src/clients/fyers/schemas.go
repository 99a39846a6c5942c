package fyers

// ValidateAuthCodeRequest is the payload for the auth-code exchange call.
type ValidateAuthCodeRequest struct {
	GrantType string `json:"grant_type"`
	AppIDHash string `json:"appIdHash"`
	Code      string `json:"code"`
}

// TokenSchema is the provider response for a successful exchange.
type TokenSchema struct {
	Status       string `json:"s"`
	Code         int    `json:"code"`
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
}
