package models

import "time"

// OAuthToken is a provider-issued credential stored by the token backend.
// Only one token per (user, app) is active at a time; replaced tokens are
// deactivated, revoked tokens keep their revocation timestamp.
type OAuthToken struct {
	ID            string     `db:"id" json:"id"`
	UserID        string     `db:"user_id" json:"userId"`
	AppID         string     `db:"app_id" json:"appId"`
	AccessToken   string     `db:"access_token" json:"-"`
	RefreshToken  *string    `db:"refresh_token" json:"-"`
	TokenType     string     `db:"token_type" json:"tokenType"`
	ExpiresIn     *int64     `db:"expires_in" json:"expiresIn,omitempty"`
	Scope         *string    `db:"scope" json:"scope,omitempty"`
	IsActive      bool       `db:"is_active" json:"isActive"`
	Source        string     `db:"source" json:"source"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
	DeactivatedAt *time.Time `db:"deactivated_at" json:"-"`
	RevokedAt     *time.Time `db:"revoked_at" json:"-"`
}

const (
	TokenSourceOAuthExchange = "oauth_exchange"
	TokenSourceDirectSave    = "direct_save"
)

// FyersToken is the per-user Fyers credential record, keyed by user id.
type FyersToken struct {
	UserID       string    `db:"user_id" json:"userId"`
	Code         string    `db:"code" json:"code"`
	Status       string    `db:"status" json:"status"`
	AccessToken  string    `db:"access_token" json:"accessToken"`
	RefreshToken string    `db:"refresh_token" json:"refreshToken"`
	Message      string    `db:"message" json:"message"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
