package repositories

import (
	"context"

	"networth/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TokenRepository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	Create(ctx context.Context, token *models.OAuthToken, tx pgx.Tx) error
	// DeactivateActive flags every active token for (user, app) inactive and
	// returns how many rows it touched.
	DeactivateActive(ctx context.Context, userID, appID string, tx pgx.Tx) (int, error)
	GetActive(ctx context.Context, userID, appID string) (*models.OAuthToken, error)
	RevokeByID(ctx context.Context, tokenID string) error
	RevokeAllActive(ctx context.Context, userID, appID string) (int, error)
	// DeactivateExpired flags tokens whose expires_in horizon has passed.
	DeactivateExpired(ctx context.Context) (int, error)
}

type tokenRepo struct {
	db *pgxpool.Pool
}

func NewTokenRepository(db *pgxpool.Pool) TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.db.Begin(ctx)
}

func (r *tokenRepo) Create(ctx context.Context, token *models.OAuthToken, tx pgx.Tx) error {
	query := `
		INSERT INTO oauth_tokens (user_id, app_id, access_token, refresh_token, token_type, expires_in, scope, is_active, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8)
		RETURNING id, created_at, updated_at`

	args := []interface{}{token.UserID, token.AppID, token.AccessToken, token.RefreshToken,
		token.TokenType, token.ExpiresIn, token.Scope, token.Source}

	var err error
	if tx == nil {
		tx, err = r.db.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback(ctx)
			}
		}()

		err = tx.QueryRow(ctx, query, args...).Scan(&token.ID, &token.CreatedAt, &token.UpdatedAt)
		if err != nil {
			return err
		}
		token.IsActive = true
		return tx.Commit(ctx)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&token.ID, &token.CreatedAt, &token.UpdatedAt)
	if err != nil {
		return err
	}
	token.IsActive = true
	return nil
}

func (r *tokenRepo) DeactivateActive(ctx context.Context, userID, appID string, tx pgx.Tx) (int, error) {
	query := `
		UPDATE oauth_tokens
		SET is_active = FALSE, deactivated_at = now(), updated_at = now()
		WHERE user_id = $1 AND app_id = $2 AND is_active`

	if tx == nil {
		tag, err := r.db.Exec(ctx, query, userID, appID)
		if err != nil {
			return 0, err
		}
		return int(tag.RowsAffected()), nil
	}
	tag, err := tx.Exec(ctx, query, userID, appID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *tokenRepo) GetActive(ctx context.Context, userID, appID string) (*models.OAuthToken, error) {
	query := `
		SELECT id, user_id, app_id, access_token, refresh_token, token_type, expires_in, scope, is_active, source, created_at, updated_at, deactivated_at, revoked_at
		FROM oauth_tokens
		WHERE user_id = $1 AND is_active`
	args := []interface{}{userID}
	if appID != "" {
		query += ` AND app_id = $2`
		args = append(args, appID)
	}
	query += `
		ORDER BY created_at DESC
		LIMIT 1`

	var t models.OAuthToken
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.UserID, &t.AppID, &t.AccessToken, &t.RefreshToken, &t.TokenType,
		&t.ExpiresIn, &t.Scope, &t.IsActive, &t.Source, &t.CreatedAt, &t.UpdatedAt,
		&t.DeactivatedAt, &t.RevokedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tokenRepo) RevokeByID(ctx context.Context, tokenID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE oauth_tokens
		SET is_active = FALSE, revoked_at = now(), updated_at = now()
		WHERE id = $1`,
		tokenID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tokenRepo) RevokeAllActive(ctx context.Context, userID, appID string) (int, error) {
	query := `
		UPDATE oauth_tokens
		SET is_active = FALSE, revoked_at = now(), updated_at = now()
		WHERE user_id = $1 AND is_active`
	args := []interface{}{userID}
	if appID != "" {
		query += ` AND app_id = $2`
		args = append(args, appID)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *tokenRepo) DeactivateExpired(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE oauth_tokens
		SET is_active = FALSE, deactivated_at = now(), updated_at = now()
		WHERE is_active AND expires_in IS NOT NULL
		AND created_at + expires_in * interval '1 second' < now()`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
