package repositories

import (
	"context"

	"networth/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FyersTokenRepository interface {
	Upsert(ctx context.Context, token *models.FyersToken) error
	GetByUserID(ctx context.Context, userID string) (*models.FyersToken, error)
	GetAll(ctx context.Context) ([]models.FyersToken, error)
}

type fyersTokenRepo struct {
	db *pgxpool.Pool
}

func NewFyersTokenRepository(db *pgxpool.Pool) FyersTokenRepository {
	return &fyersTokenRepo{db: db}
}

const fyersTokenColumns = `user_id, code, status, access_token, refresh_token, message, created_at, updated_at`

func (r *fyersTokenRepo) Upsert(ctx context.Context, token *models.FyersToken) error {
	// One record per user, keyed by user id like the upstream store.
	return r.db.QueryRow(ctx,
		`INSERT INTO fyers_tokens (user_id, code, status, access_token, refresh_token, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			code = EXCLUDED.code,
			status = EXCLUDED.status,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			message = EXCLUDED.message,
			updated_at = now()
		RETURNING created_at, updated_at`,
		token.UserID, token.Code, token.Status, token.AccessToken, token.RefreshToken, token.Message,
	).Scan(&token.CreatedAt, &token.UpdatedAt)
}

func (r *fyersTokenRepo) GetByUserID(ctx context.Context, userID string) (*models.FyersToken, error) {
	var t models.FyersToken
	err := r.db.QueryRow(ctx,
		`SELECT `+fyersTokenColumns+`
		FROM fyers_tokens
		WHERE user_id = $1`,
		userID,
	).Scan(&t.UserID, &t.Code, &t.Status, &t.AccessToken, &t.RefreshToken, &t.Message, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *fyersTokenRepo) GetAll(ctx context.Context) ([]models.FyersToken, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+fyersTokenColumns+`
		FROM fyers_tokens
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []models.FyersToken
	for rows.Next() {
		var t models.FyersToken
		if err := rows.Scan(&t.UserID, &t.Code, &t.Status, &t.AccessToken, &t.RefreshToken, &t.Message, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
