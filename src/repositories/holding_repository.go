package repositories

import (
	"context"
	"errors"

	"networth/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoRows is returned by lookups that match no record.
var ErrNoRows = pgx.ErrNoRows

type HoldingRepository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	GetAllByUserID(ctx context.Context, userID string) ([]models.Holding, error)
	GetByID(ctx context.Context, userID, id string) (*models.Holding, error)
	// GetByTickerForUpdate locks the matching row for the duration of tx so
	// concurrent recordings of the same ticker serialize instead of racing.
	GetByTickerForUpdate(ctx context.Context, userID, ticker string, tx pgx.Tx) (*models.Holding, error)
	Create(ctx context.Context, h *models.Holding, tx pgx.Tx) error
	// UpdatePosition mutates only quantity, buy_price and current_price (the
	// merge path); updated_at is refreshed by the storage layer.
	UpdatePosition(ctx context.Context, id string, quantity, buyPrice, currentPrice float64, tx pgx.Tx) error
	Update(ctx context.Context, h *models.Holding) error
	Delete(ctx context.Context, userID, id string) error
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

func (r *holdingRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.db.Begin(ctx)
}

const holdingColumns = `id, user_id, type, name, ticker, quantity, buy_price, current_price, currency, created_at, updated_at`

func scanHolding(row pgx.Row) (*models.Holding, error) {
	var h models.Holding
	err := row.Scan(&h.ID, &h.UserID, &h.Type, &h.Name, &h.Ticker, &h.Quantity,
		&h.BuyPrice, &h.CurrentPrice, &h.Currency, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *holdingRepo) GetAllByUserID(ctx context.Context, userID string) ([]models.Holding, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+holdingColumns+`
		FROM holdings
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, *h)
	}
	return holdings, rows.Err()
}

func (r *holdingRepo) GetByID(ctx context.Context, userID, id string) (*models.Holding, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+holdingColumns+`
		FROM holdings
		WHERE user_id = $1 AND id = $2`,
		userID, id)
	return scanHolding(row)
}

func (r *holdingRepo) GetByTickerForUpdate(ctx context.Context, userID, ticker string, tx pgx.Tx) (*models.Holding, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+holdingColumns+`
		FROM holdings
		WHERE user_id = $1 AND ticker = $2
		FOR UPDATE`,
		userID, ticker)
	return scanHolding(row)
}

func (r *holdingRepo) Create(ctx context.Context, h *models.Holding, tx pgx.Tx) error {
	query := `
		INSERT INTO holdings (user_id, type, name, ticker, quantity, buy_price, current_price, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	args := []interface{}{h.UserID, h.Type, h.Name, h.Ticker, h.Quantity, h.BuyPrice, h.CurrentPrice, h.Currency}

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

		err = tx.QueryRow(ctx, query, args...).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	return tx.QueryRow(ctx, query, args...).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
}

func (r *holdingRepo) UpdatePosition(ctx context.Context, id string, quantity, buyPrice, currentPrice float64, tx pgx.Tx) error {
	query := `
		UPDATE holdings
		SET quantity = $2, buy_price = $3, current_price = $4, updated_at = now()
		WHERE id = $1`

	var tag interface{ RowsAffected() int64 }
	var err error
	if tx == nil {
		t, e := r.db.Exec(ctx, query, id, quantity, buyPrice, currentPrice)
		tag, err = t, e
	} else {
		t, e := tx.Exec(ctx, query, id, quantity, buyPrice, currentPrice)
		tag, err = t, e
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *holdingRepo) Update(ctx context.Context, h *models.Holding) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE holdings
		SET type = $3, name = $4, ticker = $5, quantity = $6, buy_price = $7, current_price = $8, currency = $9, updated_at = now()
		WHERE user_id = $1 AND id = $2`,
		h.UserID, h.ID, h.Type, h.Name, h.Ticker, h.Quantity, h.BuyPrice, h.CurrentPrice, h.Currency)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *holdingRepo) Delete(ctx context.Context, userID, id string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM holdings WHERE user_id = $1 AND id = $2`, userID, id)
	return err
}

// IsNotFound reports whether err is the storage-level missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err is a Postgres unique-index violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
