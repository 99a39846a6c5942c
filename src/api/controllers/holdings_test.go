package controllers_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"networth/src/api/controllers"
	"networth/src/models"
	"networth/src/schemas"
	"networth/src/services"
	"networth/src/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx satisfies pgx.Tx for the merge path; only Commit and Rollback are
// ever called by the controller.
type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(_ context.Context) error   { return nil }
func (fakeTx) Rollback(_ context.Context) error { return nil }

type mockHoldingRepo struct {
	holdings    map[string]*models.Holding
	nextID      int
	deleteCalls int
	// lockMisses makes GetByTickerForUpdate miss that many times, simulating
	// a row committed by a racing transaction after the lock probe.
	lockMisses int
}

func newMockHoldingRepo() *mockHoldingRepo {
	return &mockHoldingRepo{holdings: make(map[string]*models.Holding)}
}

func (m *mockHoldingRepo) BeginTx(_ context.Context) (pgx.Tx, error) {
	return fakeTx{}, nil
}

func (m *mockHoldingRepo) GetAllByUserID(_ context.Context, userID string) ([]models.Holding, error) {
	var holdings []models.Holding
	for _, h := range m.holdings {
		if h.UserID == userID {
			holdings = append(holdings, *h)
		}
	}
	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].CreatedAt.After(holdings[j].CreatedAt)
	})
	return holdings, nil
}

func (m *mockHoldingRepo) GetByID(_ context.Context, userID, id string) (*models.Holding, error) {
	h, ok := m.holdings[id]
	if !ok || h.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	copied := *h
	return &copied, nil
}

func (m *mockHoldingRepo) GetByTickerForUpdate(_ context.Context, userID, ticker string, _ pgx.Tx) (*models.Holding, error) {
	if m.lockMisses > 0 {
		m.lockMisses--
		return nil, pgx.ErrNoRows
	}
	for _, h := range m.holdings {
		if h.UserID == userID && h.Ticker != nil && *h.Ticker == ticker {
			copied := *h
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockHoldingRepo) tickerTaken(userID string, ticker *string, excludeID string) bool {
	if ticker == nil {
		return false
	}
	for _, h := range m.holdings {
		if h.ID != excludeID && h.UserID == userID && h.Ticker != nil && *h.Ticker == *ticker {
			return true
		}
	}
	return false
}

func (m *mockHoldingRepo) Create(_ context.Context, h *models.Holding, _ pgx.Tx) error {
	if m.tickerTaken(h.UserID, h.Ticker, "") {
		return &pgconn.PgError{Code: "23505", ConstraintName: "holdings_user_ticker_idx"}
	}
	m.nextID++
	h.ID = fmt.Sprintf("holding-%d", m.nextID)
	h.CreatedAt = time.Now().Add(time.Duration(m.nextID) * time.Millisecond)
	h.UpdatedAt = h.CreatedAt
	copied := *h
	m.holdings[h.ID] = &copied
	return nil
}

func (m *mockHoldingRepo) UpdatePosition(_ context.Context, id string, quantity, buyPrice, currentPrice float64, _ pgx.Tx) error {
	h, ok := m.holdings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	h.Quantity = quantity
	h.BuyPrice = buyPrice
	h.CurrentPrice = currentPrice
	h.UpdatedAt = time.Now()
	return nil
}

func (m *mockHoldingRepo) Update(_ context.Context, h *models.Holding) error {
	existing, ok := m.holdings[h.ID]
	if !ok || existing.UserID != h.UserID {
		return pgx.ErrNoRows
	}
	if m.tickerTaken(h.UserID, h.Ticker, h.ID) {
		return &pgconn.PgError{Code: "23505", ConstraintName: "holdings_user_ticker_idx"}
	}
	copied := *h
	copied.UpdatedAt = time.Now()
	m.holdings[h.ID] = &copied
	return nil
}

func (m *mockHoldingRepo) Delete(_ context.Context, userID, id string) error {
	m.deleteCalls++
	h, ok := m.holdings[id]
	if ok && h.UserID == userID {
		delete(m.holdings, id)
	}
	return nil
}

func newTestController(repo *mockHoldingRepo) *controllers.Controller {
	return controllers.NewController(repo, nil, nil, services.NewReportService())
}

func ptr[T any](v T) *T { return &v }

const testUser = "user-1"

func TestCreateHoldingRequiresIdentity(t *testing.T) {
	ctrl := newTestController(newMockHoldingRepo())

	_, err := ctrl.CreateHolding(context.Background(), "", &schemas.CreateHoldingRequest{
		Type: models.AssetTypeStock, Name: "Google", Quantity: 1, BuyPrice: 100, Currency: "INR",
	})

	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 401, httpErr.Code)
}

func TestCreateHoldingValidation(t *testing.T) {
	ctrl := newTestController(newMockHoldingRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		req  schemas.CreateHoldingRequest
	}{
		{"unknown type", schemas.CreateHoldingRequest{Type: "CRYPTO", Name: "BTC", Quantity: 1, BuyPrice: 1, Currency: "INR"}},
		{"missing name", schemas.CreateHoldingRequest{Type: models.AssetTypeStock, Quantity: 1, BuyPrice: 1, Currency: "INR"}},
		{"zero quantity", schemas.CreateHoldingRequest{Type: models.AssetTypeStock, Name: "X", Quantity: 0, BuyPrice: 1, Currency: "INR"}},
		{"negative quantity", schemas.CreateHoldingRequest{Type: models.AssetTypeStock, Name: "X", Quantity: -1, BuyPrice: 1, Currency: "INR"}},
		{"negative buy price", schemas.CreateHoldingRequest{Type: models.AssetTypeStock, Name: "X", Quantity: 1, BuyPrice: -1, Currency: "INR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ctrl.CreateHolding(ctx, testUser, &tt.req)
			var httpErr *utils.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, 400, httpErr.Code)
		})
	}
}

func TestCreateHoldingNormalizesCurrencyOnInsert(t *testing.T) {
	repo := newMockHoldingRepo()
	ctrl := newTestController(repo)

	id, err := ctrl.CreateHolding(context.Background(), testUser, &schemas.CreateHoldingRequest{
		Type:     models.AssetTypeStock,
		Name:     "Alphabet",
		Ticker:   "GOOGL",
		Quantity: 10,
		BuyPrice: 100,
		Currency: "USD",
	})
	require.NoError(t, err)

	stored := repo.holdings[id]
	require.NotNil(t, stored)
	assert.InDelta(t, 8350.0, stored.BuyPrice, 1e-9)
	assert.InDelta(t, 8350.0, stored.CurrentPrice, 1e-9)
	assert.Equal(t, "INR", stored.Currency)
	require.NotNil(t, stored.Ticker)
	assert.Equal(t, "GOOGL", *stored.Ticker)
}

func TestCreateHoldingMergesByTicker(t *testing.T) {
	repo := newMockHoldingRepo()
	ctrl := newTestController(repo)
	ctx := context.Background()

	firstID, err := ctrl.CreateHolding(ctx, testUser, &schemas.CreateHoldingRequest{
		Type: models.AssetTypeStock, Name: "Apple", Ticker: "AAPL",
		Quantity: 10, BuyPrice: 100, CurrentPrice: ptr(110.0), Currency: "INR",
	})
	require.NoError(t, err)

	// Ticker is normalized before matching
	secondID, err := ctrl.CreateHolding(ctx, testUser, &schemas.CreateHoldingRequest{
		Type: models.AssetTypeStock, Name: "Apple", Ticker: "  aapl ",
		Quantity: 10, BuyPrice: 150, CurrentPrice: ptr(210.0), Currency: "INR",
	})
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	stored := repo.holdings[firstID]
	assert.InDelta(t, 20.0, stored.Quantity, 1e-9)
	// Weighted average: (10*100 + 10*150) / 20
	assert.InDelta(t, 125.0, stored.BuyPrice, 1e-9)
	// Current price is overwritten, not averaged
	assert.InDelta(t, 210.0, stored.CurrentPrice, 1e-9)
	assert.Len(t, repo.holdings, 1)
}

func TestCreateHoldingMergeNormalizesBeforeAveraging(t *testing.T) {
	repo := newMockHoldingRepo()
	ctrl := newTestController(repo)
	ctx := context.Background()

	id, err := ctrl.CreateHolding(ctx, testUser, &schemas.CreateHoldingRequest{
		Type: models.AssetTypeStock, Name: "Alphabet", Ticker: "GOOGL",
		Quantity: 10, BuyPrice: 8350, Currency: "INR",
	})
	require.NoError(t, err)

	_, err = ctrl.CreateHolding(ctx, testUser, &schemas.CreateHoldingRequest{
		Type: models.AssetTypeStock, Name: "Alphabet", Ticker: "GOOGL",
		Quantity: 10, BuyPrice: 100, Currency: "USD",
	})
	require.NoError(t, err)

	stored := repo.holdings[id]
	// Both legs cost 8350 in the reporting currency
	assert.InDelta(t, 8350.0, stored.BuyPrice, 1e-9)
	assert.InDelta(t, 20.0, stored.Quantity, 1e-9)
}

func TestCreateHoldingMergesAfterRacingInsert(t *testing.T) {
	repo := newMockHoldingRepo()
	ctrl := newTestController(repo)
	ctx := context.Background()

	firstID, err := ctrl.CreateHolding(ctx, testUser, &schemas.CreateHoldingRequest{
		Type: models.AssetTypeStock, Name: "Apple", Ticker: "AAPL",
		Quantity: 10, BuyPrice: 100, Currency: "INR",
	})
	require.NoError(t, err)

	// The lock probe misses the row a racing transaction just committed, the
	// insert trips the unique index, and the second pass merges instead.
	repo.lockMisses = 1
	secondID, err := ctrl.CreateHolding(ctx, testUser, &schemas.CreateHoldingRequest{
		Type: models.AssetTypeStock, Name: "Apple", Ticker: "AAPL",
		Quantity: 10, BuyPrice: 150, Currency: "INR",
	})
	require.NoError(t, err)

	assert.Equal(t, firstID, secondID)
	require.Len(t, repo.holdings, 1)
	stored := repo.holdings[firstID]
	assert.InDelta(t, 20.0, stored.Quantity, 1e-9)
	assert.InDelta(t, 125.0, stored.BuyPrice, 1e-9)
}

func TestCreateHoldingWithoutTickerAlwaysInserts(t *testing.T) {
	repo := newMockHoldingRepo()
	ctrl := newTestController(repo)
	ctx := context.Background()

	req := schemas.CreateHoldingRequest{
		Type: models.AssetTypeProperty, Name: "Flat in Pune",
		Quantity: 1, BuyPrice: 5000000, Currency: "INR",
	}
	first, err := ctrl.CreateHolding(ctx, testUser, &req)
	require.NoError(t, err)
	second, err := ctrl.CreateHolding(ctx, testUser, &req)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, repo.holdings, 2)
}

func TestCreateHoldingDoesNotMergeAcrossUsers(t *testing.T) {
	repo := newMockHoldingRepo()
	ctrl := newTestController(repo)
	ctx := context.Background()

	req := schemas.CreateHoldingRequest{
		Type: models.AssetTypeStock, Name: "Apple", Ticker: "AAPL",
		Quantity: 10, BuyPrice: 100, Currency: "INR",
	}
	_, err := ctrl.CreateHolding(ctx, "user-1", &req)
	require.NoError(t, err)
	_, err = ctrl.CreateHolding(ctx, "user-2", &req)
	require.NoError(t, err)

	assert.Len(t, repo.holdings, 2)
}

func TestUpdateHolding(t *testing.T) {
	repo := newMockHoldingRepo()
	ctrl := newTestController(repo)
	ctx := context.Background()

	id, err := ctrl.CreateHolding(ctx, testUser, &schemas.CreateHoldingRequest{
		Type: models.AssetTypeStock, Name: "Apple", Ticker: "AAPL",
		Quantity: 10, BuyPrice: 100, Currency: "INR",
	})
	require.NoError(t, err)

	err = ctrl.UpdateHolding(ctx, testUser, id, &schemas.UpdateHoldingRequest{
		Name:     ptr("Apple Inc."),
		BuyPrice: ptr(10.0),
		Currency: ptr("USD"),
	})
	require.NoError(t, err)

	stored := repo.holdings[id]
	assert.Equal(t, "Apple Inc.", stored.Name)
	// Patched price is normalized from the patch currency
	assert.InDelta(t, 835.0, stored.BuyPrice, 1e-9)
	assert.Equal(t, "INR", stored.Currency)
}

func TestUpdateHoldingClearsTicker(t *testing.T) {
	repo := newMockHoldingRepo()
	ctrl := newTestController(repo)
	ctx := context.Background()

	id, err := ctrl.CreateHolding(ctx, testUser, &schemas.CreateHoldingRequest{
		Type: models.AssetTypeStock, Name: "Apple", Ticker: "AAPL",
		Quantity: 10, BuyPrice: 100, Currency: "INR",
	})
	require.NoError(t, err)

	err = ctrl.UpdateHolding(ctx, testUser, id, &schemas.UpdateHoldingRequest{Ticker: ptr("  ")})
	require.NoError(t, err)

	assert.Nil(t, repo.holdings[id].Ticker)
}

func TestUpdateHoldingTickerConflict(t *testing.T) {
	repo := newMockHoldingRepo()
	ctrl := newTestController(repo)
	ctx := context.Background()

	_, err := ctrl.CreateHolding(ctx, testUser, &schemas.CreateHoldingRequest{
		Type: models.AssetTypeStock, Name: "Apple", Ticker: "AAPL",
		Quantity: 10, BuyPrice: 100, Currency: "INR",
	})
	require.NoError(t, err)
	googleID, err := ctrl.CreateHolding(ctx, testUser, &schemas.CreateHoldingRequest{
		Type: models.AssetTypeStock, Name: "Alphabet", Ticker: "GOOGL",
		Quantity: 5, BuyPrice: 200, Currency: "INR",
	})
	require.NoError(t, err)

	err = ctrl.UpdateHolding(ctx, testUser, googleID, &schemas.UpdateHoldingRequest{Ticker: ptr("aapl")})

	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestUpdateHoldingNotFound(t *testing.T) {
	ctrl := newTestController(newMockHoldingRepo())

	err := ctrl.UpdateHolding(context.Background(), testUser, "missing", &schemas.UpdateHoldingRequest{
		Name: ptr("whatever"),
	})

	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Code)
}

func TestUpdateHoldingRequiresIdentity(t *testing.T) {
	ctrl := newTestController(newMockHoldingRepo())

	err := ctrl.UpdateHolding(context.Background(), "", "some-id", &schemas.UpdateHoldingRequest{})

	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 401, httpErr.Code)
}

func TestDeleteHoldingWithoutIdentityIsNoOp(t *testing.T) {
	repo := newMockHoldingRepo()
	ctrl := newTestController(repo)

	err := ctrl.DeleteHolding(context.Background(), "", "some-id")

	require.NoError(t, err)
	assert.Zero(t, repo.deleteCalls)
}

func TestDeleteHolding(t *testing.T) {
	repo := newMockHoldingRepo()
	ctrl := newTestController(repo)
	ctx := context.Background()

	id, err := ctrl.CreateHolding(ctx, testUser, &schemas.CreateHoldingRequest{
		Type: models.AssetTypeGold, Name: "Gold coins", Quantity: 5, BuyPrice: 6000, Currency: "INR",
	})
	require.NoError(t, err)

	require.NoError(t, ctrl.DeleteHolding(ctx, testUser, id))
	assert.Empty(t, repo.holdings)
}

func TestGetPortfolioSummary(t *testing.T) {
	repo := newMockHoldingRepo()
	ctrl := newTestController(repo)
	ctx := context.Background()

	_, err := ctrl.CreateHolding(ctx, testUser, &schemas.CreateHoldingRequest{
		Type: models.AssetTypeStock, Name: "Apple", Ticker: "AAPL",
		Quantity: 10, BuyPrice: 100, CurrentPrice: ptr(200.0), Currency: "INR",
	})
	require.NoError(t, err)

	summary, err := ctrl.GetPortfolioSummary(ctx, testUser)
	require.NoError(t, err)

	assert.InDelta(t, 2000.0, summary.NetWorth, 1e-9)
	assert.InDelta(t, 1000.0, summary.InvestedValue, 1e-9)
	assert.InDelta(t, 1000.0, summary.ProfitLoss, 1e-9)
}
