// internal/domain/order/service_test.go
package order

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/pkg/apperr"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeCart serves a fixed view and records Clear calls
type fakeCart struct {
	view    *cart.View
	viewErr error
	cleared int
}

func (f *fakeCart) View(ctx context.Context, sessionID string) (*cart.View, error) {
	if f.viewErr != nil {
		return nil, f.viewErr
	}
	return f.view, nil
}

func (f *fakeCart) Clear(ctx context.Context, sessionID string) error {
	f.cleared++
	return nil
}

func newMockService(t *testing.T, reader CartReader) (*sql.DB, sqlmock.Sqlmock, *Service) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "failed to create sqlmock")

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open gorm")

	return db, mock, NewService(gormDB, reader)
}

func twoLineView() *cart.View {
	return &cart.View{
		Lines: []cart.Line{
			{Product: catalog.Product{ID: 5, Name: "Plain Tee", Price: 1000}, Quantity: 2, LineTotal: 2000},
			{Product: catalog.Product{ID: 7, Name: "Canvas Tote", Price: 350}, Quantity: 1, LineTotal: 350},
		},
		Total: 2350,
	}
}

func TestCheckout(t *testing.T) {
	reader := &fakeCart{view: twoLineView()}
	db, mock, service := newMockService(t, reader)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(22))
	mock.ExpectCommit()

	userID := uint(3)
	placed, err := service.Checkout(context.Background(), &userID, "s1", &CheckoutRequest{
		Name:    "Ada Example",
		Email:   "ada@example.com",
		Address: "1 Main St",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(11), placed.ID)
	assert.Equal(t, int64(2350), placed.Total)
	assert.Equal(t, 23.50, placed.GetFormattedTotal())

	// each item snapshots the product's current price
	require.Len(t, placed.Items, 2)
	assert.Equal(t, uint(5), placed.Items[0].ProductID)
	assert.Equal(t, int64(1000), placed.Items[0].Price)
	assert.Equal(t, 2, placed.Items[0].Quantity)
	assert.Equal(t, int64(2000), placed.Items[0].GetTotal())
	assert.Equal(t, uint(7), placed.Items[1].ProductID)
	assert.Equal(t, int64(350), placed.Items[1].Price)

	// cart cleared exactly once, after commit
	assert.Equal(t, 1, reader.cleared)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutEmptyCart(t *testing.T) {
	reader := &fakeCart{view: &cart.View{}}
	db, mock, service := newMockService(t, reader)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	placed, err := service.Checkout(context.Background(), nil, "s1", &CheckoutRequest{
		Name:    "Ada Example",
		Email:   "ada@example.com",
		Address: "1 Main St",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), placed.Total)
	assert.Empty(t, placed.Items)
	assert.Equal(t, 1, reader.cleared)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CheckoutRequest
	}{
		{"all empty", CheckoutRequest{}},
		{"missing name", CheckoutRequest{Email: "a@b.c", Address: "1 Main St"}},
		{"missing email", CheckoutRequest{Name: "Ada", Address: "1 Main St"}},
		{"missing address", CheckoutRequest{Name: "Ada", Email: "a@b.c"}},
		{"whitespace only", CheckoutRequest{Name: "  ", Email: "a@b.c", Address: "1 Main St"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &fakeCart{view: twoLineView()}
			db, mock, service := newMockService(t, reader)
			defer db.Close()

			_, err := service.Checkout(context.Background(), nil, "s1", &tt.req)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))

			// no transaction opened, cart untouched
			assert.Equal(t, 0, reader.cleared)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCheckoutRollsBackOnItemFailure(t *testing.T) {
	reader := &fakeCart{view: twoLineView()}
	db, mock, service := newMockService(t, reader)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(13))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := service.Checkout(context.Background(), nil, "s1", &CheckoutRequest{
		Name:    "Ada Example",
		Email:   "ada@example.com",
		Address: "1 Main St",
	})
	require.Error(t, err)

	// failed checkout must not clear the cart
	assert.Equal(t, 0, reader.cleared)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderScopedToUser(t *testing.T) {
	db, mock, service := newMockService(t, &fakeCart{})
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "orders" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(uint(11), uint(3), 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := service.Get(3, 11)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}
