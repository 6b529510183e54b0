// internal/domain/catalog/service_test.go
package catalog

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/pkg/apperr"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockService(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *Service) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "failed to create sqlmock")

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open gorm")

	return db, mock, NewService(gormDB)
}

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "category_id", "name", "description", "price", "image"})
}

func TestListFiltersBySearchQuery(t *testing.T) {
	db, mock, service := newMockService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "products" WHERE \(?LOWER\(name\) LIKE \$1 OR LOWER\(description\) LIKE \$2\)?`).
		WithArgs("%tee%", "%tee%").
		WillReturnRows(productRows().AddRow(5, 1, "Plain Tee", "Cotton", 1000, ""))
	mock.ExpectQuery(`SELECT (.+) FROM "categories" WHERE "categories"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Apparel"))
	mock.ExpectQuery(`SELECT (.+) FROM "categories" (.+)ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Apparel"))

	listing, err := service.List(&ListRequest{Query: "Tee"})
	require.NoError(t, err)

	require.Len(t, listing.Products, 1)
	assert.Equal(t, "Plain Tee", listing.Products[0].Name)
	assert.Equal(t, "Tee", listing.Query)
	require.Len(t, listing.Categories, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFiltersByCategory(t *testing.T) {
	db, mock, service := newMockService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "products" WHERE category_id = \$1`).
		WithArgs(uint(2)).
		WillReturnRows(productRows())
	mock.ExpectQuery(`SELECT (.+) FROM "categories" (.+)ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "Accessories"))

	listing, err := service.List(&ListRequest{CategoryID: 2})
	require.NoError(t, err)

	assert.Empty(t, listing.Products)
	assert.Equal(t, uint(2), listing.CategoryID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProduct(t *testing.T) {
	db, mock, service := newMockService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "products" WHERE id = \$1`).
		WithArgs(uint(5), 1).
		WillReturnRows(productRows().AddRow(5, nil, "Plain Tee", "Cotton", 1000, ""))

	product, err := service.Get(5)
	require.NoError(t, err)

	assert.Equal(t, uint(5), product.ID)
	assert.Equal(t, int64(1000), product.Price)
	assert.Equal(t, 10.0, product.GetFormattedPrice())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductNotFound(t *testing.T) {
	db, mock, service := newMockService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "products" WHERE id = \$1`).
		WithArgs(uint(99), 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := service.Get(99)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelatedExcludesSelfAndCapsAtFour(t *testing.T) {
	db, mock, service := newMockService(t)
	defer db.Close()

	categoryID := uint(1)

	mock.ExpectQuery(`SELECT (.+) FROM "products" WHERE category_id = \$1 AND id <> \$2 (.+)LIMIT \$3`).
		WithArgs(categoryID, uint(5), RelatedLimit).
		WillReturnRows(productRows().
			AddRow(6, 1, "Hoodie", "", 2500, "").
			AddRow(8, 1, "Crew Sock", "", 500, "").
			AddRow(9, 1, "Cap", "", 1500, "").
			AddRow(10, 1, "Beanie", "", 1200, ""))

	related, err := service.Related(&Product{ID: 5, CategoryID: &categoryID})
	require.NoError(t, err)

	assert.Len(t, related, 4)
	for _, p := range related {
		assert.NotEqual(t, uint(5), p.ID)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelatedUncategorizedProduct(t *testing.T) {
	db, mock, service := newMockService(t)
	defer db.Close()

	related, err := service.Related(&Product{ID: 5, CategoryID: nil})
	require.NoError(t, err)

	assert.Empty(t, related)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategoryRejectsBlankName(t *testing.T) {
	db, mock, service := newMockService(t)
	defer db.Close()

	_, err := service.CreateCategory(&CategoryCreateRequest{Name: "   "})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCategoryNotFound(t *testing.T) {
	db, mock, service := newMockService(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "categories"`).
		WithArgs(uint(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := service.DeleteCategory(99)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}
