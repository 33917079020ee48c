package sql

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KalyaKKK/tugas5-jda/internal/model"
	"github.com/KalyaKKK/tugas5-jda/internal/repository"
)

func strPtr(s string) *string {
	return &s
}

func TestProductRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("successful creation assigns id and timestamps", func(t *testing.T) {
		product := &model.Product{
			Name:        "Test Product",
			Description: strPtr("Test Description"),
			Price:       99.99,
			Category:    "Furniture",
		}

		mock.ExpectPrepare("INSERT INTO products").
			ExpectQuery().
			WithArgs(product.Name, "Test Description", product.Price, product.Category, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		result, err := repo.Create(ctx, product)
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, int64(7), result.ID)
		assert.Equal(t, product.Name, result.Name)
		assert.False(t, result.CreatedAt.IsZero())
		assert.Equal(t, result.CreatedAt, result.UpdatedAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil description is persisted as NULL", func(t *testing.T) {
		product := &model.Product{
			Name:     "Bare Product",
			Price:    10,
			Category: "Misc",
		}

		mock.ExpectPrepare("INSERT INTO products").
			ExpectQuery().
			WithArgs(product.Name, nil, product.Price, product.Category, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))

		result, err := repo.Create(ctx, product)
		require.NoError(t, err)
		assert.Nil(t, result.Description)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("successful find", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "name", "description", "price", "category", "created_at", "updated_at"}).
			AddRow(int64(3), "Test Product", "Test Description", 99.99, "Furniture", now, now)

		mock.ExpectPrepare("SELECT (.+) FROM products WHERE id = \\$1").
			ExpectQuery().
			WithArgs(int64(3)).
			WillReturnRows(rows)

		result, err := repo.FindByID(ctx, 3)
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, int64(3), result.ID)
		assert.Equal(t, "Test Product", result.Name)
		require.NotNil(t, result.Description)
		assert.Equal(t, "Test Description", *result.Description)
		assert.Equal(t, 99.99, result.Price)
		assert.Equal(t, "Furniture", result.Category)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("product not found", func(t *testing.T) {
		mock.ExpectPrepare("SELECT (.+) FROM products WHERE id = \\$1").
			ExpectQuery().
			WithArgs(int64(42)).
			WillReturnError(sql.ErrNoRows)

		result, err := repo.FindByID(ctx, 42)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, repository.ErrNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("returns products newest first", func(t *testing.T) {
		older := time.Now().Add(-time.Hour)
		newer := time.Now()

		rows := sqlmock.NewRows([]string{"id", "name", "description", "price", "category", "created_at", "updated_at"}).
			AddRow(int64(2), "Product 2", nil, 149.99, "Electronics", newer, newer).
			AddRow(int64(1), "Product 1", "Description 1", 99.99, "Furniture", older, older)

		mock.ExpectPrepare("SELECT (.+) FROM products ORDER BY created_at DESC, id DESC").
			ExpectQuery().
			WillReturnRows(rows)

		result, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, result, 2)

		assert.Equal(t, int64(2), result[0].ID)
		assert.Equal(t, int64(1), result[1].ID)
		assert.Nil(t, result[0].Description)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table yields no products", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "description", "price", "category", "created_at", "updated_at"})

		mock.ExpectPrepare("SELECT (.+) FROM products ORDER BY created_at DESC, id DESC").
			ExpectQuery().
			WillReturnRows(rows)

		result, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, result)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("successful update", func(t *testing.T) {
		product := &model.Product{
			ID:        5,
			Name:      "Updated Product",
			Price:     175000,
			Category:  "Furniture",
			CreatedAt: time.Now().Add(-time.Hour),
			UpdatedAt: time.Now(),
		}

		mock.ExpectPrepare("UPDATE products SET").
			ExpectExec().
			WithArgs(product.Name, nil, product.Price, product.Category, product.UpdatedAt, product.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		result, err := repo.Update(ctx, product)
		require.NoError(t, err)
		assert.Equal(t, int64(5), result.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update of missing row reports not found", func(t *testing.T) {
		product := &model.Product{
			ID:       99,
			Name:     "Ghost",
			Price:    1,
			Category: "Misc",
		}

		mock.ExpectPrepare("UPDATE products SET").
			ExpectExec().
			WithArgs(product.Name, nil, product.Price, product.Category, product.UpdatedAt, product.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		result, err := repo.Update(ctx, product)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, repository.ErrNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_DeleteByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		mock.ExpectPrepare("DELETE FROM products WHERE id = \\$1").
			ExpectExec().
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteByID(ctx, 5)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete of missing row reports not found", func(t *testing.T) {
		mock.ExpectPrepare("DELETE FROM products WHERE id = \\$1").
			ExpectExec().
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteByID(ctx, 99)
		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
