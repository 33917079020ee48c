package sql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KalyaKKK/tugas5-jda/internal/model"
)

func pendingEvent(eventType string) *model.Event {
	return &model.Event{
		EventType: eventType,
		EventData: []byte(`{"action":"test"}`),
		Status:    model.EventStatusPending,
	}
}

func TestCatalogTxRunner_CreateProductWithEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewCatalogTxRunner(db)
	ctx := context.Background()

	t.Run("commits product and event together", func(t *testing.T) {
		product := &model.Product{
			Name:     "Chair",
			Price:    150000,
			Category: "Furniture",
		}

		mock.ExpectBegin()
		mock.ExpectPrepare("INSERT INTO products").
			ExpectQuery().
			WithArgs(product.Name, nil, product.Price, product.Category, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
		mock.ExpectPrepare("INSERT INTO events").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), model.EventTypeProductCreated, sqlmock.AnyArg(), "pending", sqlmock.AnyArg(), nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		var eventProductID int64
		created, err := runner.CreateProductWithEvent(ctx, product, func(p *model.Product) (*model.Event, error) {
			eventProductID = p.ID
			return pendingEvent(model.EventTypeProductCreated), nil
		})
		require.NoError(t, err)

		assert.Equal(t, int64(11), created.ID)
		assert.Equal(t, int64(11), eventProductID, "event callback must see the assigned id")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when event insert fails", func(t *testing.T) {
		product := &model.Product{
			Name:     "Chair",
			Price:    150000,
			Category: "Furniture",
		}

		mock.ExpectBegin()
		mock.ExpectPrepare("INSERT INTO products").
			ExpectQuery().
			WithArgs(product.Name, nil, product.Price, product.Category, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
		mock.ExpectPrepare("INSERT INTO events").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), model.EventTypeProductCreated, sqlmock.AnyArg(), "pending", sqlmock.AnyArg(), nil).
			WillReturnError(errors.New("insert failed"))
		mock.ExpectRollback()

		created, err := runner.CreateProductWithEvent(ctx, product, func(p *model.Product) (*model.Event, error) {
			return pendingEvent(model.EventTypeProductCreated), nil
		})
		require.Error(t, err)
		assert.Nil(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCatalogTxRunner_UpdateProductWithEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewCatalogTxRunner(db)
	ctx := context.Background()

	t.Run("commits update and event together", func(t *testing.T) {
		product := &model.Product{
			ID:        11,
			Name:      "Chair",
			Price:     175000,
			Category:  "Furniture",
			CreatedAt: time.Now().Add(-time.Hour),
			UpdatedAt: time.Now(),
		}

		mock.ExpectBegin()
		mock.ExpectPrepare("UPDATE products SET").
			ExpectExec().
			WithArgs(product.Name, nil, product.Price, product.Category, product.UpdatedAt, product.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectPrepare("INSERT INTO events").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), model.EventTypeProductUpdated, sqlmock.AnyArg(), "pending", sqlmock.AnyArg(), nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		updated, err := runner.UpdateProductWithEvent(ctx, product, pendingEvent(model.EventTypeProductUpdated))
		require.NoError(t, err)
		assert.Equal(t, int64(11), updated.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCatalogTxRunner_DeleteProductWithEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewCatalogTxRunner(db)
	ctx := context.Background()

	t.Run("commits delete and event together", func(t *testing.T) {
		product := &model.Product{ID: 11, Name: "Chair", Price: 175000, Category: "Furniture"}

		mock.ExpectBegin()
		mock.ExpectPrepare("DELETE FROM products WHERE id = \\$1").
			ExpectExec().
			WithArgs(product.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectPrepare("INSERT INTO events").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), model.EventTypeProductDeleted, sqlmock.AnyArg(), "pending", sqlmock.AnyArg(), nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := runner.DeleteProductWithEvent(ctx, product, pendingEvent(model.EventTypeProductDeleted))
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when product is already gone", func(t *testing.T) {
		product := &model.Product{ID: 99, Name: "Ghost", Category: "Misc"}

		mock.ExpectBegin()
		mock.ExpectPrepare("DELETE FROM products WHERE id = \\$1").
			ExpectExec().
			WithArgs(product.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := runner.DeleteProductWithEvent(ctx, product, pendingEvent(model.EventTypeProductDeleted))
		require.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
