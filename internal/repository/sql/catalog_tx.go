package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/KalyaKKK/tugas5-jda/internal/model"
)

// CatalogTxRunner commits product mutations and their outbox events in a
// single transaction, implementing repository.CatalogTx.
type CatalogTxRunner struct {
	db *sql.DB
}

// NewCatalogTxRunner creates a new CatalogTxRunner.
func NewCatalogTxRunner(db *sql.DB) *CatalogTxRunner {
	return &CatalogTxRunner{db: db}
}

// CreateProductWithEvent inserts a product and its outbox event in one
// transaction. makeEvent runs after the insert so it can read the assigned ID.
func (tr *CatalogTxRunner) CreateProductWithEvent(ctx context.Context, product *model.Product, makeEvent func(*model.Product) (*model.Event, error)) (*model.Product, error) {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	productRepo := &ProductRepository{db: tr.db, txn: tx}
	eventRepo := &EventRepository{db: tr.db, txn: tx}

	created, err := productRepo.Create(ctx, product)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	event, err := makeEvent(created)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to build event: %w", err)
	}

	if _, err = eventRepo.Create(ctx, event); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return created, nil
}

// UpdateProductWithEvent updates a product and records the update event in one
// transaction.
func (tr *CatalogTxRunner) UpdateProductWithEvent(ctx context.Context, product *model.Product, event *model.Event) (*model.Product, error) {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	productRepo := &ProductRepository{db: tr.db, txn: tx}
	eventRepo := &EventRepository{db: tr.db, txn: tx}

	updated, err := productRepo.Update(ctx, product)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if _, err = eventRepo.Create(ctx, event); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

// DeleteProductWithEvent deletes a product and records the deletion event in
// one transaction.
func (tr *CatalogTxRunner) DeleteProductWithEvent(ctx context.Context, product *model.Product, event *model.Event) error {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	productRepo := &ProductRepository{db: tr.db, txn: tx}
	eventRepo := &EventRepository{db: tr.db, txn: tx}

	if err := productRepo.DeleteByID(ctx, product.ID); err != nil {
		tx.Rollback()
		return err
	}

	if _, err = eventRepo.Create(ctx, event); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
