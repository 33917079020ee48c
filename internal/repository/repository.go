package repository

import (
	"context"
	"errors"

	"github.com/KalyaKKK/tugas5-jda/internal/model"
	"github.com/google/uuid"
)

// ErrNotFound is returned when the referenced row does not exist.
var ErrNotFound = errors.New("resource not found")

// ProductStore defines row-level access to the products table.
type ProductStore interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) (*model.Product, error)
	DeleteByID(ctx context.Context, id int64) error
}

// EventStore defines access to the outbox events table.
type EventStore interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	ListPending(ctx context.Context, limit int) ([]*model.Event, error)
	UpdateStatus(ctx context.Context, eventID uuid.UUID, status model.EventStatus) error
}

// CatalogTx commits a product mutation together with its outbox event in a
// single database transaction. Create receives the event through a callback
// because the product ID is not known until the insert returns.
type CatalogTx interface {
	CreateProductWithEvent(ctx context.Context, product *model.Product, makeEvent func(*model.Product) (*model.Event, error)) (*model.Product, error)
	UpdateProductWithEvent(ctx context.Context, product *model.Product, event *model.Event) (*model.Product, error)
	DeleteProductWithEvent(ctx context.Context, product *model.Product, event *model.Event) error
}
