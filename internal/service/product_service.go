package service

import (
	"context"

	"github.com/KalyaKKK/tugas5-jda/internal/metrics"
	"github.com/KalyaKKK/tugas5-jda/internal/model"
	"github.com/KalyaKKK/tugas5-jda/internal/repository"
	"github.com/KalyaKKK/tugas5-jda/internal/sqs"
)

// ProductInput carries the mutable product fields supplied by the API layer,
// already validated and parsed.
type ProductInput struct {
	Name        string
	Description *string
	Price       float64
	Category    string
}

// ProductService implements the catalog use-cases. Every mutation writes the
// product row and a pending outbox event in a single transaction; the outbox
// worker delivers the events asynchronously.
type ProductService struct {
	products repository.ProductStore
	tx       repository.CatalogTx
}

// NewProductService creates a new ProductService with the given stores.
func NewProductService(products repository.ProductStore, tx repository.CatalogTx) *ProductService {
	return &ProductService{
		products: products,
		tx:       tx,
	}
}

// CreateProduct persists a new product together with its outbox event.
func (ps *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	product := &model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
	}
	product.InitMeta()

	created, err := ps.tx.CreateProductWithEvent(ctx, product, func(p *model.Product) (*model.Event, error) {
		return model.NewPendingEvent(model.EventTypeProductCreated, productMessage("created", p))
	})
	if err != nil {
		return nil, err
	}

	metrics.ProductsCreated.Inc()
	return created, nil
}

// GetProduct returns the product with the given ID.
func (ps *ProductService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return ps.products.FindByID(ctx, id)
}

// ListProducts returns all products, newest first.
func (ps *ProductService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return ps.products.List(ctx)
}

// UpdateProduct replaces the mutable fields of an existing product and
// refreshes its updated timestamp.
func (ps *ProductService) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*model.Product, error) {
	product, err := ps.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Category = in.Category
	product.Touch()

	event, err := model.NewPendingEvent(model.EventTypeProductUpdated, productMessage("updated", product))
	if err != nil {
		return nil, err
	}

	updated, err := ps.tx.UpdateProductWithEvent(ctx, product, event)
	if err != nil {
		return nil, err
	}

	metrics.ProductsUpdated.Inc()
	return updated, nil
}

// DeleteProduct removes a product permanently.
func (ps *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	// Find the product first to get its details for the message
	product, err := ps.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	event, err := model.NewPendingEvent(model.EventTypeProductDeleted, productMessage("deleted", product))
	if err != nil {
		return err
	}

	if err := ps.tx.DeleteProductWithEvent(ctx, product, event); err != nil {
		return err
	}

	metrics.ProductsDeleted.Inc()
	return nil
}

func productMessage(action string, p *model.Product) sqs.ProductMessage {
	return sqs.ProductMessage{
		Action:    action,
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
	}
}
