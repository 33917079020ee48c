package model

import "time"

// Product represents a catalog item persisted in the products table.
type Product struct {
	ID          int64
	Name        string
	Description *string
	Price       float64
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InitMeta initializes the product timestamps. The ID is assigned by the
// database on insert.
func (p *Product) InitMeta() {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}

// Touch refreshes the updated timestamp before a mutation is persisted.
func (p *Product) Touch() {
	p.UpdatedAt = time.Now()
}
