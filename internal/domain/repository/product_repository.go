package repository

import (
	"context"

	"armabazar/internal/domain/entity"
)

// ProductFilter narrows and orders a product listing query. Zero values mean
// "not filtered".
type ProductFilter struct {
	Category    string
	ListingType string
	Search      string
	Condition   string
	Location    string
	MinPrice    float64
	MaxPrice    float64
	Sort        string
	Limit       int
	Offset      int

	// IncludeInactive lifts the default is_active AND NOT is_sold restriction
	// for admin listings.
	IncludeInactive bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Product, int64, error)
	IncrementViews(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetSold(ctx context.Context, id string, sold bool) error
	Count(ctx context.Context, onlyActive bool) (int64, error)
}
