package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductFilter narrows product listings
type ProductFilter struct {
	CategoryID *uuid.UUID
	Brand      *string
	IsActive   *bool
	Page       int
	PageSize   int
}

// ProductRepository defines the persistence interface for products.
// ReplaceAttributeValues swaps the product's full attribute value set in one
// step; an empty slice clears it.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceAttributeValues(ctx context.Context, productID uuid.UUID, values []ProductAttributeValue) error
}

// CategoryRepository defines the persistence interface for categories and
// their attributes
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	SaveAttribute(ctx context.Context, attribute *CategoryAttribute) error
	FindAttributeByID(ctx context.Context, id uuid.UUID) (*CategoryAttribute, error)
	DeleteAttribute(ctx context.Context, id uuid.UUID) error
}
