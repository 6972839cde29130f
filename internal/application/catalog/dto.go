package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a product. Selling
// prices may be omitted; they are then derived from the cost price via the
// current exchange rates.
type CreateProductRequest struct {
	Name            string                `json:"name" binding:"required,min=1,max=200"`
	Brand           string                `json:"brand" binding:"max=100"`
	CategoryID      *uuid.UUID            `json:"category_id"`
	CategoryName    string                `json:"category_name"`
	CostPrice       *decimal.Decimal      `json:"cost_price"`
	SellingPriceUSD *decimal.Decimal      `json:"selling_price_usd"`
	SellingPriceUZS *decimal.Decimal      `json:"selling_price_uzs"`
	WeightGrams     *int64                `json:"weight_grams"`
	StockStatus     *catalog.StockStatus  `json:"stock_status"`
	AttributeValues []AttributeValueInput `json:"attribute_values" binding:"omitempty,dive"`
}

// AttributeValueInput binds one attribute value on a product write
type AttributeValueInput struct {
	AttributeID uuid.UUID `json:"attribute_id" binding:"required"`
	Value       string    `json:"value" binding:"required,max=255"`
}

// UpdateProductRequest represents a partial product update. A changed cost
// price re-derives the selling prices unless explicit prices accompany it.
// A non-nil AttributeValues replaces the full value set; nil leaves it alone.
type UpdateProductRequest struct {
	Name            *string               `json:"name" binding:"omitempty,min=1,max=200"`
	Brand           *string               `json:"brand" binding:"omitempty,max=100"`
	CategoryID      *uuid.UUID            `json:"category_id"`
	CostPrice       *decimal.Decimal      `json:"cost_price"`
	SellingPriceUSD *decimal.Decimal      `json:"selling_price_usd"`
	SellingPriceUZS *decimal.Decimal      `json:"selling_price_uzs"`
	WeightGrams     *int64                `json:"weight_grams"`
	StockStatus     *catalog.StockStatus  `json:"stock_status"`
	IsActive        *bool                 `json:"is_active"`
	AttributeValues []AttributeValueInput `json:"attribute_values" binding:"omitempty,dive"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	CategoryID *uuid.UUID `form:"category_id"`
	Brand      *string    `form:"brand"`
	IsActive   *bool      `form:"is_active"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID           `json:"id"`
	Name            string              `json:"name"`
	Brand           string              `json:"brand,omitempty"`
	CategoryID      *uuid.UUID          `json:"category_id,omitempty"`
	CategoryName    string              `json:"category_name,omitempty"`
	CostPrice       *decimal.Decimal    `json:"cost_price,omitempty"`
	SellingPriceUSD *decimal.Decimal    `json:"selling_price_usd,omitempty"`
	SellingPriceUZS *decimal.Decimal    `json:"selling_price_uzs,omitempty"`
	WeightGrams     *int64              `json:"weight_grams,omitempty"`
	StockStatus     catalog.StockStatus `json:"stock_status"`
	IsActive        bool                `json:"is_active"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`

	AttributeValues []AttributeValueResponse `json:"attribute_values,omitempty"`
}

// AttributeValueResponse represents one attribute value on a product
type AttributeValueResponse struct {
	AttributeID   uuid.UUID `json:"attribute_id"`
	AttributeName string    `json:"attribute_name,omitempty"`
	Value         string    `json:"value"`
}

// ProductListResponse wraps a page of products
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateCategoryRequest represents a request to rename a category
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateCategoryAttributeRequest represents a request to add an attribute to
// a category
type CreateCategoryAttributeRequest struct {
	AttributeName string `json:"attribute_name" binding:"required,min=1,max=100"`
	SortOrder     int    `json:"sort_order"`
}

// UpdateCategoryAttributeRequest represents a request to rename or reorder a
// category attribute
type UpdateCategoryAttributeRequest struct {
	AttributeName string `json:"attribute_name" binding:"required,min=1,max=100"`
	SortOrder     int    `json:"sort_order"`
}

// CategoryAttributeResponse represents a category attribute in API responses
type CategoryAttributeResponse struct {
	ID            uuid.UUID `json:"id"`
	CategoryID    uuid.UUID `json:"category_id"`
	AttributeName string    `json:"attribute_name"`
	SortOrder     int       `json:"sort_order"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID         uuid.UUID                   `json:"id"`
	Name       string                      `json:"name"`
	Attributes []CategoryAttributeResponse `json:"attributes"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

// ToProductResponse converts a product to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Brand:           p.Brand,
		CategoryID:      p.CategoryID,
		CostPrice:       p.CostPrice,
		SellingPriceUSD: p.SellingPriceUSD,
		SellingPriceUZS: p.SellingPriceUZS,
		WeightGrams:     p.WeightGrams,
		StockStatus:     p.StockStatus,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	for i := range p.AttributeValues {
		v := &p.AttributeValues[i]
		row := AttributeValueResponse{
			AttributeID: v.AttributeID,
			Value:       v.Value,
		}
		if v.Attribute != nil {
			row.AttributeName = v.Attribute.AttributeName
		}
		resp.AttributeValues = append(resp.AttributeValues, row)
	}
	return resp
}

// ToCategoryResponse converts a category to its response form
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	attributes := make([]CategoryAttributeResponse, 0, len(c.Attributes))
	for i := range c.Attributes {
		attributes = append(attributes, ToCategoryAttributeResponse(&c.Attributes[i]))
	}
	return CategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		Attributes: attributes,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToCategoryAttributeResponse converts an attribute to its response form
func ToCategoryAttributeResponse(a *catalog.CategoryAttribute) CategoryAttributeResponse {
	return CategoryAttributeResponse{
		ID:            a.ID,
		CategoryID:    a.CategoryID,
		AttributeName: a.AttributeName,
		SortOrder:     a.SortOrder,
	}
}
