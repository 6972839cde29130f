package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// StockStatus represents the sourcing state of a product
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusPreOrder   StockStatus = "pre_order"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// IsValid checks if the status is a valid StockStatus
func (s StockStatus) IsValid() bool {
	switch s {
	case StockStatusInStock, StockStatusPreOrder, StockStatusOutOfStock:
		return true
	}
	return false
}

// Product is a sellable item. Cost price is denominated in the sourcing
// currency (KRW); selling prices in the pricing (USD) and settlement (UZS)
// currencies are derived from the cost price via the live exchange rates and
// may be absent while rates are unavailable.
type Product struct {
	shared.BaseEntity
	Name            string           `gorm:"size:200;not null"`
	Brand           string           `gorm:"size:100"`
	CategoryID      *uuid.UUID       `gorm:"type:uuid;index"`
	CostPrice       *decimal.Decimal `gorm:"type:numeric(12,2)"`
	SellingPriceUSD *decimal.Decimal `gorm:"type:numeric(12,2)"`
	SellingPriceUZS *decimal.Decimal `gorm:"type:numeric(14,2)"`
	WeightGrams     *int64
	StockStatus     StockStatus `gorm:"size:20;not null;default:in_stock"`
	IsActive        bool        `gorm:"not null;default:true"`

	Category        *Category               `gorm:"foreignKey:CategoryID"`
	AttributeValues []ProductAttributeValue `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		StockStatus: StockStatusInStock,
		IsActive:    true,
	}, nil
}

// SetCostPrice sets the sourcing cost price
func (p *Product) SetCostPrice(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	p.CostPrice = &cost
	return nil
}

// SetSellingPrices sets both customer-facing prices. Either may be nil while
// rates are unavailable; a known price is never overwritten with nil.
func (p *Product) SetSellingPrices(usd, uzs *decimal.Decimal) error {
	if usd != nil {
		if usd.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
		}
		p.SellingPriceUSD = usd
	}
	if uzs != nil {
		if uzs.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
		}
		p.SellingPriceUZS = uzs
	}
	return nil
}

// SetWeightGrams sets the packaged weight
func (p *Product) SetWeightGrams(grams int64) error {
	if grams < 0 {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	p.WeightGrams = &grams
	return nil
}

// SetStockStatus updates the sourcing state
func (p *Product) SetStockStatus(status StockStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STOCK_STATUS", "Unknown stock status")
	}
	p.StockStatus = status
	return nil
}

// Deactivate hides the product from active listings
func (p *Product) Deactivate() {
	p.IsActive = false
}
