package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/application/settlement"
	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/order"
)

// OrderItemInput is one order line in a create or update request. A line
// either references an existing product by ID or describes a new product
// inline; per-line cost, prices and weight override whatever the product
// carries.
type OrderItemInput struct {
	ProductID *uuid.UUID `json:"product_id"`

	// Inline product fields, used when ProductID is absent
	ProductName  string     `json:"product_name"`
	Brand        string     `json:"brand"`
	CategoryID   *uuid.UUID `json:"category_id"`
	CategoryName string     `json:"category_name"`

	Quantity        int64            `json:"quantity" binding:"required,min=1"`
	CostPrice       *decimal.Decimal `json:"cost_price"`
	SellingPriceUSD *decimal.Decimal `json:"selling_price_usd"`
	SellingPriceUZS *decimal.Decimal `json:"selling_price_uzs"`
	WeightGrams     *int64           `json:"weight_grams"`
}

// CreateOrderRequest represents a request to create an order. The customer is
// either referenced by ID or described inline by name and contact fields.
type CreateOrderRequest struct {
	CustomerID      *uuid.UUID `json:"customer_id"`
	CustomerName    string     `json:"customer_name"`
	CustomerCity    string     `json:"customer_city"`
	CustomerAddress string     `json:"customer_address"`
	CustomerPhone   string     `json:"customer_phone"`

	OrderDate     *time.Time           `json:"order_date"`
	Status        *order.Status        `json:"status"`
	PaymentStatus *order.PaymentStatus `json:"payment_status"`
	ServiceFee    *decimal.Decimal     `json:"service_fee"`
	PaidCard      *decimal.Decimal     `json:"paid_card"`
	PaidCash      *decimal.Decimal     `json:"paid_cash"`
	Notes         string               `json:"notes"`

	Items []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest represents a partial update. Nil fields are left
// unchanged; a non-nil Items slice replaces the full line set and must not be
// empty.
type UpdateOrderRequest struct {
	CustomerID    *uuid.UUID           `json:"customer_id"`
	OrderDate     *time.Time           `json:"order_date"`
	Status        *order.Status        `json:"status"`
	PaymentStatus *order.PaymentStatus `json:"payment_status"`
	ServiceFee    *decimal.Decimal     `json:"service_fee"`
	PaidCard      *decimal.Decimal     `json:"paid_card"`
	PaidCash      *decimal.Decimal     `json:"paid_cash"`
	Notes         *string              `json:"notes"`

	Items []OrderItemInput `json:"items" binding:"omitempty,min=1,dive"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Status        *order.Status        `form:"status"`
	PaymentStatus *order.PaymentStatus `form:"payment_status"`
	CustomerID    *uuid.UUID           `form:"customer_id"`
	DateFrom      *time.Time           `form:"date_from"`
	DateTo        *time.Time           `form:"date_to"`
	SortBy        string               `form:"sort_by" binding:"omitempty,oneof=order_date status shipping_number customer_name"`
	SortDir       string               `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
	Page          int                  `form:"page" binding:"omitempty,min=1"`
	PageSize      int                  `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderItemResponse represents one order line in a response.
// ProductAttributes is the product's attribute values rendered as a single
// "Name: value" list for display.
type OrderItemResponse struct {
	ID                uuid.UUID        `json:"id"`
	ProductID         *uuid.UUID       `json:"product_id,omitempty"`
	ProductName       string           `json:"product_name,omitempty"`
	ProductAttributes string           `json:"product_attributes,omitempty"`
	Quantity          int64            `json:"quantity"`
	CostPrice         *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPriceUSD   *decimal.Decimal `json:"selling_price_usd,omitempty"`
	SellingPriceUZS   *decimal.Decimal `json:"selling_price_uzs,omitempty"`
	WeightGrams       *int64           `json:"weight_grams,omitempty"`
}

// OrderResponse represents an order with its settlement figures. The embedded
// totals are flattened into the JSON object; when the settlement lock is
// engaged, total_price_uzs carries the frozen final amount.
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	OrderNumber    string              `json:"order_number"`
	CustomerID     *uuid.UUID          `json:"customer_id,omitempty"`
	CustomerName   string              `json:"customer_name,omitempty"`
	CustomerPhone  string              `json:"customer_phone,omitempty"`
	OrderDate      time.Time           `json:"order_date"`
	Status         order.Status        `json:"status"`
	PaymentStatus  order.PaymentStatus `json:"payment_status"`
	ServiceFee     decimal.Decimal     `json:"service_fee"`
	PaidCard       decimal.Decimal     `json:"paid_card"`
	PaidCash       decimal.Decimal     `json:"paid_cash"`
	FinalAmountUZS *decimal.Decimal    `json:"final_amount_uzs,omitempty"`
	ShippingNumber *string             `json:"shipping_number,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	Items          []OrderItemResponse `json:"items"`

	settlement.OrderTotals

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderListResponse wraps a page of orders
type OrderListResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ToOrderItemResponse converts an order line to its response form
func ToOrderItemResponse(it *order.Item) OrderItemResponse {
	resp := OrderItemResponse{
		ID:              it.ID,
		ProductID:       it.ProductID,
		Quantity:        it.Quantity,
		CostPrice:       it.CostPrice,
		SellingPriceUSD: it.SellingPriceUSD,
		SellingPriceUZS: it.SellingPriceUZS,
		WeightGrams:     it.WeightGrams,
	}
	if it.Product != nil {
		resp.ProductName = it.Product.Name
		resp.ProductAttributes = formatProductAttributes(it.Product)
	}
	return resp
}

// formatProductAttributes renders a product's attribute values as
// "Name: value" pairs joined with commas, or "" when it has none
func formatProductAttributes(p *catalog.Product) string {
	if len(p.AttributeValues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.AttributeValues))
	for i := range p.AttributeValues {
		v := &p.AttributeValues[i]
		if v.Attribute == nil {
			continue
		}
		parts = append(parts, v.Attribute.AttributeName+": "+v.Value)
	}
	return strings.Join(parts, ", ")
}

// ToOrderResponse converts an order and its settlement totals to response form
func ToOrderResponse(o *order.Order, totals settlement.OrderTotals) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, ToOrderItemResponse(&o.Items[i]))
	}
	resp := OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerID:     o.CustomerID,
		OrderDate:      o.OrderDate,
		Status:         o.Status,
		PaymentStatus:  o.PaymentStatus,
		ServiceFee:     o.ServiceFeeOrDefault(),
		PaidCard:       o.PaidCard,
		PaidCash:       o.PaidCash,
		FinalAmountUZS: o.FinalAmountUZS,
		ShippingNumber: o.ShippingNumber,
		Notes:          o.Notes,
		Items:          items,
		OrderTotals:    totals,
		Version:        o.Version,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.Customer != nil {
		resp.CustomerName = o.Customer.Name
		resp.CustomerPhone = o.Customer.Phone
	}
	return resp
}
