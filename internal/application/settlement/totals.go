package settlement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/order"
)

// Per-kilogram cargo rates in the pricing currency (USD). The business rate
// is what the carrier charges the store; the customer rate is what the store
// charges the customer.
var (
	BusinessCargoRateUSD = decimal.NewFromInt(12)
	CustomerCargoRateUSD = decimal.NewFromInt(13)
)

// OrderTotals is the flat settlement record for one order. Nil means the
// figure could not be computed from the available data (missing prices,
// missing weight, rates unavailable) - never silently zero. Every consumer
// (order detail, shipment detail, aggregate reports) reads the same record.
type OrderTotals struct {
	TotalCostKRW     *decimal.Decimal `json:"total_cost_krw,omitempty"`
	TotalAmountUZS   *decimal.Decimal `json:"total_amount_uzs,omitempty"`
	TotalSellingUSD  *decimal.Decimal `json:"total_selling_usd,omitempty"`
	TotalWeightKg    *decimal.Decimal `json:"total_weight_kg,omitempty"`
	ShippingFeeUSD   *decimal.Decimal `json:"shipping_fee_usd,omitempty"`
	CustomerCargoUSD *decimal.Decimal `json:"customer_cargo_usd,omitempty"`
	ShippingFeeUZS   *decimal.Decimal `json:"shipping_fee_uzs,omitempty"`
	GrandTotalUZS    *decimal.Decimal `json:"grand_total_uzs,omitempty"`
	TotalPriceUSD    *decimal.Decimal `json:"total_price_usd,omitempty"`
	TotalPriceUZS    *decimal.Decimal `json:"total_price_uzs,omitempty"`
	UnpaidUZS        *decimal.Decimal `json:"unpaid_uzs,omitempty"`
}

// ShipmentOrderTotals is one member order's contribution to a shipment
type ShipmentOrderTotals struct {
	OrderID        uuid.UUID       `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	CustomerName   string          `json:"customer_name,omitempty"`
	Status         order.Status    `json:"status"`
	ItemsSummary   string          `json:"items_summary,omitempty"`
	AmountUZS      decimal.Decimal `json:"amount_uzs"`
	WeightKg       decimal.Decimal `json:"weight_kg"`
	ShippingFeeUZS decimal.Decimal `json:"shipping_fee_uzs"`
	OrderTotalUZS  decimal.Decimal `json:"order_total_uzs"`
}

// ShipmentTotals aggregates a shipment's member orders
type ShipmentTotals struct {
	OrderCount     int                   `json:"order_count"`
	CustomerCount  int                   `json:"customer_count"`
	TotalWeightKg  decimal.Decimal       `json:"total_weight_kg"`
	ShipmentFeeUSD decimal.Decimal       `json:"shipment_fee_usd"`
	ShipmentFeeUZS decimal.Decimal       `json:"shipment_fee_uzs"`
	TotalOrdersUZS decimal.Decimal       `json:"total_orders_uzs"`
	GrandTotalUZS  decimal.Decimal       `json:"grand_total_uzs"`
	Orders         []ShipmentOrderTotals `json:"orders"`
}

// ProfitSummary is the store-wide revenue/cost/profit picture
type ProfitSummary struct {
	TotalSellingUSD       decimal.Decimal `json:"total_selling_usd"`
	TotalServiceFeeUSD    decimal.Decimal `json:"total_service_fee_usd"`
	TotalWeightKg         decimal.Decimal `json:"total_weight_kg"`
	TotalCustomerCargoUSD decimal.Decimal `json:"total_customer_cargo_usd"`
	TotalBusinessCargoUSD decimal.Decimal `json:"total_business_cargo_usd"`
	TotalRevenueUSD       decimal.Decimal `json:"total_revenue_usd"`
	TotalCostUSD          decimal.Decimal `json:"total_cost_usd"`
	GrossProfitUSD        decimal.Decimal `json:"gross_profit_usd"`
	TotalUnpaidUZS        decimal.Decimal `json:"total_unpaid_uzs"`
}

// UnpaidOrder is one row of the outstanding-balance view
type UnpaidOrder struct {
	OrderID       uuid.UUID           `json:"order_id"`
	OrderNumber   string              `json:"order_number"`
	CustomerName  string              `json:"customer_name,omitempty"`
	PaymentStatus order.PaymentStatus `json:"payment_status"`
	TotalUZS      decimal.Decimal     `json:"total_uzs"`
	PaidUZS       decimal.Decimal     `json:"paid_uzs"`
	UnpaidUZS     decimal.Decimal     `json:"unpaid_uzs"`
}
