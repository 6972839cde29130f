package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/order"
)

// DateRangeFilter bounds a report to an order-date window. Both ends are
// optional.
type DateRangeFilter struct {
	DateFrom *time.Time `form:"date_from"`
	DateTo   *time.Time `form:"date_to"`
}

// DashboardMetrics is the headline figure set for the dashboard
type DashboardMetrics struct {
	TotalOrders     int64           `json:"total_orders"`
	PendingOrders   int64           `json:"pending_orders"`
	CompletedOrders int64           `json:"completed_orders"`
	TotalRevenueUSD decimal.Decimal `json:"total_revenue_usd"`
	GrossProfitUSD  decimal.Decimal `json:"gross_profit_usd"`
	TotalUnpaidUZS  decimal.Decimal `json:"total_unpaid_uzs"`
}

// SalesPoint is one day of the sales-over-time series
type SalesPoint struct {
	Date       string          `json:"date"`
	OrderCount int             `json:"order_count"`
	RevenueUZS decimal.Decimal `json:"revenue_uzs"`
}

// TopProduct is one row of the best-sellers view
type TopProduct struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	RevenueUSD   decimal.Decimal `json:"revenue_usd"`
}

// StatusCount is one bucket of the order-status summary
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// OrderStatusSummary buckets orders by fulfilment and payment state
type OrderStatusSummary struct {
	ByStatus        []StatusCount `json:"by_status"`
	ByPaymentStatus []StatusCount `json:"by_payment_status"`
}

// MonthlyRevenuePoint is one month of the revenue-by-month view
type MonthlyRevenuePoint struct {
	Month      string          `json:"month"`
	OrderCount int             `json:"order_count"`
	RevenueUZS decimal.Decimal `json:"revenue_uzs"`
	RevenueUSD decimal.Decimal `json:"revenue_usd"`
}

// ShipmentCost is one row of the shipment-costs view: what each shipment
// costs the business in cargo fees at the carrier rate.
type ShipmentCost struct {
	ShipmentID     uuid.UUID       `json:"shipment_id"`
	ShipmentNumber string          `json:"shipment_number"`
	Status         string          `json:"status"`
	OrderCount     int             `json:"order_count"`
	TotalWeightKg  decimal.Decimal `json:"total_weight_kg"`
	CargoCostUSD   decimal.Decimal `json:"cargo_cost_usd"`
	CargoCostUZS   decimal.Decimal `json:"cargo_cost_uzs"`
}

// ShipmentRevenue is one row of the shipment-revenue view: what each shipment
// brings in, order amounts plus cargo charged at the customer rate.
type ShipmentRevenue struct {
	ShipmentID      uuid.UUID       `json:"shipment_id"`
	ShipmentNumber  string          `json:"shipment_number"`
	OrderCount      int             `json:"order_count"`
	OrdersTotalUZS  decimal.Decimal `json:"orders_total_uzs"`
	CargoChargedUZS decimal.Decimal `json:"cargo_charged_uzs"`
	TotalRevenueUZS decimal.Decimal `json:"total_revenue_uzs"`
}

// statusOrder fixes the bucket order in summaries so responses are stable
var statusOrder = []order.Status{
	order.StatusPending,
	order.StatusShipped,
	order.StatusReceived,
	order.StatusCompleted,
}

var paymentStatusOrder = []order.PaymentStatus{
	order.PaymentUnpaid,
	order.PaymentPrepayment,
	order.PaymentPartial,
	order.PaymentPaidCard,
	order.PaymentPaidCash,
}
