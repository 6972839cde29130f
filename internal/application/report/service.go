package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/application/settlement"
	"github.com/orderdesk/backend/internal/domain/currency"
	"github.com/orderdesk/backend/internal/domain/order"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
	"github.com/orderdesk/backend/internal/domain/shipment"
)

// ReportService aggregates settlement figures across orders. All views
// compose the same per-order settlement computation, so a figure shown on the
// dashboard always matches the same order's detail view.
type ReportService struct {
	orders    order.Repository
	shipments shipment.Repository
	rates     currency.Source
}

// NewReportService creates a new ReportService
func NewReportService(orders order.Repository, shipments shipment.Repository, rates currency.Source) *ReportService {
	return &ReportService{orders: orders, shipments: shipments, rates: rates}
}

// Metrics returns the dashboard headline figures
func (s *ReportService) Metrics(ctx context.Context, filter DateRangeFilter) (*DashboardMetrics, error) {
	orders, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := settlement.Summarize(orders, s.rates.Current(ctx))
	m := DashboardMetrics{
		TotalOrders:     int64(len(orders)),
		TotalRevenueUSD: summary.TotalRevenueUSD,
		GrossProfitUSD:  summary.GrossProfitUSD,
		TotalUnpaidUZS:  summary.TotalUnpaidUZS,
	}
	for i := range orders {
		switch orders[i].Status {
		case order.StatusPending:
			m.PendingOrders++
		case order.StatusCompleted:
			m.CompletedOrders++
		}
	}
	return &m, nil
}

// ProfitSummary returns the store-wide revenue, cost and profit picture
func (s *ReportService) ProfitSummary(ctx context.Context, filter DateRangeFilter) (*settlement.ProfitSummary, error) {
	orders, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	summary := settlement.Summarize(orders, s.rates.Current(ctx))
	return &summary, nil
}

// UnpaidOrders returns every order with an outstanding balance
func (s *ReportService) UnpaidOrders(ctx context.Context) ([]settlement.UnpaidOrder, error) {
	orders, err := s.load(ctx, DateRangeFilter{})
	if err != nil {
		return nil, err
	}
	return settlement.UnpaidOrders(orders, s.rates.Current(ctx)), nil
}

// SalesOverTime returns one point per day for the last days days, oldest
// first. Days without orders appear with zero figures so charts do not skip
// them.
func (s *ReportService) SalesOverTime(ctx context.Context, days int) ([]SalesPoint, error) {
	if days <= 0 {
		days = 30
	}
	now := time.Now()
	from := now.AddDate(0, 0, -(days - 1))
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	orders, err := s.load(ctx, DateRangeFilter{DateFrom: &start})
	if err != nil {
		return nil, err
	}

	rates := s.rates.Current(ctx)
	type bucket struct {
		count   int
		revenue decimal.Decimal
	}
	buckets := make(map[string]*bucket, days)
	for i := range orders {
		key := orders[i].OrderDate.Format("2006-01-02")
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.count++
		if t := settlement.Settle(&orders[i], rates); t.TotalPriceUZS != nil {
			b.revenue = b.revenue.Add(*t.TotalPriceUZS)
		}
	}

	points := make([]SalesPoint, 0, days)
	for d := 0; d < days; d++ {
		key := start.AddDate(0, 0, d).Format("2006-01-02")
		point := SalesPoint{Date: key, RevenueUZS: decimal.Zero}
		if b := buckets[key]; b != nil {
			point.OrderCount = b.count
			point.RevenueUZS = b.revenue
		}
		points = append(points, point)
	}
	return points, nil
}

// TopProducts returns the best-selling products by quantity
func (s *ReportService) TopProducts(ctx context.Context, limit int, filter DateRangeFilter) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}
	orders, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]*TopProduct)
	for i := range orders {
		for j := range orders[i].Items {
			it := &orders[i].Items[j]
			if it.ProductID == nil {
				continue
			}
			row := totals[*it.ProductID]
			if row == nil {
				row = &TopProduct{ProductID: *it.ProductID, RevenueUSD: decimal.Zero}
				if it.Product != nil {
					row.ProductName = it.Product.Name
				}
				totals[*it.ProductID] = row
			}
			row.QuantitySold += it.Quantity
			if it.SellingPriceUSD != nil {
				row.RevenueUSD = row.RevenueUSD.Add(it.SellingPriceUSD.Mul(decimal.NewFromInt(it.Quantity)))
			}
		}
	}

	rows := make([]TopProduct, 0, len(totals))
	for _, row := range totals {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].QuantitySold != rows[b].QuantitySold {
			return rows[a].QuantitySold > rows[b].QuantitySold
		}
		return rows[a].ProductName < rows[b].ProductName
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// StatusSummary buckets all orders by fulfilment and payment state
func (s *ReportService) StatusSummary(ctx context.Context, filter DateRangeFilter) (*OrderStatusSummary, error) {
	orders, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[order.Status]int64)
	byPayment := make(map[order.PaymentStatus]int64)
	for i := range orders {
		byStatus[orders[i].Status]++
		byPayment[orders[i].PaymentStatus]++
	}

	summary := OrderStatusSummary{
		ByStatus:        make([]StatusCount, 0, len(statusOrder)),
		ByPaymentStatus: make([]StatusCount, 0, len(paymentStatusOrder)),
	}
	for _, st := range statusOrder {
		summary.ByStatus = append(summary.ByStatus, StatusCount{Status: st.String(), Count: byStatus[st]})
	}
	for _, ps := range paymentStatusOrder {
		summary.ByPaymentStatus = append(summary.ByPaymentStatus, StatusCount{Status: ps.String(), Count: byPayment[ps]})
	}
	return &summary, nil
}

// MonthlyRevenue returns one point per month of the given year
func (s *ReportService) MonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenuePoint, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	orders, err := s.load(ctx, DateRangeFilter{DateFrom: &from, DateTo: &to})
	if err != nil {
		return nil, err
	}

	rates := s.rates.Current(ctx)
	points := make([]MonthlyRevenuePoint, 12)
	for m := 0; m < 12; m++ {
		points[m] = MonthlyRevenuePoint{
			Month:      fmt.Sprintf("%04d-%02d", year, m+1),
			RevenueUZS: decimal.Zero,
			RevenueUSD: decimal.Zero,
		}
	}
	for i := range orders {
		if orders[i].OrderDate.Year() != year {
			continue
		}
		m := int(orders[i].OrderDate.Month()) - 1
		points[m].OrderCount++
		t := settlement.Settle(&orders[i], rates)
		if t.TotalPriceUZS != nil {
			points[m].RevenueUZS = points[m].RevenueUZS.Add(*t.TotalPriceUZS)
		}
		if t.TotalPriceUSD != nil {
			points[m].RevenueUSD = points[m].RevenueUSD.Add(*t.TotalPriceUSD)
		}
	}
	return points, nil
}

// ShipmentCosts returns the per-shipment cargo cost view at the carrier rate
func (s *ReportService) ShipmentCosts(ctx context.Context) ([]ShipmentCost, error) {
	shipments, err := s.loadShipments(ctx)
	if err != nil {
		return nil, err
	}

	rates := s.rates.Current(ctx)
	rows := make([]ShipmentCost, 0, len(shipments))
	for i := range shipments {
		sh := &shipments[i]
		t := settlement.Build(sh, rates)
		rows = append(rows, ShipmentCost{
			ShipmentID:     sh.ID,
			ShipmentNumber: sh.ShipmentNumber,
			Status:         string(sh.Status),
			OrderCount:     t.OrderCount,
			TotalWeightKg:  t.TotalWeightKg,
			CargoCostUSD:   t.ShipmentFeeUSD,
			CargoCostUZS:   t.ShipmentFeeUZS,
		})
	}
	return rows, nil
}

// ShipmentRevenue returns the per-shipment revenue view: member order amounts
// plus cargo charged at the customer rate. With rates down the cargo charge
// degrades to zero and only the order amounts are reported.
func (s *ReportService) ShipmentRevenue(ctx context.Context) ([]ShipmentRevenue, error) {
	shipments, err := s.loadShipments(ctx)
	if err != nil {
		return nil, err
	}

	rates := s.rates.Current(ctx)
	rows := make([]ShipmentRevenue, 0, len(shipments))
	for i := range shipments {
		sh := &shipments[i]
		t := settlement.Build(sh, rates)

		charged := decimal.Zero
		if rates.Available() {
			charged = valueobject.NewMoneyUSD(t.TotalWeightKg.Mul(settlement.CustomerCargoRateUSD)).
				Convert(rates.USDToLocal, valueobject.UZS).Amount()
		}

		rows = append(rows, ShipmentRevenue{
			ShipmentID:      sh.ID,
			ShipmentNumber:  sh.ShipmentNumber,
			OrderCount:      t.OrderCount,
			OrdersTotalUZS:  t.TotalOrdersUZS,
			CargoChargedUZS: charged,
			TotalRevenueUZS: t.TotalOrdersUZS.Add(charged),
		})
	}
	return rows, nil
}

// loadShipments fetches every shipment with members resolved, unpaginated
func (s *ReportService) loadShipments(ctx context.Context) ([]shipment.Shipment, error) {
	shipments, _, err := s.shipments.FindAll(ctx, shipment.Filter{})
	return shipments, err
}

// load fetches every order in the window, unpaginated
func (s *ReportService) load(ctx context.Context, filter DateRangeFilter) ([]order.Order, error) {
	orders, _, err := s.orders.FindAll(ctx, order.Filter{
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
	})
	return orders, err
}
