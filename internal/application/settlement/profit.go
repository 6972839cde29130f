package settlement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/currency"
	"github.com/orderdesk/backend/internal/domain/order"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
)

// Summarize computes the store-wide profit picture across all orders,
// regardless of status. Selling and cost figures sum every line item; service
// fees and packaged weight sum every order. When rates are unavailable the
// cost conversion and gross profit report zero rather than a partial figure.
func Summarize(orders []order.Order, rates currency.Snapshot) ProfitSummary {
	var s ProfitSummary

	var costKRW decimal.Decimal
	var weight valueobject.Weight

	for i := range orders {
		o := &orders[i]
		s.TotalServiceFeeUSD = s.TotalServiceFeeUSD.Add(o.ServiceFeeOrDefault())
		for j := range o.Items {
			it := &o.Items[j]
			qty := decimal.NewFromInt(it.Quantity)
			if it.SellingPriceUSD != nil {
				s.TotalSellingUSD = s.TotalSellingUSD.Add(it.SellingPriceUSD.Mul(qty))
			}
			if it.CostPrice != nil {
				costKRW = costKRW.Add(it.CostPrice.Mul(qty))
			}
			weight = weight.Add(itemWeight(it).MultiplyByInt(it.Quantity))
		}
	}

	s.TotalWeightKg = weight.Kg(2)
	s.TotalCustomerCargoUSD = valueobject.RoundHalfUp2(s.TotalWeightKg.Mul(CustomerCargoRateUSD))
	s.TotalBusinessCargoUSD = valueobject.RoundHalfUp2(s.TotalWeightKg.Mul(BusinessCargoRateUSD))
	s.TotalRevenueUSD = valueobject.RoundHalfUp2(
		s.TotalSellingUSD.Add(s.TotalServiceFeeUSD).Add(s.TotalCustomerCargoUSD))

	if rates.Available() {
		s.TotalCostUSD = valueobject.NewMoneyKRW(costKRW).
			Convert(rates.SourceToUSD, valueobject.USD).Amount()
		s.GrossProfitUSD = valueobject.RoundHalfUp2(
			s.TotalRevenueUSD.Sub(s.TotalCostUSD).Sub(s.TotalBusinessCargoUSD))
	}

	for i := range orders {
		o := &orders[i]
		if o.PaymentStatus.IsFullyPaid() {
			continue
		}
		if t := Settle(o, rates); t.UnpaidUZS != nil {
			s.TotalUnpaidUZS = s.TotalUnpaidUZS.Add(*t.UnpaidUZS)
		}
	}

	return s
}

// UnpaidOrders builds the outstanding-balance view: every order not fully
// paid with a computable total, sorted by unpaid amount descending.
func UnpaidOrders(orders []order.Order, rates currency.Snapshot) []UnpaidOrder {
	rows := make([]UnpaidOrder, 0)
	for i := range orders {
		o := &orders[i]
		if o.PaymentStatus.IsFullyPaid() {
			continue
		}
		t := Settle(o, rates)
		if t.TotalPriceUZS == nil || t.UnpaidUZS == nil {
			continue
		}
		row := UnpaidOrder{
			OrderID:       o.ID,
			OrderNumber:   o.OrderNumber,
			PaymentStatus: o.PaymentStatus,
			TotalUZS:      *t.TotalPriceUZS,
			PaidUZS:       o.TotalPaid(),
			UnpaidUZS:     *t.UnpaidUZS,
		}
		if o.Customer != nil {
			row.CustomerName = o.Customer.Name
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].UnpaidUZS.GreaterThan(rows[b].UnpaidUZS)
	})
	return rows
}
