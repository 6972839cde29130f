package settlement

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/currency"
	"github.com/orderdesk/backend/internal/domain/order"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
	"github.com/orderdesk/backend/internal/domain/shipment"
)

// memberWeightKg is a member order's packaged weight in kilograms. Shipment
// aggregation keeps the exact grams/1000 value (3 decimal places) so member
// weights sum without drift; only fees are rounded.
func memberWeightKg(o *order.Order) decimal.Decimal {
	var weight valueobject.Weight
	for i := range o.Items {
		it := &o.Items[i]
		weight = weight.Add(itemWeight(it).MultiplyByInt(it.Quantity))
	}
	return weight.KgExact()
}

// memberAmountUZS is the sum of a member order's line amounts in the
// settlement currency
func memberAmountUZS(o *order.Order) decimal.Decimal {
	var total decimal.Decimal
	for i := range o.Items {
		it := &o.Items[i]
		if it.SellingPriceUZS != nil {
			total = total.Add(it.SellingPriceUZS.Mul(decimal.NewFromInt(it.Quantity)))
		}
	}
	return total
}

// itemsSummary is the short line-item description shown in shipment views
func itemsSummary(o *order.Order) string {
	names := make([]string, 0, len(o.Items))
	for i := range o.Items {
		if p := o.Items[i].Product; p != nil {
			names = append(names, p.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	if len(names) <= 2 {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s +%d more", names[0], len(names)-1)
}

// Build aggregates a shipment's member orders into shipment-level totals,
// composing the per-order figures with the shared rate snapshot. When rates
// are unavailable the local-currency fees degrade to zero; weights and order
// amounts are still reported.
func Build(s *shipment.Shipment, rates currency.Snapshot) ShipmentTotals {
	t := ShipmentTotals{
		Orders: make([]ShipmentOrderTotals, 0, len(s.Orders)),
	}

	customers := make(map[uuid.UUID]struct{})

	for _, member := range s.Orders {
		o := member.Order
		if o == nil {
			continue
		}

		weightKg := memberWeightKg(o)
		amountUZS := memberAmountUZS(o)
		t.TotalWeightKg = t.TotalWeightKg.Add(weightKg)
		t.TotalOrdersUZS = t.TotalOrdersUZS.Add(amountUZS)
		if o.CustomerID != nil {
			customers[*o.CustomerID] = struct{}{}
		}

		feeUZS := decimal.Zero
		if rates.Available() {
			feeUZS = valueobject.NewMoneyUSD(weightKg.Mul(BusinessCargoRateUSD)).
				Convert(rates.USDToLocal, valueobject.UZS).Amount()
		}

		row := ShipmentOrderTotals{
			OrderID:        o.ID,
			OrderNumber:    o.OrderNumber,
			Status:         o.Status,
			ItemsSummary:   itemsSummary(o),
			AmountUZS:      amountUZS,
			WeightKg:       weightKg,
			ShippingFeeUZS: feeUZS,
			OrderTotalUZS:  amountUZS.Add(feeUZS),
		}
		if o.Customer != nil {
			row.CustomerName = o.Customer.Name
		}
		t.Orders = append(t.Orders, row)
	}

	t.OrderCount = len(t.Orders)
	t.CustomerCount = len(customers)
	t.ShipmentFeeUSD = t.TotalWeightKg.Mul(BusinessCargoRateUSD)
	if rates.Available() {
		t.ShipmentFeeUZS = valueobject.NewMoneyUSD(t.ShipmentFeeUSD).
			Convert(rates.USDToLocal, valueobject.UZS).Amount()
	}
	t.GrandTotalUZS = t.TotalOrdersUZS.Add(t.ShipmentFeeUZS)

	return t
}
