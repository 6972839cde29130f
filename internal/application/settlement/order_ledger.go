package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/currency"
	"github.com/orderdesk/backend/internal/domain/order"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
)

// itemWeight resolves a line's packaged weight: the per-line override wins,
// otherwise the referenced product's weight.
func itemWeight(it *order.Item) valueobject.Weight {
	var grams int64
	if it.WeightGrams != nil {
		grams = *it.WeightGrams
	} else if it.Product != nil && it.Product.WeightGrams != nil {
		grams = *it.Product.WeightGrams
	}
	w, err := valueobject.NewWeight(grams)
	if err != nil {
		return valueobject.ZeroWeight()
	}
	return w
}

// Settle computes the settlement record for one order from its items, its
// payments and the given rate snapshot. The computation is a pure function:
// the same order and snapshot always reproduce the same totals, whichever
// view asks.
//
// totalPriceUSD is computed in one fused expression over the unrounded
// selling sum, the service fee and the customer cargo fee. Summing
// already-rounded intermediate figures instead can differ by a cent from
// rounding once, and the fused form is what keeps order detail, shipment
// detail and the reports numerically identical. Do not split it.
func Settle(o *order.Order, rates currency.Snapshot) OrderTotals {
	var t OrderTotals

	var (
		costSum    decimal.Decimal
		hasCost    bool
		amountUZS  decimal.Decimal
		hasUZS     bool
		sellingUSD decimal.Decimal
		weight     valueobject.Weight
	)

	for i := range o.Items {
		it := &o.Items[i]
		qty := decimal.NewFromInt(it.Quantity)
		if it.CostPrice != nil {
			costSum = costSum.Add(it.CostPrice.Mul(qty))
			hasCost = true
		}
		if it.SellingPriceUZS != nil {
			amountUZS = amountUZS.Add(it.SellingPriceUZS.Mul(qty))
			hasUZS = true
		}
		if it.SellingPriceUSD != nil {
			sellingUSD = sellingUSD.Add(it.SellingPriceUSD.Mul(qty))
		}
		weight = weight.Add(itemWeight(it).MultiplyByInt(it.Quantity))
	}

	if hasCost {
		t.TotalCostKRW = &costSum
	}
	if hasUZS {
		t.TotalAmountUZS = &amountUZS
	}

	serviceFee := o.ServiceFeeOrDefault()

	if sellingUSD.IsPositive() {
		sum := valueobject.RoundHalfUp2(sellingUSD.Add(serviceFee))
		t.TotalSellingUSD = &sum
	}

	if !weight.IsZero() {
		kg := weight.Kg(2)
		t.TotalWeightKg = &kg

		shippingUSD := valueobject.RoundHalfUp2(kg.Mul(BusinessCargoRateUSD))
		cargoUSD := valueobject.RoundHalfUp2(kg.Mul(CustomerCargoRateUSD))
		t.ShippingFeeUSD = &shippingUSD
		t.CustomerCargoUSD = &cargoUSD

		if rates.Available() {
			shippingUZS := valueobject.NewMoneyUSD(shippingUSD).
				Convert(rates.USDToLocal, valueobject.UZS).Amount()
			t.ShippingFeeUZS = &shippingUZS
		}
	}

	if grand := sumPresent(t.TotalAmountUZS, t.ShippingFeeUZS); grand != nil && grand.IsPositive() {
		t.GrandTotalUZS = grand
	}

	if sellingUSD.IsPositive() && t.CustomerCargoUSD != nil {
		// Fused: round the whole sum once, never add pre-rounded parts.
		priceUSD := valueobject.RoundHalfUp2(sellingUSD.Add(serviceFee).Add(*t.CustomerCargoUSD))
		t.TotalPriceUSD = &priceUSD
		if rates.Available() {
			priceUZS := valueobject.NewMoneyUSD(priceUSD).
				Convert(rates.USDToLocal, valueobject.UZS).Amount()
			t.TotalPriceUZS = &priceUZS
		}
	}

	// Settlement lock: the frozen amount replaces the live figure for every
	// downstream purpose. The live value was still computed above so the lock
	// can be re-derived when released.
	if o.FinalAmountUZS != nil {
		locked := *o.FinalAmountUZS
		t.TotalPriceUZS = &locked
	}

	if t.TotalPriceUZS != nil {
		unpaid := valueobject.RoundHalfUp2(t.TotalPriceUZS.Sub(o.PaidCard).Sub(o.PaidCash))
		if unpaid.IsNegative() {
			unpaid = decimal.Zero
		}
		t.UnpaidUZS = &unpaid
	}

	return t
}

// LiveFinalAmount computes the local-currency total an engaging settlement
// lock should freeze: the fused total at the current live rates, ignoring any
// lock already stored. Nil when prices, weight or rates are missing.
func LiveFinalAmount(o *order.Order, rates currency.Snapshot) *decimal.Decimal {
	frozen := o.FinalAmountUZS
	o.FinalAmountUZS = nil
	t := Settle(o, rates)
	o.FinalAmountUZS = frozen
	return t.TotalPriceUZS
}

// ReconcileLock re-evaluates the settlement lock after a mutation: engage at
// the live total the moment the order is completed and fully paid, release
// the moment either half of that conjunction breaks. An engaged lock is never
// re-frozen, so rate drift cannot move it. With rates down the live total is
// incomputable and engagement waits for the next eligible mutation.
func ReconcileLock(o *order.Order, rates currency.Snapshot) {
	if !o.SettlementLockEligible() {
		if o.IsSettlementLocked() {
			o.ReleaseSettlementLock()
		}
		return
	}
	if o.IsSettlementLocked() {
		return
	}
	if amount := LiveFinalAmount(o, rates); amount != nil {
		// Eligibility holds, so the engage cannot be rejected.
		_ = o.EngageSettlementLock(*amount)
	}
}

// sumPresent adds the non-nil operands, nil when both are absent
func sumPresent(parts ...*decimal.Decimal) *decimal.Decimal {
	var sum decimal.Decimal
	any := false
	for _, p := range parts {
		if p != nil {
			sum = sum.Add(*p)
			any = true
		}
	}
	if !any {
		return nil
	}
	return &sum
}
