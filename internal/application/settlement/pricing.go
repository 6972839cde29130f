package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/currency"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
)

// Markup is the fixed multiplier applied to the sourcing cost in the pricing
// currency to derive the selling price.
var Markup = decimal.NewFromFloat(1.5)

// DerivedPrices carries the two customer-facing prices derived from a
// sourcing cost. Both are nil when rates are unavailable; callers keep any
// previously stored prices unchanged in that case.
type DerivedPrices struct {
	SellingUSD *decimal.Decimal
	SellingUZS *decimal.Decimal
}

// DerivePrices converts a sourcing cost (KRW) into selling prices in the
// pricing (USD) and settlement (UZS) currencies:
//
//	sellingUSD = round2(cost * sourceToUSD * markup)
//	sellingUZS = round2(sellingUSD * usdToLocal)
func DerivePrices(costKRW decimal.Decimal, rates currency.Snapshot) DerivedPrices {
	if !rates.Available() {
		return DerivedPrices{}
	}
	costUSD := valueobject.NewMoneyUSD(costKRW.Mul(rates.SourceToUSD))
	sellingUSD := costUSD.Multiply(Markup).RoundHalfUp(2)
	sellingUZS := sellingUSD.Convert(rates.USDToLocal, valueobject.UZS)
	usd := sellingUSD.Amount()
	uzs := sellingUZS.Amount()
	return DerivedPrices{
		SellingUSD: &usd,
		SellingUZS: &uzs,
	}
}
