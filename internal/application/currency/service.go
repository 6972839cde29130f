package currency

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/application/settlement"
	"github.com/orderdesk/backend/internal/domain/currency"
)

// RatesResponse represents the current exchange rates. When the feed is down
// Available is false and the rate fields are omitted; consumers degrade
// instead of failing.
type RatesResponse struct {
	Available bool             `json:"available"`
	KRWToUSD  *decimal.Decimal `json:"krw_to_usd,omitempty"`
	USDToUZS  *decimal.Decimal `json:"usd_to_uzs,omitempty"`
	FetchedAt *time.Time       `json:"fetched_at,omitempty"`
	Preview   *PricePreview    `json:"preview,omitempty"`
}

// PricePreview shows what a sourcing cost would sell for at current rates
type PricePreview struct {
	CostKRW    decimal.Decimal `json:"cost_krw"`
	SellingUSD decimal.Decimal `json:"selling_usd"`
	SellingUZS decimal.Decimal `json:"selling_uzs"`
}

// RatesService exposes the exchange rates the settlement engine is currently
// using
type RatesService struct {
	rates currency.Source
}

// NewRatesService creates a new RatesService
func NewRatesService(rates currency.Source) *RatesService {
	return &RatesService{rates: rates}
}

// Current returns the current rate snapshot. With a preview cost the response
// also carries the selling prices that cost would derive to, so a price can
// be quoted before the product exists.
func (s *RatesService) Current(ctx context.Context, previewCostKRW *decimal.Decimal) *RatesResponse {
	snapshot := s.rates.Current(ctx)
	if !snapshot.Available() {
		return &RatesResponse{}
	}

	fetchedAt := snapshot.FetchedAt
	resp := &RatesResponse{
		Available: true,
		KRWToUSD:  &snapshot.SourceToUSD,
		USDToUZS:  &snapshot.USDToLocal,
		FetchedAt: &fetchedAt,
	}
	if previewCostKRW != nil {
		derived := settlement.DerivePrices(*previewCostKRW, snapshot)
		if derived.SellingUSD != nil && derived.SellingUZS != nil {
			resp.Preview = &PricePreview{
				CostKRW:    *previewCostKRW,
				SellingUSD: *derived.SellingUSD,
				SellingUZS: *derived.SellingUZS,
			}
		}
	}
	return resp
}
