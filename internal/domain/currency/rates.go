package currency

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot holds one fetch of the exchange-rate feed.
// SourceToUSD converts the sourcing currency (KRW) into the pricing currency
// (USD); USDToLocal converts USD into the settlement currency (UZS).
type Snapshot struct {
	SourceToUSD decimal.Decimal
	USDToLocal  decimal.Decimal
	FetchedAt   time.Time
}

// Unavailable returns the degraded zero snapshot used when the feed cannot be
// reached. Monetary computations that depend on a conversion omit the
// converted figures instead of failing.
func Unavailable() Snapshot {
	return Snapshot{}
}

// Available reports whether the snapshot carries usable rates
func (s Snapshot) Available() bool {
	return s.SourceToUSD.IsPositive() && s.USDToLocal.IsPositive()
}

// Fresh reports whether the snapshot is still inside the freshness window
func (s Snapshot) Fresh(now time.Time, ttl time.Duration) bool {
	if s.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(s.FetchedAt) < ttl
}

// Provider fetches rates from the external feed. Implementations must honor
// the context deadline and return shared.ErrRateUnavailable (wrapped or not)
// when the feed is unreachable or returns malformed data.
type Provider interface {
	FetchRates(ctx context.Context) (Snapshot, error)
}

// Source is what settlement consumers depend on: a current snapshot, already
// degraded to Unavailable() on feed failure. Tests substitute a fixed source.
type Source interface {
	Current(ctx context.Context) Snapshot
}

// Static is a Source that always returns the same snapshot
type Static struct {
	Snapshot Snapshot
}

// Current implements Source
func (s Static) Current(context.Context) Snapshot {
	return s.Snapshot
}
