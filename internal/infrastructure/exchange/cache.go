package exchange

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/domain/currency"
)

// RateCache is the single process-wide holder of the latest rate snapshot.
// Refresh is lazy: the caller that discovers a stale slot fetches
// synchronously while holding the write lock, which also serializes
// concurrent refreshes so the feed sees one outbound call per expiry. The
// slot is replaced whole under the lock; readers never observe a torn
// snapshot.
type RateCache struct {
	provider currency.Provider
	ttl      time.Duration
	logger   *zap.Logger

	mu       sync.RWMutex
	snapshot currency.Snapshot

	now func() time.Time
}

// NewRateCache creates an empty (never fetched) cache
func NewRateCache(provider currency.Provider, ttl time.Duration, logger *zap.Logger) *RateCache {
	return &RateCache{
		provider: provider,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Get returns a fresh snapshot, fetching from the provider if the cached one
// expired. On provider failure the error is returned alongside the zero
// snapshot; most callers want Current instead.
func (c *RateCache) Get(ctx context.Context) (currency.Snapshot, error) {
	c.mu.RLock()
	snap := c.snapshot
	c.mu.RUnlock()
	if snap.Fresh(c.now(), c.ttl) {
		return snap, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if c.snapshot.Fresh(c.now(), c.ttl) {
		return c.snapshot, nil
	}

	snap, err := c.provider.FetchRates(ctx)
	if err != nil {
		c.logger.Warn("exchange rate fetch failed", zap.Error(err))
		return currency.Snapshot{}, err
	}

	c.snapshot = snap
	c.logger.Debug("exchange rates refreshed",
		zap.String("source_to_usd", snap.SourceToUSD.String()),
		zap.String("usd_to_local", snap.USDToLocal.String()),
	)
	return snap, nil
}

// Current implements currency.Source: the fresh snapshot, degraded to
// Unavailable() when the feed cannot be reached. Settlement figures that
// depend on a conversion are then simply omitted.
func (c *RateCache) Current(ctx context.Context) currency.Snapshot {
	snap, err := c.Get(ctx)
	if err != nil {
		return currency.Unavailable()
	}
	return snap
}
