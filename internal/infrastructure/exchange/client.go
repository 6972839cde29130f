package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/currency"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// Config holds exchange-rate feed settings
type Config struct {
	URL      string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// DefaultConfig returns feed settings matching the public USD-base feed
func DefaultConfig() Config {
	return Config{
		URL:      "https://open.er-api.com/v6/latest/USD",
		Timeout:  10 * time.Second,
		CacheTTL: time.Hour,
	}
}

// feedResponse is the shape of the USD-base rate feed
type feedResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Client fetches KRW-per-USD and UZS-per-USD from the external feed and
// derives the two conversion rates the settlement engine needs.
type Client struct {
	url  string
	http *resty.Client
}

// NewClient creates a feed client with a bounded request timeout
func NewClient(cfg Config) *Client {
	return &Client{
		url:  cfg.URL,
		http: resty.New().SetTimeout(cfg.Timeout),
	}
}

// FetchRates implements currency.Provider. Any transport failure, non-200
// status or malformed payload maps to shared.ErrRateUnavailable so callers
// can degrade instead of failing the request.
func (c *Client) FetchRates(ctx context.Context) (currency.Snapshot, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return currency.Snapshot{}, fmt.Errorf("%w: %v", shared.ErrRateUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return currency.Snapshot{}, fmt.Errorf("%w: feed status %d", shared.ErrRateUnavailable, resp.StatusCode())
	}

	var payload feedResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return currency.Snapshot{}, fmt.Errorf("%w: malformed feed payload: %v", shared.ErrRateUnavailable, err)
	}

	krwPerUSD, okKRW := payload.Rates["KRW"]
	uzsPerUSD, okUZS := payload.Rates["UZS"]
	if !okKRW || !okUZS || !krwPerUSD.IsPositive() || !uzsPerUSD.IsPositive() {
		return currency.Snapshot{}, fmt.Errorf("%w: feed missing KRW/UZS rates", shared.ErrRateUnavailable)
	}

	return currency.Snapshot{
		SourceToUSD: decimal.NewFromInt(1).Div(krwPerUSD),
		USDToLocal:  uzsPerUSD,
		FetchedAt:   time.Now(),
	}, nil
}
