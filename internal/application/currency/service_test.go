package currency

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/backend/internal/domain/currency"
)

func TestRatesService_Current(t *testing.T) {
	svc := NewRatesService(currency.Static{Snapshot: currency.Snapshot{
		SourceToUSD: decimal.NewFromFloat(0.001),
		USDToLocal:  decimal.NewFromInt(12000),
		FetchedAt:   time.Now(),
	}})

	resp := svc.Current(context.Background(), nil)
	assert.True(t, resp.Available)
	require.NotNil(t, resp.KRWToUSD)
	assert.True(t, resp.KRWToUSD.Equal(decimal.NewFromFloat(0.001)))
	assert.Nil(t, resp.Preview)
}

func TestRatesService_Current_WithPreview(t *testing.T) {
	svc := NewRatesService(currency.Static{Snapshot: currency.Snapshot{
		SourceToUSD: decimal.NewFromFloat(0.001),
		USDToLocal:  decimal.NewFromInt(12000),
		FetchedAt:   time.Now(),
	}})

	cost := decimal.NewFromInt(24000)
	resp := svc.Current(context.Background(), &cost)

	require.NotNil(t, resp.Preview)
	assert.True(t, resp.Preview.SellingUSD.Equal(decimal.RequireFromString("36.00")))
	assert.True(t, resp.Preview.SellingUZS.Equal(decimal.RequireFromString("432000.00")))
}

func TestRatesService_Current_Unavailable(t *testing.T) {
	svc := NewRatesService(currency.Static{Snapshot: currency.Unavailable()})

	cost := decimal.NewFromInt(24000)
	resp := svc.Current(context.Background(), &cost)

	assert.False(t, resp.Available)
	assert.Nil(t, resp.KRWToUSD)
	assert.Nil(t, resp.Preview)
}
