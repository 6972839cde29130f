package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/backend/internal/domain/shared"
)

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_FetchRates(t *testing.T) {
	srv := feedServer(t, http.StatusOK, `{"rates":{"KRW":1333.333333,"UZS":12700.55,"EUR":0.9}}`)
	client := NewClient(Config{URL: srv.URL, Timeout: 2 * time.Second})

	snap, err := client.FetchRates(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Available())
	assert.True(t, snap.USDToLocal.Equal(decimal.RequireFromString("12700.55")))
	// sourceToUSD is the inverse of KRW-per-USD.
	product := snap.SourceToUSD.Mul(decimal.RequireFromString("1333.333333"))
	assert.True(t, product.Sub(decimal.NewFromInt(1)).Abs().LessThan(decimal.RequireFromString("0.000001")),
		"inverse rate drifted: %s", product)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestClient_FetchRatesErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"malformed json", http.StatusOK, `{"rates": nope`},
		{"missing currencies", http.StatusOK, `{"rates":{"EUR":0.9}}`},
		{"zero rate", http.StatusOK, `{"rates":{"KRW":0,"UZS":12700}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := feedServer(t, tt.status, tt.body)
			client := NewClient(Config{URL: srv.URL, Timeout: 2 * time.Second})

			_, err := client.FetchRates(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrRateUnavailable)
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"rates":{"KRW":1300,"UZS":12700}}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{URL: srv.URL, Timeout: 20 * time.Millisecond})
	_, err := client.FetchRates(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrRateUnavailable)
}
