package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/backend/internal/domain/currency"
	"github.com/orderdesk/backend/internal/domain/order"
)

func TestSummarize_StoreWide(t *testing.T) {
	o1 := createTestOrder(t)
	addTestItem(t, o1, 2, "10000", "11.25", "142875.00", 500)
	o2 := createTestOrder(t)
	o2.OrderNumber = "ORD-0002"
	addTestItem(t, o2, 1, "20000", "22.50", "285750.00", 1000)
	require.NoError(t, o2.SetStatus(order.StatusCompleted))

	s := Summarize([]order.Order{*o1, *o2}, testRates("0.00075", "12700"))

	// All line items count regardless of order status.
	assert.True(t, s.TotalSellingUSD.Equal(dec("45.00")), "got %s", s.TotalSellingUSD)
	assert.True(t, s.TotalServiceFeeUSD.Equal(dec("6")), "got %s", s.TotalServiceFeeUSD)
	assert.True(t, s.TotalWeightKg.Equal(dec("2.00")), "got %s", s.TotalWeightKg)
	assert.True(t, s.TotalCustomerCargoUSD.Equal(dec("26.00")), "got %s", s.TotalCustomerCargoUSD)
	assert.True(t, s.TotalBusinessCargoUSD.Equal(dec("24.00")), "got %s", s.TotalBusinessCargoUSD)
	// revenue = 45 + 6 + 26 = 77.00
	assert.True(t, s.TotalRevenueUSD.Equal(dec("77.00")), "got %s", s.TotalRevenueUSD)
	// cost = 40000 KRW * 0.00075 = 30.00 USD
	assert.True(t, s.TotalCostUSD.Equal(dec("30.00")), "got %s", s.TotalCostUSD)
	// profit = 77 - 30 - 24 = 23.00
	assert.True(t, s.GrossProfitUSD.Equal(dec("23.00")), "got %s", s.GrossProfitUSD)
}

func TestSummarize_ZeroRatesZeroProfit(t *testing.T) {
	o := createTestOrder(t)
	addTestItem(t, o, 1, "10000", "11.25", "142875.00", 1000)

	s := Summarize([]order.Order{*o}, currency.Unavailable())

	assert.True(t, s.GrossProfitUSD.IsZero(), "gross profit must be zero without rates, got %s", s.GrossProfitUSD)
	assert.True(t, s.TotalCostUSD.IsZero())
	// Rate-independent figures still report.
	assert.True(t, s.TotalRevenueUSD.IsPositive())
}

func TestSummarize_TotalUnpaidSkipsFullyPaid(t *testing.T) {
	unpaid := createTestOrder(t)
	addTestItem(t, unpaid, 1, "", "10.00", "", 1000)

	paid := createTestOrder(t)
	paid.OrderNumber = "ORD-0002"
	addTestItem(t, paid, 1, "", "10.00", "", 1000)
	require.NoError(t, paid.SetPaymentStatus(order.PaymentPaidCard))

	s := Summarize([]order.Order{*unpaid, *paid}, testRates("0.00075", "12700"))

	// Only the unpaid order contributes: (10+3+13)*12700 = 330200.00
	assert.True(t, s.TotalUnpaidUZS.Equal(dec("330200.00")), "got %s", s.TotalUnpaidUZS)
}

func TestUnpaidOrders_SortedDescending(t *testing.T) {
	small := createTestOrder(t)
	addTestItem(t, small, 1, "", "5.00", "", 1000)

	large := createTestOrder(t)
	large.OrderNumber = "ORD-0002"
	addTestItem(t, large, 1, "", "50.00", "", 1000)

	partial := createTestOrder(t)
	partial.OrderNumber = "ORD-0003"
	addTestItem(t, partial, 1, "", "20.00", "", 1000)
	require.NoError(t, partial.SetPaymentStatus(order.PaymentPartial))
	require.NoError(t, partial.RecordPayments(dec("100000"), dec("0")))

	paid := createTestOrder(t)
	paid.OrderNumber = "ORD-0004"
	addTestItem(t, paid, 1, "", "99.00", "", 1000)
	require.NoError(t, paid.SetPaymentStatus(order.PaymentPaidCash))

	rows := UnpaidOrders([]order.Order{*small, *large, *partial, *paid}, testRates("0.00075", "12700"))

	require.Len(t, rows, 3, "fully paid orders are excluded")
	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1].UnpaidUZS.GreaterThanOrEqual(rows[i].UnpaidUZS),
			"rows must be sorted by unpaid descending")
	}
	assert.Equal(t, "ORD-0002", rows[0].OrderNumber)
}

func TestUnpaidOrders_OmitsUncomputableTotals(t *testing.T) {
	// No weight means no cargo fee, so no total price and no unpaid row.
	o := createTestOrder(t)
	addTestItem(t, o, 1, "", "10.00", "", 0)

	rows := UnpaidOrders([]order.Order{*o}, testRates("0.00075", "12700"))
	assert.Empty(t, rows)
}
