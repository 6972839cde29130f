package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/order"
	"github.com/orderdesk/backend/internal/domain/partner"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shipment"
)

// newTestDB opens a fresh in-memory database with the full schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&partner.Customer{},
		&catalog.Category{},
		&catalog.CategoryAttribute{},
		&catalog.Product{},
		&catalog.ProductAttributeValue{},
		&order.Order{},
		&order.Item{},
		&shipment.Shipment{},
		&shipment.MemberOrder{},
		&shipment.HistoryEntry{},
	))
	return db
}

func seedOrder(t *testing.T, repo *GormOrderRepository, orderNumber string) *order.Order {
	t.Helper()

	o, err := order.NewOrder(orderNumber, nil)
	require.NoError(t, err)

	item, err := order.NewItem(o.ID, nil, 2)
	require.NoError(t, err)
	cost := decimal.NewFromInt(10000)
	item.CostPrice = &cost
	o.Items = []order.Item{*item}

	require.NoError(t, repo.Save(context.Background(), o))
	return o
}

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := seedOrder(t, repo, "ORD-0001")

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-0001", found.OrderNumber)
	assert.Equal(t, order.StatusPending, found.Status)
	require.Len(t, found.Items, 1)
	assert.EqualValues(t, 2, found.Items[0].Quantity)
	require.NotNil(t, found.Items[0].CostPrice)
	assert.True(t, found.Items[0].CostPrice.Equal(decimal.NewFromInt(10000)))
}

func TestGormOrderRepository_FindByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_UpdateReplacesItems(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := seedOrder(t, repo, "ORD-0001")

	loaded, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)

	replacement, err := order.NewItem(loaded.ID, nil, 5)
	require.NoError(t, err)
	require.NoError(t, loaded.ReplaceItems([]order.Item{*replacement}))
	require.NoError(t, repo.Save(ctx, loaded))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.EqualValues(t, 5, found.Items[0].Quantity)

	var itemCount int64
	require.NoError(t, db.Model(&order.Item{}).Count(&itemCount).Error)
	assert.EqualValues(t, 1, itemCount, "replaced items must not linger")
}

func TestGormOrderRepository_ConcurrentUpdateConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := seedOrder(t, repo, "ORD-0001")

	first, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)

	require.NoError(t, first.SetStatus(order.StatusShipped))
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, second.SetStatus(order.StatusReceived))
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	// The first writer's state survives.
	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, found.Status)
}

func TestGormOrderRepository_SettlementLockRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := seedOrder(t, repo, "ORD-0001")

	loaded, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	locked := decimal.RequireFromString("330200.00")
	loaded.FinalAmountUZS = &locked
	require.NoError(t, repo.Save(ctx, loaded))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, found.FinalAmountUZS)
	assert.True(t, found.FinalAmountUZS.Equal(locked))

	// Clearing the lock persists as NULL, not zero.
	found.FinalAmountUZS = nil
	require.NoError(t, repo.Save(ctx, found))

	again, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Nil(t, again.FinalAmountUZS)
}

func TestGormOrderRepository_FindAllFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o1 := seedOrder(t, repo, "ORD-0001")
	seedOrder(t, repo, "ORD-0002")

	loaded, err := repo.FindByID(ctx, o1.ID)
	require.NoError(t, err)
	require.NoError(t, loaded.SetStatus(order.StatusCompleted))
	require.NoError(t, repo.Save(ctx, loaded))

	status := order.StatusCompleted
	orders, total, err := repo.FindAll(ctx, order.Filter{Status: &status})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-0001", orders[0].OrderNumber)

	orders, total, err = repo.FindAll(ctx, order.Filter{Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, orders, 1)
}

func TestGormOrderRepository_FindAllSorting(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	customers := NewGormCustomerRepository(db)
	ctx := context.Background()

	anna, err := partner.NewCustomer("Anna", "", "", "")
	require.NoError(t, err)
	require.NoError(t, customers.Save(ctx, anna))
	zafar, err := partner.NewCustomer("Zafar", "", "", "")
	require.NoError(t, err)
	require.NoError(t, customers.Save(ctx, zafar))

	older, err := order.NewOrder("ORD-0001", &zafar.ID)
	require.NoError(t, err)
	older.OrderDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, older))

	newer, err := order.NewOrder("ORD-0002", &anna.ID)
	require.NoError(t, err)
	newer.OrderDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, newer))

	orders, _, err := repo.FindAll(ctx, order.Filter{SortBy: "order_date", SortDir: "asc"})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-0001", orders[0].OrderNumber)

	orders, _, err = repo.FindAll(ctx, order.Filter{SortBy: "order_date", SortDir: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "ORD-0002", orders[0].OrderNumber)

	orders, _, err = repo.FindAll(ctx, order.Filter{SortBy: "customer_name", SortDir: "asc"})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-0002", orders[0].OrderNumber, "Anna's order sorts before Zafar's")

	// An unknown sort column falls back to newest first.
	orders, _, err = repo.FindAll(ctx, order.Filter{SortBy: "total_price; DROP TABLE orders"})
	require.NoError(t, err)
	assert.Equal(t, "ORD-0002", orders[0].OrderNumber)
}

func TestGormOrderRepository_GenerateOrderNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	number, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD-0001", number)

	seedOrder(t, repo, "ORD-0041")

	number, err = repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD-0042", number)
}

func TestGormOrderRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := seedOrder(t, repo, "ORD-0001")

	require.NoError(t, repo.Delete(ctx, o.ID))

	_, err := repo.FindByID(ctx, o.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var itemCount int64
	require.NoError(t, db.Model(&order.Item{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)

	assert.ErrorIs(t, repo.Delete(ctx, o.ID), shared.ErrNotFound)
}
