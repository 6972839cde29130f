package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shipment"
)

func seedShipment(t *testing.T, repo *GormShipmentRepository, number string, orderIDs []uuid.UUID) *shipment.Shipment {
	t.Helper()

	s, err := shipment.NewShipment(number, "")
	require.NoError(t, err)
	s.ReplaceOrders(orderIDs)
	s.AppendHistory("Shipment created")
	require.NoError(t, repo.Save(context.Background(), s))
	return s
}

func TestGormShipmentRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	orderRepo := NewGormOrderRepository(db)
	repo := NewGormShipmentRepository(db)
	ctx := context.Background()

	o := seedOrder(t, orderRepo, "ORD-0001")
	s := seedShipment(t, repo, "SH-0001", []uuid.UUID{o.ID})

	found, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "SH-0001", found.ShipmentNumber)
	assert.Equal(t, shipment.StatusPending, found.Status)

	require.Len(t, found.Orders, 1)
	require.NotNil(t, found.Orders[0].Order, "member orders must come back resolved")
	assert.Equal(t, "ORD-0001", found.Orders[0].Order.OrderNumber)
	require.Len(t, found.Orders[0].Order.Items, 1)

	require.Len(t, found.History, 1)
	assert.Equal(t, "Shipment created", found.History[0].Action)
}

func TestGormShipmentRepository_FindByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormShipmentRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormShipmentRepository_UpdateReplacesMembers(t *testing.T) {
	db := newTestDB(t)
	orderRepo := NewGormOrderRepository(db)
	repo := NewGormShipmentRepository(db)
	ctx := context.Background()

	o1 := seedOrder(t, orderRepo, "ORD-0001")
	o2 := seedOrder(t, orderRepo, "ORD-0002")
	s := seedShipment(t, repo, "SH-0001", []uuid.UUID{o1.ID})

	loaded, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	loaded.ReplaceOrders([]uuid.UUID{o2.ID})
	loaded.AppendHistory("Order ORD-0001 removed, order ORD-0002 added")
	require.NoError(t, repo.Save(ctx, loaded))

	found, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, found.Orders, 1)
	assert.Equal(t, o2.ID, found.Orders[0].OrderID)

	var memberCount int64
	require.NoError(t, db.Model(&shipment.MemberOrder{}).Count(&memberCount).Error)
	assert.EqualValues(t, 1, memberCount)
}

func TestGormShipmentRepository_HistoryIsAppendOnlyNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormShipmentRepository(db)
	ctx := context.Background()

	s := seedShipment(t, repo, "SH-0001", nil)

	loaded, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	// Force distinct timestamps so ordering is deterministic.
	loaded.History = append(loaded.History, shipment.HistoryEntry{
		ID:         uuid.New(),
		ShipmentID: loaded.ID,
		Action:     "Status changed to shipped",
		CreatedAt:  time.Now().Add(time.Second),
	})
	require.NoError(t, repo.Save(ctx, loaded))

	found, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, found.History, 2)
	assert.Equal(t, "Status changed to shipped", found.History[0].Action)
	assert.Equal(t, "Shipment created", found.History[1].Action)
}

func TestGormShipmentRepository_GenerateShipmentNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormShipmentRepository(db)
	ctx := context.Background()

	number, err := repo.GenerateShipmentNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SH-0001", number)

	seedShipment(t, repo, "SH-0006", nil)

	number, err = repo.GenerateShipmentNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SH-0007", number)
}

func TestGormShipmentRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	orderRepo := NewGormOrderRepository(db)
	repo := NewGormShipmentRepository(db)
	ctx := context.Background()

	o := seedOrder(t, orderRepo, "ORD-0001")
	s := seedShipment(t, repo, "SH-0001", []uuid.UUID{o.ID})

	require.NoError(t, repo.Delete(ctx, s.ID))

	_, err := repo.FindByID(ctx, s.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var memberCount, historyCount int64
	require.NoError(t, db.Model(&shipment.MemberOrder{}).Count(&memberCount).Error)
	require.NoError(t, db.Model(&shipment.HistoryEntry{}).Count(&historyCount).Error)
	assert.Zero(t, memberCount)
	assert.Zero(t, historyCount)

	// The member order itself survives shipment deletion.
	_, err = orderRepo.FindByID(ctx, o.ID)
	assert.NoError(t, err)
}
