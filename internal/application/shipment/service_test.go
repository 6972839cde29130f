package shipment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/backend/internal/domain/currency"
	"github.com/orderdesk/backend/internal/domain/order"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shipment"
)

// MockShipmentRepository is a mock implementation of shipment.Repository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindAll(ctx context.Context, filter shipment.Filter) ([]shipment.Shipment, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]shipment.Shipment), args.Get(1).(int64), args.Error(2)
}

func (m *MockShipmentRepository) Save(ctx context.Context, sh *shipment.Shipment) error {
	args := m.Called(ctx, sh)
	return args.Error(0)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShipmentRepository) GenerateShipmentNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]order.Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func testRates() currency.Snapshot {
	return currency.Snapshot{
		SourceToUSD: decimal.NewFromFloat(0.001),
		USDToLocal:  decimal.NewFromInt(12000),
		FetchedAt:   time.Now(),
	}
}

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

// testOrder returns an order with one line: the given som price, one
// kilogram packaged weight.
func testOrder(t *testing.T, number string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(number, nil)
	require.NoError(t, err)
	item, err := order.NewItem(o.ID, nil, 1)
	require.NoError(t, err)
	require.NoError(t, item.SetSellingPrices(decPtr("100.00"), decPtr("1200000.00")))
	require.NoError(t, item.SetWeightGrams(1000))
	require.NoError(t, o.ReplaceItems([]order.Item{*item}))
	return o
}

func historyActions(resp *ShipmentResponse) []string {
	actions := make([]string, 0, len(resp.History))
	for _, h := range resp.History {
		actions = append(actions, h.Action)
	}
	return actions
}

func TestShipmentService_Create_StampsMemberOrders(t *testing.T) {
	shipments := new(MockShipmentRepository)
	orders := new(MockOrderRepository)
	svc := NewShipmentService(shipments, orders, currency.Static{Snapshot: testRates()})
	ctx := context.Background()

	o1 := testOrder(t, "ORD-0001")
	o2 := testOrder(t, "ORD-0002")
	ids := []uuid.UUID{o1.ID, o2.ID}

	orders.On("FindByIDs", ctx, ids).Return([]order.Order{*o1, *o2}, nil)
	shipments.On("GenerateShipmentNumber", ctx).Return("SH-0003", nil)

	var stamped []*order.Order
	orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
		stamped = append(stamped, args.Get(1).(*order.Order))
	}).Return(nil)

	// The reload after Save sees the persisted shipment with members resolved.
	reloaded := &shipment.Shipment{}
	shipments.On("Save", ctx, mock.AnythingOfType("*shipment.Shipment")).Run(func(args mock.Arguments) {
		saved := args.Get(1).(*shipment.Shipment)
		*reloaded = *saved
		reloaded.Orders = []shipment.MemberOrder{
			{ID: uuid.New(), ShipmentID: saved.ID, OrderID: o1.ID, Order: o1},
			{ID: uuid.New(), ShipmentID: saved.ID, OrderID: o2.ID, Order: o2},
		}
	}).Return(nil)
	shipments.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(reloaded, nil)

	resp, err := svc.Create(ctx, CreateShipmentRequest{OrderIDs: ids, Notes: "air cargo"})
	require.NoError(t, err)

	assert.Equal(t, "SH-0003", resp.ShipmentNumber)
	assert.Equal(t, shipment.StatusPending, resp.Status)
	require.Len(t, stamped, 2)
	for _, o := range stamped {
		require.NotNil(t, o.ShippingNumber)
		assert.Equal(t, "SH-0003", *o.ShippingNumber)
	}
	assert.Contains(t, historyActions(resp), "Shipment SH-0003 created with 2 orders")

	// Two one-kilogram orders at 12 USD/kg and 12000 som to the dollar:
	// fee 288000.00 som on top of 2400000.00 som of goods.
	assert.Equal(t, 2, resp.OrderCount)
	assert.True(t, resp.TotalWeightKg.Equal(decimal.NewFromInt(2)))
	assert.True(t, resp.ShipmentFeeUZS.Equal(decimal.RequireFromString("288000.00")))
	assert.True(t, resp.GrandTotalUZS.Equal(decimal.RequireFromString("2688000.00")))
}

func TestShipmentService_Create_MissingOrderRejected(t *testing.T) {
	shipments := new(MockShipmentRepository)
	orders := new(MockOrderRepository)
	svc := NewShipmentService(shipments, orders, currency.Static{Snapshot: testRates()})
	ctx := context.Background()

	o1 := testOrder(t, "ORD-0001")
	ids := []uuid.UUID{o1.ID, uuid.New()}
	orders.On("FindByIDs", ctx, ids).Return([]order.Order{*o1}, nil)

	_, err := svc.Create(ctx, CreateShipmentRequest{OrderIDs: ids})
	require.Error(t, err)

	var derr *shared.DomainError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "NOT_FOUND", derr.Code)
	shipments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestShipmentService_Update_StatusCascadesAndLocksMembers(t *testing.T) {
	shipments := new(MockShipmentRepository)
	orders := new(MockOrderRepository)
	svc := NewShipmentService(shipments, orders, currency.Static{Snapshot: testRates()})
	ctx := context.Background()

	member := testOrder(t, "ORD-0005")
	require.NoError(t, member.SetPaymentStatus(order.PaymentPaidCard))
	member.SetShippingNumber("SH-0001")

	sh, err := shipment.NewShipment("SH-0001", "")
	require.NoError(t, err)
	sh.ReplaceOrders([]uuid.UUID{member.ID})
	sh.Orders[0].Order = member

	shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)
	orders.On("FindByIDs", ctx, []uuid.UUID{member.ID}).Return([]order.Order{*member}, nil)

	var cascaded *order.Order
	orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
		cascaded = args.Get(1).(*order.Order)
	}).Return(nil)
	shipments.On("Save", ctx, sh).Return(nil)

	completed := shipment.StatusCompleted
	resp, err := svc.Update(ctx, sh.ID, UpdateShipmentRequest{Status: &completed})
	require.NoError(t, err)

	assert.Equal(t, shipment.StatusCompleted, resp.Status)
	assert.Contains(t, historyActions(resp), "Status changed from pending to completed")

	// The cascade completed a fully paid order, so its settlement lock
	// engaged at the live total: round2(100 + 3 + 13) * 12000.
	require.NotNil(t, cascaded)
	assert.Equal(t, order.StatusCompleted, cascaded.Status)
	require.NotNil(t, cascaded.FinalAmountUZS)
	assert.True(t, cascaded.FinalAmountUZS.Equal(decimal.RequireFromString("1392000.00")))
}

func TestShipmentService_Update_ReplacesMembers(t *testing.T) {
	shipments := new(MockShipmentRepository)
	orders := new(MockOrderRepository)
	svc := NewShipmentService(shipments, orders, currency.Static{Snapshot: testRates()})
	ctx := context.Background()

	removed := testOrder(t, "ORD-0001")
	removed.SetShippingNumber("SH-0001")
	added := testOrder(t, "ORD-0002")

	sh, err := shipment.NewShipment("SH-0001", "")
	require.NoError(t, err)
	sh.ReplaceOrders([]uuid.UUID{removed.ID})
	sh.Orders[0].Order = removed

	shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)
	orders.On("FindByIDs", ctx, []uuid.UUID{added.ID}).Return([]order.Order{*added}, nil)
	orders.On("FindByIDs", ctx, []uuid.UUID{removed.ID}).Return([]order.Order{*removed}, nil)

	saves := make(map[string]*order.Order)
	orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
		o := args.Get(1).(*order.Order)
		saves[o.OrderNumber] = o
	}).Return(nil)
	shipments.On("Save", ctx, sh).Return(nil)

	resp, err := svc.Update(ctx, sh.ID, UpdateShipmentRequest{OrderIDs: []uuid.UUID{added.ID}})
	require.NoError(t, err)

	require.Contains(t, saves, "ORD-0001")
	assert.Nil(t, saves["ORD-0001"].ShippingNumber)
	require.Contains(t, saves, "ORD-0002")
	require.NotNil(t, saves["ORD-0002"].ShippingNumber)
	assert.Equal(t, "SH-0001", *saves["ORD-0002"].ShippingNumber)

	assert.Equal(t, []uuid.UUID{added.ID}, sh.OrderIDs())
	assert.Contains(t, historyActions(resp), "Orders updated: 1 added, 1 removed")
}

func TestShipmentService_Update_EmptyMembersRejected(t *testing.T) {
	shipments := new(MockShipmentRepository)
	orders := new(MockOrderRepository)
	svc := NewShipmentService(shipments, orders, currency.Static{Snapshot: testRates()})
	ctx := context.Background()

	sh, err := shipment.NewShipment("SH-0001", "")
	require.NoError(t, err)
	shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)

	_, err = svc.Update(ctx, sh.ID, UpdateShipmentRequest{OrderIDs: []uuid.UUID{}})
	require.Error(t, err)

	var derr *shared.DomainError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "INVALID_INPUT", derr.Code)
}

func TestShipmentService_Delete_ClearsMemberBackReferences(t *testing.T) {
	shipments := new(MockShipmentRepository)
	orders := new(MockOrderRepository)
	svc := NewShipmentService(shipments, orders, currency.Static{Snapshot: testRates()})
	ctx := context.Background()

	member := testOrder(t, "ORD-0009")
	member.SetShippingNumber("SH-0002")

	sh, err := shipment.NewShipment("SH-0002", "")
	require.NoError(t, err)
	sh.ReplaceOrders([]uuid.UUID{member.ID})

	shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)
	orders.On("FindByIDs", ctx, []uuid.UUID{member.ID}).Return([]order.Order{*member}, nil)

	var cleared *order.Order
	orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
		cleared = args.Get(1).(*order.Order)
	}).Return(nil)
	shipments.On("Delete", ctx, sh.ID).Return(nil)

	require.NoError(t, svc.Delete(ctx, sh.ID))
	require.NotNil(t, cleared)
	assert.Nil(t, cleared.ShippingNumber)
	shipments.AssertExpectations(t)
}
