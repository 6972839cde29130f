package shipment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/application/settlement"
	"github.com/orderdesk/backend/internal/domain/currency"
	"github.com/orderdesk/backend/internal/domain/order"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shipment"
)

// ShipmentService handles shipment business operations. Every mutation
// appends to the shipment's append-only history.
type ShipmentService struct {
	shipments shipment.Repository
	orders    order.Repository
	rates     currency.Source
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(shipments shipment.Repository, orders order.Repository, rates currency.Source) *ShipmentService {
	return &ShipmentService{
		shipments: shipments,
		orders:    orders,
		rates:     rates,
	}
}

// Create creates a shipment from a set of existing orders. The shipment
// number is stamped onto every member order so the order view can point back
// at its shipment.
func (s *ShipmentService) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	members, err := s.findMembers(ctx, req.OrderIDs)
	if err != nil {
		return nil, err
	}

	number, err := s.shipments.GenerateShipmentNumber(ctx)
	if err != nil {
		return nil, err
	}
	sh, err := shipment.NewShipment(number, req.Notes)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		if err := sh.SetStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	sh.ReplaceOrders(req.OrderIDs)
	sh.AppendHistory(fmt.Sprintf("Shipment %s created with %d orders", number, len(req.OrderIDs)))

	rates := s.rates.Current(ctx)
	for i := range members {
		o := &members[i]
		o.SetShippingNumber(number)
		if req.Status != nil {
			if err := o.SetStatus(req.Status.OrderStatus()); err != nil {
				return nil, err
			}
			settlement.ReconcileLock(o, rates)
		}
		if err := s.orders.Save(ctx, o); err != nil {
			return nil, err
		}
	}

	if err := s.shipments.Save(ctx, sh); err != nil {
		return nil, err
	}
	return s.respond(ctx, sh.ID, rates)
}

// GetByID retrieves a shipment with its aggregated totals
func (s *ShipmentService) GetByID(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	return s.respond(ctx, id, s.rates.Current(ctx))
}

// List retrieves a page of shipments. All shipments on the page are
// aggregated against the same rate snapshot.
func (s *ShipmentService) List(ctx context.Context, filter ShipmentListFilter) (*ShipmentListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	shipments, total, err := s.shipments.FindAll(ctx, shipment.Filter{
		Status:   filter.Status,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, err
	}

	rates := s.rates.Current(ctx)
	responses := make([]ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		responses = append(responses, ToShipmentResponse(&shipments[i], settlement.Build(&shipments[i], rates)))
	}
	return &ShipmentListResponse{
		Shipments: responses,
		Total:     total,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}, nil
}

// Update applies a partial shipment update. A replaced member set stamps the
// shipment number on new members and clears it from removed ones; a status
// change cascades to every member order and re-evaluates each order's
// settlement lock.
func (s *ShipmentService) Update(ctx context.Context, id uuid.UUID, req UpdateShipmentRequest) (*ShipmentResponse, error) {
	sh, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rates := s.rates.Current(ctx)

	if req.OrderIDs != nil {
		if len(req.OrderIDs) == 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Cannot replace shipment orders with an empty list")
		}
		newMembers, err := s.findMembers(ctx, req.OrderIDs)
		if err != nil {
			return nil, err
		}

		current := make(map[uuid.UUID]bool, len(sh.Orders))
		for _, m := range sh.Orders {
			current[m.OrderID] = true
		}
		requested := make(map[uuid.UUID]bool, len(req.OrderIDs))
		for _, oid := range req.OrderIDs {
			requested[oid] = true
		}

		var removed []uuid.UUID
		for oid := range current {
			if !requested[oid] {
				removed = append(removed, oid)
			}
		}
		removedOrders, err := s.orders.FindByIDs(ctx, removed)
		if err != nil {
			return nil, err
		}
		for i := range removedOrders {
			removedOrders[i].ClearShippingNumber()
			if err := s.orders.Save(ctx, &removedOrders[i]); err != nil {
				return nil, err
			}
		}

		added := 0
		for i := range newMembers {
			o := &newMembers[i]
			if !current[o.ID] {
				added++
			}
			o.SetShippingNumber(sh.ShipmentNumber)
			if err := s.orders.Save(ctx, o); err != nil {
				return nil, err
			}
		}

		sh.ReplaceOrders(req.OrderIDs)
		sh.AppendHistory(fmt.Sprintf("Orders updated: %d added, %d removed", added, len(removed)))
	}

	if req.Status != nil && *req.Status != sh.Status {
		previous := sh.Status
		if err := sh.SetStatus(*req.Status); err != nil {
			return nil, err
		}
		sh.AppendHistory(fmt.Sprintf("Status changed from %s to %s", previous, *req.Status))

		members, err := s.orders.FindByIDs(ctx, sh.OrderIDs())
		if err != nil {
			return nil, err
		}
		for i := range members {
			o := &members[i]
			if err := o.SetStatus(req.Status.OrderStatus()); err != nil {
				return nil, err
			}
			settlement.ReconcileLock(o, rates)
			if err := s.orders.Save(ctx, o); err != nil {
				return nil, err
			}
		}
	}

	if req.Notes != nil && *req.Notes != sh.Notes {
		sh.SetNotes(*req.Notes)
		sh.AppendHistory("Notes updated")
	}

	if err := s.shipments.Save(ctx, sh); err != nil {
		return nil, err
	}
	return s.respond(ctx, sh.ID, rates)
}

// Delete removes a shipment and clears the shipment number from its member
// orders. The orders themselves survive.
func (s *ShipmentService) Delete(ctx context.Context, id uuid.UUID) error {
	sh, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	members, err := s.orders.FindByIDs(ctx, sh.OrderIDs())
	if err != nil {
		return err
	}
	for i := range members {
		members[i].ClearShippingNumber()
		if err := s.orders.Save(ctx, &members[i]); err != nil {
			return err
		}
	}
	return s.shipments.Delete(ctx, id)
}

// findMembers loads the referenced orders and rejects the request when any of
// them does not exist.
func (s *ShipmentService) findMembers(ctx context.Context, ids []uuid.UUID) ([]order.Order, error) {
	members, err := s.orders.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(members) != len(ids) {
		return nil, shared.NewDomainError("NOT_FOUND", "One or more orders do not exist")
	}
	return members, nil
}

// respond reloads the shipment so member orders arrive resolved, then
// aggregates the totals.
func (s *ShipmentService) respond(ctx context.Context, id uuid.UUID, rates currency.Snapshot) (*ShipmentResponse, error) {
	sh, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(sh, settlement.Build(sh, rates))
	return &response, nil
}
