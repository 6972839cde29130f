package shipment

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows shipment listings
type Filter struct {
	Status   *Status
	Page     int
	PageSize int
}

// Repository defines the persistence interface for shipments. FindByID and
// FindAll resolve member orders with their items and customers so the
// shipment ledger can aggregate without further queries. History entries are
// loaded newest first.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindAll(ctx context.Context, filter Filter) ([]Shipment, int64, error)
	Save(ctx context.Context, shipment *Shipment) error
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateShipmentNumber(ctx context.Context) (string, error)
}
