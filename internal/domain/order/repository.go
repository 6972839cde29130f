package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter narrows order listings. SortBy is matched against a whitelist of
// sortable columns; unknown values fall back to the default newest-first
// ordering. SortDir is "asc" unless set to "desc".
type Filter struct {
	Status        *Status
	PaymentStatus *PaymentStatus
	CustomerID    *uuid.UUID
	DateFrom      *time.Time
	DateTo        *time.Time
	SortBy        string
	SortDir       string
	Page          int
	PageSize      int
}

// Repository defines the persistence interface for orders.
// Save must perform an optimistic version check so two concurrent updates to
// the same order cannot interleave reads and writes of the settlement lock;
// a failed check surfaces shared.ErrConcurrencyConflict.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Order, error)
	FindAll(ctx context.Context, filter Filter) ([]Order, int64, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateOrderNumber(ctx context.Context) (string, error)
}
