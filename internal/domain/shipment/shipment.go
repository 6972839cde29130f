package shipment

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/order"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// Status represents the transit state of a shipment
type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusReceived  Status = "received"
	StatusCompleted Status = "completed"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusReceived, StatusCompleted:
		return true
	}
	return false
}

// OrderStatus returns the order status a shipment status cascades onto its
// member orders. The two vocabularies coincide on purpose.
func (s Status) OrderStatus() order.Status {
	return order.Status(s)
}

// MemberOrder is the join row binding an order into a shipment
type MemberOrder struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`

	Order *order.Order `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (MemberOrder) TableName() string {
	return "shipment_orders"
}

// HistoryEntry is one immutable line of the shipment's audit trail.
// Entries are append-only and listed newest first.
type HistoryEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Action     string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (HistoryEntry) TableName() string {
	return "shipment_history"
}

// Shipment groups orders travelling together. Monetary and weight totals are
// computed, never stored; only status, notes and the history log persist.
type Shipment struct {
	shared.BaseEntity
	ShipmentNumber string `gorm:"size:50;not null;uniqueIndex"`
	Status         Status `gorm:"size:20;not null;default:pending"`
	Notes          string `gorm:"type:text"`

	Orders  []MemberOrder  `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	History []HistoryEntry `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment creates a new shipment
func NewShipment(shipmentNumber, notes string) (*Shipment, error) {
	if shipmentNumber == "" {
		return nil, shared.NewDomainError("INVALID_SHIPMENT_NUMBER", "Shipment number cannot be empty")
	}
	return &Shipment{
		BaseEntity:     shared.NewBaseEntity(),
		ShipmentNumber: shipmentNumber,
		Status:         StatusPending,
		Notes:          notes,
	}, nil
}

// SetStatus updates the transit state
func (s *Shipment) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown shipment status")
	}
	s.Status = status
	s.UpdatedAt = time.Now()
	return nil
}

// SetNotes replaces the free-form notes
func (s *Shipment) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
}

// ReplaceOrders swaps the member order set
func (s *Shipment) ReplaceOrders(orderIDs []uuid.UUID) {
	members := make([]MemberOrder, 0, len(orderIDs))
	for _, id := range orderIDs {
		members = append(members, MemberOrder{
			ID:         uuid.New(),
			ShipmentID: s.ID,
			OrderID:    id,
		})
	}
	s.Orders = members
	s.UpdatedAt = time.Now()
}

// OrderIDs returns the member order IDs
func (s *Shipment) OrderIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.Orders))
	for _, m := range s.Orders {
		ids = append(ids, m.OrderID)
	}
	return ids
}

// AppendHistory records one immutable action in the audit trail
func (s *Shipment) AppendHistory(action string) {
	s.History = append(s.History, HistoryEntry{
		ID:         uuid.New(),
		ShipmentID: s.ID,
		Action:     action,
		CreatedAt:  time.Now(),
	})
}
