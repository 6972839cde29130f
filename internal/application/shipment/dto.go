package shipment

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/application/settlement"
	"github.com/orderdesk/backend/internal/domain/shipment"
)

// CreateShipmentRequest represents a request to create a shipment
type CreateShipmentRequest struct {
	OrderIDs []uuid.UUID      `json:"order_ids" binding:"required,min=1"`
	Status   *shipment.Status `json:"status"`
	Notes    string           `json:"notes"`
}

// UpdateShipmentRequest represents a partial shipment update. A non-nil
// OrderIDs slice replaces the full member set; a status change cascades to
// every member order.
type UpdateShipmentRequest struct {
	OrderIDs []uuid.UUID      `json:"order_ids"`
	Status   *shipment.Status `json:"status"`
	Notes    *string          `json:"notes"`
}

// ShipmentListFilter represents filter options for the shipment list
type ShipmentListFilter struct {
	Status   *shipment.Status `form:"status"`
	Page     int              `form:"page" binding:"omitempty,min=1"`
	PageSize int              `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// HistoryEntryResponse is one line of the shipment audit trail
type HistoryEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// ShipmentResponse represents a shipment with its aggregated totals. The
// embedded totals are flattened into the JSON object.
type ShipmentResponse struct {
	ID             uuid.UUID              `json:"id"`
	ShipmentNumber string                 `json:"shipment_number"`
	Status         shipment.Status        `json:"status"`
	Notes          string                 `json:"notes,omitempty"`
	History        []HistoryEntryResponse `json:"history"`

	settlement.ShipmentTotals

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShipmentListResponse wraps a page of shipments
type ShipmentListResponse struct {
	Shipments []ShipmentResponse `json:"shipments"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

// ToShipmentResponse converts a shipment and its totals to response form
func ToShipmentResponse(s *shipment.Shipment, totals settlement.ShipmentTotals) ShipmentResponse {
	history := make([]HistoryEntryResponse, 0, len(s.History))
	for _, h := range s.History {
		history = append(history, HistoryEntryResponse{
			ID:        h.ID,
			Action:    h.Action,
			CreatedAt: h.CreatedAt,
		})
	}
	return ShipmentResponse{
		ID:             s.ID,
		ShipmentNumber: s.ShipmentNumber,
		Status:         s.Status,
		Notes:          s.Notes,
		History:        history,
		ShipmentTotals: totals,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
