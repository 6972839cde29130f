package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shipment"
)

// GormShipmentRepository implements shipment.Repository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// preload resolves member orders deep enough for the shipment ledger to
// aggregate without further queries
func (r *GormShipmentRepository) preload(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Orders").
		Preload("Orders.Order").
		Preload("Orders.Order.Items").
		Preload("Orders.Order.Items.Product").
		Preload("Orders.Order.Customer").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("shipment_history.created_at DESC")
		})
}

// FindByID finds a shipment by its ID with members and history resolved
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	var s shipment.Shipment
	if err := r.preload(r.db.WithContext(ctx)).
		First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAll finds shipments matching the filter, newest first, along with the
// total count before pagination
func (r *GormShipmentRepository) FindAll(ctx context.Context, filter shipment.Filter) ([]shipment.Shipment, int64, error) {
	query := r.db.WithContext(ctx).Model(&shipment.Shipment{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var shipments []shipment.Shipment
	if err := r.preload(query).
		Order("created_at DESC").
		Find(&shipments).Error; err != nil {
		return nil, 0, err
	}
	return shipments, total, nil
}

// Save creates or updates a shipment with its member set and history log
func (r *GormShipmentRepository) Save(ctx context.Context, s *shipment.Shipment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&shipment.Shipment{}).
			Where("id = ?", s.ID).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			return tx.Omit("Orders.Order").Create(s).Error
		}

		if err := tx.Model(&shipment.Shipment{}).
			Where("id = ?", s.ID).
			Updates(map[string]interface{}{
				"shipment_number": s.ShipmentNumber,
				"status":          s.Status,
				"notes":           s.Notes,
				"updated_at":      s.UpdatedAt,
			}).Error; err != nil {
			return err
		}

		// Member set is replaced whole on every save.
		if err := tx.Where("shipment_id = ?", s.ID).
			Delete(&shipment.MemberOrder{}).Error; err != nil {
			return err
		}
		for i := range s.Orders {
			s.Orders[i].ShipmentID = s.ID
			if err := tx.Omit("Order").Create(&s.Orders[i]).Error; err != nil {
				return err
			}
		}

		// History is append-only: persist entries the log does not have yet.
		for i := range s.History {
			s.History[i].ShipmentID = s.ID
			if err := tx.Where("id = ?", s.History[i].ID).
				FirstOrCreate(&s.History[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a shipment with its member rows and history
func (r *GormShipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shipment_id = ?", id).Delete(&shipment.MemberOrder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shipment_id = ?", id).Delete(&shipment.HistoryEntry{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&shipment.Shipment{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GenerateShipmentNumber generates the next shipment number.
// Format: SH-NNNN (e.g., SH-0007); the counter never resets.
func (r *GormShipmentRepository) GenerateShipmentNumber(ctx context.Context) (string, error) {
	var lastNumbers []string
	err := r.db.WithContext(ctx).
		Model(&shipment.Shipment{}).
		Where("shipment_number LIKE ?", "SH-%").
		Order("shipment_number DESC").
		Limit(1).
		Pluck("shipment_number", &lastNumbers).Error
	if err != nil {
		return "", err
	}

	var nextNum int64 = 1
	if len(lastNumbers) > 0 {
		var num int64
		if _, parseErr := fmt.Sscanf(strings.TrimPrefix(lastNumbers[0], "SH-"), "%d", &num); parseErr == nil {
			nextNum = num + 1
		}
	}
	return fmt.Sprintf("SH-%04d", nextNum), nil
}
