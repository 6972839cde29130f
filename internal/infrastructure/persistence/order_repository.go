package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/domain/order"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID with items and customer resolved
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.AttributeValues.Attribute").
		Preload("Customer").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByIDs finds the orders with the given IDs. Missing IDs are simply
// absent from the result.
func (r *GormOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]order.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var orders []order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.AttributeValues.Attribute").
		Preload("Customer").
		Where("id IN ?", ids).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// orderSortColumns whitelists the columns an order listing can sort on.
// Sorting by customer name joins the customers table.
var orderSortColumns = map[string]string{
	"order_date":      "orders.order_date",
	"status":          "orders.status",
	"shipping_number": "orders.shipping_number",
	"customer_name":   "customers.name",
}

// FindAll finds orders matching the filter along with the total count before
// pagination. Without an explicit sort the newest orders come first.
func (r *GormOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&order.Order{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.DateFrom != nil {
		query = query.Where("order_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("order_date <= ?", *filter.DateTo)
	}

	orderExpr := "order_date DESC, created_at DESC"
	if col, ok := orderSortColumns[filter.SortBy]; ok {
		dir := "ASC"
		if strings.EqualFold(filter.SortDir, "desc") {
			dir = "DESC"
		}
		orderExpr = col + " " + dir
		if filter.SortBy == "customer_name" {
			query = query.Joins("LEFT JOIN customers ON customers.id = orders.customer_id")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var orders []order.Order
	if err := query.
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.AttributeValues.Attribute").
		Preload("Customer").
		Order(orderExpr).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Save creates or updates an order with its items. Updates perform an
// optimistic version check; a mismatch surfaces shared.ErrConcurrencyConflict.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		err := tx.Model(&order.Order{}).
			Where("id = ?", o.ID).
			Select("version").
			Take(&currentVersion).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Omit("Customer", "Items.Product").Create(o).Error
		}
		if err != nil {
			return err
		}

		if currentVersion != o.Version {
			return shared.ErrConcurrencyConflict
		}

		o.Version++
		o.UpdatedAt = time.Now()

		result := tx.Model(&order.Order{}).
			Omit("Items", "Customer").
			Where("id = ? AND version = ?", o.ID, currentVersion).
			Updates(map[string]interface{}{
				"order_number":     o.OrderNumber,
				"customer_id":      o.CustomerID,
				"order_date":       o.OrderDate,
				"status":           o.Status,
				"payment_status":   o.PaymentStatus,
				"service_fee":      o.ServiceFee,
				"paid_card":        o.PaidCard,
				"paid_cash":        o.PaidCash,
				"final_amount_uzs": o.FinalAmountUZS,
				"shipping_number":  o.ShippingNumber,
				"notes":            o.Notes,
				"version":          o.Version,
				"updated_at":       o.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		// Full line replacement: drop removed rows, upsert the rest.
		currentItemIDs := make([]uuid.UUID, len(o.Items))
		for i, item := range o.Items {
			currentItemIDs[i] = item.ID
		}
		if len(currentItemIDs) > 0 {
			if err := tx.Where("order_id = ? AND id NOT IN ?", o.ID, currentItemIDs).
				Delete(&order.Item{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("order_id = ?", o.ID).
				Delete(&order.Item{}).Error; err != nil {
				return err
			}
		}
		for i := range o.Items {
			o.Items[i].OrderID = o.ID
			if err := tx.Omit("Product").Save(&o.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.Item{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&order.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GenerateOrderNumber generates the next order number.
// Format: ORD-NNNN (e.g., ORD-0042); the counter never resets.
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	var lastNumbers []string
	err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("order_number LIKE ?", "ORD-%").
		Order("order_number DESC").
		Limit(1).
		Pluck("order_number", &lastNumbers).Error
	if err != nil {
		return "", err
	}

	var nextNum int64 = 1
	if len(lastNumbers) > 0 {
		var num int64
		if _, parseErr := fmt.Sscanf(strings.TrimPrefix(lastNumbers[0], "ORD-"), "%d", &num); parseErr == nil {
			nextNum = num + 1
		}
	}
	return fmt.Sprintf("ORD-%04d", nextNum), nil
}
