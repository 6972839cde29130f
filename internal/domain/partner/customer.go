package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// Customer is a buyer the back office settles orders with
type Customer struct {
	shared.BaseEntity
	Name    string `gorm:"size:200;not null"`
	City    string `gorm:"size:100"`
	Address string `gorm:"size:300"`
	Phone   string `gorm:"size:50"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, city, address, phone string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		City:       city,
		Address:    address,
		Phone:      phone,
	}, nil
}

// CustomerRepository defines the persistence interface for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, page, pageSize int) ([]Customer, int64, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
