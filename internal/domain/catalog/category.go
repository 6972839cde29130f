package catalog

import (
	"github.com/orderdesk/backend/internal/domain/shared"
)

// Category groups products for navigation and reporting. Its attributes
// define which characteristics products in the category can carry.
type Category struct {
	shared.BaseEntity
	Name string `gorm:"size:100;not null;uniqueIndex"`

	Attributes []CategoryAttribute `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}
