package catalog

import (
	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// CategoryAttribute is a named characteristic a category defines for its
// products, such as "Volume" or "Shade". Attributes order by SortOrder in
// category views.
type CategoryAttribute struct {
	shared.BaseEntity
	CategoryID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AttributeName string    `gorm:"size:100;not null"`
	SortOrder     int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CategoryAttribute) TableName() string {
	return "category_attributes"
}

// NewCategoryAttribute creates a new category attribute
func NewCategoryAttribute(categoryID uuid.UUID, name string, sortOrder int) (*CategoryAttribute, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTE_NAME", "Attribute name cannot be empty")
	}
	return &CategoryAttribute{
		BaseEntity:    shared.NewBaseEntity(),
		CategoryID:    categoryID,
		AttributeName: name,
		SortOrder:     sortOrder,
	}, nil
}

// Rename updates the attribute's name and position
func (a *CategoryAttribute) Rename(name string, sortOrder int) error {
	if name == "" {
		return shared.NewDomainError("INVALID_ATTRIBUTE_NAME", "Attribute name cannot be empty")
	}
	a.AttributeName = name
	a.SortOrder = sortOrder
	return nil
}

// ProductAttributeValue is a product's value for one of its category's
// attributes. A product holds at most one value per attribute.
type ProductAttributeValue struct {
	shared.BaseEntity
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_attribute"`
	AttributeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_attribute"`
	Value       string    `gorm:"size:255;not null"`

	Attribute *CategoryAttribute `gorm:"foreignKey:AttributeID"`
}

// TableName returns the table name for GORM
func (ProductAttributeValue) TableName() string {
	return "product_attribute_values"
}

// NewProductAttributeValue creates a new product attribute value
func NewProductAttributeValue(productID, attributeID uuid.UUID, value string) *ProductAttributeValue {
	return &ProductAttributeValue{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		AttributeID: attributeID,
		Value:       value,
	}
}
