package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// CategoryService handles category business operations
type CategoryService struct {
	categories catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create creates a new category. Names are unique; creating an existing name
// is rejected rather than silently reusing the row.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if existing, err := s.categories.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	category, err := catalog.NewCategory(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves all categories
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses, nil
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	category.Name = req.Name
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

// AddAttribute adds an attribute to a category
func (s *CategoryService) AddAttribute(ctx context.Context, categoryID uuid.UUID, req CreateCategoryAttributeRequest) (*CategoryAttributeResponse, error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	attribute, err := catalog.NewCategoryAttribute(categoryID, req.AttributeName, req.SortOrder)
	if err != nil {
		return nil, err
	}
	if err := s.categories.SaveAttribute(ctx, attribute); err != nil {
		return nil, err
	}
	response := ToCategoryAttributeResponse(attribute)
	return &response, nil
}

// UpdateAttribute renames or reorders a category attribute. The attribute
// must belong to the addressed category; one belonging to another category is
// reported as not found.
func (s *CategoryService) UpdateAttribute(ctx context.Context, categoryID, attributeID uuid.UUID, req UpdateCategoryAttributeRequest) (*CategoryAttributeResponse, error) {
	attribute, err := s.findCategoryAttribute(ctx, categoryID, attributeID)
	if err != nil {
		return nil, err
	}
	if err := attribute.Rename(req.AttributeName, req.SortOrder); err != nil {
		return nil, err
	}
	if err := s.categories.SaveAttribute(ctx, attribute); err != nil {
		return nil, err
	}
	response := ToCategoryAttributeResponse(attribute)
	return &response, nil
}

// DeleteAttribute removes a category attribute and the product values bound
// to it
func (s *CategoryService) DeleteAttribute(ctx context.Context, categoryID, attributeID uuid.UUID) error {
	if _, err := s.findCategoryAttribute(ctx, categoryID, attributeID); err != nil {
		return err
	}
	return s.categories.DeleteAttribute(ctx, attributeID)
}

// findCategoryAttribute loads an attribute and checks it belongs to the
// category
func (s *CategoryService) findCategoryAttribute(ctx context.Context, categoryID, attributeID uuid.UUID) (*catalog.CategoryAttribute, error) {
	attribute, err := s.categories.FindAttributeByID(ctx, attributeID)
	if err != nil {
		return nil, err
	}
	if attribute.CategoryID != categoryID {
		return nil, shared.ErrNotFound
	}
	return attribute, nil
}
