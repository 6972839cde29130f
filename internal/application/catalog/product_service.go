package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/application/settlement"
	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/currency"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// ProductService handles product business operations
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	rates      currency.Source
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, categories catalog.CategoryRepository, rates currency.Source) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		rates:      rates,
	}
}

// Create creates a new product. With a cost price but no explicit selling
// prices, the customer-facing prices derive from current rates; when rates
// are down the product is stored without them and can be repriced later.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name)
	if err != nil {
		return nil, err
	}
	product.Brand = req.Brand

	categoryID, category, err := s.resolveCategory(ctx, req.CategoryID, req.CategoryName)
	if err != nil {
		return nil, err
	}
	product.CategoryID = categoryID
	product.Category = category

	if req.CostPrice != nil {
		if err := product.SetCostPrice(*req.CostPrice); err != nil {
			return nil, err
		}
	}
	if req.SellingPriceUSD != nil || req.SellingPriceUZS != nil {
		if err := product.SetSellingPrices(req.SellingPriceUSD, req.SellingPriceUZS); err != nil {
			return nil, err
		}
	} else if req.CostPrice != nil {
		derived := settlement.DerivePrices(*req.CostPrice, s.rates.Current(ctx))
		if err := product.SetSellingPrices(derived.SellingUSD, derived.SellingUZS); err != nil {
			return nil, err
		}
	}
	if req.WeightGrams != nil {
		if err := product.SetWeightGrams(*req.WeightGrams); err != nil {
			return nil, err
		}
	}
	if req.StockStatus != nil {
		if err := product.SetStockStatus(*req.StockStatus); err != nil {
			return nil, err
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	if len(req.AttributeValues) > 0 {
		values, err := s.buildAttributeValues(ctx, product.ID, req.AttributeValues)
		if err != nil {
			return nil, err
		}
		if err := s.products.ReplaceAttributeValues(ctx, product.ID, values); err != nil {
			return nil, err
		}
		product.AttributeValues = values
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a page of products with filtering
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*ProductListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	products, total, err := s.products.FindAll(ctx, catalog.ProductFilter{
		CategoryID: filter.CategoryID,
		Brand:      filter.Brand,
		IsActive:   filter.IsActive,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return &ProductListResponse{
		Products: responses,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Update applies a partial product update. A new cost price without explicit
// selling prices re-derives them at current rates; when rates are down the
// previously known prices stay untouched.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
		}
		product.Name = *req.Name
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.CategoryID != nil {
		category, err := s.categories.FindByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = &category.ID
		product.Category = category
	}

	if req.CostPrice != nil {
		if err := product.SetCostPrice(*req.CostPrice); err != nil {
			return nil, err
		}
	}
	if req.SellingPriceUSD != nil || req.SellingPriceUZS != nil {
		if err := product.SetSellingPrices(req.SellingPriceUSD, req.SellingPriceUZS); err != nil {
			return nil, err
		}
	} else if req.CostPrice != nil {
		derived := settlement.DerivePrices(*req.CostPrice, s.rates.Current(ctx))
		if err := product.SetSellingPrices(derived.SellingUSD, derived.SellingUZS); err != nil {
			return nil, err
		}
	}

	if req.WeightGrams != nil {
		if err := product.SetWeightGrams(*req.WeightGrams); err != nil {
			return nil, err
		}
	}
	if req.StockStatus != nil {
		if err := product.SetStockStatus(*req.StockStatus); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	if req.AttributeValues != nil {
		values, err := s.buildAttributeValues(ctx, product.ID, req.AttributeValues)
		if err != nil {
			return nil, err
		}
		if err := s.products.ReplaceAttributeValues(ctx, product.ID, values); err != nil {
			return nil, err
		}
		product.AttributeValues = values
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

// buildAttributeValues resolves each input against its category attribute so
// unknown attribute IDs are rejected before anything is written
func (s *ProductService) buildAttributeValues(ctx context.Context, productID uuid.UUID, inputs []AttributeValueInput) ([]catalog.ProductAttributeValue, error) {
	values := make([]catalog.ProductAttributeValue, 0, len(inputs))
	for _, in := range inputs {
		attribute, err := s.categories.FindAttributeByID(ctx, in.AttributeID)
		if err != nil {
			return nil, err
		}
		value := catalog.NewProductAttributeValue(productID, attribute.ID, in.Value)
		value.Attribute = attribute
		values = append(values, *value)
	}
	return values, nil
}

// resolveCategory returns the referenced category, or finds or creates one by
// name
func (s *ProductService) resolveCategory(ctx context.Context, id *uuid.UUID, name string) (*uuid.UUID, *catalog.Category, error) {
	if id != nil {
		category, err := s.categories.FindByID(ctx, *id)
		if err != nil {
			return nil, nil, err
		}
		return &category.ID, category, nil
	}
	if name == "" {
		return nil, nil, nil
	}
	category, err := s.categories.FindByName(ctx, name)
	if err == nil {
		return &category.ID, category, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, nil, err
	}
	category, err = catalog.NewCategory(name)
	if err != nil {
		return nil, nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, nil, err
	}
	return &category.ID, category, nil
}
