package order

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/application/settlement"
	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/currency"
	"github.com/orderdesk/backend/internal/domain/order"
	"github.com/orderdesk/backend/internal/domain/partner"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// OrderService handles order business operations
type OrderService struct {
	orders     order.Repository
	customers  partner.CustomerRepository
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	rates      currency.Source
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orders order.Repository,
	customers partner.CustomerRepository,
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	rates currency.Source,
) *OrderService {
	return &OrderService{
		orders:     orders,
		customers:  customers,
		products:   products,
		categories: categories,
		rates:      rates,
	}
}

// Create creates a new order. The customer and each line's product may be
// referenced by ID or described inline; inline entities are created first.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	orderNumber, err := s.orders.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	customer, err := s.resolveCustomer(ctx, req.CustomerID, req.CustomerName, req.CustomerCity, req.CustomerAddress, req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	var customerID *uuid.UUID
	if customer != nil {
		customerID = &customer.ID
	}
	o, err := order.NewOrder(orderNumber, customerID)
	if err != nil {
		return nil, err
	}
	o.Customer = customer

	if req.OrderDate != nil {
		o.OrderDate = *req.OrderDate
	}
	if req.Status != nil {
		if err := o.SetStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	if req.PaymentStatus != nil {
		if err := o.SetPaymentStatus(*req.PaymentStatus); err != nil {
			return nil, err
		}
	}
	if req.ServiceFee != nil {
		if err := o.SetServiceFee(*req.ServiceFee); err != nil {
			return nil, err
		}
	}
	if req.PaidCard != nil || req.PaidCash != nil {
		paidCard := o.PaidCard
		paidCash := o.PaidCash
		if req.PaidCard != nil {
			paidCard = *req.PaidCard
		}
		if req.PaidCash != nil {
			paidCash = *req.PaidCash
		}
		if err := o.RecordPayments(paidCard, paidCash); err != nil {
			return nil, err
		}
	}
	o.Notes = req.Notes

	rates := s.rates.Current(ctx)
	items, err := s.buildItems(ctx, o.ID, req.Items, rates)
	if err != nil {
		return nil, err
	}
	if err := o.ReplaceItems(items); err != nil {
		return nil, err
	}

	settlement.ReconcileLock(o, rates)

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o, settlement.Settle(o, rates))
	return &response, nil
}

// GetByID retrieves an order with its settlement figures
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o, settlement.Settle(o, s.rates.Current(ctx)))
	return &response, nil
}

// List retrieves a page of orders with filtering. All orders on the page are
// settled against the same rate snapshot.
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*OrderListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	orders, total, err := s.orders.FindAll(ctx, order.Filter{
		Status:        filter.Status,
		PaymentStatus: filter.PaymentStatus,
		CustomerID:    filter.CustomerID,
		DateFrom:      filter.DateFrom,
		DateTo:        filter.DateTo,
		SortBy:        filter.SortBy,
		SortDir:       filter.SortDir,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
	})
	if err != nil {
		return nil, err
	}

	rates := s.rates.Current(ctx)
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i], settlement.Settle(&orders[i], rates)))
	}
	return &OrderListResponse{
		Orders:   responses,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Update applies a partial update and re-evaluates the settlement lock: the
// lock engages when the update leaves the order completed and fully paid, and
// releases when the update breaks that conjunction.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		customer, err := s.customers.FindByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		o.CustomerID = &customer.ID
		o.Customer = customer
	}
	if req.OrderDate != nil {
		o.OrderDate = *req.OrderDate
	}
	if req.Status != nil {
		if err := o.SetStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	if req.PaymentStatus != nil {
		if err := o.SetPaymentStatus(*req.PaymentStatus); err != nil {
			return nil, err
		}
	}
	if req.ServiceFee != nil {
		if err := o.SetServiceFee(*req.ServiceFee); err != nil {
			return nil, err
		}
	}
	if req.PaidCard != nil || req.PaidCash != nil {
		paidCard := o.PaidCard
		paidCash := o.PaidCash
		if req.PaidCard != nil {
			paidCard = *req.PaidCard
		}
		if req.PaidCash != nil {
			paidCash = *req.PaidCash
		}
		if err := o.RecordPayments(paidCard, paidCash); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}

	rates := s.rates.Current(ctx)
	if req.Items != nil {
		items, err := s.buildItems(ctx, o.ID, req.Items, rates)
		if err != nil {
			return nil, err
		}
		if err := o.ReplaceItems(items); err != nil {
			return nil, err
		}
	}

	settlement.ReconcileLock(o, rates)

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o, settlement.Settle(o, rates))
	return &response, nil
}

// Delete removes an order and its lines
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

// resolveCustomer returns the referenced customer, or creates one from the
// inline fields. Both absent means an anonymous order.
func (s *OrderService) resolveCustomer(ctx context.Context, id *uuid.UUID, name, city, address, phone string) (*partner.Customer, error) {
	if id != nil {
		return s.customers.FindByID(ctx, *id)
	}
	if name == "" {
		return nil, nil
	}
	customer, err := partner.NewCustomer(name, city, address, phone)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// resolveCategory returns the referenced category, or finds or creates one by
// name so inline products can be filed without a separate category call.
func (s *OrderService) resolveCategory(ctx context.Context, id *uuid.UUID, name string) (*uuid.UUID, error) {
	if id != nil {
		category, err := s.categories.FindByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		return &category.ID, nil
	}
	if name == "" {
		return nil, nil
	}
	category, err := s.categories.FindByName(ctx, name)
	if err == nil {
		return &category.ID, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	category, err = catalog.NewCategory(name)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return &category.ID, nil
}

// resolveProduct returns the referenced product, or creates one from the
// inline fields. Inline products enter the catalog as pre-orders; their
// selling prices derive from the cost via current rates unless supplied.
func (s *OrderService) resolveProduct(ctx context.Context, input OrderItemInput, rates currency.Snapshot) (*catalog.Product, error) {
	if input.ProductID != nil {
		return s.products.FindByID(ctx, *input.ProductID)
	}
	if input.ProductName == "" {
		return nil, nil
	}

	product, err := catalog.NewProduct(input.ProductName)
	if err != nil {
		return nil, err
	}
	product.Brand = input.Brand
	if err := product.SetStockStatus(catalog.StockStatusPreOrder); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, input.CategoryID, input.CategoryName)
	if err != nil {
		return nil, err
	}
	product.CategoryID = categoryID

	if input.CostPrice != nil {
		if err := product.SetCostPrice(*input.CostPrice); err != nil {
			return nil, err
		}
	}
	if input.SellingPriceUSD != nil || input.SellingPriceUZS != nil {
		if err := product.SetSellingPrices(input.SellingPriceUSD, input.SellingPriceUZS); err != nil {
			return nil, err
		}
	} else if input.CostPrice != nil {
		derived := settlement.DerivePrices(*input.CostPrice, rates)
		if err := product.SetSellingPrices(derived.SellingUSD, derived.SellingUZS); err != nil {
			return nil, err
		}
	}
	if input.WeightGrams != nil {
		if err := product.SetWeightGrams(*input.WeightGrams); err != nil {
			return nil, err
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// buildItems materializes request lines into order items. Each line copies
// cost, prices and weight from its product unless supplied, so later product
// edits never reprice a recorded order.
func (s *OrderService) buildItems(ctx context.Context, orderID uuid.UUID, inputs []OrderItemInput, rates currency.Snapshot) ([]order.Item, error) {
	items := make([]order.Item, 0, len(inputs))
	for _, input := range inputs {
		product, err := s.resolveProduct(ctx, input, rates)
		if err != nil {
			return nil, err
		}

		var productID *uuid.UUID
		if product != nil {
			productID = &product.ID
		}
		item, err := order.NewItem(orderID, productID, input.Quantity)
		if err != nil {
			return nil, err
		}
		item.Product = product

		cost := input.CostPrice
		sellingUSD := input.SellingPriceUSD
		sellingUZS := input.SellingPriceUZS
		weight := input.WeightGrams
		if product != nil {
			if cost == nil {
				cost = product.CostPrice
			}
			if sellingUSD == nil {
				sellingUSD = product.SellingPriceUSD
			}
			if sellingUZS == nil {
				sellingUZS = product.SellingPriceUZS
			}
			if weight == nil {
				weight = product.WeightGrams
			}
		}
		if cost != nil {
			if err := item.SetCostPrice(*cost); err != nil {
				return nil, err
			}
		}
		if err := item.SetSellingPrices(sellingUSD, sellingUZS); err != nil {
			return nil, err
		}
		if weight != nil {
			if err := item.SetWeightGrams(*weight); err != nil {
				return nil, err
			}
		}
		items = append(items, *item)
	}
	return items, nil
}
