package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/partner"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// Status represents the fulfilment state of an order
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

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// PaymentStatus represents how far the customer has settled the order.
// A closed enumeration instead of free-form strings: a typo here would
// silently disable the settlement lock.
type PaymentStatus string

const (
	PaymentUnpaid     PaymentStatus = "unpaid"
	PaymentPaidCard   PaymentStatus = "paid_card"
	PaymentPaidCash   PaymentStatus = "paid_cash"
	PaymentPartial    PaymentStatus = "partial"
	PaymentPrepayment PaymentStatus = "prepayment"
)

// IsValid checks if the status is a valid PaymentStatus
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentUnpaid, PaymentPaidCard, PaymentPaidCash, PaymentPartial, PaymentPrepayment:
		return true
	}
	return false
}

// IsFullyPaid reports whether the order is settled in full. Only fully paid
// orders are eligible for the settlement lock.
func (p PaymentStatus) IsFullyPaid() bool {
	return p == PaymentPaidCard || p == PaymentPaidCash
}

// String returns the string representation of PaymentStatus
func (p PaymentStatus) String() string {
	return string(p)
}

// DefaultServiceFee is the per-order handling fee in the pricing currency (USD)
var DefaultServiceFee = decimal.NewFromInt(3)

// Item is one order line. Cost, prices and weight are copied from the
// referenced product at creation time and may be overridden per line, so a
// later product edit never changes a historical order.
type Item struct {
	shared.BaseEntity
	OrderID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductID       *uuid.UUID       `gorm:"type:uuid;index"`
	Quantity        int64            `gorm:"not null;default:1"`
	CostPrice       *decimal.Decimal `gorm:"type:numeric(12,2)"`
	SellingPriceUSD *decimal.Decimal `gorm:"type:numeric(12,2)"`
	SellingPriceUZS *decimal.Decimal `gorm:"type:numeric(14,2)"`
	WeightGrams     *int64

	Product *catalog.Product `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// NewItem creates a new order line
func NewItem(orderID uuid.UUID, productID *uuid.UUID, quantity int64) (*Item, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	return &Item{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// SetCostPrice overrides the line's sourcing cost
func (i *Item) SetCostPrice(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	i.CostPrice = &cost
	return nil
}

// SetSellingPrices overrides the line's customer-facing prices
func (i *Item) SetSellingPrices(usd, uzs *decimal.Decimal) error {
	if usd != nil && usd.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	if uzs != nil && uzs.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	if usd != nil {
		i.SellingPriceUSD = usd
	}
	if uzs != nil {
		i.SellingPriceUZS = uzs
	}
	return nil
}

// SetWeightGrams overrides the line's packaged weight
func (i *Item) SetWeightGrams(grams int64) error {
	if grams < 0 {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	i.WeightGrams = &grams
	return nil
}

// Order is the settlement aggregate. FinalAmountUZS is the settlement lock:
// nil means "compute live from current rates"; non-nil means the local-
// currency total was frozen when the order became completed and fully paid,
// and that frozen value is used everywhere downstream.
type Order struct {
	shared.VersionedEntity
	OrderNumber    string           `gorm:"size:50;not null;uniqueIndex"`
	CustomerID     *uuid.UUID       `gorm:"type:uuid;index"`
	OrderDate      time.Time        `gorm:"not null"`
	Status         Status           `gorm:"size:20;not null;default:pending"`
	PaymentStatus  PaymentStatus    `gorm:"size:20;not null;default:unpaid"`
	ServiceFee     *decimal.Decimal `gorm:"type:numeric(12,2)"`
	PaidCard       decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0"`
	PaidCash       decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0"`
	FinalAmountUZS *decimal.Decimal `gorm:"type:numeric(14,2)"`
	ShippingNumber *string          `gorm:"size:50"`
	Notes          string           `gorm:"type:text"`

	Items    []Item           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Customer *partner.Customer `gorm:"foreignKey:CustomerID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in the pending/unpaid state
func NewOrder(orderNumber string, customerID *uuid.UUID) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	return &Order{
		VersionedEntity: shared.NewVersionedEntity(),
		OrderNumber:     orderNumber,
		CustomerID:      customerID,
		OrderDate:       time.Now(),
		Status:          StatusPending,
		PaymentStatus:   PaymentUnpaid,
		PaidCard:        decimal.Zero,
		PaidCash:        decimal.Zero,
	}, nil
}

// ServiceFeeOrDefault returns the per-order service fee, defaulting to 3.00 USD
func (o *Order) ServiceFeeOrDefault() decimal.Decimal {
	if o.ServiceFee != nil {
		return *o.ServiceFee
	}
	return DefaultServiceFee
}

// SetServiceFee overrides the per-order service fee
func (o *Order) SetServiceFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_SERVICE_FEE", "Service fee cannot be negative")
	}
	o.ServiceFee = &fee
	return nil
}

// SetStatus updates the fulfilment state
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// SetPaymentStatus updates the payment state
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Unknown payment status")
	}
	o.PaymentStatus = status
	o.UpdatedAt = time.Now()
	return nil
}

// RecordPayments sets the amounts received by card and cash (settlement currency)
func (o *Order) RecordPayments(paidCard, paidCash decimal.Decimal) error {
	if paidCard.IsNegative() || paidCash.IsNegative() {
		return shared.NewDomainError("INVALID_PAYMENT", "Paid amounts cannot be negative")
	}
	o.PaidCard = paidCard
	o.PaidCash = paidCash
	o.UpdatedAt = time.Now()
	return nil
}

// TotalPaid returns paid-by-card plus paid-by-cash
func (o *Order) TotalPaid() decimal.Decimal {
	return o.PaidCard.Add(o.PaidCash)
}

// ReplaceItems swaps the full set of order lines. An empty replacement is
// rejected: a caller sending no items is far more likely to have omitted the
// field than to want every line wiped.
func (o *Order) ReplaceItems(items []Item) error {
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Cannot replace order items with an empty list")
	}
	for idx := range items {
		items[idx].OrderID = o.ID
	}
	o.Items = items
	o.UpdatedAt = time.Now()
	return nil
}

// SetShippingNumber stamps the shipment back-reference on the order
func (o *Order) SetShippingNumber(number string) {
	o.ShippingNumber = &number
	o.UpdatedAt = time.Now()
}

// ClearShippingNumber removes the shipment back-reference
func (o *Order) ClearShippingNumber() {
	o.ShippingNumber = nil
	o.UpdatedAt = time.Now()
}

// SettlementLockEligible reports whether the completed + fully-paid
// conjunction holds, the only state in which the local-currency total may be
// frozen.
func (o *Order) SettlementLockEligible() bool {
	return o.Status == StatusCompleted && o.PaymentStatus.IsFullyPaid()
}

// IsSettlementLocked reports whether a frozen final amount is recorded
func (o *Order) IsSettlementLocked() bool {
	return o.FinalAmountUZS != nil
}

// EngageSettlementLock freezes the local-currency total. Rejected while the
// order is not completed and fully paid; the lock is never stored outside
// that conjunction.
func (o *Order) EngageSettlementLock(amount decimal.Decimal) error {
	if !o.SettlementLockEligible() {
		return shared.ErrInvalidTransition
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Final amount cannot be negative")
	}
	o.FinalAmountUZS = &amount
	o.UpdatedAt = time.Now()
	return nil
}

// ReleaseSettlementLock clears the frozen final amount, returning the order
// to live computation.
func (o *Order) ReleaseSettlementLock() {
	o.FinalAmountUZS = nil
	o.UpdatedAt = time.Now()
}
