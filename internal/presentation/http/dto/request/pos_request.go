package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest adjusts a cart line by a delta. Quantity may be negative to
// step a line down, and fractional for products sold by weight or length.
type AddItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// SetQuantityRequest sets a cart line to an absolute quantity. Zero removes
// the line.
type SetQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// DiscountRequest applies a cart-wide discount. Exactly one of the fields is
// meaningful per call; percent takes precedence when both end up set.
type DiscountRequest struct {
	Percent *int64 `json:"percent"`
	Amount  *int64 `json:"amount"`
}

// PaymentMethodRequest records the intended settlement type on the cart.
type PaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// CheckoutRequest submits the cart as a pending sale. CustomerID is optional;
// a walk-in sale has none.
type CheckoutRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
}

// ConfirmRequest settles a pending sale.
type ConfirmRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}
