package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/internal/domain/enum"
)

// CartService is the Cart State Manager: it holds one working cart per
// register, enforces stock bounds on every mutation and derives totals.
// Carts are memory-only; an unsubmitted cart does not survive a restart.
//
// Quantity policy: requests beyond available stock are clamped to the stock
// level, never rejected outright. The applied quantity is returned so the UI
// can show what actually landed in the cart.
type CartService struct {
	mu     sync.RWMutex
	carts  map[uuid.UUID]*entity.Cart
	logger *zap.Logger
}

// NewCartService creates a new cart service.
func NewCartService(logger *zap.Logger) *CartService {
	return &CartService{
		carts:  make(map[uuid.UUID]*entity.Cart),
		logger: logger,
	}
}

// cart returns the register's cart, creating it on first use.
// Caller must hold the write lock.
func (s *CartService) cart(registerID uuid.UUID) *entity.Cart {
	c, ok := s.carts[registerID]
	if !ok {
		c = entity.NewCart()
		s.carts[registerID] = c
	}
	return c
}

// AddToCart adjusts a line by delta (positive or negative), creating the
// line if needed. The resulting quantity is clamped to
// [0, product.CurrentStock]; a result of zero removes the line. Returns the
// quantity now in the cart for this product.
func (s *CartService) AddToCart(registerID uuid.UUID, product *entity.Product, delta decimal.Decimal) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(registerID)

	current := decimal.Zero
	if item, ok := c.Items[product.ID]; ok {
		current = item.Quantity
	}

	return s.applyQuantity(c, product, current.Add(delta))
}

// SetQuantity sets a line to an absolute quantity, clamped to
// [0, product.CurrentStock]. Zero or negative removes the line. Returns the
// applied quantity.
func (s *CartService) SetQuantity(registerID uuid.UUID, product *entity.Product, qty decimal.Decimal) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyQuantity(s.cart(registerID), product, qty)
}

// applyQuantity clamps and stores the target quantity for a product line.
// Caller must hold the write lock.
func (s *CartService) applyQuantity(c *entity.Cart, product *entity.Product, qty decimal.Decimal) decimal.Decimal {
	if qty.Cmp(product.CurrentStock) > 0 {
		s.logger.Debug("cart quantity clamped to stock",
			zap.String("product_id", product.ID.String()),
			zap.String("requested", qty.String()),
			zap.String("stock", product.CurrentStock.String()),
		)
		qty = product.CurrentStock
	}

	if qty.Sign() <= 0 {
		delete(c.Items, product.ID)
		return decimal.Zero
	}

	if item, ok := c.Items[product.ID]; ok {
		item.Quantity = qty
	} else {
		c.Items[product.ID] = &entity.CartItem{
			ProductID: product.ID,
			Quantity:  qty,
		}
	}
	return qty
}

// RemoveFromCart drops a line unconditionally.
func (s *CartService) RemoveFromCart(registerID, productID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cart(registerID).Items, productID)
}

// SetDiscountPercent applies a cart-wide percent discount. Percent takes
// precedence over a flat amount when both are set.
func (s *CartService) SetDiscountPercent(registerID uuid.UUID, percent int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if percent < 0 {
		percent = 0
	}
	s.cart(registerID).DiscountPercent = percent
}

// SetDiscountAmount applies a cart-wide flat discount in so'm.
func (s *CartService) SetDiscountAmount(registerID uuid.UUID, amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount < 0 {
		amount = 0
	}
	s.cart(registerID).DiscountAmount = amount
}

// SetPaymentMethod records the intended settlement type for checkout.
func (s *CartService) SetPaymentMethod(registerID uuid.UUID, method enum.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart(registerID).PaymentMethod = method
}

// CalculateTotal derives subtotal, discount and total against the given
// catalog. Stale lines (product gone from the catalog) contribute zero.
func (s *CartService) CalculateTotal(registerID uuid.UUID, catalog map[uuid.UUID]*entity.Product) entity.CartTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[registerID]
	if !ok {
		return entity.CartTotals{}
	}
	return c.Totals(catalog)
}

// Snapshot returns a deep copy of the register's cart for checkout or
// display. Mutating the copy does not touch the live cart.
func (s *CartService) Snapshot(registerID uuid.UUID) *entity.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[registerID]
	if !ok {
		return entity.NewCart()
	}

	copied := entity.NewCart()
	copied.DiscountAmount = c.DiscountAmount
	copied.DiscountPercent = c.DiscountPercent
	copied.PaymentMethod = c.PaymentMethod
	for id, item := range c.Items {
		line := *item
		copied.Items[id] = &line
	}
	return copied
}

// Clear empties the register's cart and resets both discount fields.
func (s *CartService) Clear(registerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, registerID)
}

// Size returns the number of lines in the register's cart.
func (s *CartService) Size(registerID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[registerID]
	if !ok {
		return 0
	}
	return len(c.Items)
}
