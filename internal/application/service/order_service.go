package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/internal/domain/enum"
	"github.com/ardentsoft/stroypos/internal/domain/gateway"
	"github.com/ardentsoft/stroypos/pkg/apperror"
)

// OrderService is the Order Lifecycle Client. It turns a cart snapshot into
// a pending sale on the backend and later settles or cancels it. The state
// machine (pending -> completed/cancelled, both final) lives on the backend;
// this service's job is to call it correctly and never mutate local state on
// failure.
//
// There is no automatic retry anywhere here: every failure surfaces to the
// operator, who re-triggers the action by hand.
type OrderService struct {
	carts  *CartService
	sales  gateway.SalesGateway
	logger *zap.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(carts *CartService, sales gateway.SalesGateway, logger *zap.Logger) *OrderService {
	return &OrderService{
		carts:  carts,
		sales:  sales,
		logger: logger,
	}
}

// CreateOrder submits the register's cart as a pending sale.
//
// Returns (nil, nil) without touching the network when the cart is empty.
// Prices are resolved from the supplied catalog at this moment and frozen
// into the sale; later catalog changes do not affect it. Lines whose product
// has vanished from the catalog are skipped. The cart is cleared only after
// the backend accepts the sale; on failure it stays intact for a retry.
func (s *OrderService) CreateOrder(ctx context.Context, registerID uuid.UUID, catalog map[uuid.UUID]*entity.Product, customerID *uuid.UUID) (*entity.Sale, error) {
	cart := s.carts.Snapshot(registerID)
	if cart.Empty() {
		return nil, nil
	}

	totals := cart.Totals(catalog)

	lines := make([]gateway.SaleDraftLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, ok := catalog[item.ProductID]
		if !ok {
			s.logger.Warn("skipping stale cart line at checkout",
				zap.String("register_id", registerID.String()),
				zap.String("product_id", item.ProductID.String()),
			)
			continue
		}
		lines = append(lines, gateway.SaleDraftLine{
			Product:  item.ProductID,
			Quantity: item.Quantity,
			Price:    product.SellPrice,
			Total:    entity.LineTotal(product.SellPrice, item.Quantity),
		})
	}
	if len(lines) == 0 {
		return nil, nil
	}

	draft := &gateway.SaleDraft{
		Customer:       customerID,
		TotalAmount:    totals.Total,
		DiscountAmount: totals.DiscountAmount,
		PaymentMethod:  cart.PaymentMethod,
		Items:          lines,
	}

	sale, err := s.sales.CreateSale(ctx, draft)
	if err != nil {
		s.logger.Error("order creation failed",
			zap.String("register_id", registerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.carts.Clear(registerID)

	s.logger.Info("order created",
		zap.String("register_id", registerID.String()),
		zap.String("sale_id", sale.ID.String()),
		zap.Int64("total", sale.TotalAmount),
	)
	return sale, nil
}

// ConfirmPayment settles a pending sale with the chosen method.
//
// Debt settlement requires an attached customer; that rule is checked here,
// before any network traffic, and violations come back as a validation
// error the handler turns into a 422.
func (s *OrderService) ConfirmPayment(ctx context.Context, sale *entity.Sale, method enum.PaymentMethod) (*entity.Sale, error) {
	if !method.Valid() {
		return nil, apperror.NewBadRequestError("Noto'g'ri to'lov turi: " + method.String())
	}
	if method == enum.PaymentDebt && !sale.HasCustomer() {
		return nil, apperror.NewValidationError("Qarzga sotish uchun mijoz tanlangan bo'lishi majburiy")
	}

	updated, err := s.sales.ConfirmPayment(ctx, sale.ID, method)
	if err != nil {
		s.logger.Error("payment confirmation failed",
			zap.String("sale_id", sale.ID.String()),
			zap.String("method", method.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("payment confirmed",
		zap.String("sale_id", updated.ID.String()),
		zap.String("method", method.String()),
	)
	return updated, nil
}

// CancelOrder voids a pending sale.
func (s *OrderService) CancelOrder(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error) {
	updated, err := s.sales.CancelSale(ctx, saleID)
	if err != nil {
		s.logger.Error("order cancellation failed",
			zap.String("sale_id", saleID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("order cancelled", zap.String("sale_id", updated.ID.String()))
	return updated, nil
}

// PendingOrders fetches sales awaiting settlement directly from the backend.
// The kassa screen normally reads the poller snapshot instead; this is for
// forced refreshes.
func (s *OrderService) PendingOrders(ctx context.Context, limit int) ([]entity.Sale, error) {
	return s.sales.PendingSales(ctx, limit)
}
