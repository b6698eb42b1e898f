package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/internal/domain/enum"
	"github.com/ardentsoft/stroypos/internal/domain/gateway"
	"github.com/ardentsoft/stroypos/pkg/apperror"
)

// fakeSalesGateway records calls and delegates to overridable funcs.
type fakeSalesGateway struct {
	createCalls  int
	confirmCalls int
	cancelCalls  int

	createFn  func(ctx context.Context, draft *gateway.SaleDraft) (*entity.Sale, error)
	confirmFn func(ctx context.Context, saleID uuid.UUID, method enum.PaymentMethod) (*entity.Sale, error)
	cancelFn  func(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error)
	pendingFn func(ctx context.Context, limit int) ([]entity.Sale, error)
}

func (f *fakeSalesGateway) CreateSale(ctx context.Context, draft *gateway.SaleDraft) (*entity.Sale, error) {
	f.createCalls++
	return f.createFn(ctx, draft)
}

func (f *fakeSalesGateway) ConfirmPayment(ctx context.Context, saleID uuid.UUID, method enum.PaymentMethod) (*entity.Sale, error) {
	f.confirmCalls++
	return f.confirmFn(ctx, saleID, method)
}

func (f *fakeSalesGateway) CancelSale(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error) {
	f.cancelCalls++
	return f.cancelFn(ctx, saleID)
}

func (f *fakeSalesGateway) PendingSales(ctx context.Context, limit int) ([]entity.Sale, error) {
	if f.pendingFn != nil {
		return f.pendingFn(ctx, limit)
	}
	return nil, nil
}

func TestCreateOrderEmptyCartSkipsBackend(t *testing.T) {
	logger := zaptest.NewLogger(t)
	carts := NewCartService(logger)
	sales := &fakeSalesGateway{}
	svc := NewOrderService(carts, sales, logger)

	sale, err := svc.CreateOrder(context.Background(), uuid.New(), nil, nil)

	assert.NoError(t, err)
	assert.Nil(t, sale)
	assert.Equal(t, 0, sales.createCalls)
}

func TestCreateOrderFreezesPricesAndClearsCart(t *testing.T) {
	logger := zaptest.NewLogger(t)
	carts := NewCartService(logger)
	register := uuid.New()
	cement := newTestProduct("Sement M400", 45000, "100")
	catalog := catalogOf(cement)

	carts.AddToCart(register, cement, decimal.NewFromInt(2))
	carts.SetDiscountPercent(register, 10)

	var captured *gateway.SaleDraft
	sales := &fakeSalesGateway{
		createFn: func(_ context.Context, draft *gateway.SaleDraft) (*entity.Sale, error) {
			captured = draft
			return &entity.Sale{
				ID:          uuid.New(),
				Status:      enum.SaleStatusPending,
				TotalAmount: draft.TotalAmount,
			}, nil
		},
	}
	svc := NewOrderService(carts, sales, logger)

	sale, err := svc.CreateOrder(context.Background(), register, catalog, nil)

	require.NoError(t, err)
	require.NotNil(t, sale)
	require.NotNil(t, captured)
	require.Len(t, captured.Items, 1)
	assert.Equal(t, int64(45000), captured.Items[0].Price)
	assert.Equal(t, int64(90000), captured.Items[0].Total)
	assert.Equal(t, int64(9000), captured.DiscountAmount)
	assert.Equal(t, int64(81000), captured.TotalAmount)
	assert.Equal(t, enum.PaymentCash, captured.PaymentMethod)
	assert.Equal(t, 0, carts.Size(register), "cart must clear after success")
}

func TestCreateOrderBackendFailureKeepsCart(t *testing.T) {
	logger := zaptest.NewLogger(t)
	carts := NewCartService(logger)
	register := uuid.New()
	brick := newTestProduct("G'isht", 1200, "500")

	carts.AddToCart(register, brick, decimal.NewFromInt(100))

	sales := &fakeSalesGateway{
		createFn: func(context.Context, *gateway.SaleDraft) (*entity.Sale, error) {
			return nil, apperror.ErrBackendDown
		},
	}
	svc := NewOrderService(carts, sales, logger)

	sale, err := svc.CreateOrder(context.Background(), register, catalogOf(brick), nil)

	assert.Nil(t, sale)
	assert.ErrorIs(t, err, apperror.ErrBackendDown)
	assert.Equal(t, 1, carts.Size(register), "cart must survive a failed submit")
}

func TestCreateOrderAllLinesStaleSkipsBackend(t *testing.T) {
	logger := zaptest.NewLogger(t)
	carts := NewCartService(logger)
	register := uuid.New()
	gone := newTestProduct("O'chirilgan", 5000, "10")

	carts.AddToCart(register, gone, decimal.NewFromInt(1))

	sales := &fakeSalesGateway{}
	svc := NewOrderService(carts, sales, logger)

	sale, err := svc.CreateOrder(context.Background(), register, map[uuid.UUID]*entity.Product{}, nil)

	assert.NoError(t, err)
	assert.Nil(t, sale)
	assert.Equal(t, 0, sales.createCalls)
}

func TestConfirmPaymentDebtRequiresCustomer(t *testing.T) {
	logger := zaptest.NewLogger(t)
	sales := &fakeSalesGateway{}
	svc := NewOrderService(NewCartService(logger), sales, logger)

	sale := &entity.Sale{ID: uuid.New(), Status: enum.SaleStatusPending}

	_, err := svc.ConfirmPayment(context.Background(), sale, enum.PaymentDebt)

	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
	assert.Equal(t, 0, sales.confirmCalls, "guard must fire before any network call")
}

func TestConfirmPaymentDebtWithCustomer(t *testing.T) {
	logger := zaptest.NewLogger(t)
	customerID := uuid.New()
	sales := &fakeSalesGateway{
		confirmFn: func(_ context.Context, saleID uuid.UUID, method enum.PaymentMethod) (*entity.Sale, error) {
			return &entity.Sale{ID: saleID, Status: enum.SaleStatusCompleted, PaymentMethod: method}, nil
		},
	}
	svc := NewOrderService(NewCartService(logger), sales, logger)

	sale := &entity.Sale{ID: uuid.New(), Customer: &customerID, CustomerName: "Karimov Aziz"}

	updated, err := svc.ConfirmPayment(context.Background(), sale, enum.PaymentDebt)

	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusCompleted, updated.Status)
	assert.Equal(t, enum.PaymentDebt, updated.PaymentMethod)
}

func TestConfirmPaymentRejectsUnknownMethod(t *testing.T) {
	logger := zaptest.NewLogger(t)
	sales := &fakeSalesGateway{}
	svc := NewOrderService(NewCartService(logger), sales, logger)

	_, err := svc.ConfirmPayment(context.Background(), &entity.Sale{ID: uuid.New()}, "crypto")

	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	assert.Equal(t, 0, sales.confirmCalls)
}

func TestCancelOrderPassesThrough(t *testing.T) {
	logger := zaptest.NewLogger(t)
	saleID := uuid.New()
	sales := &fakeSalesGateway{
		cancelFn: func(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
			return &entity.Sale{ID: id, Status: enum.SaleStatusCancelled}, nil
		},
	}
	svc := NewOrderService(NewCartService(logger), sales, logger)

	updated, err := svc.CancelOrder(context.Background(), saleID)

	require.NoError(t, err)
	assert.Equal(t, saleID, updated.ID)
	assert.Equal(t, enum.SaleStatusCancelled, updated.Status)
	assert.Equal(t, 1, sales.cancelCalls)
}
