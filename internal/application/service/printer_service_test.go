package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ardentsoft/stroypos/internal/config"
	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/internal/domain/enum"
)

// fakePrinter captures whatever would hit the paper.
type fakePrinter struct {
	jobs [][]byte
	err  error
}

func (f *fakePrinter) Print(data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, data)
	return nil
}

func (f *fakePrinter) Close() error      { return nil }
func (f *fakePrinter) IsConnected() bool { return true }

type fakePrintGateway struct {
	dispatched []uuid.UUID
	err        error
}

func (f *fakePrintGateway) DispatchPrint(_ context.Context, saleID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.dispatched = append(f.dispatched, saleID)
	return nil
}

func testShopConfig() *config.ShopConfig {
	return &config.ShopConfig{
		Name:         "STROYCRM",
		Tagline:      "QURILISH MOLLARI DO'KONI",
		Phones:       []string{"+998 90 123 45 67"},
		SystemName:   "STROY CRM tizimi",
		Website:      "www.ardentsoft.uz",
		SupportPhone: "+998 71 200 00 00",
		CashierName:  "admin",
	}
}

func newTestPrinterService(t *testing.T, p *fakePrinter, relay *fakePrintGateway, printerType string) *PrinterService {
	t.Helper()
	return NewPrinterService(p, relay, testShopConfig(), &config.PrinterConfig{
		Type:  printerType,
		Width: 32,
	}, zaptest.NewLogger(t))
}

func testSale() *entity.Sale {
	return &entity.Sale{
		ID:        uuid.New(),
		ReceiptID: "CHK-000123",
		Status:    enum.SaleStatusCompleted,
		Items: []entity.SaleItem{
			{ProductName: "Sement M400", Quantity: decimal.NewFromInt(2), Price: 45000, Total: 90000},
			{ProductName: "Armatura 12mm", Quantity: decimal.RequireFromString("2.5"), Price: 11000, Total: 27500},
		},
		TotalAmount:    112500,
		DiscountAmount: 5000,
		PaymentMethod:  enum.PaymentCash,
		SellerName:     "Olim aka",
		CustomerName:   "Karimov Aziz",
		CreatedAt:      time.Date(2025, 3, 14, 15, 4, 0, 0, time.Local),
	}
}

func TestBuildReceiptFallbacks(t *testing.T) {
	svc := newTestPrinterService(t, &fakePrinter{}, &fakePrintGateway{}, "none")

	sale := testSale()
	sale.SellerName = ""
	sale.CashierName = ""
	sale.CustomerName = ""

	r := svc.BuildReceipt(sale)

	assert.Equal(t, "admin", r.Seller)
	assert.Equal(t, entity.WalkInCustomer, r.Customer)
	assert.Equal(t, "CHK-000123", r.ReceiptNo)
	assert.Equal(t, "14.03.2025 15:04", r.Date)
}

func TestFormatThermalContent(t *testing.T) {
	svc := newTestPrinterService(t, &fakePrinter{}, &fakePrintGateway{}, "usb")

	out := string(svc.FormatThermal(svc.BuildReceipt(testSale())))

	assert.Contains(t, out, "STROYCRM")
	assert.Contains(t, out, "Sotuvchi : Olim aka")
	assert.Contains(t, out, "Mijoz    : Karimov Aziz")
	assert.Contains(t, out, "Chek No  : CHK-000123")
	assert.Contains(t, out, "Sement M400")
	assert.Contains(t, out, "2.5 x 11 000")
	assert.Contains(t, out, "Chegirma:")
	assert.Contains(t, out, "-5 000")
	assert.Contains(t, out, "To'lov: Naqd")
	assert.Contains(t, out, "JAMI: 112 500 so'm")
	assert.Contains(t, out, "Xaridingiz uchun rahmat!")
	assert.True(t, strings.HasSuffix(out, string([]byte{0x1D, 'V', 0x00})), "stream must end with a cut")
}

func TestFormatThermalOmitsZeroDiscount(t *testing.T) {
	svc := newTestPrinterService(t, &fakePrinter{}, &fakePrintGateway{}, "usb")

	sale := testSale()
	sale.DiscountAmount = 0

	out := string(svc.FormatThermal(svc.BuildReceipt(sale)))
	assert.NotContains(t, out, "Chegirma")
}

func TestFormatHTMLContent(t *testing.T) {
	svc := newTestPrinterService(t, &fakePrinter{}, &fakePrintGateway{}, "none")

	html, err := svc.FormatHTML(svc.BuildReceipt(testSale()))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "STROYCRM")
	assert.Contains(t, out, "Karimov Aziz")
	assert.Contains(t, out, "JAMI: 112 500 so&#39;m")
	assert.Contains(t, out, "-5 000")
	assert.Contains(t, out, "Naqd")
}

func TestPrintSaleLocalPrinter(t *testing.T) {
	p := &fakePrinter{}
	relay := &fakePrintGateway{}
	svc := newTestPrinterService(t, p, relay, "usb")

	sale := testSale()
	receipt, err := svc.PrintSale(context.Background(), sale)

	require.NoError(t, err)
	assert.Len(t, p.jobs, 1)
	assert.Empty(t, relay.dispatched)
	assert.Same(t, receipt, svc.LastReceipt())
}

func TestPrintSaleRelaysWithoutHardware(t *testing.T) {
	p := &fakePrinter{}
	relay := &fakePrintGateway{}
	svc := newTestPrinterService(t, p, relay, "none")

	sale := testSale()
	_, err := svc.PrintSale(context.Background(), sale)

	require.NoError(t, err)
	assert.Empty(t, p.jobs)
	assert.Equal(t, []uuid.UUID{sale.ID}, relay.dispatched)
}

func TestPrintSaleFallsBackToRelayOnLocalFailure(t *testing.T) {
	p := &fakePrinter{err: errors.New("paper jam")}
	relay := &fakePrintGateway{}
	svc := newTestPrinterService(t, p, relay, "usb")

	sale := testSale()
	_, err := svc.PrintSale(context.Background(), sale)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{sale.ID}, relay.dispatched)
}

func TestLastReceiptStartsEmpty(t *testing.T) {
	svc := newTestPrinterService(t, &fakePrinter{}, &fakePrintGateway{}, "none")
	assert.Nil(t, svc.LastReceipt())

	svc.CacheReceipt(testSale())
	require.NotNil(t, svc.LastReceipt())
	assert.Equal(t, "CHK-000123", svc.LastReceipt().ReceiptNo)
}

func TestTestPrintSendsSample(t *testing.T) {
	p := &fakePrinter{}
	svc := newTestPrinterService(t, p, &fakePrintGateway{}, "usb")

	receipt, err := svc.TestPrint()

	require.NoError(t, err)
	assert.Equal(t, "TEST-001", receipt.ReceiptNo)
	assert.Len(t, p.jobs, 1)
}

func TestGetStatus(t *testing.T) {
	svc := newTestPrinterService(t, &fakePrinter{}, &fakePrintGateway{}, "usb")
	status := svc.GetStatus()
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
	assert.Equal(t, "usb", status.Type)

	svc = newTestPrinterService(t, &fakePrinter{}, &fakePrintGateway{}, "none")
	assert.False(t, svc.GetStatus().Configured)
}
