package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ardentsoft/stroypos/internal/config"
	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/internal/domain/gateway"
	"github.com/ardentsoft/stroypos/pkg/money"
	"github.com/ardentsoft/stroypos/pkg/printer"
)

// PrinterService is the Receipt Renderer: it projects a sale into a receipt
// value object and renders that object as a 58mm ESC/POS stream or an HTML
// preview. Both renderings come from the same Receipt, so they cannot drift
// apart in content.
//
// Printing prefers the locally attached thermal printer; a register without
// one relays the job to the backend print queue. The last built receipt is
// kept in memory for the dedicated print view.
type PrinterService struct {
	printer     printer.Printer
	relay       gateway.PrintGateway
	header      entity.ReceiptHeader
	cashierName string
	printerType string
	width       int
	logger      *zap.Logger

	mu   sync.RWMutex
	last *entity.Receipt
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, relay gateway.PrintGateway, shop *config.ShopConfig, printerCfg *config.PrinterConfig, logger *zap.Logger) *PrinterService {
	return &PrinterService{
		printer: p,
		relay:   relay,
		header: entity.ReceiptHeader{
			StoreName:    shop.Name,
			Tagline:      shop.Tagline,
			Phones:       shop.Phones,
			SystemName:   shop.SystemName,
			Website:      shop.Website,
			SupportPhone: shop.SupportPhone,
		},
		cashierName: shop.CashierName,
		printerType: printerCfg.Type,
		width:       printerCfg.Width,
		logger:      logger,
	}
}

// BuildReceipt projects a sale into a printable receipt. A sale without a
// customer prints the walk-in fallback; a seller-less sale is attributed to
// the configured cashier.
func (s *PrinterService) BuildReceipt(sale *entity.Sale) *entity.Receipt {
	seller := sale.SellerName
	if seller == "" {
		seller = sale.CashierName
	}
	if seller == "" {
		seller = s.cashierName
	}

	customer := sale.CustomerName
	if customer == "" {
		customer = entity.WalkInCustomer
	}

	receiptNo := sale.ReceiptID
	if receiptNo == "" {
		receiptNo = sale.ID.String()
	}

	date := sale.CreatedAt
	if date.IsZero() {
		date = time.Now()
	}

	items := make([]entity.ReceiptItem, 0, len(sale.Items))
	for _, line := range sale.Items {
		total := line.Total
		if total == 0 {
			total = entity.LineTotal(line.Price, line.Quantity)
		}
		items = append(items, entity.ReceiptItem{
			Name:     line.ProductName,
			Quantity: line.Quantity,
			Price:    line.Price,
			Total:    total,
		})
	}

	return &entity.Receipt{
		Header:        s.header,
		Seller:        seller,
		Customer:      customer,
		Date:          date.Format("02.01.2006 15:04"),
		ReceiptNo:     receiptNo,
		Items:         items,
		Discount:      sale.DiscountAmount,
		PaymentMethod: sale.PaymentMethod,
		Total:         sale.TotalAmount,
		Notes:         sale.Notes,
	}
}

// FormatThermal renders a receipt as an ESC/POS byte stream for 58mm
// printers. The layout is deterministic, line by line: header, info block,
// items (name line plus a qty x price / total line), optional discount and
// payment lines, double-height centered total, notes, footer, cut.
func (s *PrinterService) FormatThermal(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal)
	if r.Header.Tagline != "" {
		doc.Text(r.Header.Tagline)
	}
	doc.LineFeed()

	// Info block
	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		TextF("Sotuvchi : %s", r.Seller).
		TextF("Mijoz    : %s", r.Customer).
		TextF("Sana     : %s", r.Date).
		TextF("Chek No  : %s", r.ReceiptNo).
		Separator('-')

	// Items: name on its own line, then quantity math right-aligned
	for _, item := range r.Items {
		doc.Text(" " + item.Name)
		doc.KeyValue(
			fmt.Sprintf("  %s x %s", item.Quantity, money.Format(item.Price)),
			money.Format(item.Total),
		)
	}
	doc.Separator('-')

	// Discount line only when a discount was actually applied
	if r.Discount > 0 {
		doc.KeyValue("  Chegirma:", "-"+money.Format(r.Discount))
	}
	if r.PaymentMethod != "" {
		doc.TextF("  To'lov: %s", r.PaymentMethod.Label())
	}
	doc.Separator('=')

	// Total
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontTall).
		TextF("JAMI: %s", money.FormatSum(r.Total)).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Notes != "" {
		doc.SetAlign(printer.AlignLeft).
			TextF("Izoh: %s", r.Notes)
	}

	// Footer
	doc.LineFeed().
		SetAlign(printer.AlignCenter).
		Text("Xaridingiz uchun rahmat!").
		Separator('-')
	if len(r.Header.Phones) > 0 {
		doc.SetBold(true).Text("Aloqa:").SetBold(false)
		for _, phone := range r.Header.Phones {
			doc.Text(phone)
		}
		doc.Separator('-')
	}
	if r.Header.SystemName != "" {
		doc.SetBold(true).Text(r.Header.SystemName).SetBold(false)
	}
	if r.Header.Website != "" {
		doc.Text(r.Header.Website)
	}
	if r.Header.SupportPhone != "" {
		doc.Text(r.Header.SupportPhone)
	}

	doc.FeedLines(3).Cut()

	return doc.Bytes()
}

// PrintSale builds, caches and prints the receipt for a sale. A register
// with a local printer prints directly; otherwise the job is relayed to the
// backend print queue. A failed local print also falls back to the relay so
// the customer still gets a receipt.
func (s *PrinterService) PrintSale(ctx context.Context, sale *entity.Sale) (*entity.Receipt, error) {
	receipt := s.BuildReceipt(sale)
	s.cache(receipt)

	if s.printerType != "none" && s.printerType != "" {
		err := s.printer.Print(s.FormatThermal(receipt))
		if err == nil {
			s.logger.Info("receipt printed locally", zap.String("receipt_no", receipt.ReceiptNo))
			return receipt, nil
		}
		s.logger.Warn("local print failed, relaying to backend",
			zap.String("receipt_no", receipt.ReceiptNo),
			zap.Error(err),
		)
	}

	if err := s.relay.DispatchPrint(ctx, sale.ID); err != nil {
		return receipt, err
	}
	s.logger.Info("receipt relayed to backend printer", zap.String("receipt_no", receipt.ReceiptNo))
	return receipt, nil
}

// CacheReceipt builds and stores the receipt for a sale without printing,
// so the preview dialog can show it before the operator commits to paper.
func (s *PrinterService) CacheReceipt(sale *entity.Sale) *entity.Receipt {
	receipt := s.BuildReceipt(sale)
	s.cache(receipt)
	return receipt
}

// LastReceipt returns the most recently built receipt, or nil when none has
// been built since startup. The cache is transient on purpose: receipts are
// reproducible from the backend's sale records.
func (s *PrinterService) LastReceipt() *entity.Receipt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *PrinterService) cache(r *entity.Receipt) {
	s.mu.Lock()
	s.last = r
	s.mu.Unlock()
}

// PrinterStatus reports the local printer's configuration and reachability.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a sample receipt to the local printer. The receipt is
// returned either way so a register without hardware still sees the output.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:    s.header,
		Seller:    s.cashierName,
		Customer:  entity.WalkInCustomer,
		Date:      time.Now().Format("02.01.2006 15:04"),
		ReceiptNo: "TEST-001",
		Items: []entity.ReceiptItem{
			{Name: "Sement M400", Quantity: decimal.NewFromInt(2), Price: 45000, Total: 90000},
			{Name: "Armatura 12mm", Quantity: decimal.NewFromFloat(2.5), Price: 11000, Total: 27500},
		},
		Total: 117500,
	}
	s.cache(receipt)

	if err := s.printer.Print(s.FormatThermal(receipt)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}
