package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ardentsoft/stroypos/internal/application/service"
	"github.com/ardentsoft/stroypos/internal/presentation/http/dto/response"
)

// ReceiptHandler serves the last built receipt for the dedicated print view.
type ReceiptHandler struct {
	printers *service.PrinterService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(printers *service.PrinterService) *ReceiptHandler {
	return &ReceiptHandler{printers: printers}
}

// Last handles reading the most recent receipt. ?format=html returns the
// printable HTML page, ?format=text the raw ESC/POS stream; the default is
// the structured JSON the preview dialog consumes.
func (h *ReceiptHandler) Last(c *gin.Context) {
	receipt := h.printers.LastReceipt()
	if receipt == nil {
		response.NotFound(c, "Hali chek mavjud emas")
		return
	}

	switch c.Query("format") {
	case "html":
		html, err := h.printers.FormatHTML(receipt)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
	case "text":
		c.Data(http.StatusOK, "application/octet-stream", h.printers.FormatThermal(receipt))
	default:
		response.OK(c, "Receipt retrieved successfully", receipt)
	}
}
