package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ardentsoft/stroypos/internal/application/service"
	"github.com/ardentsoft/stroypos/internal/presentation/http/dto/response"
)

// PrinterHandler exposes the local thermal printer's status and a test page.
type PrinterHandler struct {
	printers *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printers *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printers: printers}
}

// Status handles reading printer connection status.
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status retrieved successfully", h.printers.GetStatus())
}

// Test handles printing a sample receipt to verify the hardware path.
func (h *PrinterHandler) Test(c *gin.Context) {
	receipt, err := h.printers.TestPrint()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test receipt printed successfully", receipt)
}
