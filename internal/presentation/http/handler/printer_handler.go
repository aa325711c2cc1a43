package handler

import (
	"github.com/bukusaku/bukusaku-api/internal/application/service"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/dto/request"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.Status(c.Request.Context()))
}

// TestPrint sends a sample receipt to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	var req request.PrintRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.printerService.TestPrint(c.Request.Context(), req.Width)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondPrint(c, result)
}

// respondPrint returns the receipt whether or not the printer took it.
func respondPrint(c *gin.Context, result *service.PrintResult) {
	switch {
	case result.Warning != "":
		response.SuccessWithWarnings(c, 200, "Receipt generated but printing failed", result, []string{result.Warning})
	case !result.Printed:
		response.OK(c, "Receipt generated (printer disabled)", result)
	default:
		response.OK(c, "Receipt sent to printer", result)
	}
}
