package handler

import (
	"bytes"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/application/service"
	"github.com/bukusaku/bukusaku-api/internal/domain/enum"
	"github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/dto/request"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/dto/response"
	"github.com/bukusaku/bukusaku-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles ledger-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	receiptService     *service.ReceiptService
	printerService     *service.PrinterService
	loc                *time.Location
}

// NewTransactionHandler creates a new transaction handler. Date filters are
// read as calendar days in loc.
func NewTransactionHandler(
	transactionService *service.TransactionService,
	receiptService *service.ReceiptService,
	printerService *service.PrinterService,
	loc *time.Location,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		receiptService:     receiptService,
		printerService:     printerService,
		loc:                loc,
	}
}

func (h *TransactionHandler) filterParams(c *gin.Context) (*repository.TransactionFilterParams, bool) {
	var filter request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return nil, false
	}

	from, err := parseDay(filter.From, h.loc)
	if err != nil {
		response.BadRequest(c, "from must be a date (YYYY-MM-DD)")
		return nil, false
	}
	to, err := parseDay(filter.To, h.loc)
	if err != nil {
		response.BadRequest(c, "to must be a date (YYYY-MM-DD)")
		return nil, false
	}
	if to != nil {
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}

	return &repository.TransactionFilterParams{
		Pagination: &pagination.Params{Page: filter.Page, PerPage: filter.PerPage},
		Type:       enum.TransactionType(filter.Type),
		Category:   enum.TransactionCategory(filter.Category),
		Search:     filter.Search,
		From:       from,
		To:         to,
	}, true
}

// List handles listing ledger entries
func (h *TransactionHandler) List(c *gin.Context) {
	params, ok := h.filterParams(c)
	if !ok {
		return
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Export downloads every entry matching the filters as a workbook
func (h *TransactionHandler) Export(c *gin.Context) {
	params, ok := h.filterParams(c)
	if !ok {
		return
	}
	params.Pagination = nil

	var buf bytes.Buffer
	if err := h.transactionService.ExportLedger(c.Request.Context(), params, &buf); err != nil {
		response.Error(c, err)
		return
	}
	name := "buku-kas-" + time.Now().In(h.loc).Format("20060102") + ".xlsx"
	response.File(c, xlsxContentType, name, buf.Bytes(), true)
}

func transactionInput(req *request.TransactionRequest) *service.TransactionInput {
	return &service.TransactionInput{
		Type:        enum.TransactionType(req.Type),
		Category:    enum.TransactionCategory(req.Category),
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	}
}

// Create handles recording a manual entry
func (h *TransactionHandler) Create(c *gin.Context) {
	var req request.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	t, err := h.transactionService.CreateTransaction(c.Request.Context(), transactionInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction created successfully", t)
}

// Get handles getting a single entry
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	t, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", t)
}

// Update handles editing an entry
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req request.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	t, err := h.transactionService.UpdateTransaction(c.Request.Context(), id, transactionInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction updated successfully", t)
}

// Delete handles deleting an entry
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Items handles listing the sold lines of an entry
func (h *TransactionHandler) Items(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	items, err := h.transactionService.ListItems(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction items retrieved successfully", items)
}

// Receipt renders the receipt of an entry. JSON answers with the layout in
// the envelope; the other formats answer with the document itself.
func (h *TransactionHandler) Receipt(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var q request.ReceiptQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	out, err := h.receiptService.Render(c.Request.Context(), id, q.Format, q.Width)
	if err != nil {
		response.Error(c, err)
		return
	}

	switch out.Format {
	case service.FormatJSON:
		title, _ := out.ShareText()
		response.OK(c, "Receipt generated", gin.H{
			"receipt":     out.Receipt,
			"layout":      out.Layout,
			"share_title": title,
		})
	case service.FormatPDF:
		if out.ArchiveURL != "" {
			c.Header("X-Archive-URL", out.ArchiveURL)
		}
		response.File(c, out.ContentType, out.FileName, out.Body, true)
	case service.FormatText:
		title, _ := out.ShareText()
		c.Header("X-Share-Title", title)
		response.File(c, out.ContentType, "", out.Body, false)
	default:
		response.File(c, out.ContentType, "", out.Body, false)
	}
}

// Print sends the receipt of an entry to the shop printer
func (h *TransactionHandler) Print(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.PrintRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.printerService.PrintTransaction(c.Request.Context(), id, req.Width)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondPrint(c, result)
}
