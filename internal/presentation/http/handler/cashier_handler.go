package handler

import (
	"github.com/bukusaku/bukusaku-api/internal/application/service"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/dto/request"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/dto/response"
	"github.com/bukusaku/bukusaku-api/pkg/apperror"
	"github.com/bukusaku/bukusaku-api/pkg/currency"
	"github.com/gin-gonic/gin"
)

// CashierHandler drives the till: catalog lookup, the open cart and checkout
type CashierHandler struct {
	cashierService *service.CashierService
}

// NewCashierHandler creates a new cashier handler
func NewCashierHandler(cashierService *service.CashierService) *CashierHandler {
	return &CashierHandler{cashierService: cashierService}
}

// Catalog searches the cached product list
func (h *CashierHandler) Catalog(c *gin.Context) {
	products, err := h.cashierService.SearchCatalog(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog retrieved successfully", products)
}

// OpenCart starts an empty cart
func (h *CashierHandler) OpenCart(c *gin.Context) {
	view, err := h.cashierService.OpenCart(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Cart opened", view)
}

func (h *CashierHandler) GetCart(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	view, err := h.cashierService.GetCart(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved successfully", view)
}

func (h *CashierHandler) ClearCart(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.cashierService.ClearCart(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddItem adds one unit by product_id, or by sku for barcode scanners
func (h *CashierHandler) AddItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var (
		view *service.CartView
		err  error
	)
	switch {
	case req.ProductID != nil:
		view, err = h.cashierService.AddToCart(c.Request.Context(), id, *req.ProductID)
	case req.SKU != "":
		view, err = h.cashierService.AddBySKU(c.Request.Context(), id, req.SKU)
	default:
		err = apperror.NewFieldError("product_id", "product_id or sku is required")
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", view)
}

func (h *CashierHandler) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.cashierService.UpdateQuantity(c.Request.Context(), id, productID, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quantity updated", view)
}

func (h *CashierHandler) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	view, err := h.cashierService.RemoveFromCart(c.Request.Context(), id, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed", view)
}

// Checkout records the sale. Secondary write failures come back as
// warnings next to a successful result.
func (h *CashierHandler) Checkout(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.CheckoutRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	input := &service.CheckoutInput{CartID: id}
	if req.PaymentAmount != nil {
		paid, err := currency.ToRupiah(*req.PaymentAmount)
		if err != nil {
			response.Error(c, apperror.NewFieldError("payment_amount", err.Error()))
			return
		}
		input.PaymentAmount = &paid
	}

	result, err := h.cashierService.Checkout(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithWarnings(c, 201, "Sale recorded", result, result.Warnings)
}
