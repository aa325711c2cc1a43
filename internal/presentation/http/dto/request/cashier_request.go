package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds one unit by product id or by scanned SKU
type AddItemRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
	SKU       string     `json:"sku"`
}

// UpdateQuantityRequest moves a line's quantity by at most 1000 either way
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required,min=-1000,max=1000"`
}

// CheckoutRequest carries the optional cash tendered
type CheckoutRequest struct {
	PaymentAmount *decimal.Decimal `json:"payment_amount"`
}
