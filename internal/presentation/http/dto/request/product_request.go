package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents a product creation request. Prices are
// whole rupiah; fractions are rounded.
type CreateProductRequest struct {
	Name      string          `json:"name" binding:"required,max=255"`
	SKU       string          `json:"sku" binding:"omitempty,max=100"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Stock     int             `json:"stock" binding:"min=0"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name      *string          `json:"name" binding:"omitempty,max=255"`
	SKU       *string          `json:"sku" binding:"omitempty,max=100"`
	BuyPrice  *decimal.Decimal `json:"buy_price"`
	SellPrice *decimal.Decimal `json:"sell_price"`
	Stock     *int             `json:"stock" binding:"omitempty,min=0"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search   string `form:"search"`
	LowStock bool   `form:"low_stock"`
}
