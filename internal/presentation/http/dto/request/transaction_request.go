package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest is the body of a manual ledger entry
type TransactionRequest struct {
	Type        string          `json:"type" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"max=1000"`
	Date        *time.Time      `json:"date"`
}

// TransactionFilterRequest represents transaction filter parameters.
// Dates are YYYY-MM-DD, both ends inclusive.
type TransactionFilterRequest struct {
	Search   string `form:"search"`
	Type     string `form:"type"`
	Category string `form:"category"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// ReceiptQuery selects the receipt rendition
type ReceiptQuery struct {
	Format string `form:"format"`
	Width  int    `form:"width"`
}
