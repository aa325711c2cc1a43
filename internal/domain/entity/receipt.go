package entity

import (
	"strings"
	"time"

	"github.com/bukusaku/bukusaku-api/pkg/utils"
	"github.com/google/uuid"
)

// ReceiptItem is one printed line.
type ReceiptItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"qty"`
	Price    int64  `json:"price"`
	Subtotal int64  `json:"subtotal"`
}

func NewReceiptItem(name string, qty int, price int64) ReceiptItem {
	return ReceiptItem{Name: name, Quantity: qty, Price: price, Subtotal: int64(qty) * price}
}

// Receipt is a value object composed at render time from a sale or a stored
// transaction. It is not persisted.
type Receipt struct {
	ID            uuid.UUID     `json:"id"`
	Number        string        `json:"number"`
	Date          time.Time     `json:"date"`
	Total         int64         `json:"total"`
	PaymentAmount *int64        `json:"payment_amount,omitempty"`
	ChangeAmount  *int64        `json:"change_amount,omitempty"`
	Items         []ReceiptItem `json:"items"`
}

// NewReceipt builds a receipt for tx with the given lines.
func NewReceipt(tx *Transaction, items []ReceiptItem) *Receipt {
	return &Receipt{
		ID:            tx.ID,
		Number:        utils.ShortID(tx.ID),
		Date:          tx.Date,
		Total:         tx.Amount,
		PaymentAmount: tx.PaymentAmount,
		ChangeAmount:  tx.ChangeAmount,
		Items:         items,
	}
}

// ReceiptFromTransaction rebuilds a receipt from stored rows. An entry with
// no item rows gets one line named after its description, or its category
// when the description is blank, priced at the full amount.
func ReceiptFromTransaction(tx *Transaction, rows []TransactionItem) *Receipt {
	items := make([]ReceiptItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ReceiptItem{
			Name:     row.ProductName,
			Quantity: row.Quantity,
			Price:    row.Price,
			Subtotal: row.Subtotal,
		})
	}
	if len(items) == 0 {
		name := strings.TrimSpace(tx.Description)
		if name == "" {
			name = tx.Category.Label()
		}
		items = append(items, NewReceiptItem(name, 1, tx.Amount))
	}
	return NewReceipt(tx, items)
}

// HasTender reports whether cash tendered and change are both known.
func (r *Receipt) HasTender() bool {
	return r.PaymentAmount != nil && r.ChangeAmount != nil
}

// FileName is the name used for exported documents.
func (r *Receipt) FileName() string {
	return "Receipt-" + r.Number + ".pdf"
}
