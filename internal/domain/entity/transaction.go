package entity

import (
	"time"

	"github.com/bukusaku/bukusaku-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction is one ledger entry. Cashier sales are income/sales entries
// with item rows; manual entries usually have none.
type Transaction struct {
	ID            uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	Type          enum.TransactionType     `gorm:"size:20;not null;index" json:"type"`
	Category      enum.TransactionCategory `gorm:"size:20;not null;index" json:"category"`
	Amount        int64                    `gorm:"not null" json:"amount"`
	PaymentAmount *int64                   `json:"payment_amount,omitempty"`
	ChangeAmount  *int64                   `json:"change_amount,omitempty"`
	Description   string                   `gorm:"type:text" json:"description"`
	Date          time.Time                `gorm:"not null;index" json:"date"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// IsIncome reports whether the entry counts towards revenue. Capital
// injections are recorded as income but are not earnings.
func (t *Transaction) IsIncome() bool {
	return t.Type == enum.TransactionTypeIncome && t.Category != enum.CategoryCapital
}

func (t *Transaction) IsExpense() bool {
	return t.Type == enum.TransactionTypeExpense
}

func (t *Transaction) IsCapital() bool {
	return t.Category == enum.CategoryCapital
}

// TransactionItem is one sold line of a cashier sale. Name and price are
// copied at sale time so later product edits do not rewrite history.
type TransactionItem struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductName   string     `gorm:"size:255;not null" json:"product_name"`
	Quantity      int        `gorm:"not null" json:"qty"`
	Price         int64      `gorm:"not null" json:"price"`
	Subtotal      int64      `gorm:"not null" json:"subtotal"`
	CreatedAt     time.Time  `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "transaction_items"
}
