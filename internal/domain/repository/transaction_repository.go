package repository

import (
	"context"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/domain/enum"
	"github.com/bukusaku/bukusaku-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransactionRepository defines the interface for ledger entries
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	// Delete removes the entry together with its item rows.
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns entries newest first. With nil Pagination every matching
	// row is returned and the total equals the row count.
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
}

// TransactionFilterParams contains filtering parameters for ledger queries
type TransactionFilterParams struct {
	Pagination *pagination.Params
	Type       enum.TransactionType
	Category   enum.TransactionCategory
	Search     string // substring of description
	From       *time.Time
	To         *time.Time
}

// TransactionItemRepository defines the interface for sold lines
type TransactionItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.TransactionItem) error
	ListByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionItem, error)
}
