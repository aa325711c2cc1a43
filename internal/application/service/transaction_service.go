package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/domain/enum"
	"github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/bukusaku/bukusaku-api/internal/infrastructure/spreadsheet"
	"github.com/bukusaku/bukusaku-api/pkg/apperror"
	"github.com/bukusaku/bukusaku-api/pkg/currency"
	"github.com/bukusaku/bukusaku-api/pkg/logger"
	"github.com/bukusaku/bukusaku-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionService handles the ledger
type TransactionService struct {
	txRepo   repository.TransactionRepository
	itemRepo repository.TransactionItemRepository
	log      *zap.Logger
	now      func() time.Time
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txRepo repository.TransactionRepository,
	itemRepo repository.TransactionItemRepository,
	log *zap.Logger,
) *TransactionService {
	return &TransactionService{txRepo: txRepo, itemRepo: itemRepo, log: log, now: time.Now}
}

// TransactionInput represents a manual ledger entry. A nil Date means now.
type TransactionInput struct {
	Type        enum.TransactionType
	Category    enum.TransactionCategory
	Amount      decimal.Decimal
	Description string
	Date        *time.Time
}

func (in *TransactionInput) validate() (int64, error) {
	var fieldErrs []apperror.FieldError
	if !in.Type.IsValid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "type", Message: "Type must be income or expense"})
	}
	if !in.Category.IsValid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "category", Message: "Unknown category"})
	}
	amount, err := currency.ToRupiah(in.Amount)
	if err != nil || amount <= 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "amount", Message: "Amount must be greater than zero"})
	}
	if len(fieldErrs) > 0 {
		return 0, apperror.NewValidationError(fieldErrs)
	}
	return amount, nil
}

// CreateTransaction records a manual entry
func (s *TransactionService) CreateTransaction(ctx context.Context, input *TransactionInput) (*entity.Transaction, error) {
	amount, err := input.validate()
	if err != nil {
		return nil, err
	}

	t := &entity.Transaction{
		Type:        input.Type,
		Category:    input.Category,
		Amount:      amount,
		Description: strings.TrimSpace(input.Description),
		Date:        s.now(),
	}
	if input.Date != nil {
		t.Date = *input.Date
	}
	if err := s.txRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTransaction retrieves an entry by ID
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	t, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return t, nil
}

// ListTransactions lists entries newest first
func (s *TransactionService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.Result[entity.Transaction], error) {
	if params.Pagination == nil {
		params.Pagination = &pagination.Params{}
	}
	params.Pagination.Normalize()

	items, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(items, *params.Pagination, total), nil
}

// UpdateTransaction replaces an entry's fields. Item rows of a cashier sale
// are left as they were.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, input *TransactionInput) (*entity.Transaction, error) {
	t, err := s.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	amount, err := input.validate()
	if err != nil {
		return nil, err
	}

	t.Type = input.Type
	t.Category = input.Category
	t.Amount = amount
	t.Description = strings.TrimSpace(input.Description)
	if input.Date != nil {
		t.Date = *input.Date
	}
	if err := s.txRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTransaction deletes an entry and its item rows
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTransaction(ctx, id); err != nil {
		return err
	}
	return s.txRepo.Delete(ctx, id)
}

// ListItems returns the sold lines of an entry
func (s *TransactionService) ListItems(ctx context.Context, id uuid.UUID) ([]entity.TransactionItem, error) {
	if _, err := s.GetTransaction(ctx, id); err != nil {
		return nil, err
	}
	return s.itemRepo.ListByTransactionID(ctx, id)
}

// Receipt rebuilds the receipt of a stored entry. When the sold lines cannot
// be read the receipt falls back to a single line for the whole entry.
func (s *TransactionService) Receipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	t, err := s.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListByTransactionID(ctx, id)
	if err != nil {
		logger.FromContext(ctx, s.log).Warn("receipt: sold items unavailable, using summary line",
			zap.String("transaction_id", id.String()), zap.Error(err))
		items = nil
	}
	return entity.ReceiptFromTransaction(t, items), nil
}

// ExportLedger writes every entry matching params as an .xlsx workbook.
func (s *TransactionService) ExportLedger(ctx context.Context, params *repository.TransactionFilterParams, w io.Writer) error {
	params.Pagination = nil
	items, _, err := s.txRepo.List(ctx, params)
	if err != nil {
		return err
	}
	return spreadsheet.WriteLedger(w, items)
}
