package repository

import (
	"context"
	"errors"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	domainRepo "github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new ledger repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts the entry only. Item rows are written separately so a
// failure there cannot undo a committed sale.
func (r *transactionRepository) Create(ctx context.Context, t *entity.Transaction) error {
	return r.db.WithContext(ctx).Omit("Items").Create(t).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var t entity.Transaction
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *transactionRepository) Update(ctx context.Context, t *entity.Transaction) error {
	return r.db.WithContext(ctx).Omit("Items").Save(t).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", id).Delete(&entity.TransactionItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Transaction{}, "id = ?", id).Error
	})
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	if params == nil {
		params = &domainRepo.TransactionFilterParams{}
	}

	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Scopes(ContainsFold(params.Search, "description"), Between("date", params.From, params.To))
	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	transactions := []entity.Transaction{}
	query = query.Order("date DESC").Order("created_at DESC")

	if params.Pagination == nil {
		err := query.Find(&transactions).Error
		return transactions, int64(len(transactions)), err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	params.Pagination.Normalize()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Find(&transactions).Error
	return transactions, total, err
}

type transactionItemRepository struct {
	db *gorm.DB
}

// NewTransactionItemRepository creates a new sold-line repository
func NewTransactionItemRepository(db *gorm.DB) domainRepo.TransactionItemRepository {
	return &transactionItemRepository{db: db}
}

func (r *transactionItemRepository) CreateBatch(ctx context.Context, items []entity.TransactionItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *transactionItemRepository) ListByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionItem, error) {
	items := []entity.TransactionItem{}
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}
