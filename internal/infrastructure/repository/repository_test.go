package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/config"
	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/domain/enum"
	domainRepo "github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/bukusaku/bukusaku-api/internal/infrastructure/database"
	"github.com/bukusaku/bukusaku-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "repo.db")}
	db, err := database.Open(cfg, zap.NewNop(), false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))
	return db
}

func strPtr(s string) *string { return &s }

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(openTestDB(t))

	require.NoError(t, repo.CreateBatch(ctx, []entity.Product{
		{Name: "Kopi Bubuk", SKU: strPtr("KP-01"), BuyPrice: 3000, SellPrice: 5000, Stock: 10},
		{Name: "Gula Pasir", SKU: strPtr("GL-01"), BuyPrice: 2000, SellPrice: 3000, Stock: 2},
		{Name: "Air 50%", BuyPrice: 1000, SellPrice: 2000, Stock: 8},
	}))

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Air 50%", all[0].Name, "ordered by name")

	found, err := repo.List(ctx, &domainRepo.ProductFilterParams{Search: "KOPI"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = repo.List(ctx, &domainRepo.ProductFilterParams{Search: "gl-"})
	require.NoError(t, err)
	require.Len(t, found, 1, "search covers sku")

	found, err = repo.List(ctx, &domainRepo.ProductFilterParams{Search: "%"})
	require.NoError(t, err)
	require.Len(t, found, 1, "wildcards are literal")

	low, err := repo.List(ctx, &domainRepo.ProductFilterParams{LowStock: true})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Gula Pasir", low[0].Name)

	bySKU, err := repo.GetBySKU(ctx, " kp-01 ")
	require.NoError(t, err)
	require.NotNil(t, bySKU)
	assert.Equal(t, "Kopi Bubuk", bySKU.Name)

	require.NoError(t, repo.UpdateStock(ctx, bySKU.ID, 7))
	got, err := repo.GetByID(ctx, bySKU.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)

	require.NoError(t, repo.Delete(ctx, bySKU.ID))
	got, err = repo.GetByID(ctx, bySKU.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepositoryRejectsDuplicateSKU(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(openTestDB(t))

	require.NoError(t, repo.Create(ctx, &entity.Product{Name: "A", SKU: strPtr("X1")}))
	assert.Error(t, repo.Create(ctx, &entity.Product{Name: "B", SKU: strPtr("X1")}))

	err := repo.CreateBatch(ctx, []entity.Product{{Name: "C", SKU: strPtr("Y1")}, {Name: "D", SKU: strPtr("X1")}})
	assert.Error(t, err)
	all, _ := repo.List(ctx, nil)
	assert.Len(t, all, 1, "batch is all or nothing")
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	txRepo := NewTransactionRepository(db)
	itemRepo := NewTransactionItemRepository(db)

	day := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	sale := &entity.Transaction{Type: enum.TransactionTypeIncome, Category: enum.CategorySales, Amount: 13000, Description: "Penjualan Kasir: 3 item", Date: day}
	rent := &entity.Transaction{Type: enum.TransactionTypeExpense, Category: enum.CategoryOperational, Amount: 50000, Description: "Sewa", Date: day.AddDate(0, 0, 1)}
	require.NoError(t, txRepo.Create(ctx, sale))
	require.NoError(t, txRepo.Create(ctx, rent))

	require.NoError(t, itemRepo.CreateBatch(ctx, []entity.TransactionItem{
		{TransactionID: sale.ID, ProductName: "Kopi", Quantity: 2, Price: 5000, Subtotal: 10000},
		{TransactionID: sale.ID, ProductName: "Gula", Quantity: 1, Price: 3000, Subtotal: 3000},
	}))

	list, total, err := txRepo.List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, rent.ID, list[0].ID, "newest first")

	list, _, err = txRepo.List(ctx, &domainRepo.TransactionFilterParams{Type: enum.TransactionTypeIncome})
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, _, err = txRepo.List(ctx, &domainRepo.TransactionFilterParams{Search: "sewa"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	from := day.Add(time.Hour)
	list, _, err = txRepo.List(ctx, &domainRepo.TransactionFilterParams{From: &from})
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, total, err = txRepo.List(ctx, &domainRepo.TransactionFilterParams{Pagination: &pagination.Params{Page: 2, PerPage: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 1)
	assert.Equal(t, sale.ID, list[0].ID)

	items, err := itemRepo.ListByTransactionID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	require.NoError(t, txRepo.Delete(ctx, sale.ID))
	gone, err := txRepo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	items, err = itemRepo.ListByTransactionID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNoteRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(openTestDB(t))

	first := &entity.Note{Title: "Belanja", CreatedAt: time.Now().Add(-time.Hour)}
	second := &entity.Note{Title: "Setor bank"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)

	first.Content = "telur, minyak"
	require.NoError(t, repo.Update(ctx, first))
	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "telur, minyak", got.Content)

	require.NoError(t, repo.Delete(ctx, first.ID))
	got, err = repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(openTestDB(t))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Create(ctx, &entity.StoreProfile{Name: "28 POINT", PaperWidth: 58}))
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	got.PaperWidth = 80
	require.NoError(t, repo.Update(ctx, got))
	got, _ = repo.Get(ctx)
	assert.Equal(t, 80, got.PaperWidth)
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(openTestDB(t))

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "abc", Scope: "s1", Endpoint: "/x", ResponseCode: 201, ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "old", Scope: "s1", Endpoint: "/x", ResponseCode: 201, ExpiresAt: time.Now().Add(-time.Hour),
	}))

	got, err := repo.GetByKey(ctx, "abc", "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)

	other, err := repo.GetByKey(ctx, "abc", "s2")
	require.NoError(t, err)
	assert.Nil(t, other, "keys are scoped")

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
