package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductJSONIncludesDerivedFields(t *testing.T) {
	sku := "KP-01"
	p := Product{ID: uuid.New(), Name: "Kopi", SKU: &sku, BuyPrice: 2000, SellPrice: 3000, Stock: 4}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, float64(1000), got["margin"])
	assert.Equal(t, true, got["low_stock"])
	assert.Equal(t, "KP-01", got["sku"])

	var back Product
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, p.SellPrice, back.SellPrice)
	assert.Equal(t, "KP-01", back.SKUValue())
}

func TestTransactionClassification(t *testing.T) {
	sale := Transaction{Type: enum.TransactionTypeIncome, Category: enum.CategorySales}
	capital := Transaction{Type: enum.TransactionTypeIncome, Category: enum.CategoryCapital}
	rent := Transaction{Type: enum.TransactionTypeExpense, Category: enum.CategoryOperational}

	assert.True(t, sale.IsIncome())
	assert.False(t, capital.IsIncome())
	assert.True(t, capital.IsCapital())
	assert.True(t, rent.IsExpense())
}

func TestReceiptFromTransactionUsesItems(t *testing.T) {
	tx := &Transaction{ID: uuid.MustParse("0a1b2c3d-0000-4000-8000-000000000000"), Amount: 13000, Date: time.Now()}
	rows := []TransactionItem{
		{ProductName: "Kopi", Quantity: 2, Price: 5000, Subtotal: 10000},
		{ProductName: "Gula", Quantity: 1, Price: 3000, Subtotal: 3000},
	}

	r := ReceiptFromTransaction(tx, rows)
	assert.Equal(t, "0A1B2C3D", r.Number)
	assert.Equal(t, "Receipt-0A1B2C3D.pdf", r.FileName())
	require.Len(t, r.Items, 2)
	assert.Equal(t, int64(10000), r.Items[0].Subtotal)
	assert.False(t, r.HasTender())
}

func TestReceiptFromTransactionFallsBackToSingleLine(t *testing.T) {
	tx := &Transaction{ID: uuid.New(), Amount: 50000, Category: enum.CategoryCapital}
	r := ReceiptFromTransaction(tx, nil)
	require.Len(t, r.Items, 1)
	assert.Equal(t, ReceiptItem{Name: "Modal", Quantity: 1, Price: 50000, Subtotal: 50000}, r.Items[0])

	tx.Description = "Setoran awal"
	r = ReceiptFromTransaction(tx, nil)
	assert.Equal(t, "Setoran awal", r.Items[0].Name)
}

func TestStoreProfileLines(t *testing.T) {
	p := StoreProfile{Address: "Jl. Kali Brantas No. 28\n\n  Kota Blitar  \n"}
	assert.Equal(t, []string{"Jl. Kali Brantas No. 28", "Kota Blitar"}, p.AddressLines())
	assert.Nil(t, p.NoticeLines())
}
