package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionType(t *testing.T) {
	assert.True(t, TransactionTypeIncome.IsValid())
	assert.True(t, TransactionTypeExpense.IsValid())
	assert.False(t, TransactionType("refund").IsValid())
	assert.Equal(t, "Pengeluaran", TransactionTypeExpense.Label())
}

func TestTransactionCategory(t *testing.T) {
	assert.Equal(t, "Penjualan", CategorySales.Label())
	assert.Equal(t, "Modal", CategoryCapital.Label())
	assert.Equal(t, "Operasional", CategoryOperational.Label())
	assert.Equal(t, "Lainnya", CategoryOther.Label())
	assert.False(t, TransactionCategory("misc").IsValid())
	assert.Equal(t, "misc", TransactionCategory("misc").Label())
}
