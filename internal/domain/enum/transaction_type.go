package enum

// TransactionType is the direction of money in the ledger.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	}
	return false
}

func (t TransactionType) String() string {
	return string(t)
}

// Label is the Indonesian name shown to the shopkeeper.
func (t TransactionType) Label() string {
	switch t {
	case TransactionTypeIncome:
		return "Pemasukan"
	case TransactionTypeExpense:
		return "Pengeluaran"
	}
	return string(t)
}
