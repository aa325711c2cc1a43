package enum

// TransactionCategory classifies a ledger entry.
type TransactionCategory string

const (
	CategorySales       TransactionCategory = "sales"
	CategoryCapital     TransactionCategory = "capital"
	CategoryOperational TransactionCategory = "operational"
	CategoryOther       TransactionCategory = "other"
)

var categoryLabels = map[TransactionCategory]string{
	CategorySales:       "Penjualan",
	CategoryCapital:     "Modal",
	CategoryOperational: "Operasional",
	CategoryOther:       "Lainnya",
}

func (c TransactionCategory) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c TransactionCategory) String() string {
	return string(c)
}

// Label is the Indonesian name, also used as the line name on receipts for
// entries that have no item rows.
func (c TransactionCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}
