package printer

import (
	"fmt"
	"sort"
)

// DefaultPaperWidth is the most common roll in small shops.
const (
	DefaultPaperWidth = 58
	DefaultColumns    = 32
)

// paperColumns maps supported roll widths in millimetres to the number of
// Font A characters that fit on one line.
var paperColumns = map[int]int{
	57:  32,
	58:  32,
	76:  40,
	80:  48,
	100: 64,
}

// ColumnsFor returns the line width in characters for a roll width.
func ColumnsFor(widthMM int) (int, error) {
	cols, ok := paperColumns[widthMM]
	if !ok {
		return 0, fmt.Errorf("printer: unsupported paper width %dmm (supported: %v)", widthMM, PaperWidths())
	}
	return cols, nil
}

// PaperWidths lists the supported roll widths in ascending order.
func PaperWidths() []int {
	widths := make([]int, 0, len(paperColumns))
	for w := range paperColumns {
		widths = append(widths, w)
	}
	sort.Ints(widths)
	return widths
}
