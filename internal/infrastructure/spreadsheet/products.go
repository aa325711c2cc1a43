// Package spreadsheet reads and writes the .xlsx files shop owners keep
// their stock lists and books in.
package spreadsheet

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ProductRow is one parsed line of an import sheet. Row is the 1-based
// sheet row it came from.
type ProductRow struct {
	Row     int
	Product entity.Product
}

// RowError reports a line that could not be parsed.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

const (
	colName = iota
	colSKU
	colBuy
	colSell
	colStock
)

var headerAliases = map[string]int{
	"name":        colName,
	"nama":        colName,
	"nama barang": colName,
	"sku":         colSKU,
	"kode":        colSKU,
	"buy_price":   colBuy,
	"buy price":   colBuy,
	"harga beli":  colBuy,
	"modal":       colBuy,
	"sell_price":  colSell,
	"sell price":  colSell,
	"harga jual":  colSell,
	"harga":       colSell,
	"stock":       colStock,
	"stok":        colStock,
}

// ReadProducts parses the first sheet of an .xlsx workbook. The first row
// is a header naming the columns in English or Indonesian; only the name
// column is required. Bad lines are reported in errs and skipped.
func ReadProducts(r io.Reader) (rows []ProductRow, errs []RowError, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("spreadsheet: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("spreadsheet: workbook has no sheets")
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("spreadsheet: read rows: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("spreadsheet: sheet is empty")
	}

	index := map[int]int{}
	for i, h := range all[0] {
		if col, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := index[col]; !dup {
				index[col] = i
			}
		}
	}
	if _, ok := index[colName]; !ok {
		return nil, nil, fmt.Errorf("spreadsheet: header has no name column")
	}

	for i, cells := range all[1:] {
		rowNum := i + 2
		cell := func(col int) string {
			pos, ok := index[col]
			if !ok || pos >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[pos])
		}
		if isBlank(cells) {
			continue
		}

		p := entity.Product{Name: cell(colName)}
		if p.Name == "" {
			errs = append(errs, RowError{Row: rowNum, Message: "name is required"})
			continue
		}
		if sku := cell(colSKU); sku != "" {
			p.SKU = &sku
		}

		var bad string
		if p.BuyPrice, bad = parseAmount(cell(colBuy)); bad != "" {
			errs = append(errs, RowError{Row: rowNum, Message: "buy price " + bad})
			continue
		}
		if p.SellPrice, bad = parseAmount(cell(colSell)); bad != "" {
			errs = append(errs, RowError{Row: rowNum, Message: "sell price " + bad})
			continue
		}
		if s := cell(colStock); s != "" {
			n, convErr := strconv.Atoi(s)
			if convErr != nil || n < 0 {
				errs = append(errs, RowError{Row: rowNum, Message: "stock must be a whole number of at least 0"})
				continue
			}
			p.Stock = n
		}
		rows = append(rows, ProductRow{Row: rowNum, Product: p})
	}
	return rows, errs, nil
}

var groupedThousands = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// parseAmount accepts plain numbers as well as "Rp 13.000" or "13.000,50"
// style text.
func parseAmount(s string) (int64, string) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(s, "Rp"), "rp"))
	if s == "" {
		return 0, ""
	}
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case groupedThousands.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, "must be a number"
	}
	if d.IsNegative() {
		return 0, "must not be negative"
	}
	return d.Round(0).IntPart(), ""
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
