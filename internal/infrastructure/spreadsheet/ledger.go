package spreadsheet

import (
	"fmt"
	"io"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const ledgerSheet = "Transaksi"

var ledgerHeader = []interface{}{"Tanggal", "Jenis", "Kategori", "Keterangan", "Pemasukan", "Pengeluaran"}

// WriteLedger writes transactions as an .xlsx workbook with one row per
// entry followed by a totals row.
func WriteLedger(w io.Writer, transactions []entity.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ledgerSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ledgerSheet, "A1", &ledgerHeader); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return err
	}

	var income, expense int64
	for i, t := range transactions {
		var in, out interface{}
		if t.IsExpense() {
			out = t.Amount
			expense += t.Amount
		} else {
			in = t.Amount
			income += t.Amount
		}
		row := []interface{}{
			t.Date.Format("2006-01-02 15:04"),
			t.Type.Label(),
			t.Category.Label(),
			t.Description,
			in,
			out,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ledgerSheet, cell, &row); err != nil {
			return err
		}
	}

	last := len(transactions) + 2
	totals := []interface{}{"TOTAL", nil, nil, nil, income, expense}
	if err := f.SetSheetRow(ledgerSheet, fmt.Sprintf("A%d", last), &totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(ledgerSheet, "A1", "F1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(ledgerSheet, fmt.Sprintf("A%d", last), fmt.Sprintf("F%d", last), bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(ledgerSheet, "E2", fmt.Sprintf("F%d", last), money); err != nil {
		return err
	}
	_ = f.SetColWidth(ledgerSheet, "A", "A", 18)
	_ = f.SetColWidth(ledgerSheet, "D", "D", 40)
	_ = f.SetColWidth(ledgerSheet, "E", "F", 14)

	_, err = f.WriteTo(w)
	return err
}

// ProductTemplate writes an empty import sheet with the expected header.
func ProductTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"name", "sku", "buy_price", "sell_price", "stock"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}
