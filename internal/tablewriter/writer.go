// =============================================================================
// Receipt Analyzer - Table Writer Module
// =============================================================================
//
// This module writes the sorted purchase records as a table, one row per
// receipt, with the columns defined in receipt.Columns.
//
// FORMATS:
//   - csv  : UTF-8, comma separated, header row first
//   - xlsx : one sheet named "list", header row first
//
// =============================================================================

package tablewriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/receipt-analyzer/internal/config"
	"github.com/ginjaninja78/receipt-analyzer/internal/receipt"
)

// SheetName is the XLSX sheet holding the table.
const SheetName = "list"

// =============================================================================
// ROW STRUCTURE
// =============================================================================

// Row is the display form of one record. Field order is column order.
type Row struct {
	OrderNumber   string `csv:"注文番号"`
	Marketplace   string `csv:"モール名"`
	StoreName     string `csv:"店舗名"`
	PurchaseDate  string `csv:"購入日"`
	PurchaseMonth string `csv:"購入月"`
	TotalAmount   string `csv:"支払金額"`
	Method1       string `csv:"決済1"`
	Amount1       string `csv:"決済額1"`
	Method2       string `csv:"決済2"`
	Amount2       string `csv:"決済額2"`
	Method3       string `csv:"決済3"`
	Amount3       string `csv:"決済額3"`
	OrderItems    string `csv:"注文商品"`
	SourceFile    string `csv:"リネーム前ファイル名"`
	FileName      string `csv:"リネーム後ファイル名"`
}

// NewRow converts a record to its display row.
func NewRow(r receipt.Record) Row {
	v := r.Row()
	return Row{
		OrderNumber:   v[0],
		Marketplace:   v[1],
		StoreName:     v[2],
		PurchaseDate:  v[3],
		PurchaseMonth: v[4],
		TotalAmount:   v[5],
		Method1:       v[6],
		Amount1:       v[7],
		Method2:       v[8],
		Amount2:       v[9],
		Method3:       v[10],
		Amount3:       v[11],
		OrderItems:    v[12],
		SourceFile:    v[13],
		FileName:      v[14],
	}
}

// =============================================================================
// WRITERS
// =============================================================================

// FileName returns the table file name for a run started at ts.
//
// EXAMPLE:
//   ts: 2024-03-05 14:30:22, format: "csv"
//   output: "list_20240305_1430.csv"
func FileName(ts time.Time, format string) string {
	return fmt.Sprintf("list_%s.%s", ts.Format("20060102_1504"), format)
}

// WriteCSV writes the records as CSV to w.
func WriteCSV(w io.Writer, records []receipt.Record) error {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = NewRow(r)
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// WriteXLSX writes the records as an XLSX workbook to path.
func WriteXLSX(path string, records []receipt.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := append([]string(nil), receipt.Columns...)
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := r.Row()
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Write writes the records to dir in the given format.
//
// PARAMETERS:
//   - dir: The report directory.
//   - format: config.FormatCSV or config.FormatXLSX.
//   - ts: The run's start time, used in the file name.
//   - records: The records, already sorted.
//
// RETURNS:
//   - The path of the written table.
//   - An error if the file cannot be written.
func Write(dir, format string, ts time.Time, records []receipt.Record) (string, error) {
	path := filepath.Join(dir, FileName(ts, format))

	switch format {
	case config.FormatXLSX:
		if err := WriteXLSX(path, records); err != nil {
			return "", err
		}
	case config.FormatCSV:
		file, err := os.Create(path)
		if err != nil {
			return "", fmt.Errorf("failed to create table: %w", err)
		}
		if err := WriteCSV(file, records); err != nil {
			file.Close()
			return "", err
		}
		if err := file.Close(); err != nil {
			return "", fmt.Errorf("failed to close table: %w", err)
		}
	default:
		return "", fmt.Errorf("unsupported table format: %s", format)
	}

	return path, nil
}
