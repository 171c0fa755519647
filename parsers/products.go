// Package parsers reads product master files for batch import. Two layouts
// are supported, both with a header row and the columns
// [id, name, units-per-box]: Excel workbooks and legacy GBK-encoded CSV
// exports.
package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// ProductRow is one parsed master row, not yet checked against the store.
type ProductRow struct {
	ID          string
	Name        string
	UnitsPerBox int
}

// ParseProductsCSV parses a GBK-encoded CSV product list.
func ParseProductsCSV(r io.Reader) ([]ProductRow, error) {
	decoder := simplifiedchinese.GBK.NewDecoder()
	reader := csv.NewReader(transform.NewReader(r, decoder))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err == io.EOF {
		return nil, fmt.Errorf("CSV file is empty")
	} else if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows []ProductRow
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: product CSV line %d unreadable (skipped): %v", line, err)
			continue
		}
		row, ok := parseRow(rec)
		if !ok {
			log.Printf("WARN: product CSV line %d missing id or name (skipped)", line)
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseProductsXLSX parses the first sheet of an Excel workbook.
func ParseProductsXLSX(r io.Reader) ([]ProductRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	var rows []ProductRow
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		row, ok := parseRow(rec)
		if !ok {
			log.Printf("WARN: product sheet row %d missing id or name (skipped)", i+1)
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (ProductRow, bool) {
	get := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	row := ProductRow{ID: get(0), Name: get(1), UnitsPerBox: 1}
	if row.ID == "" || row.Name == "" {
		return ProductRow{}, false
	}
	if n, err := strconv.Atoi(get(2)); err == nil && n >= 1 {
		row.UnitsPerBox = n
	}
	return row, true
}
