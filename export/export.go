// Package export writes transaction records to spreadsheet files, one
// workbook per record kind for a requested date range.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"bsm/database"
	"bsm/model"
)

var headers = []interface{}{"#", "Time", "Product ID", "Bottles", "Unit Price", "Total Price", "Settlement"}

// Range exports in.xlsx and out.xlsx for the inclusive day range into a
// "<start>-<end>" directory under baseDir, returning that directory.
func Range(dbtx database.DBTX, baseDir, start, end string) (string, error) {
	startDay, err := time.Parse("2006-01-02", start)
	if err != nil {
		return "", fmt.Errorf("invalid start day %q: %w", start, err)
	}
	endDay, err := time.Parse("2006-01-02", end)
	if err != nil {
		return "", fmt.Errorf("invalid end day %q: %w", end, err)
	}
	if startDay.After(endDay) {
		return "", fmt.Errorf("start day %s is after end day %s", start, end)
	}

	dir := filepath.Join(baseDir, start+"-"+end)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	dr := &model.DateRange{
		Start: start,
		End:   endDay.AddDate(0, 0, 1).Format("2006-01-02"),
	}
	for _, kind := range []model.TransactionKind{model.KindIn, model.KindOut} {
		records, err := database.ListTransactions(dbtx, kind, "", dr)
		if err != nil {
			return "", err
		}
		path := filepath.Join(dir, string(kind)+".xlsx")
		if err := writeWorkbook(records, path); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return dir, nil
}

func writeWorkbook(records []model.Transaction, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	for i, r := range records {
		label := "unsettled"
		if r.Settled {
			label = "settled"
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			i + 1,
			r.RecordedAt,
			r.ProductID,
			r.Bottles,
			r.UnitPrice.InexactFloat64(),
			r.TotalPrice.InexactFloat64(),
			label,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
