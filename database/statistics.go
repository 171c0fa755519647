package database

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"bsm/model"
)

const statisticColumns = `product_id, day, origin, in_total, out_total, in_unit_price, out_unit_price, settled, profit`

// LatestStatistic returns the most recent daily row for a product, or
// (nil, nil) when the product has no statistics yet.
func LatestStatistic(dbtx DBTX, productID string) (*model.DailyStatistic, error) {
	var s model.DailyStatistic
	err := dbtx.Get(&s, `
		SELECT `+statisticColumns+`
		FROM statistics WHERE product_id = ?
		ORDER BY day DESC LIMIT 1`, productID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("latest statistic", err)
	}
	return &s, nil
}

// GetStatistic fetches the row for one exact (product, day) key, or (nil, nil).
func GetStatistic(dbtx DBTX, productID, day string) (*model.DailyStatistic, error) {
	var s model.DailyStatistic
	err := dbtx.Get(&s, `
		SELECT `+statisticColumns+`
		FROM statistics WHERE product_id = ? AND day = ?`, productID, day)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get statistic", err)
	}
	return &s, nil
}

// UpsertStatistic writes the daily row, replacing an existing row for the same
// (product, day) key.
func UpsertStatistic(dbtx DBTX, s *model.DailyStatistic) error {
	_, err := dbtx.NamedExec(`
		INSERT INTO statistics (product_id, day, origin, in_total, out_total, in_unit_price, out_unit_price, settled, profit)
		VALUES (:product_id, :day, :origin, :in_total, :out_total, :in_unit_price, :out_unit_price, :settled, :profit)
		ON CONFLICT (product_id, day) DO UPDATE SET
			origin = excluded.origin,
			in_total = excluded.in_total,
			out_total = excluded.out_total,
			in_unit_price = excluded.in_unit_price,
			out_unit_price = excluded.out_unit_price,
			settled = excluded.settled,
			profit = excluded.profit`,
		s)
	return storeErr("upsert statistic", err)
}

// ListStatistics returns all daily rows in the date range, both ends
// inclusive, ordered by day then product.
func ListStatistics(dbtx DBTX, dr model.DateRange) ([]model.DailyStatistic, error) {
	var rows []model.DailyStatistic
	err := dbtx.Select(&rows, `
		SELECT `+statisticColumns+`
		FROM statistics WHERE day BETWEEN ? AND ?
		ORDER BY day, product_id`, dr.Start, dr.End)
	if err != nil {
		return nil, storeErr("list statistics", err)
	}
	return rows, nil
}

// DailyProfit sums profit across products per day in the range, both ends
// inclusive. Days without rows are absent from the map.
func DailyProfit(dbtx DBTX, dr model.DateRange) (map[string]decimal.Decimal, error) {
	var rows []struct {
		Day    string          `db:"day"`
		Profit decimal.Decimal `db:"profit"`
	}
	err := dbtx.Select(&rows, `
		SELECT day, SUM(profit) AS profit
		FROM statistics WHERE day BETWEEN ? AND ?
		GROUP BY day`, dr.Start, dr.End)
	if err != nil {
		return nil, storeErr("daily profit", err)
	}
	totals := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		totals[r.Day] = r.Profit
	}
	return totals, nil
}
