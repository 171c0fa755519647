package database

import (
	"fmt"

	"bsm/model"
)

func tableFor(kind model.TransactionKind) (string, error) {
	switch kind {
	case model.KindIn:
		return "in_records", nil
	case model.KindOut:
		return "out_records", nil
	default:
		return "", fmt.Errorf("unknown transaction kind %q", kind)
	}
}

// AppendTransaction inserts one immutable record row and returns the
// store-assigned id.
func AppendTransaction(dbtx DBTX, kind model.TransactionKind, tr *model.Transaction) (int64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, storeErr("append transaction", err)
	}
	res, err := dbtx.NamedExec(fmt.Sprintf(`
		INSERT INTO %s (recorded_at, product_id, bottles, unit_price, total_price, settled)
		VALUES (:recorded_at, :product_id, :bottles, :unit_price, :total_price, :settled)`, table),
		tr)
	if err != nil {
		return 0, storeErr("append transaction", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storeErr("append transaction", err)
	}
	return id, nil
}

// ListTransactions returns record rows of one kind ordered by time, optionally
// filtered by product and date range. The range end is exclusive; callers pass
// the day after the last day they want.
func ListTransactions(dbtx DBTX, kind model.TransactionKind, productID string, dr *model.DateRange) ([]model.Transaction, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, storeErr("list transactions", err)
	}

	query := fmt.Sprintf(`
		SELECT id, recorded_at, product_id, bottles, unit_price, total_price, settled
		FROM %s WHERE 1=1`, table)
	var args []interface{}
	if productID != "" {
		query += ` AND product_id = ?`
		args = append(args, productID)
	}
	if dr != nil {
		query += ` AND recorded_at >= ? AND recorded_at < ?`
		args = append(args, dr.Start, dr.End)
	}
	query += ` ORDER BY recorded_at, id`

	var records []model.Transaction
	if err := dbtx.Select(&records, query, args...); err != nil {
		return nil, storeErr("list transactions", err)
	}
	for i := range records {
		records[i].Kind = kind
	}
	return records, nil
}

// ListLedgerEntries unions both record tables for one product into a signed
// sequence, newest first. Inbound rows carry sign +1, outbound -1; the caller
// sees bottles signed by movement and amounts signed by cash flow.
func ListLedgerEntries(dbtx DBTX, productID string) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := dbtx.Select(&entries, `
		SELECT r.id AS id, r.recorded_at, r.product_id, p.name AS product_name,
		       r.bottles, r.unit_price, r.total_price, r.settled, 1 AS sign
		FROM in_records r JOIN products p ON p.id = r.product_id
		WHERE r.product_id = ?
		UNION ALL
		SELECT r.id AS id, r.recorded_at, r.product_id, p.name AS product_name,
		       r.bottles, r.unit_price, r.total_price, r.settled, -1 AS sign
		FROM out_records r JOIN products p ON p.id = r.product_id
		WHERE r.product_id = ?
		ORDER BY recorded_at DESC, id DESC`,
		productID, productID)
	if err != nil {
		return nil, storeErr("list ledger entries", err)
	}
	for i := range entries {
		e := &entries[i]
		e.Bottles *= e.Sign
		if e.Sign > 0 {
			e.TotalPrice = e.TotalPrice.Neg()
		}
	}
	return entries, nil
}
