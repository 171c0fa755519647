package model

import "github.com/shopspring/decimal"

// TransactionKind selects between the inbound and outbound record tables.
type TransactionKind string

const (
	KindIn  TransactionKind = "in"
	KindOut TransactionKind = "out"
)

func (k TransactionKind) Valid() bool {
	return k == KindIn || k == KindOut
}

type Product struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	UnitsPerBox int    `db:"units_per_box" json:"unitsPerBox"`
}

// Transaction is one inbound or outbound row. Rows are immutable once written;
// quantities are always in base units (bottles).
type Transaction struct {
	ID         int64           `db:"id" json:"id"`
	Kind       TransactionKind `db:"-" json:"kind"`
	RecordedAt string          `db:"recorded_at" json:"recordedAt"`
	ProductID  string          `db:"product_id" json:"productId"`
	Bottles    int             `db:"bottles" json:"bottles"`
	UnitPrice  decimal.Decimal `db:"unit_price" json:"unitPrice"`
	TotalPrice decimal.Decimal `db:"total_price" json:"totalPrice"`
	Settled    bool            `db:"settled" json:"settled"`
}

// DailyStatistic is the running summary row for one product on one day.
// Totals and profit are cumulative since the first transaction, not per-day;
// each day's row is a closing snapshot seeded from the most recent prior row.
type DailyStatistic struct {
	ProductID    string          `db:"product_id" json:"productId"`
	Day          string          `db:"day" json:"day"`
	Origin       int             `db:"origin" json:"origin"`
	InTotal      int             `db:"in_total" json:"inTotal"`
	OutTotal     int             `db:"out_total" json:"outTotal"`
	InUnitPrice  decimal.Decimal `db:"in_unit_price" json:"inUnitPrice"`
	OutUnitPrice decimal.Decimal `db:"out_unit_price" json:"outUnitPrice"`
	Settled      bool            `db:"settled" json:"settled"`
	Profit       decimal.Decimal `db:"profit" json:"profit"`
}

// LedgerEntry is a signed view over both record tables for the lookup page:
// inbound rows carry sign +1, outbound rows sign -1. Bottles are shown signed
// by movement direction, amounts by cash direction (purchases negative).
type LedgerEntry struct {
	ID          int64           `db:"id" json:"id"`
	RecordedAt  string          `db:"recorded_at" json:"recordedAt"`
	ProductID   string          `db:"product_id" json:"productId"`
	ProductName string          `db:"product_name" json:"productName"`
	Bottles     int             `db:"bottles" json:"bottles"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unitPrice"`
	TotalPrice  decimal.Decimal `db:"total_price" json:"totalPrice"`
	Settled     bool            `db:"settled" json:"settled"`
	Sign        int             `db:"sign" json:"-"`
}

// DateRange bounds a query by calendar day, both ends inclusive.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ProfitPoint is one day of the home-page profit series.
type ProfitPoint struct {
	Day    string          `json:"day"`
	Profit decimal.Decimal `json:"profit"`
}
