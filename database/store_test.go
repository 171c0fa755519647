package database

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bsm/loader"
	"bsm/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, loader.InitDatabase(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGetProductMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)

	p, err := GetProduct(db, "nope")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestPutProductOverwritesMaster(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, PutProduct(db, &model.Product{ID: "A1", Name: "Spring Water", UnitsPerBox: 12}))
	require.NoError(t, PutProduct(db, &model.Product{ID: "A1", Name: "Spring Water 500ml", UnitsPerBox: 24}))

	p, err := GetProduct(db, "A1")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "Spring Water 500ml", p.Name)
	require.Equal(t, 24, p.UnitsPerBox)
}

func TestFindProductByName(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, PutProduct(db, &model.Product{ID: "A1", Name: "Spring Water", UnitsPerBox: 12}))

	p, err := FindProductByName(db, "Spring Water")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "A1", p.ID)

	p, err = FindProductByName(db, "Sparkling Water")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestSuggestProductsMatchesScatteredRunes(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, PutProduct(db, &model.Product{ID: "A1", Name: "Spring Water", UnitsPerBox: 1}))
	require.NoError(t, PutProduct(db, &model.Product{ID: "A2", Name: "Soda Water", UnitsPerBox: 1}))
	require.NoError(t, PutProduct(db, &model.Product{ID: "A3", Name: "Cola", UnitsPerBox: 1}))

	// "sw" matches any name with an s later followed by a w.
	names, err := SuggestProducts(db, "SW", 10)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Spring Water", "Soda Water"}, names)
}

func TestAppendAndListTransactions(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, PutProduct(db, &model.Product{ID: "A1", Name: "Spring Water", UnitsPerBox: 12}))

	mk := func(kind model.TransactionKind, at string, bottles int) int64 {
		id, err := AppendTransaction(db, kind, &model.Transaction{
			RecordedAt: at,
			ProductID:  "A1",
			Bottles:    bottles,
			UnitPrice:  dec("2.00"),
			TotalPrice: dec("2.00").Mul(decimal.NewFromInt(int64(bottles))),
			Settled:    true,
		})
		require.NoError(t, err)
		return id
	}

	first := mk(model.KindIn, "2026-08-01 09:00:00", 10)
	second := mk(model.KindIn, "2026-08-02 09:00:00", 5)
	mk(model.KindOut, "2026-08-02 10:00:00", 3)

	require.Less(t, first, second, "ids are store-assigned and monotonic")

	all, err := ListTransactions(db, model.KindIn, "", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, model.KindIn, all[0].Kind)

	ranged, err := ListTransactions(db, model.KindIn, "A1", &model.DateRange{
		Start: "2026-08-02", End: "2026-08-03",
	})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	require.Equal(t, 5, ranged[0].Bottles)

	outs, err := ListTransactions(db, model.KindOut, "A1", nil)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	require.Equal(t, 3, outs[0].Bottles)
}

func TestListLedgerEntriesSignsBothTables(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, PutProduct(db, &model.Product{ID: "A1", Name: "Spring Water", UnitsPerBox: 12}))

	_, err := AppendTransaction(db, model.KindIn, &model.Transaction{
		RecordedAt: "2026-08-01 09:00:00", ProductID: "A1", Bottles: 10,
		UnitPrice: dec("2.00"), TotalPrice: dec("20.00"), Settled: true,
	})
	require.NoError(t, err)
	_, err = AppendTransaction(db, model.KindOut, &model.Transaction{
		RecordedAt: "2026-08-02 09:00:00", ProductID: "A1", Bottles: 3,
		UnitPrice: dec("5.00"), TotalPrice: dec("15.00"), Settled: false,
	})
	require.NoError(t, err)

	entries, err := ListLedgerEntries(db, "A1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first: the outbound row leads.
	out := entries[0]
	require.Equal(t, -3, out.Bottles)
	require.True(t, out.TotalPrice.Equal(dec("15.00")), "sale amount stays positive, got %s", out.TotalPrice)
	require.Equal(t, "Spring Water", out.ProductName)
	require.False(t, out.Settled)

	in := entries[1]
	require.Equal(t, 10, in.Bottles)
	require.True(t, in.TotalPrice.Equal(dec("-20.00")), "purchase amount shows negative, got %s", in.TotalPrice)
}

func TestUpsertStatisticReplacesSameDay(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, PutProduct(db, &model.Product{ID: "A1", Name: "Spring Water", UnitsPerBox: 12}))

	row := &model.DailyStatistic{
		ProductID: "A1", Day: "2026-08-01", Origin: 2,
		InTotal: 10, InUnitPrice: dec("2.00"), Settled: true, Profit: dec("0"),
	}
	require.NoError(t, UpsertStatistic(db, row))

	row.InTotal = 15
	row.InUnitPrice = dec("2.67")
	row.Settled = false
	require.NoError(t, UpsertStatistic(db, row))

	// Read-back returns exactly the values just written, and only one row.
	got, err := GetStatistic(db, "A1", "2026-08-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 15, got.InTotal)
	require.True(t, got.InUnitPrice.Equal(dec("2.67")))
	require.Equal(t, 2, got.Origin)
	require.False(t, got.Settled)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM statistics`))
	require.Equal(t, 1, count)
}

func TestLatestStatisticPicksNewestDay(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, PutProduct(db, &model.Product{ID: "A1", Name: "Spring Water", UnitsPerBox: 12}))

	latest, err := LatestStatistic(db, "A1")
	require.NoError(t, err)
	require.Nil(t, latest)

	for _, day := range []string{"2026-08-03", "2026-08-01", "2026-08-02"} {
		require.NoError(t, UpsertStatistic(db, &model.DailyStatistic{
			ProductID: "A1", Day: day, Settled: true,
		}))
	}

	latest, err = LatestStatistic(db, "A1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, "2026-08-03", latest.Day)
}

func TestDailyProfitSumsAcrossProducts(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, PutProduct(db, &model.Product{ID: "A1", Name: "Spring Water", UnitsPerBox: 1}))
	require.NoError(t, PutProduct(db, &model.Product{ID: "A2", Name: "Cola", UnitsPerBox: 1}))

	require.NoError(t, UpsertStatistic(db, &model.DailyStatistic{
		ProductID: "A1", Day: "2026-08-01", Settled: true, Profit: dec("3.00"),
	}))
	require.NoError(t, UpsertStatistic(db, &model.DailyStatistic{
		ProductID: "A2", Day: "2026-08-01", Settled: true, Profit: dec("1.25"),
	}))
	require.NoError(t, UpsertStatistic(db, &model.DailyStatistic{
		ProductID: "A1", Day: "2026-08-05", Settled: true, Profit: dec("9.00"),
	}))

	totals, err := DailyProfit(db, model.DateRange{Start: "2026-08-01", End: "2026-08-04"})
	require.NoError(t, err)
	require.Len(t, totals, 1)
	require.True(t, totals["2026-08-01"].Equal(dec("4.25")))
}
