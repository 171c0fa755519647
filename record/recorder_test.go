package record

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bsm/database"
	"bsm/loader"
	"bsm/model"
	"bsm/units"
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

func seedProduct(t *testing.T, db *sqlx.DB) {
	t.Helper()
	require.NoError(t, database.PutProduct(db, &model.Product{
		ID: "A1", Name: "Spring Water", UnitsPerBox: 12,
	}))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecordTransactionBottleInput(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db)

	tr, err := RecordTransaction(db, Input{
		Kind:      model.KindIn,
		ProductID: "A1",
		Quantity:  10,
		Unit:      units.Bottle,
		UnitPrice: dec("2.00"),
		Settled:   true,
	})
	require.NoError(t, err)
	require.NotZero(t, tr.ID)
	require.Equal(t, 10, tr.Bottles)
	require.True(t, tr.TotalPrice.Equal(dec("20.00")), "total = quantity x unit price, got %s", tr.TotalPrice)

	// Exactly one record row and one statistics row.
	records, err := database.ListTransactions(db, model.KindIn, "A1", nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	stat, err := database.GetStatistic(db, "A1", time.Now().Format("2006-01-02"))
	require.NoError(t, err)
	require.NotNil(t, stat)
	require.Equal(t, 10, stat.InTotal)
	require.True(t, stat.InUnitPrice.Equal(dec("2.00")))
}

func TestRecordTransactionBoxConversion(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db)

	tr, err := RecordTransaction(db, Input{
		Kind:      model.KindIn,
		ProductID: "A1",
		Quantity:  2,
		Unit:      units.Box,
		UnitPrice: dec("24.00"),
		Settled:   true,
	})
	require.NoError(t, err)

	// 2 boxes of 12 at 24.00/box: 24 bottles at 2.00/bottle.
	require.Equal(t, 24, tr.Bottles)
	require.True(t, tr.UnitPrice.Equal(dec("2.00")), "got %s", tr.UnitPrice)
	require.True(t, tr.TotalPrice.Equal(dec("48.00")), "got %s", tr.TotalPrice)
}

func TestRecordTransactionResolvesByName(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db)

	tr, err := RecordTransaction(db, Input{
		Kind:        model.KindOut,
		ProductName: "Spring Water",
		Quantity:    3,
		Unit:        units.Bottle,
		UnitPrice:   dec("5.00"),
		Settled:     true,
	})
	require.NoError(t, err)
	require.Equal(t, "A1", tr.ProductID)
}

func TestRecordTransactionAutoRegisters(t *testing.T) {
	db := newTestDB(t)

	_, err := RecordTransaction(db, Input{
		Kind:        model.KindIn,
		ProductID:   "B7",
		ProductName: "Cola",
		Quantity:    1,
		Unit:        units.Bottle,
		UnitPrice:   dec("3.00"),
		UnitsPerBox: 6,
		Settled:     true,
	})
	require.NoError(t, err)

	p, err := database.GetProduct(db, "B7")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "Cola", p.Name)
	require.Equal(t, 6, p.UnitsPerBox)
}

func TestRecordTransactionUnknownProduct(t *testing.T) {
	db := newTestDB(t)

	_, err := RecordTransaction(db, Input{
		Kind:      model.KindIn,
		ProductID: "nope",
		Quantity:  1,
		Unit:      units.Bottle,
		UnitPrice: dec("1.00"),
	})
	require.ErrorIs(t, err, ErrProductNotFound)

	// Name alone is not enough to auto-register either.
	_, err = RecordTransaction(db, Input{
		Kind:        model.KindIn,
		ProductName: "Mystery Juice",
		Quantity:    1,
		Unit:        units.Bottle,
		UnitPrice:   dec("1.00"),
	})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestRecordTransactionValidation(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db)

	_, err := RecordTransaction(db, Input{
		Kind: model.KindIn, ProductID: "A1",
		Quantity: 0, Unit: units.Bottle, UnitPrice: dec("1.00"),
	})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = RecordTransaction(db, Input{
		Kind: model.KindIn, ProductID: "A1",
		Quantity: -4, Unit: units.Bottle, UnitPrice: dec("1.00"),
	})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = RecordTransaction(db, Input{
		Kind: model.KindIn, ProductID: "A1",
		Quantity: 1, Unit: units.Bottle, UnitPrice: dec("-0.01"),
	})
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = RecordTransaction(db, Input{
		Kind: "sideways", ProductID: "A1",
		Quantity: 1, Unit: units.Bottle, UnitPrice: dec("1.00"),
	})
	require.Error(t, err)

	// Nothing was written by any rejected input.
	records, err := database.ListTransactions(db, model.KindIn, "A1", nil)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestRecordTransactionFreePriceAllowed(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db)

	// Zero price with a positive quantity is a valid giveaway/sample row.
	tr, err := RecordTransaction(db, Input{
		Kind: model.KindOut, ProductID: "A1",
		Quantity: 2, Unit: units.Bottle, UnitPrice: decimal.Zero, Settled: true,
	})
	require.NoError(t, err)
	require.True(t, tr.TotalPrice.IsZero())
}
