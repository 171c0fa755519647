// Package record validates and appends inbound/outbound transactions and
// feeds them into the daily statistics.
package record

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"bsm/database"
	"bsm/model"
	"bsm/statistics"
	"bsm/units"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidPrice    = errors.New("invalid price")
)

// Input is one data-entry form submission. Quantity and UnitPrice are in the
// unit the user entered; conversion to bottles happens here.
type Input struct {
	Kind        model.TransactionKind `json:"kind"`
	ProductID   string                `json:"productId"`
	ProductName string                `json:"productName"`
	Quantity    int                   `json:"quantity"`
	Unit        units.Unit            `json:"unit"`
	UnitPrice   decimal.Decimal       `json:"unitPrice"`
	UnitsPerBox int                   `json:"unitsPerBox"`
	Settled     bool                  `json:"settled"`
}

// RecordTransaction resolves the product, converts the quantity to base units,
// appends exactly one record row and folds it into the statistics.
//
// The append and the statistics update are two separate statements, not one
// atomic pair. A failure after the append leaves the transaction row in place
// and unaccounted for; the error says so and nothing is retried.
func RecordTransaction(db *sqlx.DB, in Input) (*model.Transaction, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("unknown transaction kind %q", in.Kind)
	}

	product, err := resolveProduct(db, in)
	if err != nil {
		return nil, err
	}

	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidQuantity, in.Quantity)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative, got %s", ErrInvalidPrice, in.UnitPrice)
	}
	unit, err := units.Parse(string(in.Unit))
	if err != nil {
		return nil, err
	}

	bottles, unitPrice := units.ToBase(unit, in.Quantity, in.UnitPrice, product.UnitsPerBox)
	totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(bottles))).Round(2)

	now := time.Now()
	tr := &model.Transaction{
		Kind:       in.Kind,
		RecordedAt: now.Format("2006-01-02 15:04:05"),
		ProductID:  product.ID,
		Bottles:    bottles,
		UnitPrice:  unitPrice,
		TotalPrice: totalPrice,
		Settled:    in.Settled,
	}

	id, err := database.AppendTransaction(db, in.Kind, tr)
	if err != nil {
		return nil, err
	}
	tr.ID = id

	asOfDay := now.Format("2006-01-02")
	if _, err := statistics.ApplyTransaction(db, in.Kind, product.ID, bottles, unitPrice, totalPrice, in.Settled, asOfDay); err != nil {
		return nil, fmt.Errorf("transaction %d appended but statistics update failed: %w", id, err)
	}

	return tr, nil
}

// resolveProduct finds the product by id, then by name. An unknown product is
// registered on the fly when the form supplied both an id and a name;
// otherwise the caller gets ErrProductNotFound and must register first.
func resolveProduct(db *sqlx.DB, in Input) (*model.Product, error) {
	if in.ProductID != "" {
		p, err := database.GetProduct(db, in.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	if in.ProductName != "" {
		p, err := database.FindProductByName(db, in.ProductName)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}

	if in.ProductID != "" && in.ProductName != "" {
		p := &model.Product{ID: in.ProductID, Name: in.ProductName, UnitsPerBox: in.UnitsPerBox}
		if p.UnitsPerBox < 1 {
			p.UnitsPerBox = 1
		}
		if err := database.PutProduct(db, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	ref := in.ProductID
	if ref == "" {
		ref = in.ProductName
	}
	return nil, fmt.Errorf("%w: %q", ErrProductNotFound, ref)
}
