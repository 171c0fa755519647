// Package product manages the product master: registration, autocomplete
// search and batch import.
package product

import (
	"errors"

	"bsm/database"
	"bsm/model"
	"bsm/parsers"
)

var ErrMissingID = errors.New("product id is required")

// Register creates or updates one product. UnitsPerBox below 1 is normalized
// to 1, the base-unit-only packaging.
func Register(dbtx database.DBTX, p model.Product) error {
	if p.ID == "" {
		return ErrMissingID
	}
	if p.UnitsPerBox < 1 {
		p.UnitsPerBox = 1
	}
	return database.PutProduct(dbtx, &p)
}

// Import registers every parsed row whose id is not already present and
// returns how many were added. Existing products are left untouched, matching
// the batch-import screen's skip-existing behavior.
func Import(dbtx database.DBTX, rows []parsers.ProductRow) (int, error) {
	added := 0
	for _, row := range rows {
		existing, err := database.GetProduct(dbtx, row.ID)
		if err != nil {
			return added, err
		}
		if existing != nil {
			continue
		}
		err = database.PutProduct(dbtx, &model.Product{
			ID:          row.ID,
			Name:        row.Name,
			UnitsPerBox: row.UnitsPerBox,
		})
		if err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
