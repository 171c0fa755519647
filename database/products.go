package database

import (
	"database/sql"
	"strings"

	"bsm/model"
)

// GetProduct looks a product up by its identifier. Returns (nil, nil) when no
// row exists.
func GetProduct(dbtx DBTX, id string) (*model.Product, error) {
	var p model.Product
	err := dbtx.Get(&p, `SELECT id, name, units_per_box FROM products WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get product", err)
	}
	return &p, nil
}

// FindProductByName resolves an exact display name to a product. Returns
// (nil, nil) when no row matches.
func FindProductByName(dbtx DBTX, name string) (*model.Product, error) {
	var p model.Product
	err := dbtx.Get(&p, `SELECT id, name, units_per_box FROM products WHERE name = ? LIMIT 1`, name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("find product by name", err)
	}
	return &p, nil
}

// PutProduct inserts a product or overwrites the master data of an existing
// one. Products are never deleted.
func PutProduct(dbtx DBTX, p *model.Product) error {
	_, err := dbtx.NamedExec(`
		INSERT INTO products (id, name, units_per_box)
		VALUES (:id, :name, :units_per_box)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, units_per_box = excluded.units_per_box`,
		p)
	return storeErr("put product", err)
}

// SuggestProducts returns display names matching the keyword, with a wildcard
// between every rune so partial characters anywhere in the name match. This is
// the autocomplete query behind the product search box.
func SuggestProducts(dbtx DBTX, keyword string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.Join(strings.Split(keyword, ""), "%") + "%"
	var names []string
	err := dbtx.Select(&names,
		`SELECT name FROM products WHERE name LIKE ? ORDER BY name LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, storeErr("suggest products", err)
	}
	return names, nil
}
