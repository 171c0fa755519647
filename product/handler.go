package product

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"

	"bsm/database"
	"bsm/journal"
	"bsm/model"
	"bsm/parsers"
)

// SaveProductHandler registers a single product from the new-product dialog.
func SaveProductHandler(db *sqlx.DB, jr *journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p model.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := Register(db, p); err != nil {
			if errors.Is(err, ErrMissingID) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			jr.Errorf("failed to register product %s: %v", p.ID, err)
			http.Error(w, "Failed to register product", http.StatusInternalServerError)
			return
		}
		jr.Infof("registered product %s - %s (%d bottles/box)", p.ID, p.Name, p.UnitsPerBox)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "saved"})
	}
}

// SuggestHandler powers the search box autocomplete with partial name matches.
func SuggestHandler(db *sqlx.DB, jr *journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keyword := r.URL.Query().Get("kw")
		if keyword == "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte("[]"))
			return
		}
		names, err := database.SuggestProducts(db, keyword, 20)
		if err != nil {
			jr.Errorf("product suggestion query failed: %v", err)
			http.Error(w, "Failed to search products", http.StatusInternalServerError)
			return
		}
		if names == nil {
			names = []string{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(names)
	}
}

// ResolveHandler maps an exact display name to its product, for the form's
// id field fill-in on selection.
func ResolveHandler(db *sqlx.DB, jr *journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "Name is required", http.StatusBadRequest)
			return
		}
		p, err := database.FindProductByName(db, name)
		if err != nil {
			jr.Errorf("product resolve query failed: %v", err)
			http.Error(w, "Failed to resolve product", http.StatusInternalServerError)
			return
		}
		if p == nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(p)
	}
}

// ImportHandler ingests an uploaded product list, .xlsx or GBK .csv, and
// reports how many new products were added.
func ImportHandler(db *sqlx.DB, jr *journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "A file upload is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		var rows []parsers.ProductRow
		switch strings.ToLower(filepath.Ext(header.Filename)) {
		case ".xlsx":
			rows, err = parsers.ParseProductsXLSX(file)
		case ".csv":
			rows, err = parsers.ParseProductsCSV(file)
		default:
			http.Error(w, "Only .xlsx and .csv files are supported", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to parse %s: %v", header.Filename, err), http.StatusBadRequest)
			return
		}

		added, err := Import(db, rows)
		if err != nil {
			jr.Errorf("product import failed after %d rows: %v", added, err)
			http.Error(w, "Failed to import products", http.StatusInternalServerError)
			return
		}
		jr.Infof("imported %d new products from %s", added, header.Filename)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"added": added})
	}
}
