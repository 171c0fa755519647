package record

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"bsm/database"
	"bsm/journal"
	"bsm/model"
)

// SaveRecordHandler handles the data-entry form. An unknown product that
// cannot be auto-registered comes back as 404 with needsProduct set so the UI
// can open the registration dialog, mirroring the desktop flow.
func SaveRecordHandler(db *sqlx.DB, jr *journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		tr, err := RecordTransaction(db, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrProductNotFound):
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error":        err.Error(),
					"needsProduct": true,
				})
			case errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrInvalidPrice):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				jr.Errorf("failed to save record: %v", err)
				http.Error(w, "Failed to save record", http.StatusInternalServerError)
			}
			return
		}

		direction := "in"
		if tr.Kind == model.KindOut {
			direction = "out"
		}
		jr.Infof("recorded %s: %d bottles of %s at %s", direction, tr.Bottles, tr.ProductID, tr.UnitPrice)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":     "saved",
			"transaction": tr,
		})
	}
}

// LedgerHandler serves the lookup page: all movements for one product,
// resolved by id or exact name, as a signed sequence newest first.
func LedgerHandler(db *sqlx.DB, jr *journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keyword := r.URL.Query().Get("product")
		if keyword == "" {
			http.Error(w, "Product keyword is required", http.StatusBadRequest)
			return
		}

		product, err := database.GetProduct(db, keyword)
		if err == nil && product == nil {
			product, err = database.FindProductByName(db, keyword)
		}
		if err != nil {
			jr.Errorf("product lookup failed: %v", err)
			http.Error(w, "Failed to look up product", http.StatusInternalServerError)
			return
		}
		if product == nil {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}

		entries, err := database.ListLedgerEntries(db, product.ID)
		if err != nil {
			jr.Errorf("ledger query failed: %v", err)
			http.Error(w, "Failed to load records", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}
}

// ListRecordsHandler lists one kind of record, optionally filtered by product
// and by an inclusive day range.
func ListRecordsHandler(db *sqlx.DB, jr *journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := model.TransactionKind(r.URL.Query().Get("kind"))
		if !kind.Valid() {
			http.Error(w, "kind must be 'in' or 'out'", http.StatusBadRequest)
			return
		}

		var dr *model.DateRange
		start := r.URL.Query().Get("start")
		end := r.URL.Query().Get("end")
		if start != "" && end != "" {
			endDay, err := time.Parse("2006-01-02", end)
			if err != nil {
				http.Error(w, "end must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			dr = &model.DateRange{
				Start: start,
				End:   endDay.AddDate(0, 0, 1).Format("2006-01-02"),
			}
		}

		records, err := database.ListTransactions(db, kind, r.URL.Query().Get("product"), dr)
		if err != nil {
			jr.Errorf("record list query failed: %v", err)
			http.Error(w, "Failed to load records", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}
