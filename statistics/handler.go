package statistics

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"bsm/database"
	"bsm/journal"
	"bsm/model"
)

// WeeklyProfitHandler serves the home-page profit series.
func WeeklyProfitHandler(db *sqlx.DB, jr *journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		points, err := WeeklyProfit(db, time.Now())
		if err != nil {
			jr.Errorf("weekly profit query failed: %v", err)
			http.Error(w, "Failed to load profit summary", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(points)
	}
}

// RangeHandler lists daily statistics rows between two days, both inclusive.
// With no start parameter the range begins at the earliest recorded day.
func RangeHandler(db *sqlx.DB, jr *journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		end := r.URL.Query().Get("end")
		if end == "" {
			end = time.Now().Format("2006-01-02")
		}
		start := r.URL.Query().Get("start")
		if start == "" {
			start = "0000-00-00"
		}
		rows, err := database.ListStatistics(db, model.DateRange{Start: start, End: end})
		if err != nil {
			jr.Errorf("statistics range query failed: %v", err)
			http.Error(w, "Failed to load statistics", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}
