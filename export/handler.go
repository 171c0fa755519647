package export

import (
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"

	"bsm/journal"
)

type requestBody struct {
	Dir   string `json:"dir"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Handler exports both record kinds for a date range. The target directory
// defaults to the configured export folder.
func Handler(db *sqlx.DB, defaultDir string, jr *journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requestBody
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Start == "" || req.End == "" {
			http.Error(w, "Start and end days are required", http.StatusBadRequest)
			return
		}
		if req.Dir == "" {
			req.Dir = defaultDir
		}

		dir, err := Range(db, req.Dir, req.Start, req.End)
		if err != nil {
			jr.Errorf("export %s to %s failed: %v", req.Start+"-"+req.End, req.Dir, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		jr.Infof("exported records %s to %s into %s", req.Start, req.End, dir)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"dir": dir})
	}
}
