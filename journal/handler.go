package journal

import (
	"encoding/json"
	"net/http"
)

// RecentHandler serves the recent activity entries for the UI log pane.
func RecentHandler(j *Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(j.Recent())
	}
}
