package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"bsm/config"
	"bsm/export"
	"bsm/journal"
	"bsm/product"
	"bsm/record"
	"bsm/statistics"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, jr *journal.Journal) {
	mux.HandleFunc("/api/records/save", record.SaveRecordHandler(dbConn, jr))
	mux.HandleFunc("/api/records/ledger", record.LedgerHandler(dbConn, jr))
	mux.HandleFunc("/api/records/list", record.ListRecordsHandler(dbConn, jr))

	mux.HandleFunc("/api/products/save", product.SaveProductHandler(dbConn, jr))
	mux.HandleFunc("/api/products/suggest", product.SuggestHandler(dbConn, jr))
	mux.HandleFunc("/api/products/resolve", product.ResolveHandler(dbConn, jr))
	mux.HandleFunc("/api/products/import", product.ImportHandler(dbConn, jr))

	mux.HandleFunc("/api/statistics/weekly_profit", statistics.WeeklyProfitHandler(dbConn, jr))
	mux.HandleFunc("/api/statistics/range", statistics.RangeHandler(dbConn, jr))

	mux.HandleFunc("/api/export", func(w http.ResponseWriter, r *http.Request) {
		export.Handler(dbConn, config.GetConfig().ExportFolderPath, jr)(w, r)
	})

	mux.HandleFunc("/api/journal", journal.RecentHandler(jr))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			SaveConfigHandler(jr)(w, r)
			return
		}
		GetConfigHandler()(w, r)
	})
}
