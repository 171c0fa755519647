package main

import (
	"embed"
	"io/fs"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"bsm/config"
	"bsm/journal"
	"bsm/loader"
	"bsm/window"
)

//go:embed static
var staticFS embed.FS

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
	}

	jr, err := journal.New(cfg.LogFilePath)
	if err != nil {
		log.Fatalf("journal init error: %v", err)
	}
	defer jr.Close()

	jr.Infof("connecting to database %s", cfg.DatabasePath)
	dbConn, err := sqlx.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()

	if err := loader.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	jr.Infof("database ready")

	mux := http.NewServeMux()

	staticRoot, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("static assets missing: %v", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticRoot)))

	SetupRoutes(mux, dbConn, jr)

	url := "http://" + cfg.ListenAddr
	jr.Infof("starting server on %s", url)

	if !cfg.DisableWindow {
		go func() {
			if err := window.Open(url); err != nil {
				jr.Warnf("failed to open application window: %v", err)
			}
		}()
	}

	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}
