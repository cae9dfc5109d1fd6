package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"westwind-inventory/internal"
	"westwind-inventory/internal/config"
	"westwind-inventory/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	st, err := store.Open(cfg.DSN)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	srv := internal.NewServer(st, cfg)

	log.Println("Starting Westwind inventory server...")
	log.Printf("Listening on %s", cfg.Addr)

	log.Fatal(http.ListenAndServe(cfg.Addr, srv.Router))
}
