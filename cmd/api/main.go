package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"gerorank/adapters/postgres"
	"gerorank/adapters/rng"
	"gerorank/app"
	"gerorank/internal/api"
	"gerorank/internal/config"
	"gerorank/internal/logging"
	"gerorank/internal/testkit"
	"gerorank/ports"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local runs; absence is fine
	_ = godotenv.Load()

	logger := logging.New("api")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[api] configuration error: %v", err)
	}

	var runRepo ports.RunRepository
	if cfg.Database.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := postgres.Connect(ctx, cfg.Database.URL)
		cancel()
		if err != nil {
			log.Fatalf("[api] database connection failed: %v", err)
		}
		defer db.Close()
		if _, err := db.Exec(postgres.Schema); err != nil {
			log.Fatalf("[api] schema migration failed: %v", err)
		}
		runRepo = postgres.NewRunRepository(db)
		logger.Infof("run persistence enabled")
	} else {
		runRepo = testkit.NewInMemoryRunRepository()
		logger.Infof("DATABASE_URL not set, using in-memory run store")
	}

	service := app.NewAnalysisService(rng.NewDeterministicAdapter(), runRepo)
	server := api.NewServer(service, runRepo, cfg.Analysis)

	addr := ":" + cfg.Server.Port
	logger.Infof("listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		logger.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}
