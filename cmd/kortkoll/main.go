package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/evalind/kortkoll/internal/api"
	"github.com/evalind/kortkoll/internal/config"
	"github.com/evalind/kortkoll/internal/database"
	"github.com/evalind/kortkoll/internal/database/repository"
	"github.com/evalind/kortkoll/internal/logger"
	"github.com/evalind/kortkoll/internal/service"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatal().Err(err).Msg("mkdir db dir")
	}

	if err := database.RunMigrations(cfg.Database.Path, cfg.Database.Migrations); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seed defaults")
	}

	// repositories
	txRepo := repository.NewTransactionRepo(db)
	catRepo := repository.NewCategoryRepo(db)
	ruleRepo := repository.NewRuleRepo(db)

	// services
	srv := api.New(log, api.Deps{
		Ingest:       &service.IngestService{Transactions: txRepo, Rules: ruleRepo},
		Rules:        &service.RuleService{DB: db},
		Categories:   &service.CategoryService{DB: db, Categories: catRepo},
		Overlaps:     &service.OverlapService{Transactions: txRepo},
		Transactions: txRepo,
		CategoryRepo: catRepo,
		RuleRepo:     ruleRepo,
	})

	log.Info().Str("addr", cfg.Server.Addr).Str("db", cfg.Database.Path).Msg("listening")
	if err := http.ListenAndServe(cfg.Server.Addr, srv.Handler()); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}
