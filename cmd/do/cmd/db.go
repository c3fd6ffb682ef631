package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/habitkit/internal/config"
	"github.com/templui/habitkit/internal/db"
	"github.com/templui/habitkit/internal/logger"
)

// openDB loads config from the environment and .env and connects without
// running migrations.
func openDB() (*config.Config, *sqlx.DB, error) {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "", cfg.AppEnv)

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return cfg, database, nil
}
