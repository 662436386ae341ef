package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/joho/godotenv"

	"fyyur/internal/config"
	"fyyur/internal/database"
	"fyyur/internal/database/migrations"
	"fyyur/internal/logger"
)

func main() {
	reset := flag.Bool("reset", false, "drop the booking tables before recreating and seeding them")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := logger.NewLogger(cfg.Log)
	defer logger.Close()

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to open database: %v", err))
	}
	defer db.Close()

	if cfg.Database.Driver == database.DriverPostgres {
		runner := migrations.NewRunner(cfg.Database.PostgresDSN, migrations.MigrateOptions{MigrationsDir: cfg.Database.MigrationsDir}, logger)
		if *reset {
			logger.Info("MIGRATE", "Rolling back all migrations...")
			if err := runner.MigrateDown(); err != nil {
				logger.Fatal("MIGRATE", err.Error())
			}
		}
		logger.Info("MIGRATE", "Applying migrations...")
		if err := runner.RunMigrations(); err != nil {
			logger.Fatal("MIGRATE", err.Error())
		}
	} else {
		if *reset {
			logger.LogDatabase("DROP", "shows, artists, venues", "Dropping tables...")
			if err := database.DropSchema(ctx, db); err != nil {
				logger.Fatal("DATABASE", err.Error())
			}
		}
		logger.LogDatabase("CREATE", "venues, artists, shows", "Creating tables...")
		if err := database.CreateSchema(ctx, db); err != nil {
			logger.Fatal("DATABASE", err.Error())
		}
	}

	logger.Info("DATABASE", "Seeding sample data...")
	wrote, err := database.SeedIfEmpty(ctx, db)
	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to seed: %v", err))
	}
	if wrote {
		logger.LogDatabase("SEED", "venues, artists, shows", "Sample data loaded")
	} else {
		logger.Warn("DATABASE", "Venues already present, sample data skipped (use -reset to start over)")
	}
	logger.Info("APP", "✅ Done.")
}
