package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of applying pending ones")
	flag.Parse()

	cfg := config.MustLoad()

	if err := migrate(cfg, *down); err != nil {
		log.Fatal(err)
	}

	log.Printf("✅ Migrations in %s applied successfully", cfg.Storage.MigrationsDir)
}

func migrate(cfg *config.Config, down bool) error {
	dtb, closeDB, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if err = goose.SetDialect(cfg.Storage.Driver); err != nil {
		return fmt.Errorf("failed to select migration dialect: %w", err)
	}

	apply := goose.Up
	if down {
		apply = goose.Down
	}

	return apply(dtb, cfg.Storage.MigrationsDir)
}

func openDB(cfg *config.Config) (*sql.DB, func(), error) {
	if cfg.Storage.Driver == config.DriverMySQL {
		gdb, err := repository.NewMySQL(cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get DB handle: %w", err)
		}
		return sqlDB, func() { _ = sqlDB.Close() }, nil
	}

	dbpool, err := repository.NewDatabase(
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password,
		cfg.Postgres.Dbname, cfg.Postgres.SSLMode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	return stdlib.OpenDBFromPool(dbpool), dbpool.Close, nil
}
