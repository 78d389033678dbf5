package main

import (
	"errors"
	"log"

	"github.com/golang-migrate/migrate/v4"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/noah-isme/school-enrollment-api/pkg/config"
	"github.com/noah-isme/school-enrollment-api/pkg/database"
	"github.com/noah-isme/school-enrollment-api/pkg/logger"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations instead of applying pending ones")
	showVersion := flag.Bool("version", false, "print the current schema version and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	m, err := database.NewMigrator(cfg.Database.URL())
	if err != nil {
		logr.Fatal("migrator init failed", zap.Error(err))
	}
	defer m.Close()

	switch {
	case *showVersion:
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logr.Fatal("read schema version", zap.Error(err))
		}
		logr.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	case *down > 0:
		if err := m.Steps(-*down); err != nil {
			logr.Fatal("rollback failed", zap.Int("steps", *down), zap.Error(err))
		}
		logr.Info("rolled back migrations", zap.Int("steps", *down))
	default:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logr.Fatal("migration failed", zap.Error(err))
		}
		logr.Info("migrations applied")
	}
}
