package main

import (
	"errors"
	"os"
	"strings"

	"app/internal/config"
	"app/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

// Applies the SQL migrations under internal/db/migrations.
// Usage: migrate [up|down]
func main() {
	logger := logger.New()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	// The pgx/v5 migrate driver registers itself under the pgx5 scheme.
	dsn := cfg.DSN()
	dsn = strings.Replace(dsn, "postgresql://", "pgx5://", 1)
	dsn = strings.Replace(dsn, "postgres://", "pgx5://", 1)

	migrator, err := migrate.New("file://internal/db/migrations", dsn)
	if err != nil {
		logger.Fatal().Msgf("Failed to init migrator: %v", err)
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Steps(-1)
	default:
		logger.Fatal().Msgf("Unknown direction %q (want up or down)", direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal().Msgf("Migration %s failed: %v", direction, err)
	}
	logger.Info().Str("direction", direction).Msg("Migrations applied")
}
