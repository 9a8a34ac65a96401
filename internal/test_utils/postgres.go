//go:build integration

package test_utils

import (
	"context"
	"os"

	"github.com/klokku/mealplanner/internal/config"
	"github.com/klokku/mealplanner/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	pgName = "meals_db"
	pgUser = "test_meals"
	pgPass = "test_meals"
)

// TestWithDB starts a Postgres container, applies all migrations and snapshots the
// empty schema so tests can Restore it between cases.
func TestWithDB() (*postgres.PostgresContainer, func() *database.DB) {
	ctx := context.Background()

	container, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithDatabase(pgName),
		postgres.WithUsername(pgUser),
		postgres.WithPassword(pgPass),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("Failed to start postgres container: %v", err)
		os.Exit(1)
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432/tcp")

	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Driver: "postgres",
		Host:   host,
		Port:   port.Int(),
		User:   pgUser,
		Pass:   pgPass,
		Name:   pgName,
		Schema: "public",
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	db.Close()

	err = container.Snapshot(ctx, postgres.WithSnapshotName("postgres-test-snapshot"))
	if err != nil {
		log.Fatalf("Failed to snapshot postgres container: %v", err)
	}

	return container, func() *database.DB {
		db, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("Failed to open database connection: %v", err)
		}
		return db
	}
}
