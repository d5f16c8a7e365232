package postgres

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testPool is a global connection pool used by all tests in this package.
var testPool *pgxpool.Pool

// TestMain sets up and tears down the test database container.
func TestMain(m *testing.M) {
	ctx := context.Background()

	log.Println("Setting up PostgreSQL container...")
	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			log.Fatalf("could not terminate postgres container: %v", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("could not get connection string: %v", err)
	}

	// Apply the embedded schema migrations, same path production takes.
	if err := RunMigrations(connStr); err != nil {
		log.Fatalf("could not run migrations: %v", err)
	}
	log.Println("Migrations applied successfully.")

	testPool, err = pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("could not create connection pool: %v", err)
	}

	code := m.Run()

	os.Exit(code)
}

// truncateTables clears all data between tests while keeping the schema.
func truncateTables(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `TRUNCATE TABLE tickets, users CASCADE`)
	if err != nil {
		t.Fatalf("could not truncate tables: %v", err)
	}
}
