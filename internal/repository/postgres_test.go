package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/spec-kit/user-admin-service/internal/persistence"
)

const (
	testPostgresImage    = "postgres:16-alpine"
	testPostgresPort     = "5432/tcp"
	testPostgresUser     = "test"
	testPostgresPassword = "test"
	testPostgresDatabase = "useradmin"
)

// newTestPool starts a disposable Postgres, applies the service migrations
// and returns a pool that is closed when the test ends.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests are skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testPostgresImage,
			ExposedPorts: []string{testPostgresPort},
			Env: map[string]string{
				"POSTGRES_USER":     testPostgresUser,
				"POSTGRES_PASSWORD": testPostgresPassword,
				"POSTGRES_DB":       testPostgresDatabase,
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort(testPostgresPort),
			),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, testPostgresPort)
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		testPostgresUser, testPostgresPassword, host, port.Port(), testPostgresDatabase)
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pool, filepath.Join("..", "..", "migrations"), zap.NewNop()))
	return pool
}

// resetTables empties users and tickets; seeded roles stay.
func resetTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE tickets, users`)
	require.NoError(t, err)
}

func insertUser(t *testing.T, pool *pgxpool.Pool, email, roleID, status string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
        INSERT INTO users (full_name, email, agency, phone, status, role_id, password_hash)
        VALUES ($1, $2, 'Plateau', '0102', $3, $4, 'hash')
        RETURNING id::text`, "User "+email, email, status, roleID).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertTicket(t *testing.T, pool *pgxpool.Pool, creatorID string, technicianID *string, status string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
        INSERT INTO tickets (creator_id, technician_id, status, assigned_at, resolved_at)
        VALUES ($1, $2, $3, NOW() - INTERVAL '2 days', NOW())
        RETURNING id::text`, creatorID, technicianID, status).Scan(&id)
	require.NoError(t, err)
	return id
}
