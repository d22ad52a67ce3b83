package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Astemirdum/bookhub/library/migrations"
	"github.com/Astemirdum/bookhub/pkg/postgres"
	"github.com/stretchr/testify/require"
)

func TestDB_DSN(t *testing.T) {
	t.Parallel()
	cfg := postgres.DB{
		Host:     "db",
		Port:     "5432",
		Username: "program",
		Password: "p@ss word",
		NameDB:   "library",
		SSLMode:  "disable",
	}
	require.Equal(t, "postgres://program:p%40ss%20word@db:5432/library?sslmode=disable", cfg.DSN())
}

func TestNewPostgresDBFromDSN(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// second open finds the migrations applied and the pool still usable.
	for i := 0; i < 2; i++ {
		db, err := postgres.NewPostgresDBFromDSN(ctx, dsn, 2, migrations.MigrationFiles)
		require.NoError(t, err)

		var tables int
		err = db.QueryRow(ctx,
			`select count(*) from information_schema.tables where table_schema = current_schema() and table_name in ('users', 'books')`).Scan(&tables)
		require.NoError(t, err)
		require.Equal(t, 2, tables)
		db.Close()
	}
}
