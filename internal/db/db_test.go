package db

import (
	"context"
	"os"
	"testing"
)

func TestConnectPostgres(t *testing.T) {
	t.Run("missing DATABASE_URL fails", func(t *testing.T) {
		if _, err := ConnectPostgres(context.Background(), ""); err == nil {
			t.Fatal("expected error for empty dsn")
		}
	})

	t.Run("malformed DATABASE_URL fails", func(t *testing.T) {
		if _, err := ConnectPostgres(context.Background(), "postgres://%zz"); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("valid DATABASE_URL should connect", func(t *testing.T) {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			t.Skip("DATABASE_URL not set, skipping integration test")
		}

		pool, err := ConnectPostgres(context.Background(), dsn)
		if err != nil {
			t.Fatal(err)
		}
		defer pool.Close()

		var n int
		if err := pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
			t.Fatalf("sessions table missing: %v", err)
		}
	})
}
