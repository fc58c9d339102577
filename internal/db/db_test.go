package db

import (
	"context"
	"testing"
)

func TestSupportedDriver(t *testing.T) {
	for _, d := range []string{"pgx", "sqlite3", "mysql"} {
		if !SupportedDriver(d) {
			t.Errorf("expected %s to be supported", d)
		}
	}
	if SupportedDriver("postgres") {
		t.Error("expected lib/pq driver name to be rejected")
	}
}

func TestConnect_RejectsUnknownDriver(t *testing.T) {
	if _, err := Connect("oracle", "whatever"); err == nil {
		t.Fatal("expected error")
	}
}

func TestConnect_RejectsEmptyDSN(t *testing.T) {
	if _, err := Connect(DriverSQLite, ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestEnsureSchema_SQLite(t *testing.T) {
	database, err := Connect(DriverSQLite, ":memory:")
	if err != nil {
		t.Skipf("sqlite not available: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	if err := EnsureSchema(ctx, database); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	// idempotent
	if err := EnsureSchema(ctx, database); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}

	var count int
	if err := database.GetContext(ctx, &count, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatalf("products table missing: %v", err)
	}
	if err := database.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		t.Fatalf("users table missing: %v", err)
	}
}
