package migrate_test

import (
	"context"
	"testing"

	"cityline/internal/db"
	"cityline/internal/migrate"
)

func TestMigrateAppliesSchema(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := migrate.Migrate(ctx, conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	v, err := migrate.Version(ctx, conn)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v < 1 {
		t.Fatalf("version = %d, want >= 1", v)
	}
	for _, table := range []string{"projects", "buildings", "tasks", "communication_logs"} {
		var n int
		if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// Reapplying is a no-op.
	if err := migrate.Migrate(ctx, conn); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	again, err := migrate.Version(ctx, conn)
	if err != nil {
		t.Fatal(err)
	}
	if again != v {
		t.Fatalf("version changed on reapply: %d -> %d", v, again)
	}
}
