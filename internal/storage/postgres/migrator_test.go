package postgres

import (
	"testing"
	"testing/fstest"
)

func TestLoadMigrationsFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/migrations/0002_add_index.up.sql":       {Data: []byte("CREATE INDEX i ON t (c);")},
		"sql/migrations/0002_add_index.down.sql":     {Data: []byte("DROP INDEX i;")},
		"sql/migrations/0001_create_orders.up.sql":   {Data: []byte("CREATE TABLE t (c INT);")},
		"sql/migrations/0001_create_orders.down.sql": {Data: []byte("DROP TABLE t;")},
	}

	migrations, err := loadMigrationsFromFS(fsys)
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[1].Version != 2 {
		t.Fatalf("migrations must be sorted by version: %v", migrations)
	}
	if migrations[0].Name != "create_orders" {
		t.Fatalf("unexpected migration name: %s", migrations[0].Name)
	}
	if migrations[0].UpSQL == "" || migrations[0].DownSQL == "" {
		t.Fatal("expected both up and down scripts")
	}
}

func TestLoadMigrationsFromFS_MissingDown(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/migrations/0001_create_orders.up.sql": {Data: []byte("CREATE TABLE t (c INT);")},
	}

	if _, err := loadMigrationsFromFS(fsys); err == nil {
		t.Fatal("expected error for migration without down script")
	}
}

func TestLoadMigrationsFromFS_BadName(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/migrations/bad-name.sql": {Data: []byte("SELECT 1;")},
	}

	if _, err := loadMigrationsFromFS(fsys); err == nil {
		t.Fatal("expected error for invalid migration file name")
	}
}

func TestEmbeddedMigrationsAreWellFormed(t *testing.T) {
	migrations, err := loadMigrationsFromFS(migrationsFS)
	if err != nil {
		t.Fatalf("embedded migrations must load: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected at least one embedded migration")
	}
}
