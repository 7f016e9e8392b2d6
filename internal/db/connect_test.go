package db

import (
	"context"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		dsn        string
		wantDriver string
		wantPrefix string
	}{
		{"postgres://u:p@localhost:5432/todo", DriverPostgres, "postgres://"},
		{"postgresql://localhost/todo", DriverPostgres, "postgresql://"},
		{"host=localhost user=postgres dbname=todo", DriverPostgres, "host="},
		{"todo.db", DriverSQLite, "todo.db?_pragma=foreign_keys(1)"},
		{"sqlite://data/todo.db", DriverSQLite, "data/todo.db?"},
		{":memory:", DriverSQLite, ":memory:?"},
		{"", DriverSQLite, "todo.db?"},
	}

	for _, tc := range cases {
		driver, source := resolve(tc.dsn)
		if driver != tc.wantDriver {
			t.Fatalf("resolve(%q) driver = %s; want %s", tc.dsn, driver, tc.wantDriver)
		}
		if !strings.HasPrefix(source, tc.wantPrefix) {
			t.Fatalf("resolve(%q) source = %s; want prefix %s", tc.dsn, source, tc.wantPrefix)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := Migrate(ctx, db); err != nil {
			t.Fatalf("migrate run %d: %v", i+1, err)
		}
	}

	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('todos', 'categories')`); err != nil {
		t.Fatalf("count tables: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 tables, got %d", n)
	}
}

func TestSchemaPerDriver(t *testing.T) {
	name, ddl, err := Schema(DriverPostgres)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if name != "schema/postgres.sql" || !strings.Contains(ddl, "BIGSERIAL") {
		t.Fatalf("unexpected postgres schema %s", name)
	}

	name, ddl, err = Schema(DriverSQLite)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if name != "schema/sqlite.sql" || !strings.Contains(ddl, "AUTOINCREMENT") {
		t.Fatalf("unexpected sqlite schema %s", name)
	}
}

func TestFoldLowerIsUnicodeAware(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var got string
	if err := db.GetContext(ctx, &got, `SELECT `+FoldLower+`(?)`, "ÉCLAIR Straße"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got != "éclair straße" {
		t.Fatalf("%s = %q", FoldLower, got)
	}

	var null *string
	if err := db.GetContext(ctx, &null, `SELECT `+FoldLower+`(NULL)`); err != nil {
		t.Fatalf("select null: %v", err)
	}
	if null != nil {
		t.Fatalf("expected NULL, got %q", *null)
	}
}
