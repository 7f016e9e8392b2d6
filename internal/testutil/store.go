package testutil

import (
	"context"
	"testing"

	"todo_backend/internal/db"

	"github.com/jmoiron/sqlx"
)

// NewTestStore opens an in-memory SQLite store with the schema applied.
// It is closed when the test completes.
func NewTestStore(t *testing.T) *sqlx.DB {
	t.Helper()

	store, err := db.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	if err := db.Migrate(context.Background(), store); err != nil {
		t.Fatalf("migrating test store: %v", err)
	}
	return store
}
