package integration

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"todo_backend/internal/db"
	"todo_backend/internal/domain"
	"todo_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func openPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		t.Skip("DATABASE_URL not set to a postgres URL")
	}

	store, err := db.Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := db.Migrate(context.Background(), store); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestPostgresTodoLifecycle(t *testing.T) {
	store := openPostgres(t)
	ctx := context.Background()
	cats := repository.NewCategoryRepository(store)
	todos := repository.NewTodoRepository(store)

	// the database may be shared, so names are unique per run
	tag := uuid.NewString()[:8]
	cat, err := cats.Create(ctx, domain.CategoryInput{Name: "it-" + tag})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	t.Cleanup(func() { _, _ = cats.Delete(ctx, cat.ID) })

	td, err := todos.Create(ctx, domain.TodoInput{Title: "Integration " + tag + " 50%", CategoryID: &cat.ID})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	t.Cleanup(func() { _, _ = todos.Delete(ctx, td.ID) })

	if td.Category == nil || td.Category.ID != cat.ID || td.Priority != domain.PriorityMedium {
		t.Fatalf("unexpected todo: %+v", td)
	}

	found, err := todos.List(ctx, domain.TodoFilter{Search: strings.ToUpper(tag) + " 50%"}, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(found) != 1 || found[0].ID != td.ID {
		t.Fatalf("search returned %+v", found)
	}

	toggled, err := todos.ToggleCompletion(ctx, td.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Completed || !toggled.UpdatedAt.After(td.UpdatedAt) {
		t.Fatalf("toggle result: %+v", toggled)
	}

	ok, err := cats.Delete(ctx, cat.ID)
	if err != nil || !ok {
		t.Fatalf("delete category: ok=%v err=%v", ok, err)
	}
	got, err := todos.Get(ctx, td.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CategoryID != nil {
		t.Fatalf("category_id not cleared")
	}

	ok, err = todos.Delete(ctx, td.ID)
	if err != nil || !ok {
		t.Fatalf("delete todo: ok=%v err=%v", ok, err)
	}
	if _, err := todos.Get(ctx, td.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
