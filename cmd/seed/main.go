package main

import (
	"context"

	"todo_backend/internal/config"
	"todo_backend/internal/db"
	"todo_backend/internal/domain"
	"todo_backend/internal/logger"
	"todo_backend/internal/service"
)

// seed creates the default categories that are missing. Running it twice
// is harmless.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	store := db.Connect(cfg.DatabaseURL)
	defer store.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx, store); err != nil {
		logger.Fatal("schema bootstrap failed", "error", err)
	}

	categories := service.NewCategoryService(store, nil)
	created, err := categories.EnsureDefaults(ctx, domain.DefaultCategories)
	if err != nil {
		logger.Fatal("seed categories failed", "error", err)
	}

	all, err := categories.List(ctx, 0, 0)
	if err != nil {
		logger.Fatal("list categories failed", "error", err)
	}
	for _, c := range all {
		logger.Info("category", "id", c.ID, "name", c.Name, "color", c.Color)
	}
	logger.Info("seed finished", "created", created, "total", len(all))
}
