package main

import (
	"context"
	"flag"
	"fmt"

	"todo_backend/internal/config"
	"todo_backend/internal/db"
	"todo_backend/internal/logger"
)

// migrate_apply prints the schema for the configured store, and applies it
// with -apply.
func main() {
	apply := flag.Bool("apply", false, "apply schema")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	store := db.Connect(cfg.DatabaseURL)
	defer store.Close()

	if !*apply {
		name, schema, err := db.Schema(store.DriverName())
		if err != nil {
			logger.Fatal("read schema", "error", err)
		}
		fmt.Printf("-- %s\n%s", name, schema)
		return
	}

	if err := db.Migrate(context.Background(), store); err != nil {
		logger.Fatal("apply schema", "error", err)
	}
	logger.Info("schema applied", "driver", store.DriverName())
}
