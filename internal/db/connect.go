package db

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"todo_backend/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// FoldLower is a SQLite function lowercasing with Unicode rules; the
// built-in LOWER only folds ASCII.
const FoldLower = "fold_lower"

func init() {
	// sqlx does not know the modernc driver name.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)

	if err := sqlite.RegisterDeterministicScalarFunction(FoldLower, 1, foldLower); err != nil {
		panic(fmt.Sprintf("register %s: %v", FoldLower, err))
	}
}

func foldLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Connect opens the store or exits the process, mirroring startup behaviour
// for the server and command-line tools.
func Connect(dsn string) *sqlx.DB {
	db, err := Open(context.Background(), dsn)
	if err != nil {
		logger.Fatal("failed to open database", "error", err)
	}
	logger.Info("database connected", "driver", db.DriverName())
	return db
}

// Open selects the driver from the DSN: postgres:// URLs and key=value
// connection strings go to pgx, anything else is treated as a SQLite path.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	driver, source := resolve(dsn)

	db, err := sqlx.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		// one connection: in-memory databases are per-connection and SQLite
		// serialises writers anyway
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return db, nil
}

func resolve(dsn string) (driver, source string) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "host="):
		return DriverPostgres, dsn
	}

	path := strings.TrimPrefix(strings.TrimPrefix(dsn, "sqlite://"), "sqlite:")
	if path == "" {
		path = "todo.db"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return DriverSQLite, path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}
