package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open opens and pings the catalog database. driver is "mysql" or "sqlite".
func Open(ctx context.Context, driver, dsn string, pool PoolConfig) (*sql.DB, error) {
	switch driver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// single writer; an in-memory database also lives on one connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		if pool.MaxOpenConns > 0 {
			db.SetMaxOpenConns(pool.MaxOpenConns)
		}
		if pool.MaxIdleConns > 0 {
			db.SetMaxIdleConns(pool.MaxIdleConns)
		}
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
    code  VARCHAR(16)   NOT NULL PRIMARY KEY,
    price DECIMAL(10,2) NOT NULL
);
CREATE TABLE IF NOT EXISTS promotion_prices (
    promotion_code VARCHAR(50)   NOT NULL,
    product_code   VARCHAR(16)   NOT NULL,
    price          DECIMAL(10,2) NOT NULL,
    PRIMARY KEY (promotion_code, product_code)
);`

// EnsureSchema creates the catalog tables when missing. The statements are
// valid for both mysql and sqlite.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
