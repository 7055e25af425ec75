// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite opens the embedded SQLite backend used for local runs and tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	// registers the "sqlite3" database/sql driver.
	_ "github.com/mattn/go-sqlite3"
)

const pingTimeout = 2 * time.Second

// Open returns a handle with foreign keys enforced and a busy timeout.
//
// SQLite allows one writer at a time, so the pool is capped at a single
// connection; that also keeps an in-memory database alive across queries.
func Open(path string) (*sql.DB, error) {
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	dsn := path + separator + "_foreign_keys=on&_busy_timeout=5000"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %q: %w", path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := Ping(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenLogged is [Open] with a connection log line, for the server entrypoint.
func OpenLogged(path string, logger *slog.Logger) (*sql.DB, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	logger.Info("sqlite_database_opened", slog.String("path", path))
	return db, nil
}

// Ping verifies that the database handle is usable.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}
