// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/secureblog/internal/platform/migration"
	"github.com/taibuivan/secureblog/internal/platform/sqlite"
)

/*
TestRunSQLite creates both tables and is idempotent on a second run.
*/
func TestRunSQLite(t *testing.T) {
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migration.RunSQLite(db, slog.Default()))
	require.NoError(t, migration.RunSQLite(db, slog.Default()))

	var tables int
	err = db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'posts')`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 2, tables)
}
