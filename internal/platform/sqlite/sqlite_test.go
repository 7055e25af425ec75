// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/secureblog/internal/platform/sqlite"
)

/*
TestOpen_ForeignKeys verifies the pragma is applied through the DSN.
*/
func TestOpen_ForeignKeys(t *testing.T) {
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "blog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var enabled int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)

	assert.NoError(t, sqlite.Ping(context.Background(), db))
}
