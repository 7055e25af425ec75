// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestConvertToPgx5DSN rewrites libpq URL schemes and leaves others alone.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/blog", convertToPgx5DSN("postgres://u:p@db:5432/blog"))
	assert.Equal(t, "pgx5://u:p@db:5432/blog", convertToPgx5DSN("postgresql://u:p@db:5432/blog"))
	assert.Equal(t, "pgx5://db/blog", convertToPgx5DSN("pgx5://db/blog"))
}
