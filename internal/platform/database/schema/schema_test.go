// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/secureblog/internal/platform/database/schema"
)

/*
TestColumns pins the select order the stores scan into.
*/
func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"id", "username", "password_hash", "created_at"}, schema.User.Columns())
	assert.Equal(t, []string{"id", "owner_id", "title", "content", "created_at"}, schema.Post.Columns())
}
