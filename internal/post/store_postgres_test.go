// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/secureblog/internal/platform/apperr"
	"github.com/taibuivan/secureblog/internal/post"
)

var postColumns = []string{"id", "owner_id", "title", "content", "created_at"}

func newMockRepository(t *testing.T) (*post.PostgresPostRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return post.NewPostRepository(mock), mock
}

/*
TestPostgresPostRepository_UpdateOwned scopes the write by id and owner in one statement.
*/
func TestPostgresPostRepository_UpdateOwned(t *testing.T) {
	repository, mock := newMockRepository(t)
	query := regexp.QuoteMeta(`UPDATE posts SET title = $1, content = $2 WHERE id = $3 AND owner_id = $4 RETURNING id, owner_id, title, content, created_at`)
	now := time.Now().UTC()

	mock.ExpectQuery(query).WithArgs("T", "C", "p-1", "owner").
		WillReturnRows(pgxmock.NewRows(postColumns).AddRow("p-1", "owner", "T", "C", now))
	mock.ExpectQuery(query).WithArgs("T", "C", "p-1", "intruder").
		WillReturnError(pgx.ErrNoRows)

	updated, err := repository.UpdateOwned(context.Background(), "p-1", "owner", "T", "C")
	require.NoError(t, err)
	assert.Equal(t, "owner", updated.OwnerID)

	_, err = repository.UpdateOwned(context.Background(), "p-1", "intruder", "T", "C")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestPostgresPostRepository_DeleteOwned reports whether a row was removed.
*/
func TestPostgresPostRepository_DeleteOwned(t *testing.T) {
	repository, mock := newMockRepository(t)
	query := regexp.QuoteMeta(`DELETE FROM posts WHERE id = $1 AND owner_id = $2`)

	mock.ExpectExec(query).WithArgs("p-1", "owner").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(query).WithArgs("p-1", "intruder").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repository.DeleteOwned(context.Background(), "p-1", "owner")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repository.DeleteOwned(context.Background(), "p-1", "intruder")
	require.NoError(t, err)
	assert.False(t, deleted)
}

/*
TestPostgresPostRepository_CreateAndList binds the owner in the INSERT.
*/
func TestPostgresPostRepository_CreateAndList(t *testing.T) {
	repository, mock := newMockRepository(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO posts (id, owner_id, title, content, created_at) VALUES ($1, $2, $3, $4, $5)`)).
		WithArgs("p-1", "owner", "<b>t</b>", "c", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, owner_id, title, content, created_at FROM posts ORDER BY created_at, id`)).
		WillReturnRows(pgxmock.NewRows(postColumns).AddRow("p-1", "owner", "<b>t</b>", "c", now))

	require.NoError(t, repository.Create(context.Background(), &post.Post{
		ID: "p-1", OwnerID: "owner", Title: "<b>t</b>", Content: "c", CreatedAt: now,
	}))

	posts, err := repository.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "<b>t</b>", posts[0].Title)
}
