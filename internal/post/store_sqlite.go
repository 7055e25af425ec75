// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taibuivan/secureblog/internal/platform/database/schema"
	"github.com/taibuivan/secureblog/internal/platform/dberr"
)

var (
	liteInsertPost = fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?)`,
		schema.Post.Table, postColumns,
	)
	liteSelectPosts = fmt.Sprintf(
		`SELECT %s FROM %s ORDER BY %s, %s`,
		postColumns, schema.Post.Table, schema.Post.CreatedAt, schema.Post.ID,
	)
	liteUpdateOwnedPost = fmt.Sprintf(
		`UPDATE %s SET %s = ?, %s = ? WHERE %s = ? AND %s = ? RETURNING %s`,
		schema.Post.Table, schema.Post.Title, schema.Post.Content,
		schema.Post.ID, schema.Post.OwnerID, postColumns,
	)
	liteDeleteOwnedPost = fmt.Sprintf(
		`DELETE FROM %s WHERE %s = ? AND %s = ?`,
		schema.Post.Table, schema.Post.ID, schema.Post.OwnerID,
	)
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// SQLitePostRepository implements the PostRepository interface on database/sql.
type SQLitePostRepository struct {
	db *sql.DB
}

// NewSQLitePostRepository creates a SQLite implementation of the PostRepository.
func NewSQLitePostRepository(db *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{db: db}
}

// Create implements [PostRepository].
func (repository *SQLitePostRepository) Create(ctx context.Context, post *Post) error {
	_, err := repository.db.ExecContext(ctx, liteInsertPost,
		post.ID,
		post.OwnerID,
		post.Title,
		post.Content,
		post.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "sqlite_post_repo_create")
	}
	return nil
}

// List implements [PostRepository].
func (repository *SQLitePostRepository) List(ctx context.Context) ([]*Post, error) {
	rows, err := repository.db.QueryContext(ctx, liteSelectPosts)
	if err != nil {
		return nil, dberr.Wrap(err, "sqlite_post_repo_list")
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	for rows.Next() {
		post, err := scanLitePost(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "sqlite_post_repo_list_scan")
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "sqlite_post_repo_list_rows")
	}
	return posts, nil
}

// UpdateOwned implements [PostRepository].
func (repository *SQLitePostRepository) UpdateOwned(ctx context.Context, id, ownerID, title, content string) (*Post, error) {
	post, err := scanLitePost(repository.db.QueryRowContext(ctx, liteUpdateOwnedPost, title, content, id, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, "sqlite_post_repo_update_owned")
	}
	return post, nil
}

// DeleteOwned implements [PostRepository].
func (repository *SQLitePostRepository) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	result, err := repository.db.ExecContext(ctx, liteDeleteOwnedPost, id, ownerID)
	if err != nil {
		return false, dberr.Wrap(err, "sqlite_post_repo_delete_owned")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, dberr.Wrap(err, "sqlite_post_repo_delete_owned_rows")
	}
	return affected > 0, nil
}

func scanLitePost(row rowScanner) (*Post, error) {
	post := &Post{}
	err := row.Scan(&post.ID, &post.OwnerID, &post.Title, &post.Content, &post.CreatedAt)
	if err != nil {
		return nil, err
	}
	return post, nil
}
