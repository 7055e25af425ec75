// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/secureblog/internal/platform/database/schema"
	"github.com/taibuivan/secureblog/internal/platform/dberr"
	"github.com/taibuivan/secureblog/internal/platform/postgres"
)

var (
	postColumns = strings.Join(schema.Post.Columns(), ", ")

	pgInsertPost = fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)`,
		schema.Post.Table, postColumns,
	)
	pgSelectPosts = fmt.Sprintf(
		`SELECT %s FROM %s ORDER BY %s, %s`,
		postColumns, schema.Post.Table, schema.Post.CreatedAt, schema.Post.ID,
	)
	pgUpdateOwnedPost = fmt.Sprintf(
		`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3 AND %s = $4 RETURNING %s`,
		schema.Post.Table, schema.Post.Title, schema.Post.Content,
		schema.Post.ID, schema.Post.OwnerID, postColumns,
	)
	pgDeleteOwnedPost = fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Post.Table, schema.Post.ID, schema.Post.OwnerID,
	)
)

// PostgresPostRepository implements the PostRepository interface using pgx.
type PostgresPostRepository struct {
	db postgres.DBTX
}

// NewPostRepository creates a new PostgreSQL implementation of the PostRepository.
func NewPostRepository(db postgres.DBTX) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// Create implements [PostRepository].
func (repository *PostgresPostRepository) Create(ctx context.Context, post *Post) error {
	_, err := repository.db.Exec(ctx, pgInsertPost,
		post.ID,
		post.OwnerID,
		post.Title,
		post.Content,
		post.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_post_repo_create")
	}
	return nil
}

// List implements [PostRepository].
func (repository *PostgresPostRepository) List(ctx context.Context) ([]*Post, error) {
	rows, err := repository.db.Query(ctx, pgSelectPosts)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_post_repo_list")
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "postgres_post_repo_list_scan")
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_post_repo_list_rows")
	}
	return posts, nil
}

// UpdateOwned implements [PostRepository].
func (repository *PostgresPostRepository) UpdateOwned(ctx context.Context, id, ownerID, title, content string) (*Post, error) {
	post, err := scanPost(repository.db.QueryRow(ctx, pgUpdateOwnedPost, title, content, id, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_post_repo_update_owned")
	}
	return post, nil
}

// DeleteOwned implements [PostRepository].
func (repository *PostgresPostRepository) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	tag, err := repository.db.Exec(ctx, pgDeleteOwnedPost, id, ownerID)
	if err != nil {
		return false, dberr.Wrap(err, "postgres_post_repo_delete_owned")
	}
	return tag.RowsAffected() > 0, nil
}

func scanPost(row pgx.Row) (*Post, error) {
	post := &Post{}
	err := row.Scan(&post.ID, &post.OwnerID, &post.Title, &post.Content, &post.CreatedAt)
	if err != nil {
		return nil, err
	}
	return post, nil
}
