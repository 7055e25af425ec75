// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/taibuivan/secureblog/internal/platform/database/schema"
	"github.com/taibuivan/secureblog/internal/platform/dberr"
)

var (
	liteInsertUser = fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (?, ?, ?, ?)`,
		schema.User.Table, strings.Join(schema.User.Columns(), ", "),
	)
	liteSelectUserByUsername = fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = ?`,
		strings.Join(schema.User.Columns(), ", "), schema.User.Table, schema.User.Username,
	)
	liteSelectUsers = fmt.Sprintf(
		`SELECT %s FROM %s ORDER BY %s, %s`,
		strings.Join(schema.User.Columns(), ", "), schema.User.Table, schema.User.CreatedAt, schema.User.ID,
	)
)

// SQLiteUserRepository implements the UserRepository interface on database/sql.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a SQLite implementation of the UserRepository.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create implements [UserRepository].
func (repository *SQLiteUserRepository) Create(ctx context.Context, user *User) error {
	_, err := repository.db.ExecContext(ctx, liteInsertUser,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "sqlite_user_repo_create")
	}
	return nil
}

// FindByUsername implements [UserRepository].
func (repository *SQLiteUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}
	err := repository.db.QueryRowContext(ctx, liteSelectUserByUsername, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "sqlite_user_repo_find_by_username")
	}
	return user, nil
}

// List implements [UserRepository].
func (repository *SQLiteUserRepository) List(ctx context.Context) ([]*User, error) {
	rows, err := repository.db.QueryContext(ctx, liteSelectUsers)
	if err != nil {
		return nil, dberr.Wrap(err, "sqlite_user_repo_list")
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "sqlite_user_repo_list_scan")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "sqlite_user_repo_list_rows")
	}
	return users, nil
}
