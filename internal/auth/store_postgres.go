// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/secureblog/internal/platform/database/schema"
	"github.com/taibuivan/secureblog/internal/platform/dberr"
	"github.com/taibuivan/secureblog/internal/platform/postgres"
)

// # User Repository

var (
	pgInsertUser = fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4)`,
		schema.User.Table, strings.Join(schema.User.Columns(), ", "),
	)
	pgSelectUserByUsername = fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.User.Columns(), ", "), schema.User.Table, schema.User.Username,
	)
	pgSelectUsers = fmt.Sprintf(
		`SELECT %s FROM %s ORDER BY %s, %s`,
		strings.Join(schema.User.Columns(), ", "), schema.User.Table, schema.User.CreatedAt, schema.User.ID,
	)
)

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create implements [UserRepository].
//
// Uniqueness rests on the UNIQUE constraint alone; there is no pre-check.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	_, err := repository.db.Exec(ctx, pgInsertUser,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_create")
	}
	return nil
}

// FindByUsername implements [UserRepository].
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}
	err := repository.db.QueryRow(ctx, pgSelectUserByUsername, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_find_by_username")
	}
	return user, nil
}

// List implements [UserRepository].
func (repository *PostgresUserRepository) List(ctx context.Context) ([]*User, error) {
	rows, err := repository.db.Query(ctx, pgSelectUsers)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_list")
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "postgres_user_repo_list_scan")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_list_rows")
	}
	return users, nil
}
