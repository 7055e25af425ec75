// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns shared by every SQL backend.
package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table        string
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    string
}

// User is the schema definition for users
var User = UserTable{
	Table:        "users",
	ID:           "id",
	Username:     "username",
	PasswordHash: "password_hash",
	CreatedAt:    "created_at",
}

// Columns returns all column names in select order.
func (t UserTable) Columns() []string {
	return []string{t.ID, t.Username, t.PasswordHash, t.CreatedAt}
}
