// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the credential store and the authentication flow.

It owns user accounts (registration, credential verification, listing) and
issues bearer tokens on successful login.

# Architecture

  - Entity: [User], never serialized with its password hash.
  - Repository: [UserRepository] with PostgreSQL and SQLite implementations.
  - Service: Business rules (normalization, hashing, constant-effort login).
  - Handler: JSON transport, output encoding at the response boundary.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"createdAt"`
}

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldPassword = "password"
)
