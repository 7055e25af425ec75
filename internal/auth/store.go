// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Implementations report absent rows as [dberr.ErrNotFound] and UNIQUE
// violations as [dberr.ErrDuplicate].
type UserRepository interface {

	/*
		Create persists a brand-new user account in a single INSERT.

		Parameters:
		  - ctx: context.Context
		  - user: *User

		Returns:
		  - error: dberr.ErrDuplicate when the username is taken
	*/
	Create(ctx context.Context, user *User) error

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - ctx: context.Context
		  - username: string (already normalized)

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database failures
	*/
	FindByUsername(ctx context.Context, username string) (*User, error)

	/*
		List returns every account ordered by creation.

		Parameters:
		  - ctx: context.Context

		Returns:
		  - []*User: Accounts
		  - error: Database retrieval failures
	*/
	List(ctx context.Context) ([]*User, error)
}
