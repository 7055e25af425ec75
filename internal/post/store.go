// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import "context"

// # Post Data Access

// PostRepository defines the data access contract for posts.
type PostRepository interface {

	/*
		Create inserts a post with its owner bound in the same statement.

		Parameters:
		  - ctx: context.Context
		  - post: *Post

		Returns:
		  - error: Persistence failures
	*/
	Create(ctx context.Context, post *Post) error

	/*
		List returns every post ordered by creation.

		Parameters:
		  - ctx: context.Context

		Returns:
		  - []*Post: Posts with raw, unencoded text
		  - error: Database retrieval failures
	*/
	List(ctx context.Context) ([]*Post, error)

	/*
		UpdateOwned rewrites title and content where id AND owner match.

		Parameters:
		  - ctx: context.Context
		  - id: string
		  - ownerID: string
		  - title: string
		  - content: string

		Returns:
		  - *Post: The updated row
		  - error: dberr.ErrNotFound when no owned row matched
	*/
	UpdateOwned(ctx context.Context, id, ownerID, title, content string) (*Post, error)

	/*
		DeleteOwned removes the row where id AND owner match.

		Parameters:
		  - ctx: context.Context
		  - id: string
		  - ownerID: string

		Returns:
		  - bool: Whether a row was removed
		  - error: Persistence failures
	*/
	DeleteOwned(ctx context.Context, id, ownerID string) (bool, error)
}
