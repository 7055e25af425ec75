// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package post implements the ownership-checked blog post store.

Every mutation is a single SQL statement scoped by both the post id and the
caller's id, so there is no window between an ownership check and the write.
A mutation that matches nothing is reported as "not found or not owned",
without revealing which of the two it was.
*/
package post

import "time"

// # Domain Entities

// Post is a blog entry owned by exactly one user.
//
// Title and Content are stored exactly as submitted.
type Post struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// # Field Identifiers

const (
	FieldTitle   = "title"
	FieldContent = "content"
)

// # Constraints

const (
	// MaxTitleLength bounds titles in characters.
	MaxTitleLength = 200

	// MaxContentLength bounds bodies in characters.
	MaxContentLength = 20000

	// resourceName prefixes not-found messages.
	resourceName = "Post"

	// MessageDeleted acknowledges a successful delete.
	MessageDeleted = "Post deleted"
)
