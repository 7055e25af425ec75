// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// PostTable represents the 'posts' table
type PostTable struct {
	Table     string
	ID        string
	OwnerID   string
	Title     string
	Content   string
	CreatedAt string
}

// Post is the schema definition for posts
var Post = PostTable{
	Table:     "posts",
	ID:        "id",
	OwnerID:   "owner_id",
	Title:     "title",
	Content:   "content",
	CreatedAt: "created_at",
}

// Columns returns all column names in select order.
func (t PostTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Title, t.Content, t.CreatedAt}
}
