// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides the time-ordered identifiers used for users and posts.

Version 7 values sort by creation time, so "ORDER BY created_at, id" stays
stable for rows written within the same millisecond.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source fails, which is unrecoverable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// # Parsing

// Canonical parses s and returns its lowercase hyphenated form.
//
// ok is false for anything that is not a UUID, so path parameters can be
// rejected before they reach a typed database column.
func Canonical(s string) (string, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
