// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Account Constraints

const (
	// MaxUsernameLength bounds usernames in characters after normalization.
	MaxUsernameLength = 64

	// LogoutMessage tells the client that logout is its own responsibility:
	// bearer tokens are stateless and stay valid until they expire.
	LogoutMessage = "Logged out. Please remove token on client."

	// MessageUserExists is returned when a username is already registered.
	MessageUserExists = "User already exists"
)
