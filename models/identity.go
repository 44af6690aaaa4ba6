// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

package models

// User is the profile returned by the backend after a Google sign-in.
type User struct {
	// Email is the account email address.
	Email string `json:"email"`

	// Name is the account display name.
	Name string `json:"name"`

	// Picture is an optional avatar URL.
	Picture string `json:"picture,omitempty"`
}

// Identity is the persisted authentication record: the backend-issued access
// token plus the signed-in user's profile. An absent record means the client
// is unauthenticated.
type Identity struct {
	// Token is the bearer access token attached to every API request.
	Token string `json:"token"`

	// User is the signed-in user's profile.
	User User `json:"user"`
}
