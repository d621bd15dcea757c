package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Mobile is the phone number confirmed during the signup bridge flow.
	Mobile string `json:"mobile"`

	// PasswordHash stores the HMAC-SHA256 hash of the user's password.
	// Plaintext passwords never reach the persistence layer.
	PasswordHash string `json:"-"`

	// Password carries the plaintext password on inbound register/login
	// requests only. Never persisted, never serialized outward.
	Password string `json:"password,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
