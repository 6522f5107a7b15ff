// Package models defines the persisted data model: users, tasks, and
// application settings. JSON tags follow the snapshot layout, so a snapshot
// round-trips between memory and the storage slot without translation.
package models

import "time"

// User is an identity record. The credential is stored as a salted argon2id
// digest, never in the clear; both credential fields are stripped from the
// session copy and omitted from JSON when empty.
type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"passwordHash,omitempty"`
	Salt         []byte    `json:"passwordSalt,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns a copy of the user with credential material stripped.
// This is the only shape that may be exposed as the current session.
func (u *User) Public() *User {
	c := *u
	c.PasswordHash = nil
	c.Salt = nil
	return &c
}
