// Package models defines the core data structures for identities and the
// resources they own.
package models

import "time"

// User represents a registered identity.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"_id"`
	// Name is the display name chosen at registration.
	Name string `json:"name"`
	// Email is unique across all users.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password. Never serialized.
	PasswordHash []byte `json:"-"`
	// CreatedAt is the registration time.
	CreatedAt time.Time `json:"date"`
}

// Record holds the fields shared by every owned resource.
type Record struct {
	// ID is the unique identifier for the resource.
	ID string `json:"_id"`
	// OwnerID references the user that owns the resource. It is always
	// taken from the verified token, never from client input.
	OwnerID string `json:"user"`
	// CreatedAt is the creation time.
	CreatedAt time.Time `json:"date"`
}

// Base exposes the shared record of an owned resource.
func (r *Record) Base() *Record { return r }

// Owned is implemented by pointers to every resource kind scoped to a
// single identity.
type Owned interface {
	Base() *Record
}

// Kind names a resource collection in logs, routes and responses.
type Kind string

const (
	KindNote      Kind = "note"
	KindTodo      Kind = "todo"
	KindWebSearch Kind = "websearch"
)
