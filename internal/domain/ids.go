package domain

import (
	"github.com/google/uuid"
)

// NewID mints a random (version 4) identifier.
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether id has UUID syntax (8-4-4-4-12 hex groups).
func IsValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// ResolveID keeps a syntactically valid id and mints a fresh one otherwise.
// Placeholders such as "new-subtask-1" always get a new id.
func ResolveID(id string) string {
	if IsValidID(id) {
		return id
	}
	return NewID()
}
