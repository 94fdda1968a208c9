package domain

import "github.com/google/uuid"

// Identity is the verified (user, role) pair produced by the external
// authentication collaborator. It is everything the booking core consumes
// from auth.
type Identity struct {
	UserID  uuid.UUID
	IsAdmin bool
}
