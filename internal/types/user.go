package types

import "github.com/google/uuid"

// AuthenticatedUser is the identity resolved by the auth middleware and
// attached to the request context. It deliberately carries no password
// digest.
type AuthenticatedUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// UserResponse is the public shape of a user returned by the API.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
