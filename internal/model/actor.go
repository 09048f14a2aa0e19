package model

import "github.com/google/uuid"

type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleProvider ActorRole = "provider"
)

// Actor is the caller identity supplied by the external session provider.
// The core trusts it; authentication happens upstream.
type Actor struct {
	ID   uuid.UUID
	Role ActorRole
}

func (a Actor) IsProvider() bool {
	return a.Role == RoleProvider
}
