package service

import (
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/google/uuid"
)

// Actor is the authenticated caller of a service operation. It is passed
// explicitly into every operation that needs authorization or attribution,
// so access decisions are plain functions of the actor's role rather than
// reads of ambient state.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  enum.Role
}
