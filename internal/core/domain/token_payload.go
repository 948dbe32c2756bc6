package domain

import (
	"strings"

	"github.com/google/uuid"
)

type UserRole string

const (
	Admin    UserRole = "admin"
	Operator UserRole = "operator"
)

// ParseUserRole maps a backend role claim onto a console role. Matching is
// case-insensitive and anything that is not an operator signs in as admin.
func ParseUserRole(claim string) UserRole {
	if UserRole(strings.ToLower(strings.TrimSpace(claim))) == Operator {
		return Operator
	}
	return Admin
}

// TokenPayload is what the auth middleware extracts from a console token.
type TokenPayload struct {
	SessionID uuid.UUID
	Email     string
	Role      UserRole
}
