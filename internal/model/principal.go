package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERATOR"
	RoleDriver   Role = "DRIVER"
)

// Principal is the authenticated caller derived from the access token.
type Principal struct {
	UserID   uuid.UUID
	Role     Role
	DriverID *uuid.UUID
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsOperator() bool {
	return p.Role == RoleOperator
}

func (p Principal) IsDriver() bool {
	return p.Role == RoleDriver
}
