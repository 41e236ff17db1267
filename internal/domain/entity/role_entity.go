package entity

import (
	"strings"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
)

// Role is the authorization role carried by a user and embedded in tokens.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAgent Role = "AGENT"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", errs.Validation(errs.CodeValidationFailed, "unknown role: "+s)
	}
	return r, nil
}
