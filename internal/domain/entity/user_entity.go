package entity

import (
	"strings"
	"time"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
	UserStatusDeleted   UserStatus = "DELETED"
)

func ParseUserStatus(s string) (UserStatus, error) {
	st := UserStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case UserStatusActive, UserStatusSuspended, UserStatusDeleted:
		return st, nil
	}
	return "", errs.Validation(errs.CodeValidationFailed, "unknown user status: "+s)
}

// User is the aggregate root for accounts.
// PasswordHash only ever holds a bcrypt hash.
type User struct {
	ID           string
	Email        valueobject.Email
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	AvatarURL    string
	Role         Role
	Status       UserStatus
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUser(email valueobject.Email, passwordHash, firstName, lastName string) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         RoleUser,
		Status:       UserStatusActive,
	}
}

// FullName joins the non-empty name parts with a single space.
func (u *User) FullName() string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(u.FirstName); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(u.LastName); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func (u *User) IsActive() bool { return u != nil && u.Status == UserStatusActive }

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

func (u *User) ChangeRole(r Role) error {
	if !r.Valid() {
		return errs.Validation(errs.CodeValidationFailed, "unknown role: "+string(r))
	}
	u.Role = r
	return nil
}

func (u *User) Suspend() error {
	if u.Status == UserStatusDeleted {
		return errs.InvalidTransition("user", string(u.Status), string(UserStatusSuspended))
	}
	u.Status = UserStatusSuspended
	return nil
}

func (u *User) Reactivate() error {
	if u.Status == UserStatusDeleted {
		return errs.InvalidTransition("user", string(u.Status), string(UserStatusActive))
	}
	u.Status = UserStatusActive
	return nil
}

// SoftDelete keeps the row but disables the account for good.
func (u *User) SoftDelete() {
	u.Status = UserStatusDeleted
}

func (u *User) MarkVerified() { u.IsVerified = true }
