package domain

import "time"

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is an account of the ticketing system: requester, technician or DSI staff.
type User struct {
	ID             string
	FullName       string
	Email          string
	Agency         string
	Phone          string
	Status         UserStatus
	Specialization *string
	RoleID         string
	Role           *Role
	PasswordHash   string
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive reports whether the account is usable.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// HasRole reports whether the user's loaded role is one of names.
func (u *User) HasRole(names ...RoleName) bool {
	if u.Role == nil {
		return false
	}
	for _, name := range names {
		if u.Role.Name == name {
			return true
		}
	}
	return false
}
