package domain

import (
	"regexp"
	"time"
	"unicode"
)

// Role is derived from the two independent permission flags on a User.
// Precedence: admin > manager > user, first match wins.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// User models an authenticated actor in the system.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	IsManager    bool      `json:"is_manager"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role returns the derived role label for the user.
func (u *User) Role() Role {
	switch {
	case u.IsAdmin:
		return RoleAdmin
	case u.IsManager:
		return RoleManager
	default:
		return RoleUser
	}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether the candidate is syntactically a valid address.
// Purely structural; deliverability is not checked.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePasswordStrength checks the password policy and returns the first
// violated rule, in order: length, digit presence, letter presence.
func ValidatePasswordStrength(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	hasDigit := false
	hasLetter := false
	for _, c := range password {
		switch {
		case unicode.IsDigit(c):
			hasDigit = true
		case unicode.IsLetter(c):
			hasLetter = true
		}
	}
	if !hasDigit {
		return false, "Password must contain at least one digit"
	}
	if !hasLetter {
		return false, "Password must contain at least one letter"
	}
	return true, ""
}
