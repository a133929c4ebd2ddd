package entity

import "github.com/golang-jwt/jwt/v5"

// Caller is the actor invoking an operation. The zero value is an anonymous caller.
type Caller struct {
	ID   string
	Role UserRole
}

// Anonymous is the caller used for unauthenticated requests.
var Anonymous = Caller{}

// IsAuthenticated reports whether the caller carries a user id.
func (c Caller) IsAuthenticated() bool {
	return c.ID != ""
}

// IsAdmin reports whether the caller is an authenticated admin.
func (c Caller) IsAdmin() bool {
	return c.IsAuthenticated() && c.Role == UserRoleAdmin
}

// Claims is the payload carried by access tokens.
type Claims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
