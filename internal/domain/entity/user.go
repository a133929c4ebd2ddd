package entity

import (
	"time"

	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
)

// User represents a registered account in the marketplace
type User struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	Name            string     `bson:"name" json:"name"`
	Email           string     `bson:"email" json:"email"`
	Phone           string     `bson:"phone" json:"phone"`
	PasswordHash    string     `bson:"password_hash" json:"-"`
	Role            UserRole   `bson:"role" json:"role"`
	AvatarURL       *string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	IsVerified      bool       `bson:"is_verified" json:"is_verified"`
	IsPremium       bool       `bson:"is_premium" json:"is_premium"`
	SubscriptionEnd *time.Time `bson:"subscription_end,omitempty" json:"subscription_end,omitempty"`
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updated_at"`

	// Broker-only fields. Regions must be non-empty while Role is broker.
	Regions         []string `bson:"regions,omitempty" json:"regions,omitempty"`
	Specialties     []string `bson:"specialties,omitempty" json:"specialties,omitempty"`
	ExperienceYears *int     `bson:"experience_years,omitempty" json:"experience_years,omitempty"`
}

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleSeller UserRole = "seller"
	UserRoleBroker UserRole = "broker"
	UserRoleBuyer  UserRole = "buyer"
)

func DefaultRole() UserRole {
	return UserRoleBuyer
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleSeller, UserRoleBroker, UserRoleBuyer:
		return true
	}
	return false
}

// Validate checks the role-dependent invariants of the record.
func (u *User) Validate() error {
	verr := &domainerrors.ValidationError{}
	if !u.Role.Valid() {
		verr.Add("role", "must be one of admin, seller, broker, buyer")
	}
	if u.Role == UserRoleBroker && len(nonBlank(u.Regions)) == 0 {
		verr.Add("regions", "brokers must specify at least one operating region")
	}
	if u.ExperienceYears != nil && *u.ExperienceYears < 0 {
		verr.Add("experienceYears", "cannot be negative")
	}
	return verr.OrNil()
}

// Caller returns the identity used by authorization decisions.
func (u *User) Caller() Caller {
	return Caller{ID: u.ID, Role: u.Role}
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
