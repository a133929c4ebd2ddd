package dto

import (
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
)

// CreateUserRequest is the body of POST /auth/register.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,phone10"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=buyer seller"`
}

func (r CreateUserRequest) ToInput() usecasecontract.RegisterInput {
	return usecasecontract.RegisterInput{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Password: r.Password,
		Role:     entity.UserRole(r.Role),
	}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest is the body of PUT /auth/profile.
type UpdateUserRequest struct {
	Name            *string   `json:"name"`
	Phone           *string   `json:"phone"`
	AvatarURL       *string   `json:"avatarUrl"`
	Password        *string   `json:"password"`
	Regions         *[]string `json:"regions"`
	Specialties     *[]string `json:"specialties"`
	ExperienceYears *int      `json:"experienceYears"`
}

func (r UpdateUserRequest) ToPatch() usecasecontract.ProfilePatch {
	return usecasecontract.ProfilePatch{
		Name:            r.Name,
		Phone:           r.Phone,
		AvatarURL:       r.AvatarURL,
		Password:        r.Password,
		Regions:         r.Regions,
		Specialties:     r.Specialties,
		ExperienceYears: r.ExperienceYears,
	}
}

// ChangeRoleRequest is the body of PUT /auth/users/:id/role.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin seller broker buyer"`
}

// UserResponse is the DTO for a user.
type UserResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	Role               string   `json:"role"`
	AvatarURL          *string  `json:"avatarUrl,omitempty"`
	IsVerified         bool     `json:"isVerified"`
	IsPremium          bool     `json:"isPremium"`
	SubscriptionEnd    *string  `json:"subscriptionEnd,omitempty"`
	SubscriptionActive bool     `json:"subscriptionActive"`
	Regions            []string `json:"regions,omitempty"`
	Specialties        []string `json:"specialties,omitempty"`
	ExperienceYears    *int     `json:"experienceYears,omitempty"`
	CreatedAt          string   `json:"createdAt"`
}

// LoginResponse is the DTO for a successful login.
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// ToUserResponse converts an entity.User to a UserResponse DTO.
func ToUserResponse(user entity.User, now time.Time) UserResponse {
	return UserResponse{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		Phone:              user.Phone,
		Role:               string(user.Role),
		AvatarURL:          user.AvatarURL,
		IsVerified:         user.IsVerified,
		IsPremium:          user.IsPremium,
		SubscriptionEnd:    formatTimePtr(user.SubscriptionEnd),
		SubscriptionActive: user.SubscriptionEnd != nil && now.Before(*user.SubscriptionEnd),
		Regions:            user.Regions,
		Specialties:        user.Specialties,
		ExperienceYears:    user.ExperienceYears,
		CreatedAt:          user.CreatedAt.Format(time.RFC3339),
	}
}

// ToUserResponses converts a slice, never returning nil.
func ToUserResponses(users []*entity.User, now time.Time) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(*u, now))
	}
	return out
}
