package usecasecontract

import (
	"context"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
)

// RegisterInput is a sign-up request.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     entity.UserRole
}

// ProfilePatch holds the profile fields a user may change on their own account.
type ProfilePatch struct {
	Name            *string
	Phone           *string
	AvatarURL       *string
	Password        *string
	Regions         *[]string
	Specialties     *[]string
	ExperienceYears *int
}

// IUserUseCase defines the interface for user-related operations.
type IUserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
	GetProfile(ctx context.Context, caller entity.Caller) (*entity.User, error)
	UpdateProfile(ctx context.Context, caller entity.Caller, patch ProfilePatch) (*entity.User, error)
	ListUsers(ctx context.Context, caller entity.Caller) ([]*entity.User, error)
	GetUserByID(ctx context.Context, caller entity.Caller, id string) (*entity.User, error)
	DeleteUser(ctx context.Context, caller entity.Caller, id string) error
	ChangeRole(ctx context.Context, caller entity.Caller, id string, role entity.UserRole) (*entity.User, error)
	LoginWithOAuth(ctx context.Context, name, email string) (*entity.User, string, error)
}
