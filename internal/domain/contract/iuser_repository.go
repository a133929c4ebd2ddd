package contract

import (
	"context"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
)

// IUserRepository persists user accounts. Lookups of a missing user return domainerrors.ErrNotFound.
type IUserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetUserByEmail retrieves a user by normalized email.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetUsersByIDs returns the users found for ids keyed by id; missing ids are skipped.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	// UpdateUser replaces an existing user and returns the stored record.
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	// UpdateUserRole changes only the role of a user.
	UpdateUserRole(ctx context.Context, id string, role entity.UserRole) error
	DeleteUser(ctx context.Context, id string) error
}
