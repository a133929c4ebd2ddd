package mocks

import (
	"context"
	"errors"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the IUserUseCase interface
type MockUserUsecase struct {
	// Control mock behavior
	RegisterErr     error
	ShouldFailLogin bool
	GetByIDErr      error
	UpdateErr       error
	DeleteErr       error
	ChangeRoleErr   error
	OAuthErr        error

	// Tokens accepted by Authenticate
	Sessions map[string]*entity.User

	// Return values
	MockUser        entity.User
	MockAccessToken string

	// Recorded arguments
	LastRegister usecasecontract.RegisterInput
	LastPatch    usecasecontract.ProfilePatch
	LastCaller   entity.Caller
	LastRole     entity.UserRole
}

// Ensure MockUserUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:    "mock-user-id",
			Name:  "testuser",
			Email: "test@example.com",
			Phone: "9876543210",
			Role:  entity.UserRoleBuyer,
		},
		MockAccessToken: "mock_access_token",
		Sessions:        map[string]*entity.User{},
	}
}

func (m *MockUserUsecase) Register(ctx context.Context, input usecasecontract.RegisterInput) (*entity.User, error) {
	m.LastRegister = input
	if m.RegisterErr != nil {
		return nil, m.RegisterErr
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if m.ShouldFailLogin {
		return nil, "", domainerrors.ErrInvalidCredentials
	}
	return &m.MockUser, m.MockAccessToken, nil
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	if u, ok := m.Sessions[accessToken]; ok {
		return u, nil
	}
	return nil, errors.New("authentication failed")
}

func (m *MockUserUsecase) GetProfile(ctx context.Context, caller entity.Caller) (*entity.User, error) {
	m.LastCaller = caller
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, caller entity.Caller, patch usecasecontract.ProfilePatch) (*entity.User, error) {
	m.LastCaller = caller
	m.LastPatch = patch
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	user := m.MockUser
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	return &user, nil
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, caller entity.Caller) ([]*entity.User, error) {
	m.LastCaller = caller
	return []*entity.User{&m.MockUser}, nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, caller entity.Caller, id string) (*entity.User, error) {
	m.LastCaller = caller
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, caller entity.Caller, id string) error {
	m.LastCaller = caller
	return m.DeleteErr
}

func (m *MockUserUsecase) ChangeRole(ctx context.Context, caller entity.Caller, id string, role entity.UserRole) (*entity.User, error) {
	m.LastCaller = caller
	m.LastRole = role
	if m.ChangeRoleErr != nil {
		return nil, m.ChangeRoleErr
	}
	user := m.MockUser
	user.Role = role
	return &user, nil
}

func (m *MockUserUsecase) LoginWithOAuth(ctx context.Context, name, email string) (*entity.User, string, error) {
	if m.OAuthErr != nil {
		return nil, "", m.OAuthErr
	}
	return &m.MockUser, m.MockAccessToken, nil
}
