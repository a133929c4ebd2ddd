package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/contract"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/policy"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
)

// Constants for common error messages
const (
	errInternalServer = "internal server error"
)

// UserUsecase implements the UserUseCase interface.
type UserUsecase struct {
	userRepo      contract.IUserRepository
	brokerRepo    contract.IBrokerRepository
	pages         contract.IListingCache
	hasher        contract.IHasher
	jwtService    JWTService
	logger        usecasecontract.IAppLogger
	validator     usecasecontract.IValidator
	uuidGenerator contract.IUUIDGenerator
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	brokerRepo contract.IBrokerRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	logger usecasecontract.IAppLogger,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
) *UserUsecase {
	return &UserUsecase{
		userRepo:      userRepo,
		brokerRepo:    brokerRepo,
		hasher:        hasher,
		jwtService:    jwtService,
		logger:        logger,
		validator:     validator,
		uuidGenerator: uuidGenerator,
	}
}

// check if UserUseCase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// SetListingCache lets role changes that remove a broker profile drop cached listing pages.
func (uc *UserUsecase) SetListingCache(cache contract.IListingCache) {
	uc.pages = cache
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register handles user registration. Only buyer and seller accounts can sign up.
func (uc *UserUsecase) Register(ctx context.Context, input usecasecontract.RegisterInput) (*entity.User, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	role := input.Role
	if role == "" {
		role = entity.DefaultRole()
	}

	verr := &domainerrors.ValidationError{}
	if name == "" {
		verr.Add("name", "is required")
	}
	if err := uc.validator.ValidateEmail(email); err != nil {
		verr.Add("email", "must be a valid email address")
	}
	if err := uc.validator.ValidatePhone(phone); err != nil {
		verr.Add("phone", "must be a valid 10-digit phone number")
	}
	if err := uc.validator.ValidatePassword(input.Password); err != nil {
		verr.Add("password", "must be at least 6 characters long")
	}
	if role != entity.UserRoleBuyer && role != entity.UserRoleSeller {
		verr.Add("role", "must be buyer or seller")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	// Check if user with same email already exists
	_, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("user with email %s: %w", email, domainerrors.ErrConflict)
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, errors.New(errInternalServer)
	}

	hashedPassword, err := uc.hasher.HashPassword(input.Password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process password")
	}

	now := time.Now()
	user := &entity.User{
		ID:           uc.uuidGenerator.NewUUID(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, err
		}
		uc.logger.Errorf("failed to create user: %v", err)
		return nil, fmt.Errorf("failed to register user")
	}
	uc.logger.Infof("user %s registered as %s", user.ID, user.Role)
	return user, nil
}

// Login verifies credentials and issues an access token.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, "", domainerrors.ErrInvalidCredentials
		}
		uc.logger.Errorf("failed to retrieve user for login: %v", err)
		return nil, "", errors.New(errInternalServer)
	}

	// OAuth accounts have no password
	if user.PasswordHash == "" {
		return nil, "", domainerrors.ErrInvalidCredentials
	}
	if err := uc.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return nil, "", domainerrors.ErrInvalidCredentials
	}

	accessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return nil, "", errors.New("failed to generate token")
	}
	return user, accessToken, nil
}

// Authenticate resolves an access token to the current user record, so role changes apply immediately.
func (uc *UserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := uc.jwtService.ParseAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %v: %w", err, domainerrors.ErrUnauthorized)
	}

	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, fmt.Errorf("token user no longer exists: %w", domainerrors.ErrUnauthorized)
		}
		uc.logger.Errorf("failed to retrieve user during authentication: %v", err)
		return nil, errors.New(errInternalServer)
	}
	return user, nil
}

// GetProfile returns the caller's own account.
func (uc *UserUsecase) GetProfile(ctx context.Context, caller entity.Caller) (*entity.User, error) {
	if !caller.IsAuthenticated() {
		return nil, domainerrors.ErrUnauthorized
	}
	return uc.getUser(ctx, caller.ID)
}

// UpdateProfile allows a registered user to update their profile details.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, caller entity.Caller, patch usecasecontract.ProfilePatch) (*entity.User, error) {
	if !caller.IsAuthenticated() {
		return nil, domainerrors.ErrUnauthorized
	}
	user, err := uc.getUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	verr := &domainerrors.ValidationError{}
	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			user.Name = name
		} else {
			verr.Add("name", "cannot be empty")
		}
	}
	if patch.Phone != nil {
		phone := strings.TrimSpace(*patch.Phone)
		if err := uc.validator.ValidatePhone(phone); err != nil {
			verr.Add("phone", "must be a valid 10-digit phone number")
		}
		user.Phone = phone
	}
	if patch.AvatarURL != nil {
		avatar := strings.TrimSpace(*patch.AvatarURL)
		user.AvatarURL = &avatar
	}
	var profile *entity.Broker
	if user.Role == entity.UserRoleBroker && (patch.Regions != nil || patch.Specialties != nil || patch.ExperienceYears != nil) {
		profile, err = uc.brokerProfileOf(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if patch.Regions != nil {
			user.Regions = trimAll(*patch.Regions)
		}
		if patch.Specialties != nil {
			user.Specialties = trimAll(*patch.Specialties)
		}
		if patch.ExperienceYears != nil {
			years := *patch.ExperienceYears
			user.ExperienceYears = &years
		}
		if profile != nil {
			profile.Regions = append([]string(nil), user.Regions...)
			profile.Specialties = append([]string(nil), user.Specialties...)
			if user.ExperienceYears != nil {
				profile.ExperienceYears = *user.ExperienceYears
			}
		}
	}
	if patch.Password != nil {
		if err := uc.validator.ValidatePassword(*patch.Password); err != nil {
			verr.Add("password", "must be at least 6 characters long")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if profile != nil {
		if err := profile.Validate(); err != nil {
			return nil, err
		}
	}
	if patch.Password != nil {
		hashed, err := uc.hasher.HashPassword(*patch.Password)
		if err != nil {
			uc.logger.Errorf("failed to hash password: %v", err)
			return nil, fmt.Errorf("failed to process password")
		}
		user.PasswordHash = hashed
	}

	user.UpdatedAt = time.Now()
	// the directory searches the broker profile, so it is written first
	if profile != nil {
		profile.UpdatedAt = user.UpdatedAt
		if err := uc.brokerRepo.UpdateBroker(ctx, profile); err != nil {
			uc.logger.Errorf("failed to update broker profile of user %s: %v", user.ID, err)
			return nil, errors.New("failed to update profile")
		}
	}
	updated, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		uc.logger.Errorf("failed to update profile for user %s: %v", user.ID, err)
		return nil, errors.New("failed to update profile")
	}
	return updated, nil
}

// ListUsers returns every account. Admin only.
func (uc *UserUsecase) ListUsers(ctx context.Context, caller entity.Caller) ([]*entity.User, error) {
	if !policy.IsAdmin(caller) {
		return nil, fmt.Errorf("list users: %w", domainerrors.ErrForbidden)
	}
	users, err := uc.userRepo.ListUsers(ctx)
	if err != nil {
		uc.logger.Errorf("failed to list users: %v", err)
		return nil, errors.New(errInternalServer)
	}
	return users, nil
}

// GetUserByID returns any account. Admin only.
func (uc *UserUsecase) GetUserByID(ctx context.Context, caller entity.Caller, id string) (*entity.User, error) {
	if !policy.IsAdmin(caller) {
		return nil, fmt.Errorf("get user: %w", domainerrors.ErrForbidden)
	}
	return uc.getUser(ctx, id)
}

// DeleteUser removes an account. Admin only; admins cannot delete themselves.
func (uc *UserUsecase) DeleteUser(ctx context.Context, caller entity.Caller, id string) error {
	if !policy.IsAdmin(caller) {
		return fmt.Errorf("delete user: %w", domainerrors.ErrForbidden)
	}
	if caller.ID == id {
		return domainerrors.NewValidationError("id", "admins cannot delete their own account")
	}
	if _, err := uc.getUser(ctx, id); err != nil {
		return err
	}
	if err := uc.userRepo.DeleteUser(ctx, id); err != nil {
		uc.logger.Errorf("failed to delete user %s: %v", id, err)
		return errors.New("failed to delete user")
	}
	uc.logger.Infof("user %s deleted by admin %s", id, caller.ID)
	return nil
}

// ChangeRole sets the role of an account. Admin only. Promotion to broker requires regions on the record.
func (uc *UserUsecase) ChangeRole(ctx context.Context, caller entity.Caller, id string, role entity.UserRole) (*entity.User, error) {
	if !policy.IsAdmin(caller) {
		return nil, fmt.Errorf("change role: %w", domainerrors.ErrForbidden)
	}
	user, err := uc.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}
	wasBroker := user.Role == entity.UserRoleBroker
	user.Role = role
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateUserRole(ctx, id, role); err != nil {
		uc.logger.Errorf("failed to change role of user %s: %v", id, err)
		return nil, errors.New("failed to change role")
	}
	uc.logger.Infof("user %s role changed to %s by %s", id, role, caller.ID)
	if wasBroker {
		if err := uc.removeBrokerProfile(ctx, id); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// removeBrokerProfile deletes the directory entry of a user who is no longer a broker.
func (uc *UserUsecase) removeBrokerProfile(ctx context.Context, userID string) error {
	profile, err := uc.brokerProfileOf(ctx, userID)
	if err != nil || profile == nil {
		return err
	}
	if err := uc.brokerRepo.DeleteBroker(ctx, profile.ID); err != nil {
		uc.logger.Errorf("user %s demoted but broker profile %s not removed: %v", userID, profile.ID, err)
		return errors.New("failed to remove broker profile")
	}
	uc.logger.Infof("broker profile %s removed after role change of user %s", profile.ID, userID)
	dropListingPages(ctx, uc.pages, uc.logger)
	return nil
}

// brokerProfileOf returns the user's broker profile, or nil when there is none.
func (uc *UserUsecase) brokerProfileOf(ctx context.Context, userID string) (*entity.Broker, error) {
	profile, err := uc.brokerRepo.GetBrokerByUserID(ctx, userID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		uc.logger.Errorf("failed to load broker profile of user %s: %v", userID, err)
		return nil, errors.New(errInternalServer)
	}
	return profile, nil
}

// LoginWithOAuth signs in a Google account, creating a buyer on first use.
func (uc *UserUsecase) LoginWithOAuth(ctx context.Context, name, email string) (*entity.User, string, error) {
	email = normalizeEmail(email)
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, "", domainerrors.NewValidationError("email", "must be a valid email address")
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, "", errors.New(errInternalServer)
	}

	if user == nil {
		if strings.TrimSpace(name) == "" {
			name = email
		}
		now := time.Now()
		user = &entity.User{
			ID:         uc.uuidGenerator.NewUUID(),
			Name:       strings.TrimSpace(name),
			Email:      email,
			Role:       entity.UserRoleBuyer,
			IsVerified: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.userRepo.CreateUser(ctx, user); err != nil {
			uc.logger.Errorf("failed to create user from OAuth: %v", err)
			return nil, "", fmt.Errorf("failed to register user")
		}
	}

	accessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate access token for OAuth user: %v", err)
		return nil, "", errors.New("failed to generate token")
	}
	return user, accessToken, nil
}

// EnsureAdmin creates the bootstrap admin account unless email is already registered.
// An existing account is left untouched, whatever its role. The bool reports a creation.
func (uc *UserUsecase) EnsureAdmin(ctx context.Context, name, email, phone, password string) (*entity.User, bool, error) {
	email = normalizeEmail(email)
	verr := &domainerrors.ValidationError{}
	if err := uc.validator.ValidateEmail(email); err != nil {
		verr.Add("email", "must be a valid email address")
	}
	if err := uc.validator.ValidatePassword(password); err != nil {
		verr.Add("password", "must be at least 6 characters long")
	}
	phone = strings.TrimSpace(phone)
	if phone != "" {
		if err := uc.validator.ValidatePhone(phone); err != nil {
			verr.Add("phone", "must be a valid 10-digit phone number")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, false, err
	}

	existing, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		if existing.Role != entity.UserRoleAdmin {
			uc.logger.Warnf("bootstrap admin email %s belongs to a %s account, not promoting", email, existing.Role)
		}
		return existing, false, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, false, errors.New(errInternalServer)
	}

	hashed, err := uc.hasher.HashPassword(password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, false, fmt.Errorf("failed to process password")
	}
	if name = strings.TrimSpace(name); name == "" {
		name = "Admin"
	}
	now := time.Now()
	account := &entity.User{
		ID:           uc.uuidGenerator.NewUUID(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hashed,
		Role:         entity.UserRoleAdmin,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.CreateUser(ctx, account); err != nil {
		uc.logger.Errorf("failed to create bootstrap admin: %v", err)
		return nil, false, fmt.Errorf("failed to create admin: %w", err)
	}
	uc.logger.Infof("bootstrap admin %s created", account.ID)
	return account, true, nil
}

func (uc *UserUsecase) getUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, domainerrors.ErrNotFound)
		}
		uc.logger.Errorf("failed to retrieve user by ID: %v", err)
		return nil, errors.New(errInternalServer)
	}
	return user, nil
}
