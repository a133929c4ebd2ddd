package usecase

import (
	"context"
	"testing"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput() usecasecontract.RegisterInput {
	return usecasecontract.RegisterInput{
		Name:     "Ravi Kumar",
		Email:    "  Ravi@Example.com ",
		Phone:    "9876543210",
		Password: "secret1",
		Role:     entity.UserRoleSeller,
	}
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	u, err := f.user.Register(ctx, registerInput())
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", u.Email)
	assert.Equal(t, entity.UserRoleSeller, u.Role)
	assert.Equal(t, "hashed:secret1", u.PasswordHash)

	_, err = f.user.Register(ctx, registerInput())
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestRegisterDefaultsToBuyer(t *testing.T) {
	f := newFixture()
	in := registerInput()
	in.Role = ""

	u, err := f.user.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleBuyer, u.Role)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*usecasecontract.RegisterInput)
		field  string
	}{
		{"missing name", func(in *usecasecontract.RegisterInput) { in.Name = " " }, "name"},
		{"bad email", func(in *usecasecontract.RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"short phone", func(in *usecasecontract.RegisterInput) { in.Phone = "12345" }, "phone"},
		{"short password", func(in *usecasecontract.RegisterInput) { in.Password = "abc" }, "password"},
		{"admin role", func(in *usecasecontract.RegisterInput) { in.Role = entity.UserRoleAdmin }, "role"},
		{"broker role", func(in *usecasecontract.RegisterInput) { in.Role = entity.UserRoleBroker }, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			in := registerInput()
			tt.mutate(&in)

			_, err := f.user.Register(context.Background(), in)
			require.ErrorIs(t, err, domainerrors.ErrValidation)
			var verr *domainerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	registered, err := f.user.Register(ctx, registerInput())
	require.NoError(t, err)

	u, token, err := f.user.Login(ctx, "RAVI@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.Equal(t, registered.ID+"|seller", token)

	_, _, err = f.user.Login(ctx, "ravi@example.com", "wrong")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	_, _, err = f.user.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestLoginRejectsOAuthAccountWithoutPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, _, err := f.user.LoginWithOAuth(ctx, "Google User", "g@example.com")
	require.NoError(t, err)

	_, _, err = f.user.Login(ctx, "g@example.com", "")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthenticateUsesCurrentRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	registered, err := f.user.Register(ctx, registerInput())
	require.NoError(t, err)
	_, token, err := f.user.Login(ctx, registered.Email, "secret1")
	require.NoError(t, err)

	require.NoError(t, f.users.UpdateUserRole(ctx, registered.ID, entity.UserRoleBuyer))
	u, err := f.user.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleBuyer, u.Role)

	_, err = f.user.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	require.NoError(t, f.users.DeleteUser(ctx, registered.ID))
	_, err = f.user.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	registered, err := f.user.Register(ctx, registerInput())
	require.NoError(t, err)
	caller := registered.Caller()

	name := "Ravi K"
	pw := "newsecret"
	regions := []string{"Krishna"}
	u, err := f.user.UpdateProfile(ctx, caller, usecasecontract.ProfilePatch{Name: &name, Password: &pw, Regions: &regions})
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", u.Name)
	assert.Equal(t, "hashed:newsecret", u.PasswordHash)
	assert.Empty(t, u.Regions)

	badPhone := "12"
	_, err = f.user.UpdateProfile(ctx, caller, usecasecontract.ProfilePatch{Phone: &badPhone})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	stored, _ := f.users.GetUserByID(ctx, registered.ID)
	assert.Equal(t, "9876543210", stored.Phone)

	_, err = f.user.UpdateProfile(ctx, entity.Anonymous, usecasecontract.ProfilePatch{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestUpdateProfileBrokerKeepsRegions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedUser(t, f, "broker-user", entity.UserRoleBuyer)
	owner := entity.Caller{ID: "broker-user", Role: entity.UserRoleBuyer}
	_, err := f.broker.CreateProfile(ctx, owner, brokerInput())
	require.NoError(t, err)
	owner.Role = entity.UserRoleBroker

	empty := []string{}
	_, err = f.user.UpdateProfile(ctx, owner, usecasecontract.ProfilePatch{Regions: &empty})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	regions := []string{"Guntur"}
	u, err := f.user.UpdateProfile(ctx, owner, usecasecontract.ProfilePatch{Regions: &regions})
	require.NoError(t, err)
	assert.Equal(t, []string{"Guntur"}, u.Regions)
}

func TestAdminUserManagement(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedUser(t, f, admin.ID, entity.UserRoleAdmin)
	seedUser(t, f, buyer.ID, entity.UserRoleBuyer)

	_, err := f.user.ListUsers(ctx, buyer)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	users, err := f.user.ListUsers(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = f.user.GetUserByID(ctx, buyer, admin.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	_, err = f.user.GetUserByID(ctx, admin, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	u, err := f.user.ChangeRole(ctx, admin, buyer.ID, entity.UserRoleSeller)
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleSeller, u.Role)

	_, err = f.user.ChangeRole(ctx, admin, buyer.ID, entity.UserRoleBroker)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	_, err = f.user.ChangeRole(ctx, admin, buyer.ID, entity.UserRole("farmer"))
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	_, err = f.user.ChangeRole(ctx, buyer, buyer.ID, entity.UserRoleAdmin)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	assert.ErrorIs(t, f.user.DeleteUser(ctx, admin, admin.ID), domainerrors.ErrValidation)
	assert.ErrorIs(t, f.user.DeleteUser(ctx, buyer, admin.ID), domainerrors.ErrForbidden)
	require.NoError(t, f.user.DeleteUser(ctx, admin, buyer.ID))
	assert.ErrorIs(t, f.user.DeleteUser(ctx, admin, buyer.ID), domainerrors.ErrNotFound)
}

func TestLoginWithOAuthCreatesOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, token, err := f.user.LoginWithOAuth(ctx, "Asha", "Asha@Example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleBuyer, first.Role)
	assert.True(t, first.IsVerified)
	assert.NotEmpty(t, token)

	second, _, err := f.user.LoginWithOAuth(ctx, "Asha", "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, _, err = f.user.LoginWithOAuth(ctx, "x", "bad")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestUpdateProfileBrokerSyncsDirectory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedUser(t, f, "broker-user", entity.UserRoleBuyer)
	owner := entity.Caller{ID: "broker-user", Role: entity.UserRoleBuyer}
	created, err := f.broker.CreateProfile(ctx, owner, brokerInput())
	require.NoError(t, err)
	owner.Role = entity.UserRoleBroker

	regions := []string{" Salem "}
	specialties := []string{"Imam Pasand"}
	years := 20
	_, err = f.user.UpdateProfile(ctx, owner, usecasecontract.ProfilePatch{Regions: &regions, Specialties: &specialties, ExperienceYears: &years})
	require.NoError(t, err)

	profile, err := f.brokers.GetBrokerByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, profile.ID)
	assert.Equal(t, []string{"Salem"}, profile.Regions)
	assert.Equal(t, []string{"Imam Pasand"}, profile.Specialties)
	assert.Equal(t, 20, profile.ExperienceYears)

	found, err := f.broker.List(ctx, usecasecontract.BrokerCriteria{Region: "Salem"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].Broker.ID)

	stale, err := f.broker.List(ctx, usecasecontract.BrokerCriteria{Region: "Krishna"})
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestUpdateProfileBrokerRejectedLeavesDirectory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedUser(t, f, "broker-user", entity.UserRoleBuyer)
	owner := entity.Caller{ID: "broker-user", Role: entity.UserRoleBuyer}
	_, err := f.broker.CreateProfile(ctx, owner, brokerInput())
	require.NoError(t, err)
	owner.Role = entity.UserRoleBroker

	regions := []string{"Salem"}
	years := -3
	_, err = f.user.UpdateProfile(ctx, owner, usecasecontract.ProfilePatch{Regions: &regions, ExperienceYears: &years})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	profile, err := f.brokers.GetBrokerByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Krishna", "Chittoor"}, profile.Regions)
	assert.Equal(t, 12, profile.ExperienceYears)
}

func TestChangeRoleFromBrokerRemovesProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cache := newMapCache()
	cache.pages["listings:list:x"] = nil
	f.user.SetListingCache(cache)
	seedUser(t, f, admin.ID, entity.UserRoleAdmin)
	seedUser(t, f, "broker-user", entity.UserRoleBuyer)
	_, err := f.broker.CreateProfile(ctx, entity.Caller{ID: "broker-user", Role: entity.UserRoleBuyer}, brokerInput())
	require.NoError(t, err)

	u, err := f.user.ChangeRole(ctx, admin, "broker-user", entity.UserRoleBuyer)
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleBuyer, u.Role)

	_, err = f.brokers.GetBrokerByUserID(ctx, "broker-user")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	listed, err := f.broker.List(ctx, usecasecontract.BrokerCriteria{})
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Empty(t, cache.pages)
}

func TestChangeRoleBetweenNonBrokersKeepsCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cache := newMapCache()
	cache.pages["listings:list:x"] = nil
	f.user.SetListingCache(cache)
	seedUser(t, f, buyer.ID, entity.UserRoleBuyer)

	_, err := f.user.ChangeRole(ctx, admin, buyer.ID, entity.UserRoleSeller)
	require.NoError(t, err)
	assert.Len(t, cache.pages, 1)
}

func TestEnsureAdmin(t *testing.T) {
	t.Run("creates once", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()

		created, ok, err := f.user.EnsureAdmin(ctx, "", " Root@Example.com ", "", "rootpass")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, entity.UserRoleAdmin, created.Role)
		assert.Equal(t, "Admin", created.Name)
		assert.Equal(t, "root@example.com", created.Email)
		assert.True(t, created.IsVerified)

		again, ok, err := f.user.EnsureAdmin(ctx, "Other", "root@example.com", "", "different")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, created.ID, again.ID)

		logged, token, err := f.user.Login(ctx, "root@example.com", "rootpass")
		require.NoError(t, err)
		assert.Equal(t, created.ID, logged.ID)
		claims, err := fakeJWT{}.ParseAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, entity.UserRoleAdmin, claims.Role)
	})

	t.Run("existing account untouched", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		seedUser(t, f, buyer.ID, entity.UserRoleBuyer)

		got, ok, err := f.user.EnsureAdmin(ctx, "Admin", buyer.ID+"@example.com", "", "rootpass")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, entity.UserRoleBuyer, got.Role)
		stored, _ := f.users.GetUserByID(ctx, buyer.ID)
		assert.Equal(t, entity.UserRoleBuyer, stored.Role)
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()

		_, _, err := f.user.EnsureAdmin(ctx, "Admin", "not-an-email", "", "rootpass")
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
		_, _, err = f.user.EnsureAdmin(ctx, "Admin", "root@example.com", "", "123")
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
		_, _, err = f.user.EnsureAdmin(ctx, "Admin", "root@example.com", "12", "rootpass")
		assert.ErrorIs(t, err, domainerrors.ErrValidation)

		users, err := f.users.ListUsers(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}
