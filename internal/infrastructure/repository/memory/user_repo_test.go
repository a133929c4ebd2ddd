package memory

import (
	"context"
	"testing"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/contract"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryUniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.CreateUser(ctx, &entity.User{ID: "u1", Email: "a@example.com", Role: entity.UserRoleBuyer}))

	err := repo.CreateUser(ctx, &entity.User{ID: "u2", Email: "a@example.com"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	got, err := repo.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	require.NoError(t, repo.UpdateUserRole(ctx, "u1", entity.UserRoleSeller))
	got, _ = repo.GetUserByID(ctx, "u1")
	assert.Equal(t, entity.UserRoleSeller, got.Role)

	byID, err := repo.GetUsersByIDs(ctx, []string{"u1", "missing"})
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	require.NoError(t, repo.DeleteUser(ctx, "u1"))
	_, err = repo.GetUserByID(ctx, "u1")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestBrokerRepositoryDirectory(t *testing.T) {
	ctx := context.Background()
	repo := NewBrokerRepository()
	require.NoError(t, repo.CreateBroker(ctx, &entity.Broker{ID: "b1", UserID: "u1", Regions: []string{"Krishna District"}, Specialties: []string{"Banganapalli"}}))
	require.NoError(t, repo.CreateBroker(ctx, &entity.Broker{ID: "b2", UserID: "u2", Regions: []string{"Ratnagiri"}, IsVerified: true}))
	require.NoError(t, repo.CreateBroker(ctx, &entity.Broker{ID: "b3", UserID: "u3", Regions: []string{"Krishna"}, IsPremium: true}))

	assert.ErrorIs(t, repo.CreateBroker(ctx, &entity.Broker{ID: "b4", UserID: "u1"}), domainerrors.ErrConflict)

	all, err := repo.FindBrokers(ctx, contract.BrokerFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"b3", "b2", "b1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	krishna, err := repo.FindBrokers(ctx, contract.BrokerFilter{Region: "krishna"})
	require.NoError(t, err)
	assert.Len(t, krishna, 2)

	bySpecialty, err := repo.FindBrokers(ctx, contract.BrokerFilter{Specialty: "BANGANA"})
	require.NoError(t, err)
	require.Len(t, bySpecialty, 1)
	assert.Equal(t, "b1", bySpecialty[0].ID)

	verified, err := repo.FindBrokers(ctx, contract.BrokerFilter{VerifiedOnly: true, PremiumOnly: true})
	require.NoError(t, err)
	assert.Empty(t, verified)

	b, err := repo.GetBrokerByUserID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "b2", b.ID)
}
