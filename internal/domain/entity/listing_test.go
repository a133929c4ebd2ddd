package entity

import (
	"errors"
	"testing"
	"time"

	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing() *Listing {
	return &Listing{
		Variety:     "Alphonso",
		Quantity:    1,
		Location:    "Ratnagiri, Maharashtra",
		HarvestDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		SellerName:  "Ramesh Kumar",
		SellerPhone: "9876543210",
		Status:      ListingStatusPending,
	}
}

func TestListingApproveAndReject(t *testing.T) {
	l := validListing()

	changed, err := l.Approve()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, ListingStatusApproved, l.Status)

	changed, err = l.Approve()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, ListingStatusApproved, l.Status)

	_, err = l.Reject()
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
	assert.Equal(t, ListingStatusApproved, l.Status)

	r := validListing()
	changed, err = r.Reject()
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = r.Reject()
	require.NoError(t, err)
	assert.False(t, changed)
	_, err = r.Approve()
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
}

func TestListingNoTransitionBackToPending(t *testing.T) {
	l := validListing()
	_, err := l.Approve()
	require.NoError(t, err)

	_, err = l.TransitionTo(ListingStatusPending)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
}

func TestListingFeaturedIsIndependentOfStatus(t *testing.T) {
	l := validListing()
	assert.True(t, l.ToggleFeatured())
	assert.Equal(t, ListingStatusPending, l.Status)
	assert.False(t, l.ToggleFeatured())
}

func TestListingVisibleTo(t *testing.T) {
	l := validListing()
	admin := Caller{ID: "a", Role: UserRoleAdmin}
	buyer := Caller{ID: "b", Role: UserRoleBuyer}

	assert.True(t, l.VisibleTo(admin))
	assert.False(t, l.VisibleTo(buyer))
	assert.False(t, l.VisibleTo(Anonymous))

	l.Status = ListingStatusApproved
	assert.True(t, l.VisibleTo(Anonymous))
}

func TestListingValidate(t *testing.T) {
	assert.NoError(t, validListing().Validate())

	l := validListing()
	l.Quantity = 0
	l.SellerPhone = "12345"
	l.Images = []string{"1", "2", "3", "4", "5", "6"}
	grade := QualityGrade("S")
	l.QualityGrade = &grade
	l.PriceRange = &PriceRange{Min: -1, Max: 10}

	err := l.Validate()
	require.Error(t, err)
	var verr *domainerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "quantity")
	assert.Contains(t, verr.Fields, "sellerPhone")
	assert.Contains(t, verr.Fields, "images")
	assert.Contains(t, verr.Fields, "qualityGrade")
	assert.Contains(t, verr.Fields, "priceRange.min")
	assert.NotContains(t, verr.Fields, "variety")
}

func TestIsTenDigitPhone(t *testing.T) {
	assert.True(t, IsTenDigitPhone("9876543210"))
	assert.False(t, IsTenDigitPhone("12345"))
	assert.False(t, IsTenDigitPhone("98765432101"))
	assert.False(t, IsTenDigitPhone("98765-4321"))
	assert.False(t, IsTenDigitPhone(""))
}

func TestListingDerivedDays(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	l := validListing()
	l.CreatedAt = now.Add(-49 * time.Hour)

	assert.Equal(t, 2, l.ListingAgeDays(now))
	assert.Equal(t, 20, l.DaysUntilHarvest(now))
	assert.Equal(t, 20, l.DaysUntilHarvest(l.HarvestDate.Add(20*24*time.Hour+time.Hour)))
}
