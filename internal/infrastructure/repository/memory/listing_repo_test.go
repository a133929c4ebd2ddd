package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/contract"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func listing(id string, status entity.ListingStatus, age int) *entity.Listing {
	return &entity.Listing{
		ID:          id,
		Variety:     "Alphonso",
		Quantity:    100,
		Location:    "Ratnagiri, Maharashtra",
		HarvestDate: base.AddDate(0, 2, 0),
		SellerName:  "Ramesh",
		SellerPhone: "9876543210",
		Images:      []string{},
		Status:      status,
		CreatedAt:   base.Add(-time.Duration(age) * time.Hour),
	}
}

func ids(listings []*entity.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestFindListingsOrdering(t *testing.T) {
	ctx := context.Background()
	brokers := NewBrokerRepository()
	repo := NewListingRepository(brokers)

	require.NoError(t, brokers.CreateBroker(ctx, &entity.Broker{ID: "b1", UserID: "verified-broker", Regions: []string{"Krishna"}, IsVerified: true}))
	require.NoError(t, brokers.CreateBroker(ctx, &entity.Broker{ID: "b2", UserID: "premium-broker", Regions: []string{"Krishna"}, IsPremium: true}))

	newest := listing("newest", entity.ListingStatusApproved, 1)
	older := listing("older", entity.ListingStatusApproved, 5)
	featured := listing("featured", entity.ListingStatusApproved, 10)
	featured.Featured = true
	viaVerified := listing("via-verified", entity.ListingStatusApproved, 9)
	verifiedID := "verified-broker"
	viaVerified.BrokerID = &verifiedID
	viaPremium := listing("via-premium", entity.ListingStatusApproved, 8)
	premiumID := "premium-broker"
	viaPremium.BrokerID = &premiumID

	for _, l := range []*entity.Listing{newest, older, featured, viaVerified, viaPremium} {
		require.NoError(t, repo.CreateListing(ctx, l))
	}

	got, err := repo.FindListings(ctx, contract.ListingFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"featured", "via-verified", "via-premium", "newest", "older"}, ids(got))
}

func TestFindListingsFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepository(nil)

	a := listing("a", entity.ListingStatusApproved, 1)
	b := listing("b", entity.ListingStatusPending, 2)
	b.Variety = "Kesar"
	b.Quantity = 800
	b.Location = "Junagadh, Gujarat"
	c := listing("c", entity.ListingStatusApproved, 3)
	c.HarvestDate = base.AddDate(0, 4, 0)
	c.Featured = true
	for _, l := range []*entity.Listing{a, b, c} {
		require.NoError(t, repo.CreateListing(ctx, l))
	}

	approved := entity.ListingStatusApproved
	kesar := "Kesar"
	loc := "GUJARAT"
	minQ := 500
	to := base.AddDate(0, 3, 0)

	cases := []struct {
		name   string
		filter contract.ListingFilter
		want   []string
	}{
		{"status", contract.ListingFilter{Status: &approved}, []string{"c", "a"}},
		{"variety exact", contract.ListingFilter{Variety: &kesar}, []string{"b"}},
		{"location case-insensitive substring", contract.ListingFilter{Location: &loc}, []string{"b"}},
		{"min quantity", contract.ListingFilter{MinQuantity: &minQ}, []string{"b"}},
		{"harvest window", contract.ListingFilter{HarvestDateTo: &to}, []string{"a", "b"}},
		{"featured only", contract.ListingFilter{FeaturedOnly: true}, []string{"c"}},
		{"anded", contract.ListingFilter{Status: &approved, Variety: &kesar}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.FindListings(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestFindListingsLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepository(nil)
	for i := 0; i < 120; i++ {
		require.NoError(t, repo.CreateListing(ctx, listing(fmt.Sprintf("l%03d", i), entity.ListingStatusApproved, i)))
	}
	got, err := repo.FindListings(ctx, contract.ListingFilter{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, got, 100)
	assert.Equal(t, "l000", got[0].ID)
}

func TestListingRepositoryCopiesRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepository(nil)
	l := listing("l1", entity.ListingStatusPending, 0)
	require.NoError(t, repo.CreateListing(ctx, l))

	l.Status = entity.ListingStatusApproved
	got, err := repo.GetListingByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusPending, got.Status)

	got.Images = append(got.Images, "x")
	again, _ := repo.GetListingByID(ctx, "l1")
	assert.Empty(t, again.Images)
}

func TestListingRepositoryNotFoundAndCounts(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepository(nil)

	_, err := repo.GetListingByID(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateListing(ctx, listing("missing", entity.ListingStatusPending, 0)), domainerrors.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteListing(ctx, "missing"), domainerrors.ErrNotFound)

	require.NoError(t, repo.CreateListing(ctx, listing("a", entity.ListingStatusPending, 0)))
	require.NoError(t, repo.CreateListing(ctx, listing("b", entity.ListingStatusPending, 0)))
	require.NoError(t, repo.CreateListing(ctx, listing("c", entity.ListingStatusRejected, 0)))
	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[entity.ListingStatusPending])
	assert.Equal(t, int64(1), counts[entity.ListingStatusRejected])
	assert.Zero(t, counts[entity.ListingStatusApproved])
}
