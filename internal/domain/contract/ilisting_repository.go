package contract

import (
	"context"
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
)

// ListingFilter is the effective, already authorized filter handed to the store.
// Nil fields do not constrain the result.
type ListingFilter struct {
	Status          *entity.ListingStatus
	Variety         *string
	Location        *string // case-insensitive substring
	MinQuantity     *int
	MaxQuantity     *int
	HarvestDateFrom *time.Time
	HarvestDateTo   *time.Time
	FeaturedOnly    bool
	Limit           int
}

// IListingRepository persists listings. Lookups of a missing listing return domainerrors.ErrNotFound.
type IListingRepository interface {
	CreateListing(ctx context.Context, listing *entity.Listing) error
	GetListingByID(ctx context.Context, id string) (*entity.Listing, error)
	// FindListings returns listings matching filter ordered by featured, assigned broker
	// verification and premium flags, then newest first.
	FindListings(ctx context.Context, filter ListingFilter) ([]*entity.Listing, error)
	UpdateListing(ctx context.Context, listing *entity.Listing) error
	DeleteListing(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[entity.ListingStatus]int64, error)
}
