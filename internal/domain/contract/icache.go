package contract

import (
	"context"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
)

// IListingCache defines caching operations for listings.
type IListingCache interface {
	// Detail (by id)
	GetListing(ctx context.Context, id string) (*entity.Listing, bool, error)
	SetListing(ctx context.Context, listing *entity.Listing) error
	InvalidateListing(ctx context.Context, id string) error

	// List pages (key built by usecase)
	GetListingsPage(ctx context.Context, key string) ([]*entity.Listing, bool, error)
	SetListingsPage(ctx context.Context, key string, listings []*entity.Listing) error
	InvalidateListingLists(ctx context.Context) error
}
