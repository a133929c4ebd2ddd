package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/contract"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
)

type ListingRepository struct {
	mu       sync.RWMutex
	listings map[string]*entity.Listing
	brokers  *BrokerRepository
}

var _ contract.IListingRepository = (*ListingRepository)(nil)

// NewListingRepository creates a listing store. brokers supplies the badges used for ordering and may be nil.
func NewListingRepository(brokers *BrokerRepository) *ListingRepository {
	return &ListingRepository{listings: make(map[string]*entity.Listing), brokers: brokers}
}

func (r *ListingRepository) CreateListing(_ context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[listing.ID]; ok {
		return fmt.Errorf("listing %s: %w", listing.ID, domainerrors.ErrConflict)
	}
	r.listings[listing.ID] = cloneListing(listing)
	return nil
}

func (r *ListingRepository) GetListingByID(_ context.Context, id string) (*entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return cloneListing(l), nil
}

func matches(l *entity.Listing, f contract.ListingFilter) bool {
	if f.Status != nil && l.Status != *f.Status {
		return false
	}
	if f.Variety != nil && *f.Variety != "" && l.Variety != *f.Variety {
		return false
	}
	if f.Location != nil && *f.Location != "" && !strings.Contains(strings.ToLower(l.Location), strings.ToLower(*f.Location)) {
		return false
	}
	if f.MinQuantity != nil && l.Quantity < *f.MinQuantity {
		return false
	}
	if f.MaxQuantity != nil && l.Quantity > *f.MaxQuantity {
		return false
	}
	if !inRange(l.HarvestDate, f.HarvestDateFrom, f.HarvestDateTo) {
		return false
	}
	if f.FeaturedOnly && !l.Featured {
		return false
	}
	return true
}

type rankedListing struct {
	listing  *entity.Listing
	verified bool
	premium  bool
}

func (r *ListingRepository) FindListings(_ context.Context, filter contract.ListingFilter) ([]*entity.Listing, error) {
	r.mu.RLock()
	ranked := make([]rankedListing, 0)
	for _, l := range r.listings {
		if matches(l, filter) {
			ranked = append(ranked, rankedListing{listing: cloneListing(l)})
		}
	}
	r.mu.RUnlock()

	if r.brokers != nil {
		for i := range ranked {
			if id := ranked[i].listing.BrokerID; id != nil {
				ranked[i].verified, ranked[i].premium = r.brokers.flags(*id)
			}
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.listing.Featured != b.listing.Featured {
			return a.listing.Featured
		}
		if a.verified != b.verified {
			return a.verified
		}
		if a.premium != b.premium {
			return a.premium
		}
		return a.listing.CreatedAt.After(b.listing.CreatedAt)
	})

	if filter.Limit > 0 && len(ranked) > filter.Limit {
		ranked = ranked[:filter.Limit]
	}
	out := make([]*entity.Listing, 0, len(ranked))
	for _, rl := range ranked {
		out = append(out, rl.listing)
	}
	return out, nil
}

func (r *ListingRepository) UpdateListing(_ context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[listing.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	r.listings[listing.ID] = cloneListing(listing)
	return nil
}

func (r *ListingRepository) DeleteListing(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *ListingRepository) CountByStatus(_ context.Context) (map[entity.ListingStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[entity.ListingStatus]int64)
	for _, l := range r.listings {
		counts[l.Status]++
	}
	return counts, nil
}
