package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/contract"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
)

const listPagePattern = "listings:list:*"

type ListingCacheStore struct {
	rdb       *redis.Client
	detailTTL time.Duration
	listTTL   time.Duration
}

var _ contract.IListingCache = (*ListingCacheStore)(nil)

// NewListingCacheStore caches detail entries for twice ttl and list pages for ttl.
// A non-positive ttl defaults to five minutes.
func NewListingCacheStore(rdb *redis.Client, ttl time.Duration) *ListingCacheStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ListingCacheStore{
		rdb:       rdb,
		detailTTL: 2 * ttl,
		listTTL:   ttl,
	}
}

func listingDetailKey(id string) string { return fmt.Sprintf("listing:id:%s", id) }

func (c *ListingCacheStore) GetListing(ctx context.Context, id string) (*entity.Listing, bool, error) {
	b, err := c.rdb.Get(ctx, listingDetailKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var listing entity.Listing
	if err := json.Unmarshal(b, &listing); err != nil {
		// corrupt entries count as a miss
		return nil, false, nil
	}
	return &listing, true, nil
}

func (c *ListingCacheStore) SetListing(ctx context.Context, listing *entity.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listingDetailKey(listing.ID), data, c.detailTTL).Err()
}

func (c *ListingCacheStore) InvalidateListing(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, listingDetailKey(id)).Err()
}

func (c *ListingCacheStore) GetListingsPage(ctx context.Context, key string) ([]*entity.Listing, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var listings []*entity.Listing
	if err := json.Unmarshal(b, &listings); err != nil {
		return nil, false, nil
	}
	return listings, true, nil
}

func (c *ListingCacheStore) SetListingsPage(ctx context.Context, key string, listings []*entity.Listing) error {
	if listings == nil {
		listings = []*entity.Listing{}
	}
	data, err := json.Marshal(listings)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, c.listTTL).Err()
}

// InvalidateListingLists deletes every cached list page.
func (c *ListingCacheStore) InvalidateListingLists(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, listPagePattern, 1000).Iterator()
	pipe := c.rdb.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
		if n%200 == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if n%200 != 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
