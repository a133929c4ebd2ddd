package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/contract"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/policy"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/metrics"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
)

// ListingPageSize caps every listing query. There is no cursor.
const ListingPageSize = 100

const listingsCachePrefix = "listings:list:"

// ListingUseCaseImpl implements the IListingUseCase interface
type ListingUseCaseImpl struct {
	listingRepo  contract.IListingRepository
	brokerRepo   contract.IBrokerRepository
	userRepo     contract.IUserRepository
	uuidgen      contract.IUUIDGenerator
	logger       usecasecontract.IAppLogger
	listingCache contract.IListingCache
	mailer       contract.IEmailService
	now          func() time.Time
}

// NewListingUseCase creates a new instance of ListingUseCase
func NewListingUseCase(
	listingRepo contract.IListingRepository,
	brokerRepo contract.IBrokerRepository,
	userRepo contract.IUserRepository,
	uuidgen contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *ListingUseCaseImpl {
	return &ListingUseCaseImpl{
		listingRepo: listingRepo,
		brokerRepo:  brokerRepo,
		userRepo:    userRepo,
		uuidgen:     uuidgen,
		logger:      logger,
		now:         time.Now,
	}
}

// check if ListingUseCaseImpl implements the IListingUseCase
var _ usecasecontract.IListingUseCase = (*ListingUseCaseImpl)(nil)

// SetListingCache enables the read-through cache.
func (uc *ListingUseCaseImpl) SetListingCache(cache contract.IListingCache) {
	uc.listingCache = cache
}

// SetMailer enables moderation notices to sellers.
func (uc *ListingUseCaseImpl) SetMailer(mailer contract.IEmailService) {
	uc.mailer = mailer
}

// effectiveFilter turns caller supplied criteria into the filter the store runs.
// Non-admins only ever see approved listings whatever status they asked for.
func effectiveFilter(criteria usecasecontract.ListingCriteria, caller entity.Caller) contract.ListingFilter {
	filter := contract.ListingFilter{
		Variety:         criteria.Variety,
		Location:        criteria.Location,
		MinQuantity:     criteria.MinQuantity,
		MaxQuantity:     criteria.MaxQuantity,
		HarvestDateFrom: criteria.HarvestDateFrom,
		HarvestDateTo:   criteria.HarvestDateTo,
		FeaturedOnly:    criteria.Featured,
		Limit:           ListingPageSize,
	}
	if caller.IsAdmin() {
		filter.Status = criteria.Status
	} else {
		approved := entity.ListingStatusApproved
		filter.Status = &approved
	}
	return filter
}

// buildListingsCacheKey builds a stable key from the effective filter, so admin and public
// views never share an entry. Values are JSON encoded and hashed, so no user input can
// forge another query's key.
func buildListingsCacheKey(f contract.ListingFilter) string {
	key := struct {
		Status          string     `json:"st"`
		Variety         *string    `json:"v"`
		Location        *string    `json:"loc"`
		MinQuantity     *int       `json:"qmin"`
		MaxQuantity     *int       `json:"qmax"`
		HarvestDateFrom *time.Time `json:"hf"`
		HarvestDateTo   *time.Time `json:"ht"`
		FeaturedOnly    bool       `json:"f"`
		Limit           int        `json:"l"`
	}{
		Status:       "all",
		Variety:      f.Variety,
		MinQuantity:  f.MinQuantity,
		MaxQuantity:  f.MaxQuantity,
		FeaturedOnly: f.FeaturedOnly,
		Limit:        f.Limit,
	}
	if f.Status != nil {
		key.Status = string(*f.Status)
	}
	if f.Location != nil {
		loc := strings.ToLower(*f.Location)
		key.Location = &loc
	}
	if f.HarvestDateFrom != nil {
		from := f.HarvestDateFrom.UTC()
		key.HarvestDateFrom = &from
	}
	if f.HarvestDateTo != nil {
		to := f.HarvestDateTo.UTC()
		key.HarvestDateTo = &to
	}
	raw, _ := json.Marshal(key)
	sum := sha256.Sum256(raw)
	return listingsCachePrefix + hex.EncodeToString(sum[:])
}

// ListVisible returns the listings caller may see that match criteria.
func (uc *ListingUseCaseImpl) ListVisible(ctx context.Context, criteria usecasecontract.ListingCriteria, caller entity.Caller) ([]*entity.Listing, error) {
	if criteria.Status != nil && !criteria.Status.Valid() {
		return nil, domainerrors.NewValidationError("status", "must be one of pending, approved, rejected")
	}
	filter := effectiveFilter(criteria, caller)
	key := buildListingsCacheKey(filter)

	// Try cache first
	if uc.listingCache != nil {
		t0 := time.Now()
		cached, found, err := uc.listingCache.GetListingsPage(ctx, key)
		elapsed := time.Since(t0)
		if err == nil && found {
			go metrics.IncListHit()
			go metrics.AddHitDuration(elapsed.Seconds())
			uc.logger.Debugf("cache hit: listings key=%s took=%s", key, elapsed)
			return visibleOnly(cached, caller), nil
		} else if err == nil {
			go metrics.IncListMiss()
			go metrics.AddMissDuration(elapsed.Seconds())
			uc.logger.Debugf("cache miss: listings key=%s took=%s", key, elapsed)
		} else {
			uc.logger.Warningf("cache error: listings key=%s err=%v", key, err)
		}
	}

	listings, err := uc.listingRepo.FindListings(ctx, filter)
	if err != nil {
		uc.logger.Errorf("failed to find listings: %v", err)
		return nil, fmt.Errorf("failed to find listings: %w", err)
	}

	if uc.listingCache != nil {
		if err := uc.listingCache.SetListingsPage(ctx, key, listings); err != nil {
			uc.logger.Warningf("cache set failed: listings key=%s err=%v", key, err)
		}
	}
	return visibleOnly(listings, caller), nil
}

func visibleOnly(listings []*entity.Listing, caller entity.Caller) []*entity.Listing {
	out := make([]*entity.Listing, 0, len(listings))
	for _, l := range listings {
		if l.VisibleTo(caller) {
			out = append(out, l)
		}
	}
	return out
}

// GetVisible returns a listing by id. A listing caller may not see is reported as not found.
func (uc *ListingUseCaseImpl) GetVisible(ctx context.Context, id string, caller entity.Caller) (*entity.Listing, error) {
	if uc.listingCache != nil {
		t0 := time.Now()
		cached, found, err := uc.listingCache.GetListing(ctx, id)
		elapsed := time.Since(t0)
		if err == nil && found && cached != nil {
			go metrics.IncDetailHit()
			go metrics.AddHitDuration(elapsed.Seconds())
			if !cached.VisibleTo(caller) {
				return nil, fmt.Errorf("listing %s: %w", id, domainerrors.ErrNotFound)
			}
			return cached, nil
		} else if err == nil {
			go metrics.IncDetailMiss()
			go metrics.AddMissDuration(elapsed.Seconds())
		} else {
			uc.logger.Warningf("cache error: listing id=%s err=%v", id, err)
		}
	}

	listing, err := uc.getListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.listingCache != nil {
		if err := uc.listingCache.SetListing(ctx, listing); err != nil {
			uc.logger.Warningf("cache set failed: listing id=%s err=%v", id, err)
		}
	}
	if !listing.VisibleTo(caller) {
		return nil, fmt.Errorf("listing %s: %w", id, domainerrors.ErrNotFound)
	}
	return listing, nil
}

// Create stores a new pending listing. The seller is linked only when caller is a seller.
func (uc *ListingUseCaseImpl) Create(ctx context.Context, input usecasecontract.CreateListingInput, caller entity.Caller) (*entity.Listing, error) {
	now := uc.now()
	images := input.Images
	if images == nil {
		images = []string{}
	}
	listing := &entity.Listing{
		ID:            uc.uuidgen.NewUUID(),
		Variety:       strings.TrimSpace(input.Variety),
		Quantity:      input.Quantity,
		Location:      strings.TrimSpace(input.Location),
		HarvestDate:   input.HarvestDate,
		SellerName:    strings.TrimSpace(input.SellerName),
		SellerPhone:   strings.TrimSpace(input.SellerPhone),
		Description:   strings.TrimSpace(input.Description),
		Images:        images,
		Status:        entity.ListingStatusPending,
		Featured:      false,
		QualityGrade:  input.QualityGrade,
		FarmingMethod: input.FarmingMethod,
		PriceRange:    input.PriceRange,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if caller.IsAuthenticated() && caller.Role == entity.UserRoleSeller {
		sellerID := caller.ID
		listing.SellerID = &sellerID
	}
	if err := listing.Validate(); err != nil {
		return nil, err
	}

	if err := uc.listingRepo.CreateListing(ctx, listing); err != nil {
		uc.logger.Errorf("failed to create listing: %v", err)
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	uc.logger.Infof("listing %s created (seller=%s)", listing.ID, listing.OwnerID())
	uc.invalidate(ctx, "")
	return listing, nil
}

// Update applies patch to a listing owned by caller, or any listing for an admin.
func (uc *ListingUseCaseImpl) Update(ctx context.Context, id string, patch usecasecontract.ListingPatch, caller entity.Caller) (*entity.Listing, error) {
	listing, err := uc.getListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModify(caller, listing.OwnerID()) {
		return nil, denyModify("update", listing, caller)
	}

	if patch.Variety != nil {
		listing.Variety = strings.TrimSpace(*patch.Variety)
	}
	if patch.Quantity != nil {
		listing.Quantity = *patch.Quantity
	}
	if patch.Location != nil {
		listing.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.HarvestDate != nil {
		listing.HarvestDate = *patch.HarvestDate
	}
	if patch.SellerName != nil {
		listing.SellerName = strings.TrimSpace(*patch.SellerName)
	}
	if patch.SellerPhone != nil {
		listing.SellerPhone = strings.TrimSpace(*patch.SellerPhone)
	}
	if patch.Description != nil {
		listing.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Images != nil {
		listing.Images = *patch.Images
	}
	if patch.QualityGrade != nil {
		listing.QualityGrade = patch.QualityGrade
	}
	if patch.FarmingMethod != nil {
		listing.FarmingMethod = patch.FarmingMethod
	}
	if patch.PriceRange != nil {
		listing.PriceRange = patch.PriceRange
	}

	var assignTo *entity.Broker
	statusChanged := false
	if caller.IsAdmin() {
		if patch.Featured != nil {
			listing.Featured = *patch.Featured
		}
		if patch.Status != nil {
			if !patch.Status.Valid() {
				return nil, domainerrors.NewValidationError("status", "must be one of pending, approved, rejected")
			}
			changed, err := listing.TransitionTo(*patch.Status)
			if err != nil {
				return nil, err
			}
			statusChanged = changed
		}
		if patch.BrokerID != nil {
			if *patch.BrokerID == "" {
				listing.BrokerID = nil
			} else {
				broker, err := uc.brokerRepo.GetBrokerByUserID(ctx, *patch.BrokerID)
				if errors.Is(err, domainerrors.ErrNotFound) {
					return nil, domainerrors.NewValidationError("broker", "no broker profile for this user")
				}
				if err != nil {
					uc.logger.Errorf("failed to look up broker %s: %v", *patch.BrokerID, err)
					return nil, fmt.Errorf("failed to look up broker: %w", err)
				}
				brokerID := broker.UserID
				listing.BrokerID = &brokerID
				assignTo = broker
			}
		}
	}

	if err := listing.Validate(); err != nil {
		return nil, err
	}
	listing.UpdatedAt = uc.now()
	if err := uc.listingRepo.UpdateListing(ctx, listing); err != nil {
		uc.logger.Errorf("failed to update listing %s: %v", id, err)
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	uc.invalidate(ctx, id)

	if assignTo != nil && assignTo.AddHandledListing(listing.ID) {
		assignTo.UpdatedAt = uc.now()
		if err := uc.brokerRepo.UpdateBroker(ctx, assignTo); err != nil {
			uc.logger.Errorf("listing %s assigned but broker %s back-reference not saved: %v", listing.ID, assignTo.ID, err)
		}
	}
	if statusChanged {
		metrics.IncModeration(string(listing.Status))
		uc.notifySeller(ctx, listing)
	}
	return listing, nil
}

// Approve moves a pending listing to approved. Admin only.
func (uc *ListingUseCaseImpl) Approve(ctx context.Context, id string, caller entity.Caller) (*entity.Listing, error) {
	return uc.moderate(ctx, id, caller, (*entity.Listing).Approve)
}

// Reject moves a pending listing to rejected. Admin only.
func (uc *ListingUseCaseImpl) Reject(ctx context.Context, id string, caller entity.Caller) (*entity.Listing, error) {
	return uc.moderate(ctx, id, caller, (*entity.Listing).Reject)
}

func (uc *ListingUseCaseImpl) moderate(ctx context.Context, id string, caller entity.Caller, apply func(*entity.Listing) (bool, error)) (*entity.Listing, error) {
	if !policy.IsAdmin(caller) {
		return nil, fmt.Errorf("moderate listing: %w", domainerrors.ErrForbidden)
	}
	listing, err := uc.getListing(ctx, id)
	if err != nil {
		return nil, err
	}
	changed, err := apply(listing)
	if err != nil {
		return nil, err
	}
	if !changed {
		return listing, nil
	}

	listing.UpdatedAt = uc.now()
	if err := uc.listingRepo.UpdateListing(ctx, listing); err != nil {
		uc.logger.Errorf("failed to save moderation of listing %s: %v", id, err)
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	uc.logger.Infof("listing %s %s by %s", id, listing.Status, caller.ID)
	metrics.IncModeration(string(listing.Status))
	uc.invalidate(ctx, id)
	uc.notifySeller(ctx, listing)
	return listing, nil
}

// ToggleFeatured flips the featured flag of a listing in any status. Admin only.
func (uc *ListingUseCaseImpl) ToggleFeatured(ctx context.Context, id string, caller entity.Caller) (*entity.Listing, error) {
	if !policy.IsAdmin(caller) {
		return nil, fmt.Errorf("feature listing: %w", domainerrors.ErrForbidden)
	}
	listing, err := uc.getListing(ctx, id)
	if err != nil {
		return nil, err
	}
	listing.ToggleFeatured()
	listing.UpdatedAt = uc.now()
	if err := uc.listingRepo.UpdateListing(ctx, listing); err != nil {
		uc.logger.Errorf("failed to toggle featured on listing %s: %v", id, err)
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	metrics.IncModeration("feature")
	uc.invalidate(ctx, id)
	return listing, nil
}

// denyModify reports a refused change. A listing the caller cannot see stays not found,
// so only approved listings answer with forbidden.
func denyModify(op string, listing *entity.Listing, caller entity.Caller) error {
	if !listing.VisibleTo(caller) {
		return fmt.Errorf("%s listing %s: %w", op, listing.ID, domainerrors.ErrNotFound)
	}
	return fmt.Errorf("%s listing %s: %w", op, listing.ID, domainerrors.ErrForbidden)
}

// Delete removes a listing owned by caller, or any listing for an admin.
// Broker back-references are left in place.
func (uc *ListingUseCaseImpl) Delete(ctx context.Context, id string, caller entity.Caller) error {
	listing, err := uc.getListing(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanModify(caller, listing.OwnerID()) {
		return denyModify("delete", listing, caller)
	}
	if err := uc.listingRepo.DeleteListing(ctx, id); err != nil {
		uc.logger.Errorf("failed to delete listing %s: %v", id, err)
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	uc.invalidate(ctx, id)
	return nil
}

// Stats counts listings per status for the admin dashboard.
func (uc *ListingUseCaseImpl) Stats(ctx context.Context, caller entity.Caller) (*usecasecontract.ListingStats, error) {
	if !policy.IsAdmin(caller) {
		return nil, fmt.Errorf("listing stats: %w", domainerrors.ErrForbidden)
	}
	counts, err := uc.listingRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Errorf("failed to count listings: %v", err)
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}
	stats := &usecasecontract.ListingStats{
		Pending:  counts[entity.ListingStatusPending],
		Approved: counts[entity.ListingStatusApproved],
		Rejected: counts[entity.ListingStatusRejected],
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected
	return stats, nil
}

func (uc *ListingUseCaseImpl) getListing(ctx context.Context, id string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetListingByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			uc.logger.Errorf("failed to get listing %s: %v", id, err)
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return listing, nil
}

// invalidate drops every cached list page and, when id is set, the detail entry.
func (uc *ListingUseCaseImpl) invalidate(ctx context.Context, id string) {
	if uc.listingCache == nil {
		return
	}
	dropListingPages(ctx, uc.listingCache, uc.logger)
	if id != "" {
		if err := uc.listingCache.InvalidateListing(ctx, id); err != nil {
			uc.logger.Warningf("failed to invalidate listing %s: %v", id, err)
		}
	}
}

// notifySeller emails the linked seller about a moderation decision. Failures are only logged.
func (uc *ListingUseCaseImpl) notifySeller(ctx context.Context, listing *entity.Listing) {
	if uc.mailer == nil || listing.SellerID == nil {
		return
	}
	seller, err := uc.userRepo.GetUserByID(ctx, *listing.SellerID)
	if err != nil {
		uc.logger.Warningf("moderation notice skipped for listing %s: %v", listing.ID, err)
		return
	}
	subject := fmt.Sprintf("Your %s listing was %s", listing.Variety, listing.Status)
	body := fmt.Sprintf("Hi %s,\n\nYour listing of %d kg %s from %s has been %s by our moderators.\n\nThanks,\nThe MangoCropConnect Team",
		seller.Name, listing.Quantity, listing.Variety, listing.Location, listing.Status)
	if err := uc.mailer.SendEmail(ctx, seller.Email, subject, body); err != nil {
		uc.logger.Errorf("failed to send moderation notice to %s: %v", seller.Email, err)
	}
}
