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
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/metrics"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
)

// BrokerUseCaseImpl implements the IBrokerUseCase interface
type BrokerUseCaseImpl struct {
	brokerRepo contract.IBrokerRepository
	userRepo   contract.IUserRepository
	uuidgen    contract.IUUIDGenerator
	logger     usecasecontract.IAppLogger
	pages      contract.IListingCache
	now        func() time.Time
}

// NewBrokerUseCase creates a new instance of BrokerUseCase
func NewBrokerUseCase(brokerRepo contract.IBrokerRepository, userRepo contract.IUserRepository, uuidgen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *BrokerUseCaseImpl {
	return &BrokerUseCaseImpl{
		brokerRepo: brokerRepo,
		userRepo:   userRepo,
		uuidgen:    uuidgen,
		logger:     logger,
		now:        time.Now,
	}
}

var _ usecasecontract.IBrokerUseCase = (*BrokerUseCaseImpl)(nil)

// SetListingCache lets badge changes drop cached listing pages, whose order depends on them.
func (uc *BrokerUseCaseImpl) SetListingCache(cache contract.IListingCache) {
	uc.pages = cache
}

// dropListingPages invalidates every cached listing page.
func dropListingPages(ctx context.Context, cache contract.IListingCache, logger usecasecontract.IAppLogger) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateListingLists(ctx); err != nil {
		logger.Warningf("failed to invalidate listing pages: %v", err)
	}
}

// List returns the broker directory, premium first, then verified, then newest.
func (uc *BrokerUseCaseImpl) List(ctx context.Context, criteria usecasecontract.BrokerCriteria) ([]usecasecontract.BrokerView, error) {
	brokers, err := uc.brokerRepo.FindBrokers(ctx, contract.BrokerFilter{
		Region:       strings.TrimSpace(criteria.Region),
		Specialty:    strings.TrimSpace(criteria.Specialty),
		VerifiedOnly: criteria.Verified,
		PremiumOnly:  criteria.Premium,
	})
	if err != nil {
		uc.logger.Errorf("failed to find brokers: %v", err)
		return nil, fmt.Errorf("failed to find brokers: %w", err)
	}

	ids := make([]string, 0, len(brokers))
	for _, b := range brokers {
		ids = append(ids, b.UserID)
	}
	users, err := uc.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		uc.logger.Errorf("failed to load broker owners: %v", err)
		return nil, fmt.Errorf("failed to load broker owners: %w", err)
	}

	views := make([]usecasecontract.BrokerView, 0, len(brokers))
	for _, b := range brokers {
		views = append(views, usecasecontract.BrokerView{Broker: b, User: users[b.UserID]})
	}
	return views, nil
}

// Get returns one broker profile joined with its owner.
func (uc *BrokerUseCaseImpl) Get(ctx context.Context, id string) (*usecasecontract.BrokerView, error) {
	broker, err := uc.getBroker(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &usecasecontract.BrokerView{Broker: broker}
	user, err := uc.userRepo.GetUserByID(ctx, broker.UserID)
	switch {
	case err == nil:
		view.User = user
	case errors.Is(err, domainerrors.ErrNotFound):
		uc.logger.Warnf("broker %s references missing user %s", broker.ID, broker.UserID)
	default:
		uc.logger.Errorf("failed to load owner of broker %s: %v", broker.ID, err)
		return nil, fmt.Errorf("failed to load broker owner: %w", err)
	}
	return view, nil
}

// CreateProfile creates the caller's broker profile and promotes a non-admin caller to broker.
// The role change and the insert are separate writes; a failed insert leaves the promotion in place.
func (uc *BrokerUseCaseImpl) CreateProfile(ctx context.Context, caller entity.Caller, input usecasecontract.CreateBrokerInput) (*entity.Broker, error) {
	if !caller.IsAuthenticated() {
		return nil, fmt.Errorf("create broker profile: %w", domainerrors.ErrUnauthorized)
	}
	now := uc.now()
	broker := &entity.Broker{
		ID:              uc.uuidgen.NewUUID(),
		UserID:          caller.ID,
		Description:     strings.TrimSpace(input.Description),
		Regions:         trimAll(input.Regions),
		Specialties:     trimAll(input.Specialties),
		ExperienceYears: input.ExperienceYears,
		Ratings:         []entity.Rating{},
		ListingsHandled: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := broker.Validate(); err != nil {
		return nil, err
	}

	_, err := uc.brokerRepo.GetBrokerByUserID(ctx, caller.ID)
	if err == nil {
		return nil, fmt.Errorf("broker profile for user %s: %w", caller.ID, domainerrors.ErrConflict)
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		uc.logger.Errorf("failed to check existing broker profile: %v", err)
		return nil, fmt.Errorf("failed to check broker profile: %w", err)
	}

	if !caller.IsAdmin() {
		if err := uc.promote(ctx, caller.ID, broker); err != nil {
			return nil, err
		}
	}

	if err := uc.brokerRepo.CreateBroker(ctx, broker); err != nil {
		uc.logger.Errorf("user %s promoted to broker but profile insert failed: %v", caller.ID, err)
		return nil, fmt.Errorf("failed to create broker profile: %w", err)
	}
	uc.logger.Infof("broker profile %s created for user %s", broker.ID, caller.ID)
	return broker, nil
}

func (uc *BrokerUseCaseImpl) promote(ctx context.Context, userID string, broker *entity.Broker) error {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	user.Role = entity.UserRoleBroker
	syncBrokerFields(user, broker)
	if err := user.Validate(); err != nil {
		return err
	}
	user.UpdatedAt = uc.now()
	if _, err := uc.userRepo.UpdateUser(ctx, user); err != nil {
		uc.logger.Errorf("failed to promote user %s to broker: %v", userID, err)
		return fmt.Errorf("failed to promote user: %w", err)
	}
	return nil
}

// syncBrokerFields copies the profile fields that the user record mirrors.
func syncBrokerFields(user *entity.User, broker *entity.Broker) {
	user.Regions = append([]string(nil), broker.Regions...)
	user.Specialties = append([]string(nil), broker.Specialties...)
	years := broker.ExperienceYears
	user.ExperienceYears = &years
}

// UpdateProfile applies patch to a profile owned by caller, or any profile for an admin.
// Verification, premium and subscription fields are only applied for admins.
func (uc *BrokerUseCaseImpl) UpdateProfile(ctx context.Context, id string, patch usecasecontract.BrokerPatch, caller entity.Caller) (*entity.Broker, error) {
	broker, err := uc.getBroker(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModify(caller, broker.UserID) {
		return nil, fmt.Errorf("update broker %s: %w", id, domainerrors.ErrForbidden)
	}

	mirrored := false
	wasVerified, wasPremium := broker.IsVerified, broker.IsPremium
	if patch.Description != nil {
		broker.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Regions != nil {
		broker.Regions = trimAll(*patch.Regions)
		mirrored = true
	}
	if patch.Specialties != nil {
		broker.Specialties = trimAll(*patch.Specialties)
		mirrored = true
	}
	if patch.ExperienceYears != nil {
		broker.ExperienceYears = *patch.ExperienceYears
		mirrored = true
	}
	if caller.IsAdmin() {
		if patch.IsVerified != nil {
			broker.IsVerified = *patch.IsVerified
		}
		if patch.IsPremium != nil {
			broker.IsPremium = *patch.IsPremium
		}
		if patch.SubscriptionStart != nil {
			broker.SubscriptionStart = patch.SubscriptionStart
		}
		if patch.SubscriptionEnd != nil {
			broker.SubscriptionEnd = patch.SubscriptionEnd
		}
	}
	if err := broker.Validate(); err != nil {
		return nil, err
	}

	broker.UpdatedAt = uc.now()
	if err := uc.brokerRepo.UpdateBroker(ctx, broker); err != nil {
		uc.logger.Errorf("failed to update broker %s: %v", id, err)
		return nil, fmt.Errorf("failed to update broker: %w", err)
	}
	if mirrored {
		uc.mirrorToUser(ctx, broker)
	}
	if broker.IsVerified != wasVerified || broker.IsPremium != wasPremium {
		dropListingPages(ctx, uc.pages, uc.logger)
	}
	return broker, nil
}

func (uc *BrokerUseCaseImpl) mirrorToUser(ctx context.Context, broker *entity.Broker) {
	user, err := uc.userRepo.GetUserByID(ctx, broker.UserID)
	if err != nil || user.Role != entity.UserRoleBroker {
		return
	}
	syncBrokerFields(user, broker)
	user.UpdatedAt = uc.now()
	if _, err := uc.userRepo.UpdateUser(ctx, user); err != nil {
		uc.logger.Warnf("broker %s saved but user %s not synced: %v", broker.ID, user.ID, err)
	}
}

// DeleteProfile removes a profile owned by caller, or any profile for an admin.
// A non-admin caller is demoted back to buyer.
func (uc *BrokerUseCaseImpl) DeleteProfile(ctx context.Context, id string, caller entity.Caller) error {
	broker, err := uc.getBroker(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanModify(caller, broker.UserID) {
		return fmt.Errorf("delete broker %s: %w", id, domainerrors.ErrForbidden)
	}
	if err := uc.brokerRepo.DeleteBroker(ctx, id); err != nil {
		uc.logger.Errorf("failed to delete broker %s: %v", id, err)
		return fmt.Errorf("failed to delete broker: %w", err)
	}
	dropListingPages(ctx, uc.pages, uc.logger)
	if !caller.IsAdmin() {
		if err := uc.userRepo.UpdateUserRole(ctx, caller.ID, entity.UserRoleBuyer); err != nil {
			uc.logger.Errorf("broker %s deleted but user %s not demoted: %v", id, caller.ID, err)
			return fmt.Errorf("failed to demote user: %w", err)
		}
	}
	return nil
}

// VerifyBroker toggles the verified badge. Admin only.
func (uc *BrokerUseCaseImpl) VerifyBroker(ctx context.Context, id string, caller entity.Caller) (*entity.Broker, error) {
	if !policy.IsAdmin(caller) {
		return nil, fmt.Errorf("verify broker: %w", domainerrors.ErrForbidden)
	}
	broker, err := uc.getBroker(ctx, id)
	if err != nil {
		return nil, err
	}
	broker.IsVerified = !broker.IsVerified
	broker.UpdatedAt = uc.now()
	if err := uc.brokerRepo.UpdateBroker(ctx, broker); err != nil {
		uc.logger.Errorf("failed to verify broker %s: %v", id, err)
		return nil, fmt.Errorf("failed to update broker: %w", err)
	}
	dropListingPages(ctx, uc.pages, uc.logger)
	return broker, nil
}

// AddOrUpdateRating records caller's rating of a broker. A repeat rating replaces the previous one.
func (uc *BrokerUseCaseImpl) AddOrUpdateRating(ctx context.Context, brokerID string, caller entity.Caller, score int, comment string) (*entity.Broker, error) {
	if !caller.IsAuthenticated() {
		return nil, fmt.Errorf("rate broker: %w", domainerrors.ErrUnauthorized)
	}
	if score < entity.MinRatingScore || score > entity.MaxRatingScore {
		return nil, domainerrors.NewValidationError("rating", fmt.Sprintf("must be between %d and %d", entity.MinRatingScore, entity.MaxRatingScore))
	}
	broker, err := uc.getBroker(ctx, brokerID)
	if err != nil {
		return nil, err
	}
	broker.UpsertRating(entity.Rating{
		RaterID:   caller.ID,
		Score:     score,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: uc.now(),
	})
	broker.UpdatedAt = uc.now()
	if err := uc.brokerRepo.UpdateBroker(ctx, broker); err != nil {
		uc.logger.Errorf("failed to save rating on broker %s: %v", brokerID, err)
		return nil, fmt.Errorf("failed to update broker: %w", err)
	}
	metrics.IncBrokerRating()
	return broker, nil
}

func (uc *BrokerUseCaseImpl) getBroker(ctx context.Context, id string) (*entity.Broker, error) {
	broker, err := uc.brokerRepo.GetBrokerByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			uc.logger.Errorf("failed to get broker %s: %v", id, err)
		}
		return nil, fmt.Errorf("failed to get broker: %w", err)
	}
	return broker, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
