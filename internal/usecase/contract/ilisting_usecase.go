package usecasecontract

import (
	"context"
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
)

// ListingCriteria is the caller supplied listing query. Status is only honored for admins.
type ListingCriteria struct {
	Status          *entity.ListingStatus
	Variety         *string
	Location        *string
	MinQuantity     *int
	MaxQuantity     *int
	HarvestDateFrom *time.Time
	HarvestDateTo   *time.Time
	Featured        bool
}

// CreateListingInput is a new listing submission.
type CreateListingInput struct {
	Variety       string
	Quantity      int
	Location      string
	HarvestDate   time.Time
	SellerName    string
	SellerPhone   string
	Description   string
	Images        []string
	QualityGrade  *entity.QualityGrade
	FarmingMethod *entity.FarmingMethod
	PriceRange    *entity.PriceRange
}

// ListingPatch holds the fields to change; nil means untouched.
// Status, Featured and BrokerID are only applied for admins.
type ListingPatch struct {
	Variety       *string
	Quantity      *int
	Location      *string
	HarvestDate   *time.Time
	SellerName    *string
	SellerPhone   *string
	Description   *string
	Images        *[]string
	QualityGrade  *entity.QualityGrade
	FarmingMethod *entity.FarmingMethod
	PriceRange    *entity.PriceRange
	Status        *entity.ListingStatus
	Featured      *bool
	BrokerID      *string
}

// ListingStats counts listings per moderation status.
type ListingStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

// IListingUseCase is the listing visibility and moderation engine.
type IListingUseCase interface {
	ListVisible(ctx context.Context, criteria ListingCriteria, caller entity.Caller) ([]*entity.Listing, error)
	GetVisible(ctx context.Context, id string, caller entity.Caller) (*entity.Listing, error)
	Create(ctx context.Context, input CreateListingInput, caller entity.Caller) (*entity.Listing, error)
	Update(ctx context.Context, id string, patch ListingPatch, caller entity.Caller) (*entity.Listing, error)
	Approve(ctx context.Context, id string, caller entity.Caller) (*entity.Listing, error)
	Reject(ctx context.Context, id string, caller entity.Caller) (*entity.Listing, error)
	ToggleFeatured(ctx context.Context, id string, caller entity.Caller) (*entity.Listing, error)
	Delete(ctx context.Context, id string, caller entity.Caller) error
	Stats(ctx context.Context, caller entity.Caller) (*ListingStats, error)
}
