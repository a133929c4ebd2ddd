package entity

import (
	"fmt"
	"time"

	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
)

// ListingStatus is the moderation state of a listing.
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
)

// Valid reports whether s is a known moderation status.
func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusPending, ListingStatusApproved, ListingStatusRejected:
		return true
	}
	return false
}

// QualityGrade grades a batch of mangoes.
type QualityGrade string

const (
	QualityGradeAPlus QualityGrade = "A+"
	QualityGradeA     QualityGrade = "A"
	QualityGradeB     QualityGrade = "B"
	QualityGradeC     QualityGrade = "C"
)

// FarmingMethod describes how the crop was grown.
type FarmingMethod string

const (
	FarmingMethodOrganic     FarmingMethod = "Organic"
	FarmingMethodTraditional FarmingMethod = "Traditional"
	FarmingMethodMixed       FarmingMethod = "Mixed"
)

// MaxListingImages caps the image references stored on a listing.
const MaxListingImages = 5

// PriceRange is the asking price band per kg.
type PriceRange struct {
	Min float64 `bson:"min" json:"min"`
	Max float64 `bson:"max" json:"max"`
}

// Listing is an advertised batch of mango crop.
type Listing struct {
	ID            string         `bson:"_id,omitempty" json:"id"`
	Variety       string         `bson:"variety" json:"variety"`
	Quantity      int            `bson:"quantity" json:"quantity"`
	Location      string         `bson:"location" json:"location"`
	HarvestDate   time.Time      `bson:"harvest_date" json:"harvest_date"`
	SellerName    string         `bson:"seller_name" json:"seller_name"`
	SellerPhone   string         `bson:"seller_phone" json:"seller_phone"`
	Description   string         `bson:"description,omitempty" json:"description,omitempty"`
	Images        []string       `bson:"images" json:"images"`
	Status        ListingStatus  `bson:"status" json:"status"`
	Featured      bool           `bson:"featured" json:"featured"`
	SellerID      *string        `bson:"seller_id,omitempty" json:"seller_id,omitempty"`
	BrokerID      *string        `bson:"broker_id,omitempty" json:"broker_id,omitempty"`
	QualityGrade  *QualityGrade  `bson:"quality_grade,omitempty" json:"quality_grade,omitempty"`
	FarmingMethod *FarmingMethod `bson:"farming_method,omitempty" json:"farming_method,omitempty"`
	PriceRange    *PriceRange    `bson:"price_range,omitempty" json:"price_range,omitempty"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// OwnerID returns the linked seller id, or "" for anonymous submissions.
func (l *Listing) OwnerID() string {
	if l.SellerID == nil {
		return ""
	}
	return *l.SellerID
}

// VisibleTo reports whether caller may see the listing at all.
func (l *Listing) VisibleTo(caller Caller) bool {
	return caller.IsAdmin() || l.Status == ListingStatusApproved
}

// Approve moves a pending listing to approved. Approving an approved listing is a no-op.
func (l *Listing) Approve() (changed bool, err error) {
	return l.transition(ListingStatusApproved)
}

// Reject moves a pending listing to rejected. Rejecting a rejected listing is a no-op.
func (l *Listing) Reject() (changed bool, err error) {
	return l.transition(ListingStatusRejected)
}

// TransitionTo applies the moderation state machine for target.
func (l *Listing) TransitionTo(target ListingStatus) (changed bool, err error) {
	return l.transition(target)
}

func (l *Listing) transition(target ListingStatus) (bool, error) {
	if l.Status == target {
		return false, nil
	}
	if l.Status != ListingStatusPending || target == ListingStatusPending || !target.Valid() {
		return false, fmt.Errorf("%w: %s -> %s", domainerrors.ErrInvalidTransition, l.Status, target)
	}
	l.Status = target
	return true, nil
}

// ToggleFeatured flips the featured flag and returns the new value.
func (l *Listing) ToggleFeatured() bool {
	l.Featured = !l.Featured
	return l.Featured
}

// ListingAgeDays is the number of whole days since the listing was created.
func (l *Listing) ListingAgeDays(now time.Time) int {
	return absDays(now.Sub(l.CreatedAt))
}

// DaysUntilHarvest is the absolute number of whole days between now and the harvest date.
func (l *Listing) DaysUntilHarvest(now time.Time) int {
	return absDays(l.HarvestDate.Sub(now))
}

func absDays(d time.Duration) int {
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}

// Validate checks the field invariants of a listing before it is written.
func (l *Listing) Validate() error {
	verr := &domainerrors.ValidationError{}
	if l.Variety == "" {
		verr.Add("variety", "is required")
	}
	if l.Quantity < 1 {
		verr.Add("quantity", "must be at least 1 kg")
	}
	if l.Location == "" {
		verr.Add("location", "is required")
	}
	if l.HarvestDate.IsZero() {
		verr.Add("harvestDate", "is required")
	}
	if l.SellerName == "" {
		verr.Add("sellerName", "is required")
	}
	if !IsTenDigitPhone(l.SellerPhone) {
		verr.Add("sellerPhone", "must be a valid 10-digit phone number")
	}
	if len(l.Images) > MaxListingImages {
		verr.Add("images", fmt.Sprintf("maximum %d images allowed per listing", MaxListingImages))
	}
	if !l.Status.Valid() {
		verr.Add("status", "must be one of pending, approved, rejected")
	}
	if l.QualityGrade != nil && !l.QualityGrade.Valid() {
		verr.Add("qualityGrade", "must be one of A+, A, B, C")
	}
	if l.FarmingMethod != nil && !l.FarmingMethod.Valid() {
		verr.Add("farmingMethod", "must be one of Organic, Traditional, Mixed")
	}
	if l.PriceRange != nil {
		if l.PriceRange.Min < 0 {
			verr.Add("priceRange.min", "cannot be negative")
		}
		if l.PriceRange.Max < 0 {
			verr.Add("priceRange.max", "cannot be negative")
		}
	}
	return verr.OrNil()
}

// Valid reports whether g is a known grade.
func (g QualityGrade) Valid() bool {
	switch g {
	case QualityGradeAPlus, QualityGradeA, QualityGradeB, QualityGradeC:
		return true
	}
	return false
}

// Valid reports whether m is a known farming method.
func (m FarmingMethod) Valid() bool {
	switch m {
	case FarmingMethodOrganic, FarmingMethodTraditional, FarmingMethodMixed:
		return true
	}
	return false
}

// IsTenDigitPhone reports whether s consists of exactly ten ASCII digits.
func IsTenDigitPhone(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
