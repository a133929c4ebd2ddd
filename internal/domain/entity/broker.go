package entity

import (
	"math"
	"time"

	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
)

// Rating is a single buyer or seller review of a broker.
type Rating struct {
	RaterID   string    `bson:"rater_id" json:"rater_id"`
	Score     int       `bson:"score" json:"score"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Broker is the directory profile of a broker account. One per user.
type Broker struct {
	ID                string     `bson:"_id,omitempty" json:"id"`
	UserID            string     `bson:"user_id" json:"user_id"`
	Description       string     `bson:"description,omitempty" json:"description,omitempty"`
	Regions           []string   `bson:"regions" json:"regions"`
	Specialties       []string   `bson:"specialties" json:"specialties"`
	ExperienceYears   int        `bson:"experience_years" json:"experience_years"`
	IsVerified        bool       `bson:"is_verified" json:"is_verified"`
	IsPremium         bool       `bson:"is_premium" json:"is_premium"`
	SubscriptionStart *time.Time `bson:"subscription_start,omitempty" json:"subscription_start,omitempty"`
	SubscriptionEnd   *time.Time `bson:"subscription_end,omitempty" json:"subscription_end,omitempty"`
	Ratings           []Rating   `bson:"ratings" json:"ratings"`
	ListingsHandled   []string   `bson:"listings_handled" json:"listings_handled"`
	CreatedAt         time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `bson:"updated_at" json:"updated_at"`
}

const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// UpsertRating stores r, replacing any previous rating by the same rater.
func (b *Broker) UpsertRating(r Rating) {
	for i := range b.Ratings {
		if b.Ratings[i].RaterID == r.RaterID {
			b.Ratings[i] = r
			return
		}
	}
	b.Ratings = append(b.Ratings, r)
}

// AverageRating is the mean score rounded to one decimal, 0 when unrated.
func (b *Broker) AverageRating() float64 {
	if len(b.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range b.Ratings {
		sum += r.Score
	}
	mean := float64(sum) / float64(len(b.Ratings))
	return math.Round(mean*10) / 10
}

// SubscriptionActive reports whether the premium subscription covers now.
func (b *Broker) SubscriptionActive(now time.Time) bool {
	return b.SubscriptionEnd != nil && now.Before(*b.SubscriptionEnd)
}

// AddHandledListing records a listing back-reference once.
func (b *Broker) AddHandledListing(listingID string) bool {
	for _, id := range b.ListingsHandled {
		if id == listingID {
			return false
		}
	}
	b.ListingsHandled = append(b.ListingsHandled, listingID)
	return true
}

// Validate checks the profile invariants before it is written.
func (b *Broker) Validate() error {
	verr := &domainerrors.ValidationError{}
	if b.UserID == "" {
		verr.Add("user", "is required")
	}
	if len(nonBlank(b.Regions)) == 0 {
		verr.Add("regions", "at least one operating region is required")
	}
	if b.ExperienceYears < 0 {
		verr.Add("experienceYears", "cannot be negative")
	}
	for _, r := range b.Ratings {
		if r.Score < MinRatingScore || r.Score > MaxRatingScore {
			verr.Add("rating", "must be between 1 and 5")
			break
		}
	}
	return verr.OrNil()
}
