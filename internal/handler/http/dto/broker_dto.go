package dto

import (
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
)

// CreateBrokerRequest is the body of POST /brokers.
type CreateBrokerRequest struct {
	Description     string   `json:"description"`
	Regions         []string `json:"regions" binding:"required,min=1"`
	Specialties     []string `json:"specialties"`
	ExperienceYears int      `json:"experienceYears" binding:"gte=0"`
}

func (r CreateBrokerRequest) ToInput() usecasecontract.CreateBrokerInput {
	return usecasecontract.CreateBrokerInput{
		Description:     r.Description,
		Regions:         r.Regions,
		Specialties:     r.Specialties,
		ExperienceYears: r.ExperienceYears,
	}
}

// UpdateBrokerRequest is the body of PUT /brokers/:id. Badge and subscription fields are admin only.
type UpdateBrokerRequest struct {
	Description       *string   `json:"description"`
	Regions           *[]string `json:"regions"`
	Specialties       *[]string `json:"specialties"`
	ExperienceYears   *int      `json:"experienceYears" binding:"omitempty,gte=0"`
	IsVerified        *bool     `json:"isVerified"`
	IsPremium         *bool     `json:"isPremium"`
	SubscriptionStart *Date     `json:"subscriptionStart"`
	SubscriptionEnd   *Date     `json:"subscriptionEnd"`
}

func (r UpdateBrokerRequest) ToPatch() usecasecontract.BrokerPatch {
	return usecasecontract.BrokerPatch{
		Description:       r.Description,
		Regions:           r.Regions,
		Specialties:       r.Specialties,
		ExperienceYears:   r.ExperienceYears,
		IsVerified:        r.IsVerified,
		IsPremium:         r.IsPremium,
		SubscriptionStart: r.SubscriptionStart.Ptr(),
		SubscriptionEnd:   r.SubscriptionEnd.Ptr(),
	}
}

// RatingRequest is the body of POST /brokers/:id/ratings.
type RatingRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// BrokerOwnerResponse is the public contact card joined onto a broker.
type BrokerOwnerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type RatingResponse struct {
	UserID    string `json:"user"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// BrokerResponse is the DTO for a broker profile, including derived values.
type BrokerResponse struct {
	ID                 string               `json:"id"`
	User               *BrokerOwnerResponse `json:"user,omitempty"`
	UserID             string               `json:"userId"`
	Description        string               `json:"description,omitempty"`
	Regions            []string             `json:"regions"`
	Specialties        []string             `json:"specialties"`
	ExperienceYears    int                  `json:"experienceYears"`
	IsVerified         bool                 `json:"isVerified"`
	IsPremium          bool                 `json:"isPremium"`
	SubscriptionStart  *string              `json:"subscriptionStart,omitempty"`
	SubscriptionEnd    *string              `json:"subscriptionEnd,omitempty"`
	SubscriptionActive bool                 `json:"subscriptionActive"`
	Ratings            []RatingResponse     `json:"ratings"`
	AverageRating      float64              `json:"averageRating"`
	ListingsHandled    []string             `json:"listingsHandled"`
	CreatedAt          string               `json:"createdAt"`
	UpdatedAt          string               `json:"updatedAt"`
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// ToBrokerResponse converts a broker and its optional owner, computing derived values at now.
func ToBrokerResponse(b *entity.Broker, owner *entity.User, now time.Time) BrokerResponse {
	resp := BrokerResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		Description:        b.Description,
		Regions:            nonNil(b.Regions),
		Specialties:        nonNil(b.Specialties),
		ExperienceYears:    b.ExperienceYears,
		IsVerified:         b.IsVerified,
		IsPremium:          b.IsPremium,
		SubscriptionStart:  formatTimePtr(b.SubscriptionStart),
		SubscriptionEnd:    formatTimePtr(b.SubscriptionEnd),
		SubscriptionActive: b.SubscriptionActive(now),
		Ratings:            make([]RatingResponse, 0, len(b.Ratings)),
		AverageRating:      b.AverageRating(),
		ListingsHandled:    nonNil(b.ListingsHandled),
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}
	for _, r := range b.Ratings {
		resp.Ratings = append(resp.Ratings, RatingResponse{
			UserID:    r.RaterID,
			Rating:    r.Score,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	if owner != nil {
		resp.User = &BrokerOwnerResponse{ID: owner.ID, Name: owner.Name, Email: owner.Email, Phone: owner.Phone}
	}
	return resp
}

// ToBrokerResponses converts directory views, never returning nil.
func ToBrokerResponses(views []usecasecontract.BrokerView, now time.Time) []BrokerResponse {
	out := make([]BrokerResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToBrokerResponse(v.Broker, v.User, now))
	}
	return out
}

// BrokerActionResponse pairs a broker with a confirmation message.
type BrokerActionResponse struct {
	Message string         `json:"message"`
	Broker  BrokerResponse `json:"broker"`
}
