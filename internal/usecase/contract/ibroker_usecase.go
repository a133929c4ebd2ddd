package usecasecontract

import (
	"context"
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
)

// BrokerCriteria filters the broker directory.
type BrokerCriteria struct {
	Region    string
	Specialty string
	Verified  bool
	Premium   bool
}

// BrokerView is a broker profile joined with its owner. User is nil when the account is gone.
type BrokerView struct {
	Broker *entity.Broker
	User   *entity.User
}

// CreateBrokerInput is a broker profile submission.
type CreateBrokerInput struct {
	Description     string
	Regions         []string
	Specialties     []string
	ExperienceYears int
}

// BrokerPatch holds the fields to change; nil means untouched.
// IsVerified, IsPremium and the subscription window are only applied for admins.
type BrokerPatch struct {
	Description       *string
	Regions           *[]string
	Specialties       *[]string
	ExperienceYears   *int
	IsVerified        *bool
	IsPremium         *bool
	SubscriptionStart *time.Time
	SubscriptionEnd   *time.Time
}

// IBrokerUseCase manages the broker directory and ratings.
type IBrokerUseCase interface {
	List(ctx context.Context, criteria BrokerCriteria) ([]BrokerView, error)
	Get(ctx context.Context, id string) (*BrokerView, error)
	CreateProfile(ctx context.Context, caller entity.Caller, input CreateBrokerInput) (*entity.Broker, error)
	UpdateProfile(ctx context.Context, id string, patch BrokerPatch, caller entity.Caller) (*entity.Broker, error)
	DeleteProfile(ctx context.Context, id string, caller entity.Caller) error
	VerifyBroker(ctx context.Context, id string, caller entity.Caller) (*entity.Broker, error)
	AddOrUpdateRating(ctx context.Context, brokerID string, caller entity.Caller, score int, comment string) (*entity.Broker, error)
}
