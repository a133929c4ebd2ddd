package contract

import (
	"context"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
)

// BrokerFilter narrows the broker directory.
type BrokerFilter struct {
	Region       string // case-insensitive substring of any region
	Specialty    string // case-insensitive substring of any specialty
	VerifiedOnly bool
	PremiumOnly  bool
}

// IBrokerRepository persists broker profiles. Lookups of a missing profile return domainerrors.ErrNotFound.
type IBrokerRepository interface {
	CreateBroker(ctx context.Context, broker *entity.Broker) error
	GetBrokerByID(ctx context.Context, id string) (*entity.Broker, error)
	GetBrokerByUserID(ctx context.Context, userID string) (*entity.Broker, error)
	// FindBrokers returns profiles ordered premium first, then verified, then newest.
	FindBrokers(ctx context.Context, filter BrokerFilter) ([]*entity.Broker, error)
	UpdateBroker(ctx context.Context, broker *entity.Broker) error
	DeleteBroker(ctx context.Context, id string) error
}
