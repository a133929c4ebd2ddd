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

type BrokerRepository struct {
	mu      sync.RWMutex
	brokers map[string]*entity.Broker
}

var _ contract.IBrokerRepository = (*BrokerRepository)(nil)

func NewBrokerRepository() *BrokerRepository {
	return &BrokerRepository{brokers: make(map[string]*entity.Broker)}
}

func (r *BrokerRepository) CreateBroker(_ context.Context, broker *entity.Broker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.brokers {
		if b.UserID == broker.UserID || b.ID == broker.ID {
			return fmt.Errorf("broker profile for user %s: %w", broker.UserID, domainerrors.ErrConflict)
		}
	}
	r.brokers[broker.ID] = cloneBroker(broker)
	return nil
}

func (r *BrokerRepository) GetBrokerByID(_ context.Context, id string) (*entity.Broker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.brokers[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return cloneBroker(b), nil
}

func (r *BrokerRepository) GetBrokerByUserID(_ context.Context, userID string) (*entity.Broker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b := r.byUserIDLocked(userID); b != nil {
		return cloneBroker(b), nil
	}
	return nil, domainerrors.ErrNotFound
}

func (r *BrokerRepository) byUserIDLocked(userID string) *entity.Broker {
	for _, b := range r.brokers {
		if b.UserID == userID {
			return b
		}
	}
	return nil
}

// flags returns the badges of the profile owned by userID, false when there is none.
func (r *BrokerRepository) flags(userID string) (verified, premium bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b := r.byUserIDLocked(userID); b != nil {
		return b.IsVerified, b.IsPremium
	}
	return false, false
}

func containsFold(values []string, sub string) bool {
	sub = strings.ToLower(sub)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), sub) {
			return true
		}
	}
	return false
}

func (r *BrokerRepository) FindBrokers(_ context.Context, filter contract.BrokerFilter) ([]*entity.Broker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*entity.Broker{}
	for _, b := range r.brokers {
		if filter.Region != "" && !containsFold(b.Regions, filter.Region) {
			continue
		}
		if filter.Specialty != "" && !containsFold(b.Specialties, filter.Specialty) {
			continue
		}
		if filter.VerifiedOnly && !b.IsVerified {
			continue
		}
		if filter.PremiumOnly && !b.IsPremium {
			continue
		}
		out = append(out, cloneBroker(b))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsPremium != b.IsPremium {
			return a.IsPremium
		}
		if a.IsVerified != b.IsVerified {
			return a.IsVerified
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out, nil
}

func (r *BrokerRepository) UpdateBroker(_ context.Context, broker *entity.Broker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.brokers[broker.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	r.brokers[broker.ID] = cloneBroker(broker)
	return nil
}

func (r *BrokerRepository) DeleteBroker(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.brokers[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(r.brokers, id)
	return nil
}
