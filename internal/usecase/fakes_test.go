package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/logger"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/repository/memory"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/validator"
)

type seqUUID struct {
	mu sync.Mutex
	n  int
}

func (g *seqUUID) NewUUID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%03d", g.n)
}

type sentMail struct {
	To, Subject, Body string
}

type spyMailer struct {
	sent []sentMail
	err  error
}

func (m *spyMailer) SendEmail(_ context.Context, to, subject, body string) error {
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return m.err
}

type mapCache struct {
	details map[string]*entity.Listing
	pages   map[string][]*entity.Listing
	getErr  error
	setErr  error
}

func newMapCache() *mapCache {
	return &mapCache{details: map[string]*entity.Listing{}, pages: map[string][]*entity.Listing{}}
}

func (c *mapCache) GetListing(_ context.Context, id string) (*entity.Listing, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	l, ok := c.details[id]
	if !ok {
		return nil, false, nil
	}
	cp := *l
	return &cp, true, nil
}

func (c *mapCache) SetListing(_ context.Context, l *entity.Listing) error {
	if c.setErr != nil {
		return c.setErr
	}
	cp := *l
	c.details[l.ID] = &cp
	return nil
}

func (c *mapCache) InvalidateListing(_ context.Context, id string) error {
	delete(c.details, id)
	return nil
}

func (c *mapCache) GetListingsPage(_ context.Context, key string) ([]*entity.Listing, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	p, ok := c.pages[key]
	return p, ok, nil
}

func (c *mapCache) SetListingsPage(_ context.Context, key string, listings []*entity.Listing) error {
	c.pages[key] = listings
	return nil
}

func (c *mapCache) InvalidateListingLists(_ context.Context) error {
	for k := range c.pages {
		if strings.HasPrefix(k, "listings:list:") {
			delete(c.pages, k)
		}
	}
	return nil
}

// fakeJWT encodes "userID|role" so tests can mint tokens without a signing key.
type fakeJWT struct{}

func (fakeJWT) GenerateAccessToken(userID string, role entity.UserRole) (string, error) {
	return userID + "|" + string(role), nil
}

func (fakeJWT) ParseAccessToken(token string) (*entity.Claims, error) {
	parts := strings.SplitN(token, "|", 2)
	if len(parts) != 2 || parts[0] == "" {
		return nil, errors.New("malformed token")
	}
	return &entity.Claims{UserID: parts[0], Role: entity.UserRole(parts[1])}, nil
}

type plainHasher struct{}

func (plainHasher) HashPassword(p string) (string, error) { return "hashed:" + p, nil }

func (plainHasher) ComparePasswordHash(p, h string) error {
	if h != "hashed:"+p {
		return errors.New("mismatch")
	}
	return nil
}

type fixture struct {
	users    *memory.UserRepository
	brokers  *memory.BrokerRepository
	listings *memory.ListingRepository
	listing  *ListingUseCaseImpl
	broker   *BrokerUseCaseImpl
	user     *UserUsecase
}

func newFixture() *fixture {
	users := memory.NewUserRepository()
	brokers := memory.NewBrokerRepository()
	listings := memory.NewListingRepository(brokers)
	ids := &seqUUID{}
	log := logger.NewNopLogger()
	return &fixture{
		users:    users,
		brokers:  brokers,
		listings: listings,
		listing:  NewListingUseCase(listings, brokers, users, ids, log),
		broker:   NewBrokerUseCase(brokers, users, ids, log),
		user:     NewUserUsecase(users, brokers, plainHasher{}, fakeJWT{}, log, validator.NewValidator(), ids),
	}
}

var (
	admin  = entity.Caller{ID: "admin-1", Role: entity.UserRoleAdmin}
	seller = entity.Caller{ID: "seller-1", Role: entity.UserRoleSeller}
	other  = entity.Caller{ID: "seller-2", Role: entity.UserRoleSeller}
	buyer  = entity.Caller{ID: "buyer-1", Role: entity.UserRoleBuyer}
)
