package mocks

import (
	"context"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
)

// MockListingUsecase records the calls it receives and returns canned values.
type MockListingUsecase struct {
	Err         error
	Listing     entity.Listing
	Listings    []*entity.Listing
	StatsResult usecasecontract.ListingStats

	LastCriteria usecasecontract.ListingCriteria
	LastInput    usecasecontract.CreateListingInput
	LastPatch    usecasecontract.ListingPatch
	LastCaller   entity.Caller
	LastID       string
	LastAction   string
}

var _ usecasecontract.IListingUseCase = (*MockListingUsecase)(nil)

func (m *MockListingUsecase) record(action, id string, caller entity.Caller) {
	m.LastAction = action
	m.LastID = id
	m.LastCaller = caller
}

func (m *MockListingUsecase) result() (*entity.Listing, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	l := m.Listing
	return &l, nil
}

func (m *MockListingUsecase) ListVisible(ctx context.Context, criteria usecasecontract.ListingCriteria, caller entity.Caller) ([]*entity.Listing, error) {
	m.record("list", "", caller)
	m.LastCriteria = criteria
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Listings, nil
}

func (m *MockListingUsecase) GetVisible(ctx context.Context, id string, caller entity.Caller) (*entity.Listing, error) {
	m.record("get", id, caller)
	return m.result()
}

func (m *MockListingUsecase) Create(ctx context.Context, input usecasecontract.CreateListingInput, caller entity.Caller) (*entity.Listing, error) {
	m.record("create", "", caller)
	m.LastInput = input
	return m.result()
}

func (m *MockListingUsecase) Update(ctx context.Context, id string, patch usecasecontract.ListingPatch, caller entity.Caller) (*entity.Listing, error) {
	m.record("update", id, caller)
	m.LastPatch = patch
	return m.result()
}

func (m *MockListingUsecase) Approve(ctx context.Context, id string, caller entity.Caller) (*entity.Listing, error) {
	m.record("approve", id, caller)
	return m.result()
}

func (m *MockListingUsecase) Reject(ctx context.Context, id string, caller entity.Caller) (*entity.Listing, error) {
	m.record("reject", id, caller)
	return m.result()
}

func (m *MockListingUsecase) ToggleFeatured(ctx context.Context, id string, caller entity.Caller) (*entity.Listing, error) {
	m.record("feature", id, caller)
	return m.result()
}

func (m *MockListingUsecase) Delete(ctx context.Context, id string, caller entity.Caller) error {
	m.record("delete", id, caller)
	return m.Err
}

func (m *MockListingUsecase) Stats(ctx context.Context, caller entity.Caller) (*usecasecontract.ListingStats, error) {
	m.record("stats", "", caller)
	if m.Err != nil {
		return nil, m.Err
	}
	s := m.StatsResult
	return &s, nil
}
