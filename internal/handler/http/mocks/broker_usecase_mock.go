package mocks

import (
	"context"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
)

// MockBrokerUsecase records the calls it receives and returns canned values.
type MockBrokerUsecase struct {
	Err    error
	Broker entity.Broker
	Views  []usecasecontract.BrokerView

	LastCriteria usecasecontract.BrokerCriteria
	LastCaller   entity.Caller
	LastID       string
	LastAction   string
}

var _ usecasecontract.IBrokerUseCase = (*MockBrokerUsecase)(nil)

func (m *MockBrokerUsecase) record(action, id string, caller entity.Caller) {
	m.LastAction = action
	m.LastID = id
	m.LastCaller = caller
}

func (m *MockBrokerUsecase) result() (*entity.Broker, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	b := m.Broker
	return &b, nil
}

func (m *MockBrokerUsecase) List(_ context.Context, criteria usecasecontract.BrokerCriteria) ([]usecasecontract.BrokerView, error) {
	m.LastAction = "list"
	m.LastCriteria = criteria
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Views, nil
}

func (m *MockBrokerUsecase) Get(_ context.Context, id string) (*usecasecontract.BrokerView, error) {
	m.record("get", id, entity.Anonymous)
	b, err := m.result()
	if err != nil {
		return nil, err
	}
	return &usecasecontract.BrokerView{Broker: b}, nil
}

func (m *MockBrokerUsecase) CreateProfile(_ context.Context, caller entity.Caller, _ usecasecontract.CreateBrokerInput) (*entity.Broker, error) {
	m.record("create", "", caller)
	return m.result()
}

func (m *MockBrokerUsecase) UpdateProfile(_ context.Context, id string, _ usecasecontract.BrokerPatch, caller entity.Caller) (*entity.Broker, error) {
	m.record("update", id, caller)
	return m.result()
}

func (m *MockBrokerUsecase) DeleteProfile(_ context.Context, id string, caller entity.Caller) error {
	m.record("delete", id, caller)
	return m.Err
}

func (m *MockBrokerUsecase) VerifyBroker(_ context.Context, id string, caller entity.Caller) (*entity.Broker, error) {
	m.record("verify", id, caller)
	return m.result()
}

func (m *MockBrokerUsecase) AddOrUpdateRating(_ context.Context, brokerID string, caller entity.Caller, _ int, _ string) (*entity.Broker, error) {
	m.record("rate", brokerID, caller)
	return m.result()
}
