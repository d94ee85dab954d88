package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
)

// MockLevelupService is a mock type for the levelup.Service type
type MockLevelupService struct {
	mock.Mock
}

// NewMockLevelupService creates a new instance of MockLevelupService and registers
// a cleanup function to assert the mocks expectations.
func NewMockLevelupService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLevelupService {
	m := &MockLevelupService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// GetOptions provides a mock function with given fields: ctx
func (_m *MockLevelupService) GetOptions(ctx context.Context) []domain.UpgradeOption {
	ret := _m.Called(ctx)
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).([]domain.UpgradeOption)
}

// RegisterPlayer provides a mock function with given fields: ctx, playerID
func (_m *MockLevelupService) RegisterPlayer(ctx context.Context, playerID string) (*domain.PlayerState, error) {
	ret := _m.Called(ctx, playerID)
	return playerStateResult(ret)
}

// GetPlayer provides a mock function with given fields: ctx, playerID
func (_m *MockLevelupService) GetPlayer(ctx context.Context, playerID string) (*domain.PlayerState, error) {
	ret := _m.Called(ctx, playerID)
	return playerStateResult(ret)
}

// AddExperience provides a mock function with given fields: ctx, playerID, amount
func (_m *MockLevelupService) AddExperience(ctx context.Context, playerID string, amount float64) (*domain.ExperienceResult, error) {
	ret := _m.Called(ctx, playerID, amount)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.ExperienceResult), ret.Error(1)
}

// Damage provides a mock function with given fields: ctx, playerID, amount
func (_m *MockLevelupService) Damage(ctx context.Context, playerID string, amount int) (*domain.PlayerState, error) {
	ret := _m.Called(ctx, playerID, amount)
	return playerStateResult(ret)
}

// Heal provides a mock function with given fields: ctx, playerID, amount
func (_m *MockLevelupService) Heal(ctx context.Context, playerID string, amount int) (*domain.PlayerState, error) {
	ret := _m.Called(ctx, playerID, amount)
	return playerStateResult(ret)
}

// StartDraft provides a mock function with given fields: ctx, playerID
func (_m *MockLevelupService) StartDraft(ctx context.Context, playerID string) (*domain.DraftSnapshot, error) {
	ret := _m.Called(ctx, playerID)
	return snapshotResult(ret)
}

// ConfirmChoice provides a mock function with given fields: ctx, playerID, index
func (_m *MockLevelupService) ConfirmChoice(ctx context.Context, playerID string, index int) (*domain.DraftResolution, error) {
	ret := _m.Called(ctx, playerID, index)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.DraftResolution), ret.Error(1)
}

// AbandonDraft provides a mock function with given fields: ctx, playerID
func (_m *MockLevelupService) AbandonDraft(ctx context.Context, playerID string) error {
	ret := _m.Called(ctx, playerID)
	return ret.Error(0)
}

// GetActiveDraft provides a mock function with given fields: ctx, playerID
func (_m *MockLevelupService) GetActiveDraft(ctx context.Context, playerID string) (*domain.DraftSnapshot, error) {
	ret := _m.Called(ctx, playerID)
	return snapshotResult(ret)
}

// PurchaseCount provides a mock function with given fields: ctx, playerID, optionKey
func (_m *MockLevelupService) PurchaseCount(ctx context.Context, playerID string, optionKey string) (int, error) {
	ret := _m.Called(ctx, playerID, optionKey)
	return ret.Int(0), ret.Error(1)
}

// GetLedger provides a mock function with given fields: ctx, playerID
func (_m *MockLevelupService) GetLedger(ctx context.Context, playerID string) (map[string]int, error) {
	ret := _m.Called(ctx, playerID)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(map[string]int), ret.Error(1)
}

// Shutdown provides a mock function with given fields: ctx
func (_m *MockLevelupService) Shutdown(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func playerStateResult(ret mock.Arguments) (*domain.PlayerState, error) {
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.PlayerState), ret.Error(1)
}

func snapshotResult(ret mock.Arguments) (*domain.DraftSnapshot, error) {
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.DraftSnapshot), ret.Error(1)
}
