package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/UpgradeDraft_Go/internal/event"
	"github.com/osse101/UpgradeDraft_Go/internal/eventlog"
)

// MockEventlogService is a mock type for the eventlog.Service type
type MockEventlogService struct {
	mock.Mock
}

// NewMockEventlogService creates a new instance of MockEventlogService and registers
// a cleanup function to assert the mocks expectations.
func NewMockEventlogService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventlogService {
	m := &MockEventlogService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Subscribe provides a mock function with given fields: bus
func (_m *MockEventlogService) Subscribe(bus event.Bus) error {
	ret := _m.Called(bus)
	return ret.Error(0)
}

// GetEvents provides a mock function with given fields: ctx, filter
func (_m *MockEventlogService) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	ret := _m.Called(ctx, filter)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]eventlog.Event), ret.Error(1)
}

// CleanupOldEvents provides a mock function with given fields: ctx, retention
func (_m *MockEventlogService) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	ret := _m.Called(ctx, retention)
	return ret.Get(0).(int64), ret.Error(1)
}
