package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/providers"
)

// MockCacheProvider mocks providers.CacheProvider
type MockCacheProvider struct {
	mock.Mock
}

var _ providers.CacheProvider = (*MockCacheProvider)(nil)

// NewMockCacheProvider creates a mock wired to the test lifecycle
func NewMockCacheProvider(t *testing.T) *MockCacheProvider {
	m := &MockCacheProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	ret := m.Called(ctx, key)
	data, _ := ret.Get(0).([]byte)
	return data, ret.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	return m.Called(ctx, key, value, expirationSeconds).Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheProvider) DeleteByPrefix(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	ret := m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

// MockEventBus mocks providers.EventBus
type MockEventBus struct {
	mock.Mock
}

var _ providers.EventBus = (*MockEventBus)(nil)

// NewMockEventBus creates a mock wired to the test lifecycle
func NewMockEventBus(t *testing.T) *MockEventBus {
	m := &MockEventBus{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.BusinessEvent) error {
	return m.Called(ctx, channel, event).Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.BusinessEvent, error) {
	ret := m.Called(ctx, channel)
	ch, _ := ret.Get(0).(<-chan *entities.BusinessEvent)
	return ch, ret.Error(1)
}

func (m *MockEventBus) Close() error {
	return m.Called().Error(0)
}

// MockPaymentProvider mocks providers.PaymentProvider
type MockPaymentProvider struct {
	mock.Mock
}

var _ providers.PaymentProvider = (*MockPaymentProvider)(nil)

// NewMockPaymentProvider creates a mock wired to the test lifecycle
func NewMockPaymentProvider(t *testing.T) *MockPaymentProvider {
	m := &MockPaymentProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPaymentProvider) GetSubscription(ctx context.Context, subscriptionID string) (*providers.ProviderSubscription, error) {
	ret := m.Called(ctx, subscriptionID)
	sub, _ := ret.Get(0).(*providers.ProviderSubscription)
	return sub, ret.Error(1)
}
