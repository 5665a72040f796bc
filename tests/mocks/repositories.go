// Package mocks provides hand-maintained testify mocks for the domain
// interfaces. The EXPECT helpers keep call sites close to mockery's
// generated style without the codegen step.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
)

// MockBusinessRepository mocks repositories.BusinessRepository
type MockBusinessRepository struct {
	mock.Mock
}

var _ repositories.BusinessRepository = (*MockBusinessRepository)(nil)

// NewMockBusinessRepository creates a mock wired to the test lifecycle
func NewMockBusinessRepository(t *testing.T) *MockBusinessRepository {
	m := &MockBusinessRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBusinessRepository) Create(ctx context.Context, business *entities.Business) error {
	return m.Called(ctx, business).Error(0)
}

func (m *MockBusinessRepository) GetByID(ctx context.Context, id string) (*entities.Business, error) {
	ret := m.Called(ctx, id)
	business, _ := ret.Get(0).(*entities.Business)
	return business, ret.Error(1)
}

func (m *MockBusinessRepository) GetBySlug(ctx context.Context, slug string) (*entities.Business, error) {
	ret := m.Called(ctx, slug)
	business, _ := ret.Get(0).(*entities.Business)
	return business, ret.Error(1)
}

func (m *MockBusinessRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	ret := m.Called(ctx, slug)
	return ret.Bool(0), ret.Error(1)
}

func (m *MockBusinessRepository) Update(ctx context.Context, business *entities.Business) error {
	return m.Called(ctx, business).Error(0)
}

func (m *MockBusinessRepository) List(ctx context.Context, filter repositories.BusinessFilter) ([]*entities.Business, error) {
	ret := m.Called(ctx, filter)
	businesses, _ := ret.Get(0).([]*entities.Business)
	return businesses, ret.Error(1)
}

func (m *MockBusinessRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Business, error) {
	ret := m.Called(ctx, ownerID)
	businesses, _ := ret.Get(0).([]*entities.Business)
	return businesses, ret.Error(1)
}

func (m *MockBusinessRepository) ListPending(ctx context.Context) ([]*entities.Business, error) {
	ret := m.Called(ctx)
	businesses, _ := ret.Get(0).([]*entities.Business)
	return businesses, ret.Error(1)
}

func (m *MockBusinessRepository) SetApproval(ctx context.Context, id string, approved bool) error {
	return m.Called(ctx, id, approved).Error(0)
}

func (m *MockBusinessRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBusinessRepository) IncrementViews(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBusinessRepository) IncrementClicks(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBusinessRepository) SetPremiumByOwner(ctx context.Context, ownerID string, premium bool) error {
	return m.Called(ctx, ownerID, premium).Error(0)
}

func (m *MockBusinessRepository) UpdateRating(ctx context.Context, id string, avg float64, count int) error {
	return m.Called(ctx, id, avg, count).Error(0)
}

// MockBusinessSearchRepository mocks repositories.BusinessSearchRepository
type MockBusinessSearchRepository struct {
	mock.Mock
}

var _ repositories.BusinessSearchRepository = (*MockBusinessSearchRepository)(nil)

// NewMockBusinessSearchRepository creates a mock wired to the test lifecycle
func NewMockBusinessSearchRepository(t *testing.T) *MockBusinessSearchRepository {
	m := &MockBusinessSearchRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBusinessSearchRepository) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Business, error) {
	ret := m.Called(ctx, params)
	businesses, _ := ret.Get(0).([]*entities.Business)
	return businesses, ret.Error(1)
}

func (m *MockBusinessSearchRepository) Index(ctx context.Context, business *entities.Business) error {
	return m.Called(ctx, business).Error(0)
}

func (m *MockBusinessSearchRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockUserRepository mocks repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

var _ repositories.UserRepository = (*MockUserRepository)(nil)

// NewMockUserRepository creates a mock wired to the test lifecycle
func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	ret := m.Called(ctx, id)
	user, _ := ret.Get(0).(*entities.User)
	return user, ret.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	ret := m.Called(ctx, email)
	user, _ := ret.Get(0).(*entities.User)
	return user, ret.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id string, role entities.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

// MockReviewRepository mocks repositories.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

var _ repositories.ReviewRepository = (*MockReviewRepository)(nil)

// NewMockReviewRepository creates a mock wired to the test lifecycle
func NewMockReviewRepository(t *testing.T) *MockReviewRepository {
	m := &MockReviewRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entities.Review, error) {
	ret := m.Called(ctx, businessID, limit, offset)
	reviews, _ := ret.Get(0).([]*entities.Review)
	return reviews, ret.Error(1)
}

func (m *MockReviewRepository) AggregateForBusiness(ctx context.Context, businessID string) (float64, int, error) {
	ret := m.Called(ctx, businessID)
	return ret.Get(0).(float64), ret.Int(1), ret.Error(2)
}

// MockSubscriptionRepository mocks repositories.SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

var _ repositories.SubscriptionRepository = (*MockSubscriptionRepository)(nil)

// NewMockSubscriptionRepository creates a mock wired to the test lifecycle
func NewMockSubscriptionRepository(t *testing.T) *MockSubscriptionRepository {
	m := &MockSubscriptionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSubscriptionRepository) Activate(ctx context.Context, sub *entities.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubscriptionRepository) GetByUser(ctx context.Context, userID string) (*entities.Subscription, error) {
	ret := m.Called(ctx, userID)
	sub, _ := ret.Get(0).(*entities.Subscription)
	return sub, ret.Error(1)
}

func (m *MockSubscriptionRepository) GetByProviderID(ctx context.Context, providerSubscriptionID string) (*entities.Subscription, error) {
	ret := m.Called(ctx, providerSubscriptionID)
	sub, _ := ret.Get(0).(*entities.Subscription)
	return sub, ret.Error(1)
}
