package services

import (
	"context"
	"sync"
	"time"

	"github.com/BradenHooton/reviewhub/internal/models"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	ListAllFunc        func(ctx context.Context) ([]*models.User, error)
	GetByIDFunc        func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	CreateFunc         func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFunc         func(ctx context.Context, id string, user *models.User) (*models.User, error)
	UpdatePasswordFunc func(ctx context.Context, id, passwordHash string) error
	DeleteFunc         func(ctx context.Context, id string) error
}

func (m *MockUserRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return user, nil
}

func (m *MockUserRepository) Update(ctx context.Context, id string, user *models.User) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, user)
	}
	return user, nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockReviewRepository implements ReviewRepository for testing
type MockReviewRepository struct {
	ListAllFunc func(ctx context.Context) ([]*models.Review, error)
	GetByIDFunc func(ctx context.Context, id string) (*models.Review, error)
	CreateFunc  func(ctx context.Context, review *models.Review) (*models.Review, error)
	UpdateFunc  func(ctx context.Context, id string, review *models.Review) (*models.Review, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockReviewRepository) ListAll(ctx context.Context) ([]*models.Review, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []*models.Review{}, nil
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, review)
	}
	return review, nil
}

func (m *MockReviewRepository) Update(ctx context.Context, id string, review *models.Review) (*models.Review, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, review)
	}
	return review, nil
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockTokenGenerator implements TokenGenerator for testing
type MockTokenGenerator struct {
	GenerateAccessTokenFunc func(userID, email string) (string, error)
}

func (m *MockTokenGenerator) GenerateAccessToken(userID, email string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, email)
	}
	return "access-token-" + userID, nil
}

// MockLockoutNotifier records lockout notices
type MockLockoutNotifier struct {
	mu      sync.Mutex
	Notices []string
	Err     error
}

func (m *MockLockoutNotifier) NotifyLockout(ctx context.Context, email string, failures int, cooldown time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notices = append(m.Notices, email)
	return m.Err
}

func (m *MockLockoutNotifier) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Notices...)
}

// NewTestUser creates a test user with default values
func NewTestUser(id, email, name string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestUserWithPassword creates a test user with a password hash
func NewTestUserWithPassword(id, email, name, passwordHash string) *models.User {
	user := NewTestUser(id, email, name)
	user.PasswordHash = passwordHash
	return user
}

// NewTestReview creates a test review
func NewTestReview(id, productName, review string, star int) *models.Review {
	now := time.Now()
	return &models.Review{
		ID:          id,
		ProductName: productName,
		Review:      review,
		Star:        star,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
