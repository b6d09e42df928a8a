package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BradenHooton/reviewhub/internal/models"
	"github.com/BradenHooton/reviewhub/internal/query"
	"github.com/BradenHooton/reviewhub/internal/services"
	pkghttp "github.com/BradenHooton/reviewhub/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// serve routes req through a chi router so URL params resolve
func serve(register func(chi.Router), req *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	register(router)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) pkghttp.ErrorResponse {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
	return resp
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	LoginFunc func(ctx context.Context, email, password, ipAddress string) (*services.LoginResponse, error)
}

func (m *MockAuthService) Login(ctx context.Context, email, password, ipAddress string) (*services.LoginResponse, error) {
	if m.LoginFunc == nil {
		return nil, models.ErrInvalidCredentials
	}
	return m.LoginFunc(ctx, email, password, ipAddress)
}

// MockUserService implements UserServiceInterface for testing
type MockUserService struct {
	ListUsersFunc      func(ctx context.Context, params query.Params) (query.Envelope[services.UserResponse], error)
	GetUserFunc        func(ctx context.Context, id string) (*services.UserResponse, error)
	CreateUserFunc     func(ctx context.Context, name, email, password string) (*services.UserResponse, error)
	UpdateUserFunc     func(ctx context.Context, id, name, email string) (*services.UserResponse, error)
	DeleteUserFunc     func(ctx context.Context, id string) error
	ChangePasswordFunc func(ctx context.Context, id, oldPassword, newPassword string) error
}

func (m *MockUserService) ListUsers(ctx context.Context, params query.Params) (query.Envelope[services.UserResponse], error) {
	if m.ListUsersFunc == nil {
		return query.Envelope[services.UserResponse]{Data: []services.UserResponse{}}, nil
	}
	return m.ListUsersFunc(ctx, params)
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*services.UserResponse, error) {
	if m.GetUserFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetUserFunc(ctx, id)
}

func (m *MockUserService) CreateUser(ctx context.Context, name, email, password string) (*services.UserResponse, error) {
	if m.CreateUserFunc == nil {
		return &services.UserResponse{ID: "new", Name: name, Email: email}, nil
	}
	return m.CreateUserFunc(ctx, name, email, password)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id, name, email string) (*services.UserResponse, error) {
	if m.UpdateUserFunc == nil {
		return &services.UserResponse{ID: id, Name: name, Email: email}, nil
	}
	return m.UpdateUserFunc(ctx, id, name, email)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id string) error {
	if m.DeleteUserFunc == nil {
		return nil
	}
	return m.DeleteUserFunc(ctx, id)
}

func (m *MockUserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	if m.ChangePasswordFunc == nil {
		return nil
	}
	return m.ChangePasswordFunc(ctx, id, oldPassword, newPassword)
}

// MockReviewService implements ReviewServiceInterface for testing
type MockReviewService struct {
	ListReviewsFunc  func(ctx context.Context, params query.Params) (query.Envelope[services.ReviewResponse], error)
	GetReviewFunc    func(ctx context.Context, id string) (*services.ReviewDetail, error)
	CreateReviewFunc func(ctx context.Context, detail services.ReviewDetail) (*services.ReviewResponse, error)
	UpdateReviewFunc func(ctx context.Context, id string, detail services.ReviewDetail) (*services.ReviewResponse, error)
	DeleteReviewFunc func(ctx context.Context, id string) error
}

func (m *MockReviewService) ListReviews(ctx context.Context, params query.Params) (query.Envelope[services.ReviewResponse], error) {
	if m.ListReviewsFunc == nil {
		return query.Envelope[services.ReviewResponse]{Data: []services.ReviewResponse{}}, nil
	}
	return m.ListReviewsFunc(ctx, params)
}

func (m *MockReviewService) GetReview(ctx context.Context, id string) (*services.ReviewDetail, error) {
	if m.GetReviewFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetReviewFunc(ctx, id)
}

func (m *MockReviewService) CreateReview(ctx context.Context, detail services.ReviewDetail) (*services.ReviewResponse, error) {
	if m.CreateReviewFunc == nil {
		return &services.ReviewResponse{ID: "new", ProductName: detail.ProductName, Review: detail.Review, Star: detail.Star}, nil
	}
	return m.CreateReviewFunc(ctx, detail)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, id string, detail services.ReviewDetail) (*services.ReviewResponse, error) {
	if m.UpdateReviewFunc == nil {
		return &services.ReviewResponse{ID: id, ProductName: detail.ProductName, Review: detail.Review, Star: detail.Star}, nil
	}
	return m.UpdateReviewFunc(ctx, id, detail)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, id string) error {
	if m.DeleteReviewFunc == nil {
		return nil
	}
	return m.DeleteReviewFunc(ctx, id)
}
