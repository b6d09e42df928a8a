package handlers

import (
	"context"
	"net/http"

	"github.com/BradenHooton/reviewhub/internal/query"
	"github.com/BradenHooton/reviewhub/internal/services"
	pkghttp "github.com/BradenHooton/reviewhub/pkg/http"
	"github.com/go-chi/chi/v5"
)

// UserServiceInterface defines the interface for user business logic
type UserServiceInterface interface {
	ListUsers(ctx context.Context, params query.Params) (query.Envelope[services.UserResponse], error)
	GetUser(ctx context.Context, id string) (*services.UserResponse, error)
	CreateUser(ctx context.Context, name, email, password string) (*services.UserResponse, error)
	UpdateUser(ctx context.Context, id, name, email string) (*services.UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=32"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest represents the request body for changing a password
type ChangePasswordRequest struct {
	PasswordOld     string `json:"password_old" validate:"required"`
	PasswordNew     string `json:"password_new" validate:"required,min=6,max=32"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=PasswordNew"`
}

// CreateUserResponse echoes the created account
type CreateUserResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IDResponse carries the id of the affected record
type IDResponse struct {
	ID string `json:"id"`
}

// RegisterRoutes registers all user routes with the chi router
func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)                            // GET /users
		r.Post("/", h.CreateUser)                          // POST /users
		r.Get("/{id}", h.GetUser)                          // GET /users/{id}
		r.Put("/{id}", h.UpdateUser)                       // PUT /users/{id}
		r.Delete("/{id}", h.DeleteUser)                    // DELETE /users/{id}
		r.Patch("/{id}/change-password", h.ChangePassword) // PATCH /users/{id}/change-password
	})
}

// ListUsers returns one page of users
//
// @Summary List users
// @Param sort query string false "field:asc|desc, field is email or name"
// @Param search query string false "field:term, field is email or name"
// @Param page_number query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 10, invalid returns all)"
// @Produce json
// @Success 200 {object} query.Envelope[services.UserResponse]
// @Router /users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	envelope, err := h.service.ListUsers(r.Context(), query.ParamsFromValues(r.URL.Query()))
	if err != nil {
		writeServiceError(w, err, "User not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, envelope)
}

// GetUser retrieves a user by ID
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Unknown user")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, user)
}

// CreateUser registers a new account
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, "Unknown user")
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, CreateUserResponse{Name: user.Name, Email: user.Email})
}

// UpdateUser changes a user's name and email
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateUserRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if _, err := h.service.UpdateUser(r.Context(), id, req.Name, req.Email); err != nil {
		writeServiceError(w, err, "Unknown user")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, IDResponse{ID: id})
}

// DeleteUser removes a user
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		writeServiceError(w, err, "Unknown user")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, IDResponse{ID: id})
}

// ChangePassword replaces a user's password after checking the old one
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ChangePasswordRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), id, req.PasswordOld, req.PasswordNew); err != nil {
		writeServiceError(w, err, "Unknown user")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, IDResponse{ID: id})
}
