package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BradenHooton/reviewhub/internal/models"
	"github.com/BradenHooton/reviewhub/internal/query"
	pkgauth "github.com/BradenHooton/reviewhub/pkg/auth"
	pkglogger "github.com/BradenHooton/reviewhub/pkg/logger"
)

// UserRepository defines the storage operations the user and auth services need
type UserRepository interface {
	ListAll(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

// UserResponse represents a user in the HTTP response
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func userModelToResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// UserResource describes how users are listed. An unusable page_size returns every match on one page.
func UserResource(defaultPageSize int) query.Resource[*models.User, UserResponse] {
	fields := map[string]query.Field[*models.User]{
		"email": func(u *models.User) string { return u.Email },
		"name":  func(u *models.User) string { return u.Name },
	}

	return query.Resource[*models.User, UserResponse]{
		Name:       "users",
		Sortable:   fields,
		Searchable: fields,
		Page:       query.PagePolicy{DefaultSize: defaultPageSize, Fallback: query.FallbackAll},
		Project:    userModelToResponse,
	}
}

// UserService handles user business logic
type UserService struct {
	repo        UserRepository
	hasher      *pkgauth.Hasher
	pipeline    *query.Pipeline[*models.User, UserResponse]
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewUserService creates a new UserService
func NewUserService(repo UserRepository, hasher *pkgauth.Hasher, collation *query.Collation, defaultPageSize int, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *UserService {
	return &UserService{
		repo:        repo,
		hasher:      hasher,
		pipeline:    query.NewPipeline(UserResource(defaultPageSize), collation),
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// ListUsers fetches every user and applies sort, search and pagination
func (s *UserService) ListUsers(ctx context.Context, params query.Params) (query.Envelope[UserResponse], error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.Any("error", err))
		return query.Envelope[UserResponse]{}, models.ErrInternalServer
	}

	return s.pipeline.Run(users, params), nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	resp := userModelToResponse(user)
	return &resp, nil
}

// EmailIsRegistered reports whether an account uses exactly this email
func (s *UserService) EmailIsRegistered(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		s.logger.Error("failed to look up email", slog.Any("error", err))
		return false, models.ErrInternalServer
	}
	return true, nil
}

// CreateUser registers a new account. Returns models.ErrConflict if the email is taken.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string) (*UserResponse, error) {
	registered, err := s.EmailIsRegistered(ctx, email)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, models.ErrConflict
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user, err := s.repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, s.writeError("create user", "", err)
	}

	s.logger.Info("user created", slog.String("user_id", user.ID))
	s.auditLogger.LogAccountAction(ctx, "user_created", user.ID)

	resp := userModelToResponse(user)
	return &resp, nil
}

// UpdateUser changes name and email. Returns models.ErrConflict if another account has the email.
func (s *UserService) UpdateUser(ctx context.Context, id, name, email string) (*UserResponse, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != id:
		return nil, models.ErrConflict
	case err != nil && !errors.Is(err, models.ErrNotFound):
		s.logger.Error("failed to look up email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user, err := s.repo.Update(ctx, id, &models.User{Name: name, Email: email})
	if err != nil {
		return nil, s.writeError("update user", id, err)
	}

	s.logger.Info("user updated", slog.String("user_id", id))
	s.auditLogger.LogAccountAction(ctx, "user_updated", id)

	resp := userModelToResponse(user)
	return &resp, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.writeError("delete user", id, err)
	}

	s.logger.Info("user deleted", slog.String("user_id", id))
	s.auditLogger.LogAccountAction(ctx, "user_deleted", id)
	return nil
}

// ChangePassword replaces the password after checking the old one.
// Returns models.ErrForbidden if oldPassword is wrong.
func (s *UserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	ok, err := s.hasher.Matches(user.PasswordHash, oldPassword)
	if err != nil {
		s.logger.Error("failed to verify password", slog.String("user_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}
	if !ok {
		s.logger.Info("password change rejected: wrong old password", slog.String("user_id", id))
		return models.ErrForbidden
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return s.writeError("change password", id, err)
	}

	s.logger.Info("password changed", slog.String("user_id", id))
	s.auditLogger.LogAccountAction(ctx, "password_changed", id)
	return nil
}

// writeError keeps not found and conflict as is and reports any other write failure as unprocessable
func (s *UserService) writeError(op, id string, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrConflict):
		return err
	default:
		s.logger.Error("failed to "+op, slog.String("user_id", id), slog.Any("error", err))
		return models.ErrUnprocessable
	}
}
