package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/BradenHooton/reviewhub/internal/models"
	pkgauth "github.com/BradenHooton/reviewhub/pkg/auth"
	pkglogger "github.com/BradenHooton/reviewhub/pkg/logger"
)

const lockoutNotifyTimeout = 10 * time.Second

// TokenGenerator issues access tokens
type TokenGenerator interface {
	GenerateAccessToken(userID, email string) (string, error)
}

// LoginResponse is returned to the client after a successful login
type LoginResponse struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// AuthService handles authentication business logic
type AuthService struct {
	repo        UserRepository
	throttle    *LoginThrottle
	hasher      *pkgauth.Hasher
	tm          TokenGenerator
	notifier    LockoutNotifier
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger

	dummyOnce sync.Once
	dummyHash string
	notifyWG  sync.WaitGroup
}

// NewAuthService creates a new AuthService. A nil notifier disables lockout notices.
func NewAuthService(repo UserRepository, throttle *LoginThrottle, hasher *pkgauth.Hasher, tm TokenGenerator, notifier LockoutNotifier, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *AuthService {
	if notifier == nil {
		notifier = NoopLockoutNotifier{}
	}

	return &AuthService{
		repo:        repo,
		throttle:    throttle,
		hasher:      hasher,
		tm:          tm,
		notifier:    notifier,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// Login checks credentials for email under the login throttle and issues an access token.
//
// Errors: models.ErrRateLimited when the identity is throttled,
// models.ErrInvalidCredentials for an unknown email or wrong password,
// models.ErrInternalServer for anything else.
func (s *AuthService) Login(ctx context.Context, email, password, ipAddress string) (*LoginResponse, error) {
	var (
		user       *models.User
		registered bool
	)

	outcome, err := s.throttle.Guard(ctx, email, func(ctx context.Context) (bool, error) {
		u, err := s.repo.GetByEmail(ctx, email)
		if errors.Is(err, models.ErrNotFound) {
			s.equalizeTiming(password)
			return false, nil
		}
		if err != nil {
			return false, err
		}
		registered = true

		ok, err := s.hasher.Matches(u.PasswordHash, password)
		if err != nil {
			return false, err
		}
		if ok {
			user = u
		}
		return ok, nil
	})

	switch {
	case errors.Is(err, models.ErrRateLimited):
		s.auditLogger.LogAuthAttempt(ctx, pkglogger.AuditEvent{
			EventType:     "login_throttled",
			Email:         email,
			IPAddress:     ipAddress,
			FailureReason: DeniedReason,
			FailureCount:  outcome.FailureCount,
		})
		return nil, models.ErrRateLimited

	case errors.Is(err, models.ErrInvalidCredentials):
		s.logger.Info("login failed: invalid credentials")
		s.auditLogger.LogAuthAttempt(ctx, pkglogger.AuditEvent{
			EventType:     "login_failed",
			Email:         email,
			IPAddress:     ipAddress,
			FailureReason: "invalid_credentials",
			FailureCount:  outcome.FailureCount,
		})
		if registered && outcome.FailureCount == s.throttle.Config().MaxFailedAttempts {
			s.notifyLockout(email, outcome.FailureCount)
		}
		return nil, models.ErrInvalidCredentials

	case err != nil:
		s.logger.Error("login failed", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	token, err := s.tm.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to generate access token", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))
	s.auditLogger.LogAuthAttempt(ctx, pkglogger.AuditEvent{
		EventType: "login_success",
		UserID:    user.ID,
		IPAddress: ipAddress,
		Success:   true,
	})

	return &LoginResponse{
		Email:  user.Email,
		Name:   user.Name,
		UserID: user.ID,
		Token:  token,
	}, nil
}

// Wait blocks until pending lockout notices have been sent
func (s *AuthService) Wait() {
	s.notifyWG.Wait()
}

// notifyLockout sends the notice in the background; the login response never waits on mail delivery
func (s *AuthService) notifyLockout(email string, failures int) {
	cooldown := s.throttle.Config().CooldownWindow

	s.notifyWG.Add(1)
	go func() {
		defer s.notifyWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), lockoutNotifyTimeout)
		defer cancel()

		if err := s.notifier.NotifyLockout(ctx, email, failures, cooldown); err != nil {
			s.logger.Warn("lockout notice not delivered",
				slog.String("email", pkglogger.SanitizedEmail(email)),
				slog.Any("error", err))
		}
	}()
}

// equalizeTiming runs one bcrypt comparison for unknown emails so they cost as much as a wrong password
func (s *AuthService) equalizeTiming(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("timing-equalization-placeholder")
		if err != nil {
			s.logger.Error("failed to prepare timing hash", slog.Any("error", err))
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Matches(s.dummyHash, password)
	}
}
