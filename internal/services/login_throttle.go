package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/BradenHooton/reviewhub/internal/models"
	pkglogger "github.com/BradenHooton/reviewhub/pkg/logger"
)

const (
	DefaultMaxFailedAttempts = 5
	DefaultCooldownWindow    = 30 * time.Minute

	// DeniedReason is reported with every throttle denial
	DeniedReason = "too many failed attempts"
)

// AttemptStore holds one AttemptRecord per identity key. Each call must be atomic;
// LoginThrottle serializes the read-modify-write sequence per key.
type AttemptStore interface {
	Get(key string) (models.AttemptRecord, bool)
	Put(record models.AttemptRecord)
	Delete(key string)
	Keys() []string
}

// LoginThrottleConfig holds the throttle thresholds
type LoginThrottleConfig struct {
	MaxFailedAttempts int
	CooldownWindow    time.Duration
}

// Decision is the result of Admit
type Decision struct {
	Allowed      bool
	Reason       string
	FailureCount int
}

// Outcome describes the throttle state after RecordOutcome
type Outcome struct {
	FailureCount int
	// Locked is true when the next Admit for the key will be denied
	Locked bool
}

// LoginThrottle counts consecutive failed logins per identity key and denies
// further attempts once the limit is reached, until the cooldown window has
// passed since the most recent failure.
type LoginThrottle struct {
	store  AttemptStore
	config LoginThrottleConfig
	locks  *keyLocks
	now    func() time.Time
	logger *slog.Logger
}

// NewLoginThrottle creates a LoginThrottle. Zero config values fall back to 5 attempts and 30 minutes.
func NewLoginThrottle(store AttemptStore, config LoginThrottleConfig, logger *slog.Logger) *LoginThrottle {
	if config.MaxFailedAttempts <= 0 {
		config.MaxFailedAttempts = DefaultMaxFailedAttempts
	}
	if config.CooldownWindow <= 0 {
		config.CooldownWindow = DefaultCooldownWindow
	}

	return &LoginThrottle{
		store:  store,
		config: config,
		locks:  newKeyLocks(),
		now:    time.Now,
		logger: logger,
	}
}

// SetClock replaces the time source
func (t *LoginThrottle) SetClock(now func() time.Time) {
	t.now = now
}

// Config returns the effective thresholds
func (t *LoginThrottle) Config() LoginThrottleConfig {
	return t.config
}

// Admit decides whether a credential check may run for key. It never fails.
func (t *LoginThrottle) Admit(key string) Decision {
	unlock, _ := t.locks.acquire(context.Background(), key)
	defer unlock()

	return t.admitLocked(key)
}

// RecordOutcome resets the key on success, or counts one more failure
func (t *LoginThrottle) RecordOutcome(key string, success bool) Outcome {
	unlock, _ := t.locks.acquire(context.Background(), key)
	defer unlock()

	return t.recordLocked(key, success)
}

// Guard runs Admit, verify and RecordOutcome as one critical section for key,
// so concurrent logins for the same identity cannot under-count failures.
//
// A denied attempt returns models.ErrRateLimited without calling verify.
// A verify error is returned as is and not counted as a failure.
// A false verify result is counted and returns models.ErrInvalidCredentials.
func (t *LoginThrottle) Guard(ctx context.Context, key string, verify func(ctx context.Context) (bool, error)) (Outcome, error) {
	unlock, err := t.locks.acquire(ctx, key)
	if err != nil {
		return Outcome{}, err
	}
	defer unlock()

	decision := t.admitLocked(key)
	if !decision.Allowed {
		return Outcome{FailureCount: decision.FailureCount, Locked: true}, models.ErrRateLimited
	}

	ok, err := verify(ctx)
	if err != nil {
		return Outcome{FailureCount: decision.FailureCount}, err
	}

	outcome := t.recordLocked(key, ok)
	if !ok {
		return outcome, models.ErrInvalidCredentials
	}
	return outcome, nil
}

// Snapshot returns the current record for key, if any
func (t *LoginThrottle) Snapshot(key string) (models.AttemptRecord, bool) {
	return t.store.Get(key)
}

// PruneExpired drops records whose cooldown has already elapsed. Admit would
// discard them on the next attempt anyway; pruning only bounds memory.
func (t *LoginThrottle) PruneExpired(ctx context.Context) (int, error) {
	pruned := 0
	for _, key := range t.store.Keys() {
		unlock, err := t.locks.acquire(ctx, key)
		if err != nil {
			return pruned, err
		}
		if t.expireLocked(key) {
			pruned++
		}
		unlock()
	}
	return pruned, nil
}

func (t *LoginThrottle) admitLocked(key string) Decision {
	t.expireLocked(key)

	record, ok := t.store.Get(key)
	if !ok {
		return Decision{Allowed: true}
	}

	if record.FailureCount >= t.config.MaxFailedAttempts {
		t.logger.Warn("login attempt throttled",
			slog.String("email", pkglogger.SanitizedEmail(key)),
			slog.Int("failed_attempts", record.FailureCount))
		return Decision{Allowed: false, Reason: DeniedReason, FailureCount: record.FailureCount}
	}

	return Decision{Allowed: true, FailureCount: record.FailureCount}
}

func (t *LoginThrottle) recordLocked(key string, success bool) Outcome {
	if success {
		t.store.Delete(key)
		return Outcome{}
	}

	now := t.now()
	record, ok := t.store.Get(key)
	if !ok || record.Expired(now, t.config.CooldownWindow) {
		record = models.AttemptRecord{Key: key}
	}
	record.FailureCount++
	record.LastAttemptAt = now
	t.store.Put(record)

	locked := record.FailureCount >= t.config.MaxFailedAttempts
	if locked {
		t.logger.Warn("login failure limit reached",
			slog.String("email", pkglogger.SanitizedEmail(key)),
			slog.Int("failed_attempts", record.FailureCount),
			slog.Duration("cooldown", t.config.CooldownWindow))
	}

	return Outcome{FailureCount: record.FailureCount, Locked: locked}
}

// expireLocked deletes key's record if its cooldown has elapsed
func (t *LoginThrottle) expireLocked(key string) bool {
	record, ok := t.store.Get(key)
	if !ok || !record.Expired(t.now(), t.config.CooldownWindow) {
		return false
	}
	t.store.Delete(key)
	return true
}
