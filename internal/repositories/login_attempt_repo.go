package repositories

import (
	"sync"

	"github.com/BradenHooton/reviewhub/internal/models"
)

// LoginAttemptRepository is the in-process table of failed login attempts.
// It is owned by one service instance and is not shared across processes.
type LoginAttemptRepository struct {
	mu      sync.RWMutex
	records map[string]models.AttemptRecord
}

// NewLoginAttemptRepository creates an empty attempt table
func NewLoginAttemptRepository() *LoginAttemptRepository {
	return &LoginAttemptRepository{
		records: make(map[string]models.AttemptRecord),
	}
}

// Get returns the record for key
func (r *LoginAttemptRepository) Get(key string) (models.AttemptRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[key]
	return record, ok
}

// Put stores record, replacing any previous record for the same key
func (r *LoginAttemptRepository) Put(record models.AttemptRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.Key] = record
}

// Delete removes the record for key
func (r *LoginAttemptRepository) Delete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, key)
}

// Keys lists the keys that currently have a record
func (r *LoginAttemptRepository) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.records))
	for key := range r.records {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of tracked keys
func (r *LoginAttemptRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
