// Package tasks tracks asynchronous generation work in process memory.
// Records are ephemeral: nothing survives a restart, and that is an
// explicit limitation of the design, not a guarantee to defend.
package tasks

import (
	"sync"
	"time"

	"devpal/backend/internal/models"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Record is one tracked unit of generation work. Updates replace whole
// records keyed by a unique ID, so concurrent tasks never contend on the
// same key.
type Record struct {
	ID        string
	Status    Status
	Progress  int
	Message   string
	CreatedAt time.Time
	Result    *models.GenerateResponse
	Error     string
}

// Store abstracts task persistence so orchestration logic can be tested
// against any implementation.
type Store interface {
	Create(record *Record)
	Update(record *Record)
	Get(id string) (*Record, bool)
}

// MemoryStore is the in-process Store. It grows without bound over the
// process lifetime; there is no eviction, an acknowledged leak under
// sustained load.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]*Record),
	}
}

func (s *MemoryStore) Create(record *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[record.ID] = record
}

func (s *MemoryStore) Update(record *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[record.ID] = record
}

// Get returns a copy so callers cannot mutate stored state.
func (s *MemoryStore) Get(id string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	copied := *record
	return &copied, true
}

// Size returns the number of tracked tasks.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
