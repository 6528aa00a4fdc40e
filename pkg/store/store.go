// Package store provides an in-memory history of evaluations.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/lemonberrylabs/rpncalc/pkg/types"
)

// DefaultLimit is the number of records kept when New is given no limit.
const DefaultLimit = 1000

// EvaluationState represents how an evaluation ended.
type EvaluationState string

const (
	EvaluationSucceeded EvaluationState = "SUCCEEDED"
	EvaluationFailed    EvaluationState = "FAILED"
)

// Record represents one stored evaluation.
type Record struct {
	ID         string          `json:"id"`
	Expression string          `json:"expression"`
	Normalized string          `json:"normalized,omitempty"`
	Postfix    string          `json:"postfix,omitempty"`
	State      EvaluationState `json:"state"`
	Result     *types.Result   `json:"result,omitempty"`
	Error      *RecordError    `json:"error,omitempty"`
	CreateTime time.Time       `json:"createTime"`
}

// RecordError describes a failed evaluation.
type RecordError struct {
	Kind    types.ErrorKind `json:"kind,omitempty"`
	Message string          `json:"message"`
}

// Entry is the input to Add.
type Entry struct {
	Expression string
	Normalized string
	Postfix    string
	Result     types.Result
	Err        error
}

// Store is a thread-safe, bounded in-memory history of evaluations. When
// full, the oldest record is evicted.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   []string
	limit   int

	// Counter for generating unique IDs
	counter int64
}

// New creates a new empty store holding at most limit records. A limit of
// zero or less selects DefaultLimit.
func New(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		records: make(map[string]*Record),
		limit:   limit,
	}
}

// Add records an evaluation and returns the stored record.
func (s *Store) Add(e Entry) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	rec := &Record{
		ID:         fmt.Sprintf("%06d", s.counter),
		Expression: e.Expression,
		Normalized: e.Normalized,
		Postfix:    e.Postfix,
		CreateTime: time.Now(),
	}
	if e.Err != nil {
		rec.State = EvaluationFailed
		rec.Error = &RecordError{Kind: types.KindOf(e.Err), Message: e.Err.Error()}
	} else {
		res := e.Result
		rec.State = EvaluationSucceeded
		rec.Result = &res
	}

	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	for len(s.order) > s.limit {
		delete(s.records, s.order[0])
		s.order = s.order[1:]
	}
	return rec
}

// Get retrieves a record by ID.
func (s *Store) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("evaluation '%s' not found", id)
	}
	return rec, nil
}

// List returns all records, oldest first.
func (s *Store) List() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Record, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.records[id])
	}
	return result
}

// Last returns the n most recent records, oldest first.
func (s *Store) Last(n int) []*Record {
	all := s.List()
	if n < 0 || n >= len(all) {
		return all
	}
	return all[len(all)-n:]
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Clear removes all records. IDs keep increasing across clears.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*Record)
	s.order = nil
}
