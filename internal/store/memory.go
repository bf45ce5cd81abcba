package store

import (
	"context"
	"sync"
	"time"

	"github.com/ugaemi/groupcode/internal/group"
)

// MemoryStore provides thread-safe in-memory storage.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]*group.Group // collection.column -> code -> group
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]*group.Group),
	}
}

func key(collection, column string) string {
	return collection + "." + column
}

// Exists reports whether any stored group in collection has column equal to value.
func (s *MemoryStore) Exists(ctx context.Context, collection, column, value string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.data[key(collection, column)][value]
	return exists, nil
}

// Create inserts the group only if its code is not already taken.
func (s *MemoryStore) Create(ctx context.Context, t Table, g *group.Group) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(t.Collection, t.Column)
	rows, ok := s.data[k]
	if !ok {
		rows = make(map[string]*group.Group)
		s.data[k] = rows
	}
	if _, exists := rows[g.Code]; exists {
		return ErrCodeTaken
	}

	stored := g.Clone()
	stored.Kind = t.Kind
	rows[g.Code] = stored
	return nil
}

// FindByCode retrieves a group by its code.
func (s *MemoryStore) FindByCode(ctx context.Context, t Table, c string) (*group.Group, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	g, exists := s.data[key(t.Collection, t.Column)][c]
	if !exists {
		return nil, nil
	}
	return g.Clone(), nil
}

// UpdateCode atomically moves a group from oldCode to newCode.
func (s *MemoryStore) UpdateCode(ctx context.Context, t Table, oldCode, newCode string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.data[key(t.Collection, t.Column)]
	g, exists := rows[oldCode]
	if !exists {
		return ErrNotFound
	}
	if _, taken := rows[newCode]; taken {
		return ErrCodeTaken
	}

	delete(rows, oldCode)
	g.Code = newCode
	g.UpdatedAt = time.Now()
	rows[newCode] = g
	return nil
}

// Len returns the number of groups stored for t.
func (s *MemoryStore) Len(t Table) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[key(t.Collection, t.Column)])
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
