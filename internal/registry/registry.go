package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ugaemi/groupcode/internal/code"
	"github.com/ugaemi/groupcode/internal/group"
	"github.com/ugaemi/groupcode/internal/store"
)

// maxWriteRetries bounds re-allocation after a write-time uniqueness violation.
const maxWriteRetries = 3

var (
	// ErrGroupNotFound indicates no group holds the given code.
	ErrGroupNotFound = errors.New("group not found")

	// ErrWriteConflict indicates every allocated code was taken by a
	// concurrent writer before it could be stored.
	ErrWriteConflict = errors.New("code taken by concurrent writer")
)

// Service creates groups with fresh codes and swaps compromised codes.
type Service struct {
	table  *code.Table
	alloc  *code.Allocator
	groups store.GroupStore
}

// NewService creates a new registry service.
func NewService(table *code.Table, alloc *code.Allocator, groups store.GroupStore) *Service {
	return &Service{
		table:  table,
		alloc:  alloc,
		groups: groups,
	}
}

// Create allocates a code for kind and stores a new group holding it.
func (s *Service) Create(ctx context.Context, kind code.Kind, name string) (*group.Group, error) {
	t, err := s.tableFor(kind)
	if err != nil {
		return nil, err
	}

	for range maxWriteRetries {
		result := s.alloc.Allocate(ctx, kind)
		if !result.Succeeded() {
			return nil, fmt.Errorf("creating %s group: %w", kind, result.Err)
		}

		g := group.New(kind, name, result.Code)
		err := s.groups.Create(ctx, t, g)
		if errors.Is(err, store.ErrCodeTaken) {
			slog.Warn("allocated code taken at write time, reallocating", "kind", kind.String(), "code", g.Code)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("storing %s group: %w", kind, err)
		}

		slog.Info("group created", "kind", kind.String(), "id", g.ID, "code", g.Code)
		return g, nil
	}

	return nil, fmt.Errorf("creating %s group: %w", kind, ErrWriteConflict)
}

// Rotate replaces the code of the group holding oldCode and returns the
// updated group.
func (s *Service) Rotate(ctx context.Context, kind code.Kind, oldCode string) (*group.Group, error) {
	t, err := s.tableFor(kind)
	if err != nil {
		return nil, err
	}

	old := code.Normalize(oldCode)
	if err := s.table.CheckFormat(old, kind); err != nil {
		return nil, err
	}

	g, err := s.groups.FindByCode(ctx, t, old)
	if err != nil {
		return nil, fmt.Errorf("loading %s group %q: %w", kind, old, err)
	}
	if g == nil {
		return nil, fmt.Errorf("%w: %s code %q", ErrGroupNotFound, kind, old)
	}

	for range maxWriteRetries {
		result := s.alloc.Regenerate(ctx, old, kind)
		if !result.Succeeded() {
			return nil, fmt.Errorf("rotating %s code %q: %w", kind, old, result.Err)
		}

		err := s.groups.UpdateCode(ctx, t, old, result.Code)
		switch {
		case errors.Is(err, store.ErrCodeTaken):
			slog.Warn("regenerated code taken at write time, reallocating", "kind", kind.String(), "code", result.Code)
			continue
		case errors.Is(err, store.ErrNotFound):
			return nil, fmt.Errorf("%w: %s code %q", ErrGroupNotFound, kind, old)
		case err != nil:
			return nil, fmt.Errorf("rotating %s code %q: %w", kind, old, err)
		}

		slog.Info("group code rotated", "kind", kind.String(), "id", g.ID, "old", old, "new", result.Code)
		g.Code = result.Code
		return g, nil
	}

	return nil, fmt.Errorf("rotating %s code %q: %w", kind, old, ErrWriteConflict)
}

// Find normalizes raw, detects its kind and loads the group holding it.
func (s *Service) Find(ctx context.Context, raw string) (*group.Group, error) {
	c := code.Normalize(raw)
	kind, ok := s.table.Detect(c)
	if !ok {
		return nil, fmt.Errorf("%w: %q matches no kind", code.ErrMalformed, c)
	}
	if err := s.table.CheckFormat(c, kind); err != nil {
		return nil, err
	}

	t, err := s.tableFor(kind)
	if err != nil {
		return nil, err
	}

	g, err := s.groups.FindByCode(ctx, t, c)
	if err != nil {
		return nil, fmt.Errorf("loading %s group %q: %w", kind, c, err)
	}
	if g == nil {
		return nil, fmt.Errorf("%w: %s code %q", ErrGroupNotFound, kind, c)
	}
	return g, nil
}

func (s *Service) tableFor(kind code.Kind) (store.Table, error) {
	cfg, ok := s.table.For(kind)
	if !ok {
		return store.Table{}, fmt.Errorf("%w: no configuration for %s", code.ErrConfigDefect, kind)
	}
	return store.TableFor(kind, cfg), nil
}
