package store

import (
	"context"
	"errors"

	"github.com/ugaemi/groupcode/internal/code"
	"github.com/ugaemi/groupcode/internal/group"
)

var (
	// ErrCodeTaken indicates a write hit the uniqueness constraint on the code column.
	ErrCodeTaken = errors.New("code already taken")

	// ErrNotFound indicates no row matched.
	ErrNotFound = errors.New("group not found")
)

// Table names the backing collection of one kind and its code column.
type Table struct {
	Kind       code.Kind
	Collection string
	Column     string
}

// TableFor builds the Table of kind from its configuration.
func TableFor(kind code.Kind, cfg code.KindConfig) Table {
	return Table{Kind: kind, Collection: cfg.Collection, Column: cfg.Column}
}

// GroupStore defines the interface for persistent group storage.
// Implementations must be safe for concurrent use.
type GroupStore interface {
	code.Lookup
	// Create inserts a group. Returns ErrCodeTaken if its code is in use.
	Create(ctx context.Context, t Table, g *group.Group) error
	// FindByCode looks up a group by code. Returns nil, nil if absent.
	FindByCode(ctx context.Context, t Table, c string) (*group.Group, error)
	// UpdateCode swaps oldCode for newCode. Returns ErrNotFound if no group
	// holds oldCode and ErrCodeTaken if newCode is in use.
	UpdateCode(ctx context.Context, t Table, oldCode, newCode string) error
	// Close releases storage resources.
	Close() error
}
