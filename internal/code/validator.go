package code

import (
	"context"
	"fmt"
	"log/slog"
)

// Lookup reports whether any record in collection has column equal to value.
// It is the only capability the validator needs from persistence.
type Lookup interface {
	Exists(ctx context.Context, collection, column, value string) (bool, error)
}

// Conflict describes where an already allocated code was found.
type Conflict struct {
	Kind       Kind
	Collection string
	Column     string
	Code       string
}

// ValidationResult is the outcome of Validate. Available is meaningful only
// when Valid is true.
type ValidationResult struct {
	Valid     bool
	Available bool
	Conflict  *Conflict
	Err       error
}

// Validator checks candidate codes for shape and availability.
type Validator struct {
	table  *Table
	lookup Lookup
}

// NewValidator creates a Validator backed by lookup.
func NewValidator(table *Table, lookup Lookup) *Validator {
	return &Validator{table: table, lookup: lookup}
}

// Validate checks c against kind. Shape failures return before any lookup.
// A failed lookup counts the code as taken.
func (v *Validator) Validate(ctx context.Context, c string, kind Kind) ValidationResult {
	if err := v.table.CheckFormat(c, kind); err != nil {
		return ValidationResult{Err: err}
	}

	cfg, _ := v.table.For(kind)
	// Stored codes always carry the upper-case prefix.
	c = string(cfg.Prefix) + c[1:]
	exists, err := v.lookup.Exists(ctx, cfg.Collection, cfg.Column, c)
	if err != nil {
		slog.Warn("availability check failed, treating code as taken",
			"kind", kind.String(), "code", c, "error", err)
		return ValidationResult{
			Valid: true,
			Err:   fmt.Errorf("%w: %s code %q: %w", ErrUnavailable, kind, c, err),
		}
	}

	if exists {
		return ValidationResult{
			Valid: true,
			Conflict: &Conflict{
				Kind:       kind,
				Collection: cfg.Collection,
				Column:     cfg.Column,
				Code:       c,
			},
			Err: fmt.Errorf("%w: %s code %q in %s", ErrCollision, kind, c, cfg.Collection),
		}
	}

	return ValidationResult{Valid: true, Available: true}
}
