package code

import (
	"context"
	"fmt"
	"log/slog"
)

// Generator produces candidate codes for a kind.
type Generator interface {
	Generate(kind Kind) string
}

// AllocationResult is the outcome of Allocate.
type AllocationResult struct {
	Code     string
	Attempts int
	Err      error
}

// Succeeded reports whether a code was allocated.
func (r AllocationResult) Succeeded() bool {
	return r.Err == nil && r.Code != ""
}

// Allocator produces codes that are well-formed and not yet allocated.
// It never writes: callers persist the returned code themselves and must
// treat a write-time uniqueness violation as a reason to allocate again.
type Allocator struct {
	table     *Table
	gen       Generator
	validator *Validator
}

// NewAllocator creates an Allocator.
func NewAllocator(table *Table, gen Generator, validator *Validator) *Allocator {
	return &Allocator{table: table, gen: gen, validator: validator}
}

// Allocate draws candidates for kind until one is available or the kind's
// MaxAttempts is reached. Attempts run back to back without delay.
func (a *Allocator) Allocate(ctx context.Context, kind Kind) AllocationResult {
	cfg, ok := a.table.For(kind)
	if !ok {
		err := fmt.Errorf("%w: no configuration for %s", ErrConfigDefect, kind)
		slog.Error("allocation rejected", "kind", kind.String(), "error", err)
		return AllocationResult{Err: err}
	}

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return AllocationResult{
				Attempts: attempt - 1,
				Err:      fmt.Errorf("allocating %s code: %w", kind, err),
			}
		}

		candidate := a.gen.Generate(kind)
		result := a.validator.Validate(ctx, candidate, kind)

		if !result.Valid {
			// Generated candidates are always well-formed unless the
			// generator and table disagree. Retrying cannot help.
			slog.Error("generated code failed validation",
				"kind", kind.String(), "code", candidate, "error", result.Err)
			return AllocationResult{Attempts: attempt, Err: result.Err}
		}

		if result.Available {
			slog.Info("code allocated", "kind", kind.String(), "code", candidate, "attempts", attempt)
			return AllocationResult{Code: candidate, Attempts: attempt}
		}

		slog.Debug("code unavailable, retrying",
			"kind", kind.String(), "code", candidate, "attempt", attempt, "error", result.Err)
	}

	slog.Error("code allocation exhausted", "kind", kind.String(), "attempts", cfg.MaxAttempts)
	return AllocationResult{
		Attempts: cfg.MaxAttempts,
		Err:      fmt.Errorf("%w: %s after %d attempts", ErrAttemptsExhausted, kind, cfg.MaxAttempts),
	}
}

// Regenerate allocates a replacement for oldCode. oldCode is only reported;
// the new code is drawn from the full space.
func (a *Allocator) Regenerate(ctx context.Context, oldCode string, kind Kind) AllocationResult {
	result := a.Allocate(ctx, kind)
	if result.Succeeded() {
		slog.Info("code regenerated", "kind", kind.String(), "old", oldCode, "new", result.Code)
	}
	return result
}
