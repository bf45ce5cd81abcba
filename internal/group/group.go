package group

import (
	"time"

	"github.com/google/uuid"
	"github.com/ugaemi/groupcode/internal/code"
)

// Group is a school-level or class-level group addressed by a join code.
type Group struct {
	ID        string    `json:"id"`
	Kind      code.Kind `json:"kind"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a group of the given kind holding an allocated code.
func New(kind code.Kind, name, c string) *Group {
	now := time.Now()
	return &Group{
		ID:        uuid.New().String(),
		Kind:      kind,
		Name:      name,
		Code:      c,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a copy of g.
func (g *Group) Clone() *Group {
	c := *g
	return &c
}
