package code

import (
	"fmt"
	"strings"
)

// Kind identifies the entity a code names.
type Kind int

const (
	// School is a school-level group.
	School Kind = iota + 1
	// Class is a class-level group.
	Class
)

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	return []Kind{School, Class}
}

func (k Kind) String() string {
	switch k {
	case School:
		return "school"
	case Class:
		return "class"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	switch k {
	case School, Class:
		return true
	default:
		return false
	}
}

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "school":
		return School, nil
	case "class":
		return Class, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", s)
	}
}

// MarshalText encodes the kind as its name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
