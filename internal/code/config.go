package code

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	defaultLength      = 6
	defaultMaxAttempts = 100
	defaultColumn      = "code"
)

// KindConfig holds the fixed parameters of one kind.
type KindConfig struct {
	Length      int    // total code length, prefix included
	Prefix      byte   // upper-case ASCII letter
	MaxAttempts int    // generation attempts per allocation
	Collection  string // backing collection checked for uniqueness
	Column      string // column of Collection holding the code
}

// SpaceSize returns the number of distinct codes the config can produce.
func (c KindConfig) SpaceSize() float64 {
	size := 1.0
	for range c.Length - 1 {
		size *= float64(AlphabetSize)
	}
	return size
}

// DefaultConfigs returns a fresh copy of the built-in kind table.
func DefaultConfigs() map[Kind]KindConfig {
	return map[Kind]KindConfig{
		School: {
			Length:      defaultLength,
			Prefix:      'S',
			MaxAttempts: defaultMaxAttempts,
			Collection:  "school_groups",
			Column:      defaultColumn,
		},
		Class: {
			Length:      defaultLength,
			Prefix:      'C',
			MaxAttempts: defaultMaxAttempts,
			Collection:  "class_groups",
			Column:      defaultColumn,
		},
	}
}

// Table is an immutable mapping from Kind to KindConfig.
// It is safe for concurrent use.
type Table struct {
	configs map[Kind]KindConfig
	bodies  map[Kind]*regexp.Regexp
}

// NewTable validates configs and builds a Table. Every declared kind must be
// configured and no two kinds may share a (prefix, length) pair.
func NewTable(configs map[Kind]KindConfig) (*Table, error) {
	t := &Table{
		configs: make(map[Kind]KindConfig, len(configs)),
		bodies:  make(map[Kind]*regexp.Regexp, len(configs)),
	}

	for k := range configs {
		if !k.Valid() {
			return nil, fmt.Errorf("%w: configuration for undeclared %s", ErrConfigDefect, k)
		}
	}

	type shape struct {
		prefix byte
		length int
	}
	seen := make(map[shape]Kind, len(configs))

	for _, k := range AllKinds() {
		cfg, ok := configs[k]
		if !ok {
			return nil, fmt.Errorf("%w: no configuration for %s", ErrConfigDefect, k)
		}
		if cfg.Length < 2 {
			return nil, fmt.Errorf("%w: %s length %d is below 2", ErrConfigDefect, k, cfg.Length)
		}
		if cfg.MaxAttempts < 1 {
			return nil, fmt.Errorf("%w: %s max attempts %d is below 1", ErrConfigDefect, k, cfg.MaxAttempts)
		}
		if cfg.Prefix < 'A' || cfg.Prefix > 'Z' {
			return nil, fmt.Errorf("%w: %s prefix %q is not an upper-case letter", ErrConfigDefect, k, cfg.Prefix)
		}
		if cfg.Collection == "" || cfg.Column == "" {
			return nil, fmt.Errorf("%w: %s has no backing collection", ErrConfigDefect, k)
		}

		s := shape{prefix: cfg.Prefix, length: cfg.Length}
		if other, dup := seen[s]; dup {
			return nil, fmt.Errorf("%w: %s and %s both use prefix %q with length %d",
				ErrConfigDefect, other, k, cfg.Prefix, cfg.Length)
		}
		seen[s] = k

		t.configs[k] = cfg
		t.bodies[k] = regexp.MustCompile(fmt.Sprintf("^[%s]{%d}$", Alphabet, cfg.Length-1))
	}

	return t, nil
}

// MustNewTable is like NewTable but panics on a defect. Use it at startup only.
func MustNewTable(configs map[Kind]KindConfig) *Table {
	t, err := NewTable(configs)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTable returns a Table built from DefaultConfigs.
func DefaultTable() *Table {
	return MustNewTable(DefaultConfigs())
}

// For returns the configuration of kind.
func (t *Table) For(kind Kind) (KindConfig, bool) {
	cfg, ok := t.configs[kind]
	return cfg, ok
}

// Kinds returns the configured kinds in declaration order.
func (t *Table) Kinds() []Kind {
	kinds := make([]Kind, 0, len(t.configs))
	for k := range t.configs {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Detect returns the kind whose prefix and length match c.
// The prefix comparison is case-insensitive.
func (t *Table) Detect(c string) (Kind, bool) {
	if c == "" {
		return 0, false
	}
	first := strings.ToUpper(c[:1])
	n := utf8.RuneCountInString(c)
	for _, k := range t.Kinds() {
		cfg := t.configs[k]
		if n == cfg.Length && first[0] == cfg.Prefix {
			return k, true
		}
	}
	return 0, false
}

// CheckFormat reports whether c has the shape of a kind code: the configured
// length, the kind's prefix (any case) and only Alphabet symbols afterwards.
// It performs no I/O.
func (t *Table) CheckFormat(c string, kind Kind) error {
	cfg, ok := t.configs[kind]
	if !ok {
		return fmt.Errorf("%w: no configuration for %s", ErrConfigDefect, kind)
	}
	if c == "" {
		return fmt.Errorf("%w: empty %s code", ErrMalformed, kind)
	}
	if n := utf8.RuneCountInString(c); n != cfg.Length {
		return fmt.Errorf("%w: %s code %q has length %d, want %d", ErrMalformed, kind, c, n, cfg.Length)
	}
	if strings.ToUpper(c[:1])[0] != cfg.Prefix {
		return fmt.Errorf("%w: %s code %q must start with %q", ErrMalformed, kind, c, cfg.Prefix)
	}
	if !t.bodies[kind].MatchString(c[1:]) {
		return fmt.Errorf("%w: %s code %q contains characters outside %s", ErrMalformed, kind, c, Alphabet)
	}
	return nil
}
