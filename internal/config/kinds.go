package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ugaemi/groupcode/internal/code"
)

// kindOverride is one [kind] section of a kinds file. Unset fields keep
// the built-in value.
type kindOverride struct {
	Prefix      *string `toml:"prefix"`
	Length      *int    `toml:"length"`
	MaxAttempts *int    `toml:"max_attempts"`
	Collection  *string `toml:"collection"`
	Column      *string `toml:"column"`
}

// LoadKinds builds the kind table. With an empty path it returns the
// built-in table; otherwise the TOML file at path overrides it, e.g.
//
//	[class]
//	max_attempts = 20
//	collection = "classrooms"
//	column = "join_code"
func LoadKinds(path string) (*code.Table, error) {
	if path == "" {
		return code.NewTable(code.DefaultConfigs())
	}

	var overrides map[string]kindOverride
	md, err := toml.DecodeFile(path, &overrides)
	if err != nil {
		return nil, fmt.Errorf("reading kinds file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys in %s: %v", code.ErrConfigDefect, path, undecoded)
	}

	return applyOverrides(code.DefaultConfigs(), overrides)
}

func applyOverrides(cfgs map[code.Kind]code.KindConfig, overrides map[string]kindOverride) (*code.Table, error) {
	for name, o := range overrides {
		kind, err := code.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", code.ErrConfigDefect, err)
		}

		cfg := cfgs[kind]
		if o.Prefix != nil {
			p := strings.ToUpper(*o.Prefix)
			if len(p) != 1 {
				return nil, fmt.Errorf("%w: %s prefix %q must be one letter", code.ErrConfigDefect, kind, *o.Prefix)
			}
			cfg.Prefix = p[0]
		}
		if o.Length != nil {
			cfg.Length = *o.Length
		}
		if o.MaxAttempts != nil {
			cfg.MaxAttempts = *o.MaxAttempts
		}
		if o.Collection != nil {
			cfg.Collection = *o.Collection
		}
		if o.Column != nil {
			cfg.Column = *o.Column
		}
		cfgs[kind] = cfg
	}

	return code.NewTable(cfgs)
}
