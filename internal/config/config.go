// Package config loads the TOML configuration of the treediff command.
//
// Example:
//
//	[left]
//	read_only = false
//
//	[right]
//	remote = true
//	read_only = true
//
//	[filter]
//	tag = "diff"
//	exclude_paths = ["/metadata"]
//
//	[[filter.names]]
//	type = "table"
//	names = ["users", "orders"]
//
//	[[prune]]
//	type = "column"
//	field = "columnType"
//	values = ["BLOB", "CLOB"]
//	suppress = ["size", "scale"]
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/brunoga/treediff"
)

// Config is the configuration of one diff session.
type Config struct {
	Left   SideConfig    `toml:"left"`
	Right  SideConfig    `toml:"right"`
	Filter FilterConfig  `toml:"filter"`
	Prune  []PruneConfig `toml:"prune"`
}

// SideConfig describes one side of the session.
type SideConfig struct {
	// Remote marks the side as a non-local resource. Deletions on a remote
	// side are refused.
	Remote bool `toml:"remote"`

	// ReadOnly prevents updates towards the side and skips it on write.
	ReadOnly bool `toml:"read_only"`
}

// FilterConfig selects the properties taking part in the diff.
type FilterConfig struct {
	// Tag, when set, only accepts properties carrying the tag.
	Tag string `toml:"tag"`

	// ExcludePaths lists JSON Pointers excluded with their subtrees.
	ExcludePaths []string `toml:"exclude_paths"`

	// Names restricts properties of a declared type to the listed names.
	Names []NameConfig `toml:"names"`
}

// NameConfig is an allow-list of names for one declared type.
type NameConfig struct {
	Type  string   `toml:"type"`
	Names []string `toml:"names"`
}

// PruneConfig is a field value rule.
type PruneConfig struct {
	Type     string   `toml:"type"`
	Field    string   `toml:"field"`
	Values   []any    `toml:"values"`
	Suppress []string `toml:"suppress"`
}

// Default returns a Config with both sides writable and local, accepting all
// properties and without prune rules.
func Default() *Config {
	return &Config{}
}

// Load reads the TOML file at path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := LoadTOML(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes the file at path into cfg and validates the result.
func LoadTOML(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg.Validate()
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	var errs []error
	if c.Left.ReadOnly && c.Right.ReadOnly {
		errs = append(errs, errors.New("both sides are read-only"))
	}
	for i, n := range c.Filter.Names {
		if n.Type == "" {
			errs = append(errs, fmt.Errorf("filter.names[%d]: type is required", i))
		}
	}
	for i, p := range c.Prune {
		if p.Type == "" || p.Field == "" {
			errs = append(errs, fmt.Errorf("prune[%d]: type and field are required", i))
		}
		if len(p.Suppress) == 0 {
			errs = append(errs, fmt.Errorf("prune[%d]: nothing to suppress", i))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// BuildFilter builds the property filter described by the configuration.
func (c *Config) BuildFilter() treediff.Filter {
	f := treediff.AcceptAll
	if c.Filter.Tag != "" {
		f = treediff.TagFilter(c.Filter.Tag)
	}
	for _, n := range c.Filter.Names {
		f = treediff.NameFilter(f, n.Type, n.Names...)
	}
	if len(c.Filter.ExcludePaths) > 0 {
		f = treediff.ExcludePaths(f, c.Filter.ExcludePaths...)
	}
	return f
}

// Options converts the configuration into Match options.
func (c *Config) Options() []treediff.MatchOption {
	opts := []treediff.MatchOption{treediff.WithFilter(c.BuildFilter())}
	sides := map[treediff.Side]SideConfig{treediff.Left: c.Left, treediff.Right: c.Right}
	for _, side := range treediff.Sides {
		if sides[side].Remote {
			opts = append(opts, treediff.WithRemote(side))
		}
		if sides[side].ReadOnly {
			opts = append(opts, treediff.WithReadOnly(side))
		}
	}
	for _, p := range c.Prune {
		opts = append(opts, treediff.WithPruneRules(treediff.FieldValueRule{
			Type:     p.Type,
			Field:    p.Field,
			Values:   p.Values,
			Suppress: p.Suppress,
		}))
	}
	return opts
}

// UpdateHandler returns the update permission hook of the session.
func (c *Config) UpdateHandler() treediff.UpdateHandler {
	if c.Left.Remote || c.Right.Remote {
		return treediff.DenyRemoteDeletion
	}
	return treediff.AllowAll
}
