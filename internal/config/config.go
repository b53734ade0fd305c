// Package config loads tmplfmt.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"tmplfmt/internal/format"
	"tmplfmt/internal/rewrite"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "tmplfmt.toml"

// MaxIndent bounds format.indent.
const MaxIndent = 16

// Config mirrors tmplfmt.toml.
type Config struct {
	Path    string        `toml:"-"` // file the config was read from; "" for defaults
	Format  FormatConfig  `toml:"format"`
	Rewrite RewriteConfig `toml:"rewrite"`
	Cache   CacheConfig   `toml:"cache"`
}

type FormatConfig struct {
	MinParams     int  `toml:"min_params"`
	Indent        int  `toml:"indent"`
	PreserveLines bool `toml:"preserve_lines"`
}

type RewriteConfig struct {
	Enabled   bool            `toml:"enabled"`
	MaxPasses int             `toml:"max_passes"`
	Disable   []string        `toml:"disable"`
	Alias     []AliasConfig   `toml:"alias"`
	Literal   []LiteralConfig `toml:"literal"`
}

type AliasConfig struct {
	Name string `toml:"name"`
	To   string `toml:"to"`
}

type LiteralConfig struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format: FormatConfig{
			MinParams: format.DefaultMinParams,
			Indent:    len(format.DefaultIndent),
		},
		Rewrite: RewriteConfig{
			Enabled:   true,
			MaxPasses: rewrite.DefaultMaxPasses,
		},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path over the defaults and validates the result. Keys the
// schema does not know are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads explicit when non-empty, otherwise the nearest FileName
// above startDir, otherwise the defaults.
func Discover(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// ErrOutOfRange marks a numeric setting outside its accepted range.
var ErrOutOfRange = errors.New("value out of range")

// CheckMinParams validates a parameter-count threshold.
func CheckMinParams(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: must be >= 0, got %d", ErrOutOfRange, n)
	}
	return nil
}

// CheckIndent validates an indentation width in spaces.
func CheckIndent(n int) error {
	if n < 1 || n > MaxIndent {
		return fmt.Errorf("%w: must be in 1..%d, got %d", ErrOutOfRange, MaxIndent, n)
	}
	return nil
}

// CheckMaxPasses validates a rewrite pass ceiling.
func CheckMaxPasses(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: must be >= 1, got %d", ErrOutOfRange, n)
	}
	return nil
}

// Validate checks value ranges and that the pattern table can be built.
func (c Config) Validate() error {
	var errs []error
	if err := CheckMinParams(c.Format.MinParams); err != nil {
		errs = append(errs, fmt.Errorf("[format].min_params: %w", err))
	}
	if err := CheckIndent(c.Format.Indent); err != nil {
		errs = append(errs, fmt.Errorf("[format].indent: %w", err))
	}
	if err := CheckMaxPasses(c.Rewrite.MaxPasses); err != nil {
		errs = append(errs, fmt.Errorf("[rewrite].max_passes: %w", err))
	}
	for i, l := range c.Rewrite.Literal {
		if l.From == "" {
			errs = append(errs, fmt.Errorf("[[rewrite.literal]] #%d: empty from", i+1))
		}
	}
	if _, err := c.Table(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Table builds the pattern table: the builtins minus [rewrite].disable plus
// the configured aliases.
func (c Config) Table() (*rewrite.Table, error) {
	table, err := rewrite.DefaultTable().Without(c.Rewrite.Disable...)
	if err != nil {
		return nil, fmt.Errorf("[rewrite].disable: %w", err)
	}
	if len(c.Rewrite.Alias) == 0 {
		return table, nil
	}
	aliases := make([]rewrite.Pattern, 0, len(c.Rewrite.Alias))
	for _, a := range c.Rewrite.Alias {
		p, err := rewrite.Alias(a.Name, a.To)
		if err != nil {
			return nil, fmt.Errorf("[[rewrite.alias]]: %w", err)
		}
		aliases = append(aliases, p)
	}
	table, err = table.With(aliases...)
	if err != nil {
		return nil, fmt.Errorf("[[rewrite.alias]]: %w", err)
	}
	return table, nil
}

// Literals returns the built-in cleanup literals followed by the configured
// ones.
func (c Config) Literals() []rewrite.Literal {
	lits := rewrite.DefaultLiterals()
	for _, l := range c.Rewrite.Literal {
		lits = append(lits, rewrite.Literal{From: l.From, To: l.To})
	}
	return lits
}

// IndentUnit returns one indentation level as spaces.
func (c Config) IndentUnit() string {
	return strings.Repeat(" ", c.Format.Indent)
}
