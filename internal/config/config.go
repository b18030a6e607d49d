// Package config resolves command-line flags and JONES_* environment
// variables into a validated Config.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override flags.
const EnvPrefix = "JONES"

// Backend names accepted by --backend.
const (
	BackendHeuristic = "heuristic"
	BackendAST       = "ast"
)

// ErrInvalidBackend is returned for an unknown --backend value.
var ErrInvalidBackend = errors.New("invalid backend")

// Flag names shared by the CLI and Load.
const (
	FlagGrep        = "grep"
	FlagPath        = "path"
	FlagBackend     = "backend"
	FlagFormat      = "format"
	FlagIgnoreCase  = "ignore-case"
	FlagNoColor     = "no-color"
	FlagNoIgnore    = "no-ignore"
	FlagExclude     = "exclude"
	FlagMaxFileSize = "max-file-size"
	FlagVerbose     = "verbose"
)

// Config is the resolved configuration of one invocation.
type Config struct {
	Grep        bool
	Path        string
	Backend     string
	Format      string
	IgnoreCase  bool
	NoColor     bool
	NoIgnore    bool
	Excludes    []string
	MaxFileSize int64
	Verbose     bool
}

// RegisterFlags adds the search flags to fs with their defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolP(FlagGrep, "g", false, "list every class whose name contains the query")
	fs.StringP(FlagPath, "p", ".", "search root")
	fs.StringP(FlagBackend, "b", BackendHeuristic, "extraction backend (heuristic, ast)")
	fs.StringP(FlagFormat, "f", "text", "output format (text, json, yaml, toon)")
	fs.BoolP(FlagIgnoreCase, "i", false, "case-insensitive grep matching")
	fs.Bool(FlagNoColor, false, "disable colored output")
	fs.Bool(FlagNoIgnore, false, "do not skip hidden, vendored or .gitignore'd paths")
	fs.StringSliceP(FlagExclude, "e", nil, "glob of paths to exclude (repeatable)")
	fs.Int64(FlagMaxFileSize, 1_000_000, "skip files larger than this many bytes (0 disables)")
	fs.BoolP(FlagVerbose, "v", false, "enable debug logging")
}

// Load resolves fs against the environment. Explicitly set flags win over
// JONES_* variables, which win over flag defaults. getenv is consulted for
// NO_COLOR; pass nil to ignore it.
func Load(fs *pflag.FlagSet, getenv func(string) string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	cfg := &Config{
		Grep:        v.GetBool(FlagGrep),
		Path:        v.GetString(FlagPath),
		Backend:     strings.ToLower(v.GetString(FlagBackend)),
		Format:      strings.ToLower(v.GetString(FlagFormat)),
		IgnoreCase:  v.GetBool(FlagIgnoreCase),
		NoColor:     v.GetBool(FlagNoColor),
		NoIgnore:    v.GetBool(FlagNoIgnore),
		Excludes:    v.GetStringSlice(FlagExclude),
		MaxFileSize: v.GetInt64(FlagMaxFileSize),
		Verbose:     v.GetBool(FlagVerbose),
	}
	if getenv != nil && getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that flags cannot constrain on their own.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendHeuristic, BackendAST:
	default:
		return fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidBackend, c.Backend, BackendHeuristic, BackendAST)
	}
	if c.Path == "" {
		c.Path = "."
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max file size must not be negative: %d", c.MaxFileSize)
	}
	return nil
}
