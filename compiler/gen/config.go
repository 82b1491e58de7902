package gen

import "log"

// Default values substituted for omitted configuration options. Omission is
// never an error; a diagnostic notice is emitted instead.
const (
	// DefaultUpdateInterface is the name of the generated update contract.
	DefaultUpdateInterface = "IUpdatable"
	// DefaultCloneMethod is the clone method of the update contract.
	DefaultCloneMethod = "CloneForUpdate"
	// DefaultTrackerBase is the change-tracker base type consumed by
	// generated code.
	DefaultTrackerBase = "ChangeTracker"
	// DefaultSetMethod is the tracker's set function name.
	DefaultSetMethod = "SetProperty"
)

// Config carries the process-wide generation options. It is loaded once per
// generation pass and immutable afterwards.
type Config struct {
	// Target is the output directory for generated files.
	Target string
	// Package is the output package import path, e.g.
	// "github.com/org/project/model".
	Package string
	// Header is the comment placed at the top of every generated file.
	Header string

	// UpdateInterface is the name of the generated update contract
	// interface. Defaults to DefaultUpdateInterface.
	UpdateInterface string
	// CloneMethod is the update contract's clone method name.
	// Defaults to DefaultCloneMethod.
	CloneMethod string
	// Imports are implicit import paths added to every generated file.
	// Defaults to none.
	Imports []string
	// TrackerBase is the change-tracker base type name referenced by
	// generated code. Defaults to DefaultTrackerBase.
	TrackerBase string
	// SetMethod is the tracker set function name referenced by generated
	// code. Defaults to DefaultSetMethod.
	SetMethod string

	// Warnf receives generation diagnostics: substituted defaults, skipped
	// entities, best-effort fallbacks. Defaults to log.Printf.
	Warnf func(format string, args ...any)
}

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the output package import path.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithUpdateInterface sets the update contract interface name.
func WithUpdateInterface(name string) Option {
	return func(c *Config) error {
		c.UpdateInterface = name
		return nil
	}
}

// WithCloneMethod sets the update contract clone method name.
func WithCloneMethod(name string) Option {
	return func(c *Config) error {
		c.CloneMethod = name
		return nil
	}
}

// WithImports appends implicit imports added to every generated file.
func WithImports(paths ...string) Option {
	return func(c *Config) error {
		c.Imports = append(c.Imports, paths...)
		return nil
	}
}

// WithTrackerBase sets the change-tracker base type name.
func WithTrackerBase(name string) Option {
	return func(c *Config) error {
		c.TrackerBase = name
		return nil
	}
}

// WithSetMethod sets the tracker set function name.
func WithSetMethod(name string) Option {
	return func(c *Config) error {
		c.SetMethod = name
		return nil
	}
}

// WithWarnf sets the diagnostics sink.
func WithWarnf(fn func(format string, args ...any)) Option {
	return func(c *Config) error {
		if fn == nil {
			return NewConfigError("Warnf", nil, "diagnostics sink cannot be nil")
		}
		c.Warnf = fn
		return nil
	}
}

// Apply applies options to the config. It returns the first error
// encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// NewConfig creates a Config with the given options and substitutes the
// documented default for every omitted option, emitting a notice per
// substitution.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if c.Warnf == nil {
		c.Warnf = log.Printf
	}
	c.defaulted()
	return c, nil
}

// MustNewConfig creates a Config and panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Config) defaulted() {
	sub := func(name, def string, dst *string) {
		if *dst == "" {
			*dst = def
			c.Warnf("cowgen: option %s omitted, using default %q", name, def)
		}
	}
	sub("UpdateInterface", DefaultUpdateInterface, &c.UpdateInterface)
	sub("CloneMethod", DefaultCloneMethod, &c.CloneMethod)
	sub("TrackerBase", DefaultTrackerBase, &c.TrackerBase)
	sub("SetMethod", DefaultSetMethod, &c.SetMethod)
}
