package sekai

import (
	"io"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Log formats understood by Config.
const (
	LogFormatJSON   = "json"
	LogFormatPretty = "pretty"
)

// Config holds the environment configuration of worlds and registries.
type Config struct {
	// Entity ids each world preallocates room for.
	EntityCapacity int `env:"SEKAI_ENTITY_CAPACITY" envDefault:"1024"`

	// Archetypes each world preallocates room for.
	ArchetypeCapacity int `env:"SEKAI_ARCHETYPE_CAPACITY" envDefault:"64"`

	// Minimum level of the logger built by NewLogger.
	LogLevel string `env:"SEKAI_LOG_LEVEL" envDefault:"info"`

	// Output format of the logger built by NewLogger, json or pretty.
	LogFormat string `env:"SEKAI_LOG_FORMAT" envDefault:"json"`
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (Config, error) {
	cfg := Config{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate config")
	}

	return cfg, nil
}

// validate performs validation on the loaded configuration.
func (cfg *Config) validate() error {
	if cfg.EntityCapacity < 0 {
		return eris.Errorf("entity capacity cannot be negative, got %d", cfg.EntityCapacity)
	}
	if cfg.ArchetypeCapacity < 0 {
		return eris.Errorf("archetype capacity cannot be negative, got %d", cfg.ArchetypeCapacity)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		return eris.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case LogFormatJSON, LogFormatPretty:
	default:
		return eris.Errorf("invalid log format %q, must be %s or %s", cfg.LogFormat, LogFormatJSON, LogFormatPretty)
	}
	return nil
}

// NewLogger builds a logger writing to out with the configured level and format.
func (cfg Config) NewLogger(out io.Writer) (zerolog.Logger, error) {
	if err := cfg.validate(); err != nil {
		return zerolog.Nop(), eris.Wrap(err, "failed to validate config")
	}
	level, _ := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))

	if cfg.LogFormat == LogFormatPretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

// options are the resolved construction parameters of a World.
type options struct {
	types             *TypeRegistry
	logger            zerolog.Logger
	entityCapacity    int
	archetypeCapacity int
}

// Option configures a World or a Registry.
type Option func(*options)

func newOptions(opts ...Option) options {
	o := options{
		types:             defaultTypes,
		logger:            zerolog.Nop(),
		entityCapacity:    1024,
		archetypeCapacity: 64,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithEntityCapacity preallocates room for n entity ids.
func WithEntityCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.entityCapacity = n
		}
	}
}

// WithArchetypeCapacity preallocates room for n archetypes.
func WithArchetypeCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.archetypeCapacity = n
		}
	}
}

// WithLogger sets the logger. Worlds log nothing by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTypeRegistry numbers component types with r instead of the process-wide registry.
func WithTypeRegistry(r *TypeRegistry) Option {
	return func(o *options) {
		if r != nil {
			o.types = r
		}
	}
}

// WithConfig applies the capacities of cfg.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		WithEntityCapacity(cfg.EntityCapacity)(o)
		WithArchetypeCapacity(cfg.ArchetypeCapacity)(o)
	}
}
