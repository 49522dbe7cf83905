package region

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/nbt/codec"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/internal/options"
)

// Config holds region read and write settings.
type Config struct {
	logger      *slog.Logger
	skipCorrupt bool
	scheme      format.RegionScheme
	codecOpts   []codec.Option
}

// NewConfig returns the defaults: no logging, strict reads, zlib for new chunks.
func NewConfig() *Config {
	return &Config{
		logger: slog.New(slog.DiscardHandler),
		scheme: format.SchemeZlib,
	}
}

func newConfig(opts []Option) (*Config, error) {
	cfg := NewConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Option configures a Region.
// This is a type alias for the generic Option interface specialized for Config.
type Option = options.Option[*Config]

// WithLogger sets the logger that reports skipped slots and decode progress.
// A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		c.logger = logger
	})
}

// WithSkipCorrupt makes Read drop slots whose location, length or scheme is invalid
// instead of failing the whole region. Every dropped slot is logged at warn level.
func WithSkipCorrupt() Option {
	return options.NoError(func(c *Config) {
		c.skipCorrupt = true
	})
}

// WithScheme sets the compression scheme for chunks added with SetDocument and
// WriteDocuments. The default is zlib.
func WithScheme(scheme format.RegionScheme) Option {
	return options.New(func(c *Config) error {
		if _, ok := scheme.Compression(); !ok {
			return fmt.Errorf("%w: region scheme %d", errs.ErrUnsupportedCompression, uint8(scheme))
		}
		c.scheme = scheme

		return nil
	})
}

// WithCodecOptions passes options to every chunk decode and encode, for example a
// codec.WithFilter for selective reads.
func WithCodecOptions(opts ...codec.Option) Option {
	return options.NoError(func(c *Config) {
		c.codecOpts = append(c.codecOpts, opts...)
	})
}
