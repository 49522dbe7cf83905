package codec

import (
	"fmt"

	"github.com/arloliu/nbt/endian"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/internal/options"
)

// DefaultMaxDepth is the deepest container nesting accepted by the decoder and the
// encoder. The root compound is depth 1.
const DefaultMaxDepth = 512

// Config holds the settings shared by Decode and Encode.
type Config struct {
	engine   endian.EndianEngine
	maxDepth int
	filter   *Filter
}

// NewConfig returns the default configuration: big-endian (Java Edition), depth limit
// DefaultMaxDepth, no filter.
func NewConfig() *Config {
	return &Config{
		engine:   endian.GetBigEndianEngine(),
		maxDepth: DefaultMaxDepth,
	}
}

func newConfig(opts []Option) (*Config, error) {
	cfg := NewConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Engine returns the configured byte order.
func (c *Config) Engine() endian.EndianEngine {
	return c.engine
}

// MaxDepth returns the configured nesting limit.
func (c *Config) MaxDepth() int {
	return c.maxDepth
}

// Filter returns the configured filter, nil for full decodes.
func (c *Config) Filter() *Filter {
	return c.filter
}

// IsSelective reports whether opts configure a filtered decode.
func IsSelective(opts ...Option) (bool, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return false, err
	}

	return cfg.filter != nil, nil
}

// Option configures a codec call.
// This is a type alias for the generic Option interface specialized for Config.
type Option = options.Option[*Config]

// WithBigEndian selects big-endian numbers, the Java Edition layout.
// It is the default option.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithLittleEndian selects little-endian numbers, the Bedrock Edition layout.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithMaxDepth limits container nesting. Input nested deeper than depth fails with
// errs.ErrMalformedInput.
func WithMaxDepth(depth int) Option {
	return options.New(func(c *Config) error {
		if depth < 1 {
			return fmt.Errorf("%w: max depth %d", errs.ErrInvalidOption, depth)
		}
		c.maxDepth = depth

		return nil
	})
}

// WithFilter restricts decoding to the paths selected by f. It has no effect on
// encoding.
func WithFilter(f *Filter) Option {
	return options.NoError(func(c *Config) {
		c.filter = f
	})
}
