// Package config holds the runtime configuration shared by the commands,
// backed by viper so values can come from defaults, a config file, PARBFS_
// environment variables or bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"parbfs/pkg/bfs"
)

// EnvPrefix prefixes environment overrides, e.g. PARBFS_BFS_WORKERS.
const EnvPrefix = "PARBFS"

// AllStrategies is the bfs.strategy value that runs every strategy in turn.
const AllStrategies = "all"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config manages configuration using Viper
type Config struct {
	v *viper.Viper
}

// New creates a configuration with defaults and environment overrides.
func New() *Config {
	v := viper.New()

	// Traversal parameters
	v.SetDefault("bfs.strategy", bfs.HybridStrategy.String())
	v.SetDefault("bfs.workers", runtime.NumCPU())
	v.SetDefault("bfs.top_down_chunk", bfs.DefaultTopDownChunk)
	v.SetDefault("bfs.bottom_up_chunk", bfs.DefaultBottomUpChunk)
	v.SetDefault("bfs.root", 0)
	v.SetDefault("bfs.verify", false)

	// Logging parameters
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.verbose", false)
	v.SetDefault("logging.format", "console")

	// Server parameters
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.max_concurrent", runtime.NumCPU()*2)
	v.SetDefault("server.cors_origin", "")

	// Result cache
	v.SetDefault("cache.max_weight", 256<<20)
	v.SetDefault("cache.ttl", 10*time.Minute)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// BindFlag binds a command-line flag to a configuration key. Flags that
// were not set on the command line fall through to file, env and defaults.
func (c *Config) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("bind %s: flag not defined", key)
	}
	return c.v.BindPFlag(key, flag)
}

// Getters for traversal parameters
func (c *Config) Strategy() string { return c.v.GetString("bfs.strategy") }
func (c *Config) Workers() int { return c.v.GetInt("bfs.workers") }
func (c *Config) TopDownChunk() int { return c.v.GetInt("bfs.top_down_chunk") }
func (c *Config) BottomUpChunk() int { return c.v.GetInt("bfs.bottom_up_chunk") }
func (c *Config) Root() uint32 { return c.v.GetUint32("bfs.root") }
func (c *Config) Verify() bool { return c.v.GetBool("bfs.verify") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }
func (c *Config) Verbose() bool { return c.v.GetBool("logging.verbose") }
func (c *Config) LogFormat() string { return c.v.GetString("logging.format") }

func (c *Config) Addr() string { return c.v.GetString("server.addr") }
func (c *Config) ReadTimeout() time.Duration { return c.v.GetDuration("server.read_timeout") }
func (c *Config) WriteTimeout() time.Duration { return c.v.GetDuration("server.write_timeout") }
func (c *Config) RequestTimeout() time.Duration { return c.v.GetDuration("server.request_timeout") }
func (c *Config) MaxConcurrent() int { return c.v.GetInt("server.max_concurrent") }
func (c *Config) CORSOrigin() string { return c.v.GetString("server.cors_origin") }
func (c *Config) CacheMaxWeight() uint64 { return c.v.GetUint64("cache.max_weight") }
func (c *Config) CacheTTL() time.Duration { return c.v.GetDuration("cache.ttl") }

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// Strategies resolves bfs.strategy to the strategies to run. "all" yields
// every strategy in bfs.Strategies order.
func (c *Config) Strategies() ([]bfs.Strategy, error) {
	name := c.Strategy()
	if name == AllStrategies {
		return bfs.Strategies, nil
	}
	s, err := bfs.ParseStrategy(name)
	if err != nil {
		return nil, err
	}
	return []bfs.Strategy{s}, nil
}

// TraversalOptions returns the bfs options for the configured workers and
// chunk sizes.
func (c *Config) TraversalOptions() []bfs.Option {
	return []bfs.Option{
		bfs.WithWorkers(c.Workers()),
		bfs.WithTopDownChunk(c.TopDownChunk()),
		bfs.WithBottomUpChunk(c.BottomUpChunk()),
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Workers() < 1 {
		return fmt.Errorf("%w: bfs.workers must be >= 1, got %d", ErrInvalidConfig, c.Workers())
	}
	if c.TopDownChunk() < 1 {
		return fmt.Errorf("%w: bfs.top_down_chunk must be >= 1, got %d", ErrInvalidConfig, c.TopDownChunk())
	}
	if c.BottomUpChunk() < 1 {
		return fmt.Errorf("%w: bfs.bottom_up_chunk must be >= 1, got %d", ErrInvalidConfig, c.BottomUpChunk())
	}
	if _, err := c.Strategies(); err != nil {
		return fmt.Errorf("%w: bfs.strategy: %v", ErrInvalidConfig, err)
	}
	if c.MaxConcurrent() < 1 {
		return fmt.Errorf("%w: server.max_concurrent must be >= 1, got %d", ErrInvalidConfig, c.MaxConcurrent())
	}
	if _, err := zerolog.ParseLevel(c.LogLevel()); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	switch c.LogFormat() {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", ErrInvalidConfig, c.LogFormat())
	}
	return nil
}

// CreateLogger creates a zerolog logger writing to stderr.
func (c *Config) CreateLogger(service string) zerolog.Logger {
	return c.NewLogger(os.Stderr, service)
}

// NewLogger creates a zerolog logger based on config. logging.verbose
// lowers the level to debug so per-level traversal events are emitted.
func (c *Config) NewLogger(w io.Writer, service string) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.Verbose() && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	if c.LogFormat() == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("service", service).Logger()
}
