package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/stitchgraph/pkg/errors"
	"github.com/matzehuels/stitchgraph/pkg/pipeline"
)

// Cache backends selectable in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

const (
	configFile        = "config.toml"
	defaultServerAddr = ":8080"
)

// Config is the on-disk CLI configuration. Flags override file values and
// file values override pipeline defaults.
//
//	formats = ["json", "svg"]
//	colors = 3
//
//	[cache]
//	backend = "redis"
//	namespace = "prod"
//
//	[cache.redis]
//	addr = "localhost:6379"
type Config struct {
	Formats  []string     `toml:"formats"`
	Colors   int          `toml:"colors"`
	Detailed bool         `toml:"detailed"`
	Cache    CacheConfig  `toml:"cache"`
	Server   ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string      `toml:"backend"`   // file (default), redis, mongo, none
	Dir       string      `toml:"dir"`       // file backend directory
	Namespace string      `toml:"namespace"` // key prefix shared by all backends
	Redis     RedisConfig `toml:"redis"`
	Mongo     MongoConfig `toml:"mongo"`
}

// RedisConfig holds redis backend settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// MongoConfig holds mongo backend settings.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	GraphsDir string `toml:"graphs_dir"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Formats: append([]string(nil), pipeline.DefaultFormats...),
		Colors:  pipeline.DefaultColors,
		Cache:   CacheConfig{Backend: backendFile},
		Server:  ServerConfig{Addr: defaultServerAddr},
	}
}

// LoadConfig reads the config at path on top of DefaultConfig. An empty
// path means the XDG default location, which may be absent.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field values that toml decoding cannot.
func (c Config) Validate() error {
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "formats")
	}
	if c.Colors != pipeline.DefaultColors {
		return errs.New(errs.ErrCodeInvalidConfig, "colors = %d: only %d-coloring is supported", c.Colors, pipeline.DefaultColors)
	}
	switch c.Cache.Backend {
	case "", backendFile, backendNone:
	case backendRedis:
		if c.Cache.Redis.Addr == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
		}
	case backendMongo:
		if c.Cache.Mongo.URI == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache.mongo.uri is required for the mongo backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}
