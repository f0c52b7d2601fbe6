// Package config loads semtoken.yaml and applies SEMTOKEN_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/semtoken/pkg/persistence/middleware"
	"github.com/aretw0/semtoken/pkg/vocabulary"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "semtoken.yaml"

// Store drivers.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreLoam   = "loam"
)

// Publisher drivers.
const (
	PublisherNone    = "none"
	PublisherMemory  = "memory"
	PublisherIPFS    = "ipfs"
	PublisherNATS    = "nats"
	PublisherProcess = "process"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of semtoken.yaml.
type Config struct {
	LogLevel   string                `yaml:"log_level"`
	LogFormat  string                `yaml:"log_format"`
	Store      StoreConfig           `yaml:"store"`
	Publisher  PublisherConfig       `yaml:"publisher"`
	Server     ServerConfig          `yaml:"server"`
	Render     RenderConfig          `yaml:"render"`
	Encryption EncryptionConfig      `yaml:"encryption"`
	Redact     RedactConfig          `yaml:"redact"`
	Ontologies []vocabulary.Ontology `yaml:"ontologies"`
}

// StoreConfig selects the Storage Provider.
type StoreConfig struct {
	Driver     string        `yaml:"driver"`
	Dir        string        `yaml:"dir"`
	Collection string        `yaml:"collection"`
	Redis      RedisConfig   `yaml:"redis"`
	LockTTL    time.Duration `yaml:"lock_ttl"`
}

// RedisConfig holds the connection of the redis store and locker.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
	Prefix   string        `yaml:"prefix"`
}

// PublisherConfig selects the Content Publisher.
type PublisherConfig struct {
	Driver       string        `yaml:"driver"`
	IPFSURL      string        `yaml:"ipfs_url"`
	NATSURL      string        `yaml:"nats_url"`
	Bucket       string        `yaml:"bucket"`
	Command      string        `yaml:"command"`
	CommandsFile string        `yaml:"commands_file"`
	Timeout      time.Duration `yaml:"timeout"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port       int    `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// RenderConfig tunes the Turtle output.
type RenderConfig struct {
	Decimals bool `yaml:"decimals"`
}

// EncryptionConfig enables at-rest encryption of drafts.
type EncryptionConfig struct {
	Key          string   `yaml:"key"`
	FallbackKeys []string `yaml:"fallback_keys"`
}

// RedactConfig masks property values whose key matches a pattern.
type RedactConfig struct {
	Patterns []string `yaml:"patterns"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Store: StoreConfig{
			Driver:     StoreFile,
			Dir:        ".semtoken/drafts",
			Collection: "drafts",
			Redis:      RedisConfig{Addr: "localhost:6379", Prefix: "semtoken:"},
			LockTTL:    10 * time.Second,
		},
		Publisher: PublisherConfig{
			Driver:  PublisherIPFS,
			IPFSURL: "http://127.0.0.1:5001",
			NATSURL: "nats://127.0.0.1:4222",
			Bucket:  "semtoken",
			Command: "ipfs",
			Timeout: time.Minute,
		},
		Server: ServerConfig{Port: 8080, CORSOrigin: "*"},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error. An empty path means DefaultPath.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// JSON is valid YAML, so one decoder serves both extensions.
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from SEMTOKEN_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
		}
		*dst = n
		return nil
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, v)
		}
		*dst = d
		return nil
	}

	str("SEMTOKEN_LOG_LEVEL", &c.LogLevel)
	str("SEMTOKEN_LOG_FORMAT", &c.LogFormat)
	str("SEMTOKEN_STORE", &c.Store.Driver)
	str("SEMTOKEN_STORE_DIR", &c.Store.Dir)
	str("SEMTOKEN_REDIS_ADDR", &c.Store.Redis.Addr)
	str("SEMTOKEN_REDIS_PASSWORD", &c.Store.Redis.Password)
	str("SEMTOKEN_PUBLISHER", &c.Publisher.Driver)
	str("SEMTOKEN_IPFS_URL", &c.Publisher.IPFSURL)
	str("SEMTOKEN_NATS_URL", &c.Publisher.NATSURL)
	str("SEMTOKEN_NATS_BUCKET", &c.Publisher.Bucket)
	str("SEMTOKEN_PUBLISH_COMMAND", &c.Publisher.Command)
	str("SEMTOKEN_ENCRYPTION_KEY", &c.Encryption.Key)
	if v, ok := lookup("SEMTOKEN_REDACT_PATTERNS"); ok && v != "" {
		c.Redact.Patterns = splitList(v)
	}

	return errors.Join(
		num("SEMTOKEN_REDIS_DB", &c.Store.Redis.DB),
		num("SEMTOKEN_PORT", &c.Server.Port),
		dur("SEMTOKEN_REDIS_TTL", &c.Store.Redis.TTL),
	)
}

// Validate reports unknown drivers, bad ports, bad keys and bad patterns.
func (c Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case StoreMemory, StoreFile, StoreRedis, StoreLoam:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver))
	}
	switch c.Publisher.Driver {
	case PublisherNone, PublisherMemory, PublisherIPFS, PublisherNATS, PublisherProcess:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown publisher driver %q", ErrInvalidConfig, c.Publisher.Driver))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port))
	}
	if c.Encryption.Key != "" {
		for _, k := range append([]string{c.Encryption.Key}, c.Encryption.FallbackKeys...) {
			if _, err := middleware.ParseKey(k); err != nil {
				errs = append(errs, fmt.Errorf("%w: encryption key: %w", ErrInvalidConfig, err))
			}
		}
	}
	for _, p := range c.Redact.Patterns {
		if _, err := regexp.Compile(p); err != nil {
			errs = append(errs, fmt.Errorf("%w: redact pattern %q: %w", ErrInvalidConfig, p, err))
		}
	}
	for i, o := range c.Ontologies {
		if o.Key == "" || o.Prefix == "" || o.URI == "" {
			errs = append(errs, fmt.Errorf("%w: ontology #%d needs key, prefix and uri", ErrInvalidConfig, i))
		}
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
