package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/semtoken/internal/config"
	"github.com/aretw0/semtoken/pkg/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "semtoken.yaml", `
log_level: debug
store:
  driver: redis
  redis:
    addr: redis:6379
    db: 2
    ttl: 24h
publisher:
  driver: nats
  bucket: tokens
server:
  port: 9090
redact:
  patterns: ["(?i)secret"]
ontologies:
  - key: schema
    name: Schema.org
    prefix: schema
    uri: https://schema.org/
    terms: [name, url]
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.StoreRedis, cfg.Store.Driver)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, 24*time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, "semtoken:", cfg.Store.Redis.Prefix, "unset fields keep defaults")
	assert.Equal(t, config.PublisherNATS, cfg.Publisher.Driver)
	assert.Equal(t, "tokens", cfg.Publisher.Bucket)
	assert.Equal(t, 9090, cfg.Server.Port)
	require.Len(t, cfg.Ontologies, 1)
	assert.Equal(t, []string{"name", "url"}, cfg.Ontologies[0].Terms)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "semtoken.json", `{"store": {"driver": "memory"}, "publisher": {"driver": "none"}}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.Store.Driver)
	assert.Equal(t, config.PublisherNone, cfg.Publisher.Driver)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := config.Load(writeFile(t, "semtoken.yaml", "store: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "semtoken.yaml", "store:\n  driver: file\n")
	t.Setenv("SEMTOKEN_STORE", "memory")
	t.Setenv("SEMTOKEN_PORT", "7070")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.Store.Driver)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SEMTOKEN_REDIS_DB":        "3",
		"SEMTOKEN_REDIS_TTL":       "90m",
		"SEMTOKEN_REDACT_PATTERNS": "token, ,password",
		"SEMTOKEN_PUBLISHER":       "process",
		"SEMTOKEN_PUBLISH_COMMAND": "pinata",
		"SEMTOKEN_ENCRYPTION_KEY":  "",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, 3, cfg.Store.Redis.DB)
	assert.Equal(t, 90*time.Minute, cfg.Store.Redis.TTL)
	assert.Equal(t, []string{"token", "password"}, cfg.Redact.Patterns)
	assert.Equal(t, config.PublisherProcess, cfg.Publisher.Driver)
	assert.Equal(t, "pinata", cfg.Publisher.Command)
	assert.Empty(t, cfg.Encryption.Key, "empty values do not override")
}

func TestApplyEnv_BadNumbers(t *testing.T) {
	env := map[string]string{"SEMTOKEN_PORT": "http", "SEMTOKEN_REDIS_TTL": "soon"}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := config.Default()
	err := cfg.ApplyEnv(lookup)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.ErrorContains(t, err, "SEMTOKEN_PORT")
	assert.ErrorContains(t, err, "SEMTOKEN_REDIS_TTL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		ok     bool
	}{
		{"defaults", func(*config.Config) {}, true},
		{"unknown store", func(c *config.Config) { c.Store.Driver = "s3" }, false},
		{"unknown publisher", func(c *config.Config) { c.Publisher.Driver = "ftp" }, false},
		{"port", func(c *config.Config) { c.Server.Port = 70000 }, false},
		{"short key", func(c *config.Config) { c.Encryption.Key = "short" }, false},
		{"raw key", func(c *config.Config) { c.Encryption.Key = "0123456789abcdef0123456789abcdef" }, true},
		{"bad fallback", func(c *config.Config) {
			c.Encryption.Key = "0123456789abcdef0123456789abcdef"
			c.Encryption.FallbackKeys = []string{"nope"}
		}, false},
		{"bad pattern", func(c *config.Config) { c.Redact.Patterns = []string{"("} }, false},
		{"incomplete ontology", func(c *config.Config) {
			c.Ontologies = append(c.Ontologies, vocabulary.Ontology{Key: "x"})
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, config.ErrInvalidConfig)
			}
		})
	}
}
