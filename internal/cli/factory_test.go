package cli

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/semtoken/internal/config"
	"github.com/aretw0/semtoken/internal/logging"
	"github.com/aretw0/semtoken/internal/testutils"
	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/aretw0/semtoken/pkg/persistence/middleware"
	"github.com/aretw0/semtoken/pkg/vocabulary"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	cfg := config.Default()
	cfg.Store.Driver = config.StoreMemory
	cfg.Publisher.Driver = config.PublisherMemory
	return cfg
}

func TestNewRuntime_Memory(t *testing.T) {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	defer rt.Close()

	d := testutils.Descriptor("Runtime")
	_, err = rt.Studio.SaveDraft(ctx, d)
	require.NoError(t, err)
	res, err := rt.Studio.Publish(ctx, d)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Address)

	assert.Equal(t, 1.0, testutil.ToFloat64(rt.Metrics.Renders))
}

func TestNewRuntime_CustomOntologiesAndDecimals(t *testing.T) {
	cfg := memoryConfig()
	cfg.Render.Decimals = true
	cfg.Ontologies = []vocabulary.Ontology{{Key: "schema", Prefix: "schema", URI: "https://schema.org/", Terms: []string{"name"}}}

	rt, err := NewRuntime(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	_, ok := rt.Studio.Catalog().Get("schema")
	assert.True(t, ok)
	assert.Contains(t, rt.Studio.Render(domain.NewDescriptor()), "#decimals> 2 ;")
}

func TestNewRuntime_NoPublisher(t *testing.T) {
	cfg := memoryConfig()
	cfg.Publisher.Driver = config.PublisherNone

	rt, err := NewRuntime(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	_, err = rt.Studio.Publish(context.Background(), domain.NewDescriptor())
	assert.Error(t, err)
}

func TestNewRuntime_FileStore(t *testing.T) {
	ctx := context.Background()
	cfg := memoryConfig()
	cfg.Store.Driver = config.StoreFile
	cfg.Store.Dir = t.TempDir()

	rt, err := NewRuntime(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	info, err := rt.Studio.SaveDraft(ctx, testutils.Descriptor("On Disk"))
	require.NoError(t, err)

	// A second runtime on the same directory sees the draft.
	rt2, err := NewRuntime(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	d, err := rt2.Studio.LoadDraft(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, "On Disk", d.Name)
}

func TestNewRuntime_LoamStore(t *testing.T) {
	ctx := context.Background()
	cfg := memoryConfig()
	cfg.Store.Driver = config.StoreLoam
	cfg.Store.Dir = t.TempDir()

	rt, err := NewRuntime(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	info, err := rt.Studio.SaveDraft(ctx, testutils.Descriptor("Loam"))
	require.NoError(t, err)

	list, err := rt.Studio.ListDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, info.ID, list[0].ID)
}

func TestNewRuntime_RedisWithEncryption(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cfg := memoryConfig()
	cfg.Store.Driver = config.StoreRedis
	cfg.Store.Redis.Addr = mr.Addr()
	cfg.Encryption.Key = "0123456789abcdef0123456789abcdef"
	cfg.Redact.Patterns = []string{"(?i)secret"}

	rt, err := NewRuntime(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	defer rt.Close()

	d := domain.AddProperty(testutils.Descriptor("Vault"),
		domain.Property{Key: "ex:secret", Value: "hunter2"})
	info, err := rt.Studio.SaveDraft(ctx, d)
	require.NoError(t, err)

	raw, err := mr.Get("semtoken:draft:" + info.ID)
	require.NoError(t, err)
	assert.Contains(t, raw, "__encrypted__")
	assert.NotContains(t, raw, "hunter2")

	loaded, err := rt.Studio.LoadDraft(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, middleware.RedactedValue, loaded.Properties[len(loaded.Properties)-1].Value)
	assert.False(t, mr.Exists("semtoken:lock:draft:"+info.ID), "lock released after save")
}

func TestNewRuntime_UnknownDrivers(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Driver = "s3"
	_, err := NewRuntime(context.Background(), cfg, logging.NewNop())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg = memoryConfig()
	cfg.Publisher.Driver = "ftp"
	_, err = NewRuntime(context.Background(), cfg, logging.NewNop())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewRuntime_ProcessPublisher(t *testing.T) {
	cfg := memoryConfig()
	cfg.Publisher.Driver = config.PublisherProcess
	cfg.Publisher.Command = "missing"

	rt, err := NewRuntime(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	_, err = rt.Studio.Publish(context.Background(), domain.NewDescriptor())
	assert.ErrorContains(t, err, "not registered")
}
