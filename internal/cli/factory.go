package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/semtoken"
	"github.com/aretw0/semtoken/internal/adapters/file"
	"github.com/aretw0/semtoken/internal/config"
	"github.com/aretw0/semtoken/pkg/adapters/ipfs"
	"github.com/aretw0/semtoken/pkg/adapters/loam"
	"github.com/aretw0/semtoken/pkg/adapters/memory"
	"github.com/aretw0/semtoken/pkg/adapters/nats"
	"github.com/aretw0/semtoken/pkg/adapters/process"
	"github.com/aretw0/semtoken/pkg/adapters/redis"
	"github.com/aretw0/semtoken/pkg/observability"
	"github.com/aretw0/semtoken/pkg/persistence/middleware"
	"github.com/aretw0/semtoken/pkg/ports"
	"github.com/aretw0/semtoken/pkg/turtle"
	"github.com/aretw0/semtoken/pkg/vocabulary"
	"github.com/prometheus/client_golang/prometheus"
)

// Runtime is a Studio wired from configuration, plus what must be closed with it.
type Runtime struct {
	Studio  *semtoken.Studio
	Metrics *observability.Metrics
	Config  config.Config

	closers []func() error
}

// Close releases connections opened by the store and publisher.
func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i]())
	}
	return errors.Join(errs...)
}

// NewRuntime builds the Studio described by cfg.
func NewRuntime(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{
		Config:  cfg,
		Metrics: observability.NewMetrics(prometheus.NewRegistry()),
	}

	// 1. Logger & Hooks
	opts := []semtoken.Option{
		semtoken.WithLogger(logger),
		semtoken.WithLifecycleHooks(observability.MergeHooks(rt.Metrics.Hooks(), observability.LogHooks(logger))),
		semtoken.WithCatalog(vocabulary.DefaultCatalog().With(cfg.Ontologies...)),
	}
	if cfg.Render.Decimals {
		opts = append(opts, semtoken.WithSerializer(turtle.New(turtle.WithDecimals())))
	}

	// 2. Storage, wrapped by redaction and encryption
	store, locker, err := rt.openStore(cfg)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	mws, err := storeMiddleware(cfg)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	opts = append(opts, semtoken.WithStore(middleware.Chain(store, mws...)))
	if locker != nil {
		opts = append(opts, semtoken.WithLocker(locker, cfg.Store.LockTTL))
	}

	// 3. Publisher
	pub, err := rt.openPublisher(ctx, cfg)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	if pub != nil {
		opts = append(opts, semtoken.WithPublisher(pub))
	}

	rt.Studio = semtoken.New(opts...)
	logger.Debug("runtime ready", "store", cfg.Store.Driver, "publisher", cfg.Publisher.Driver)
	return rt, nil
}

func (rt *Runtime) openStore(cfg config.Config) (ports.DraftStore, ports.DistributedLocker, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return memory.NewStore(), nil, nil
	case config.StoreFile:
		return file.New(cfg.Store.Dir), nil, nil
	case config.StoreLoam:
		s, err := loam.Open(cfg.Store.Dir, loam.WithCollection(cfg.Store.Collection))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open loam repository: %w", err)
		}
		return s, nil, nil
	case config.StoreRedis:
		rc := cfg.Store.Redis
		s := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithTTL(rc.TTL), redis.WithPrefix(rc.Prefix))
		rt.closers = append(rt.closers, s.Close)
		return s, redis.NewLocker(s.Client(), rc.Prefix), nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown store driver %q", config.ErrInvalidConfig, cfg.Store.Driver)
	}
}

// storeMiddleware orders redaction before encryption so masking sees plain JSON.
func storeMiddleware(cfg config.Config) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(cfg.Redact.Patterns) > 0 {
		mws = append(mws, middleware.NewRedactMiddleware(cfg.Redact.Patterns))
	}
	if cfg.Encryption.Key != "" {
		active, err := middleware.ParseKey(cfg.Encryption.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: encryption key: %w", config.ErrInvalidConfig, err)
		}
		enc := middleware.EncryptionConfig{ActiveKey: active}
		for _, k := range cfg.Encryption.FallbackKeys {
			key, err := middleware.ParseKey(k)
			if err != nil {
				return nil, fmt.Errorf("%w: fallback key: %w", config.ErrInvalidConfig, err)
			}
			enc.FallbackKeys = append(enc.FallbackKeys, key)
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(enc))
	}
	return mws, nil
}

func (rt *Runtime) openPublisher(ctx context.Context, cfg config.Config) (ports.Publisher, error) {
	pc := cfg.Publisher
	switch pc.Driver {
	case config.PublisherNone:
		return nil, nil
	case config.PublisherMemory:
		return memory.NewPublisher(), nil
	case config.PublisherIPFS:
		return ipfs.New(pc.IPFSURL), nil
	case config.PublisherNATS:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		p, err := nats.Connect(connectCtx, pc.NATSURL, pc.Bucket)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, p.Close)
		return p, nil
	case config.PublisherProcess:
		commands := map[string]process.CommandConfig{}
		if pc.CommandsFile != "" {
			loaded, err := process.LoadCommands(pc.CommandsFile)
			if err != nil {
				return nil, err
			}
			commands = loaded
		}
		wd, _ := os.Getwd()
		return process.New(pc.Command,
			process.WithRegistry(commands),
			process.WithBaseDir(wd),
			process.WithTimeout(pc.Timeout),
		), nil
	default:
		return nil, fmt.Errorf("%w: unknown publisher driver %q", config.ErrInvalidConfig, pc.Driver)
	}
}
