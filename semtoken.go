package semtoken

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/aretw0/semtoken/pkg/ports"
	"github.com/aretw0/semtoken/pkg/turtle"
	"github.com/aretw0/semtoken/pkg/vocabulary"
)

var (
	// ErrNoStore is returned by draft operations when no DraftStore is configured.
	ErrNoStore = errors.New("no draft store configured")
	// ErrNoPublisher is returned by Publish when no Publisher is configured.
	ErrNoPublisher = errors.New("no publisher configured")
)

// DefaultLockTTL bounds how long a draft save may hold the distributed lock.
const DefaultLockTTL = 10 * time.Second

// URIScheme is the scheme of the URI built from a publisher address when the
// publisher does not render URIs itself.
const URIScheme = "ipfs://"

// addressRenderer is implemented by publishers whose addresses are not IPFS CIDs.
type addressRenderer interface {
	URI(address string) string
}

// PublishResult describes a published document.
type PublishResult struct {
	Address string `json:"address"`
	URI     string `json:"uri"`
	Turtle  string `json:"turtle"`
}

// Studio is the high-level entry point of the library.
// It renders descriptors, activates vocabularies and moves drafts and documents
// through the configured ports. A Studio is safe for concurrent use.
type Studio struct {
	store      ports.DraftStore
	publisher  ports.Publisher
	locker     ports.DistributedLocker
	lockTTL    time.Duration
	catalog    *vocabulary.Catalog
	serializer *turtle.Serializer
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	now        func() time.Time
}

// Option defines a functional option for configuring the Studio.
type Option func(*Studio)

// WithStore sets the Storage Provider used for drafts.
func WithStore(store ports.DraftStore) Option {
	return func(s *Studio) {
		s.store = store
	}
}

// WithPublisher sets the Content Publisher.
func WithPublisher(p ports.Publisher) Option {
	return func(s *Studio) {
		s.publisher = p
	}
}

// WithLocker serializes saves of the same draft through l.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(s *Studio) {
		s.locker = l
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// WithCatalog replaces the built-in ontology catalog.
func WithCatalog(c *vocabulary.Catalog) Option {
	return func(s *Studio) {
		s.catalog = c
	}
}

// WithSerializer replaces the default Turtle serializer.
func WithSerializer(ser *turtle.Serializer) Option {
	return func(s *Studio) {
		s.serializer = ser
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Studio) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Studio) {
		s.hooks = hooks
	}
}

// WithClock overrides the time source used for draft timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Studio) {
		s.now = now
	}
}

// New creates a Studio. Without options it can render and activate
// vocabularies; drafts and publishing need WithStore and WithPublisher.
func New(opts ...Option) *Studio {
	s := &Studio{
		lockTTL:    DefaultLockTTL,
		catalog:    vocabulary.DefaultCatalog(),
		serializer: turtle.New(),
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the ontology catalog in use.
func (s *Studio) Catalog() *vocabulary.Catalog {
	return s.catalog
}

// Render serializes d to Turtle. It never fails.
func (s *Studio) Render(d domain.TokenDescriptor) string {
	return s.render(context.Background(), d)
}

func (s *Studio) render(ctx context.Context, d domain.TokenDescriptor) string {
	out := s.serializer.Serialize(d)
	if s.hooks.OnRender != nil {
		s.hooks.OnRender(ctx, &domain.RenderEvent{
			EventBase: domain.EventBase{Timestamp: s.now(), Type: domain.EventRender},
			TokenName: d.Name,
			Bytes:     len(out),
		})
	}
	return out
}

// Activate applies the descriptor's selected ontologies: it returns a copy of d
// with the merged prefix table and the autocomplete vocabulary.
func (s *Studio) Activate(d domain.TokenDescriptor) (domain.TokenDescriptor, []string) {
	return s.catalog.Apply(d)
}

// SaveDraft stores d under the ID derived from its token name.
func (s *Studio) SaveDraft(ctx context.Context, d domain.TokenDescriptor) (domain.DraftInfo, error) {
	if s.store == nil {
		return domain.DraftInfo{}, ErrNoStore
	}
	id, err := domain.DraftID(d.Name)
	if err != nil {
		return domain.DraftInfo{}, err
	}
	blob, err := domain.EncodeDraft(d)
	if err != nil {
		return domain.DraftInfo{}, err
	}
	info := domain.DraftInfo{ID: id, DisplayName: d.Name, UpdatedAt: s.now().UTC()}

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, "draft:"+id, s.lockTTL)
		if err != nil {
			return domain.DraftInfo{}, fmt.Errorf("lock draft %q: %w", id, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("failed to release draft lock", "draft_id", id, "err", err)
			}
		}()
	}

	err = s.store.Save(ctx, id, blob, info)
	s.emitDraft(ctx, domain.EventDraftSaved, id, len(blob), err)
	if err != nil {
		return domain.DraftInfo{}, fmt.Errorf("save draft %q: %w", id, err)
	}
	s.logger.Info("draft saved", "draft_id", id, "bytes", len(blob))
	return info, nil
}

// LoadDraft reads and decodes a stored draft.
func (s *Studio) LoadDraft(ctx context.Context, id string) (domain.TokenDescriptor, error) {
	if s.store == nil {
		return domain.TokenDescriptor{}, ErrNoStore
	}
	blob, err := s.store.Load(ctx, id)
	s.emitDraft(ctx, domain.EventDraftLoaded, id, len(blob), err)
	if err != nil {
		return domain.TokenDescriptor{}, fmt.Errorf("load draft %q: %w", id, err)
	}
	d, err := domain.DecodeDraft(blob)
	if err != nil {
		return domain.TokenDescriptor{}, fmt.Errorf("load draft %q: %w", id, err)
	}
	return d, nil
}

// ListDrafts returns the stored drafts, most recently updated first.
func (s *Studio) ListDrafts(ctx context.Context) ([]domain.DraftInfo, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	drafts, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	return drafts, nil
}

// DeleteDraft removes a draft. Missing drafts are not an error.
func (s *Studio) DeleteDraft(ctx context.Context, id string) error {
	if s.store == nil {
		return ErrNoStore
	}
	err := s.store.Delete(ctx, id)
	s.emitDraft(ctx, domain.EventDraftDeleted, id, 0, err)
	if err != nil {
		return fmt.Errorf("delete draft %q: %w", id, err)
	}
	return nil
}

// Publish renders d and hands the exact text to the publisher.
func (s *Studio) Publish(ctx context.Context, d domain.TokenDescriptor) (PublishResult, error) {
	if s.publisher == nil {
		return PublishResult{}, ErrNoPublisher
	}
	text := s.render(ctx, d)

	start := s.now()
	addr, err := s.publisher.Publish(ctx, text)
	if s.hooks.OnPublish != nil {
		s.hooks.OnPublish(ctx, &domain.PublishEvent{
			EventBase: domain.EventBase{Timestamp: s.now(), Type: domain.EventPublish},
			Address:   addr,
			Bytes:     len(text),
			Duration:  s.now().Sub(start),
			IsError:   err != nil,
		})
	}
	if err != nil {
		s.logger.Error("publish failed", "token", d.Name, "err", err)
		return PublishResult{}, fmt.Errorf("publish %q: %w", d.Name, err)
	}

	uri := URIScheme + addr
	if r, ok := s.publisher.(addressRenderer); ok {
		uri = r.URI(addr)
	}
	s.logger.Info("document published", "token", d.Name, "uri", uri)
	return PublishResult{Address: addr, URI: uri, Turtle: text}, nil
}

func (s *Studio) emitDraft(ctx context.Context, t domain.EventType, id string, size int, err error) {
	if s.hooks.OnDraft == nil {
		return
	}
	s.hooks.OnDraft(ctx, &domain.DraftEvent{
		EventBase: domain.EventBase{Timestamp: s.now(), Type: t},
		DraftID:   id,
		Bytes:     size,
		IsError:   err != nil,
	})
}
