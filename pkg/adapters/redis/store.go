package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/semtoken/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "semtoken:"
	// farFuture scores index entries that never expire (2100-01-01).
	farFuture = 4102444800
)

// Store implements ports.DraftStore using Redis.
//
// Keys (with the default prefix):
//
//	semtoken:draft:<id>  raw draft blob, optional TTL
//	semtoken:index       ZSET of draft IDs scored by expiry
//	semtoken:info        HASH of draft ID to DraftInfo JSON
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for drafts.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: defaultPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying client, e.g. to build a Locker on the same connection.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(id string) string {
	return s.prefix + "draft:" + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

func (s *Store) infoKey() string {
	return s.prefix + "info"
}

// Save writes the blob, its index entry and its listing info in one pipeline.
func (s *Store) Save(ctx context.Context, id string, blob []byte, info domain.DraftInfo) error {
	info.ID = id
	meta, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal draft info: %w", err)
	}

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = farFuture
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(id), blob, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: id})
	pipe.HSet(ctx, s.infoKey(), id, meta)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the blob.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

// pruneScript drops index and info entries scored at or before ARGV[1].
// It runs atomically, so a draft re-saved concurrently keeps both entries.
const pruneScript = `
local expired = redis.call("ZRANGEBYSCORE", KEYS[1], "-inf", ARGV[1])
for _, id in ipairs(expired) do
	redis.call("ZREM", KEYS[1], id)
	redis.call("HDEL", KEYS[2], id)
end
return #expired
`

func (s *Store) prune(ctx context.Context, now int64) (int64, error) {
	n, err := s.client.Eval(ctx, pruneScript, []string{s.indexKey(), s.infoKey()}, now).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to prune expired drafts: %w", err)
	}
	return n, nil
}

// Delete removes the draft and its index entries.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	pipe.HDel(ctx, s.infoKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns live drafts, most recently updated first.
// Expired entries are pruned from the index lazily.
func (s *Store) List(ctx context.Context) ([]domain.DraftInfo, error) {
	if _, err := s.prune(ctx, time.Now().Unix()); err != nil {
		return nil, err
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	drafts := make([]domain.DraftInfo, 0, len(ids))
	if len(ids) == 0 {
		return drafts, nil
	}

	metas, err := s.client.HMGet(ctx, s.infoKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read draft info: %w", err)
	}
	for i, raw := range metas {
		info := domain.DraftInfo{ID: ids[i]}
		if str, ok := raw.(string); ok {
			if err := json.Unmarshal([]byte(str), &info); err != nil {
				return nil, fmt.Errorf("failed to unmarshal draft info %q: %w", ids[i], err)
			}
		}
		drafts = append(drafts, info)
	}

	domain.SortDrafts(drafts)
	return drafts, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
