// Package nats publishes Turtle documents into a NATS JetStream object store.
package nats

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// DefaultBucket is the object store bucket used when none is configured.
const DefaultBucket = "semtoken"

// ObjectPutter is the part of jetstream.ObjectStore the publisher needs.
type ObjectPutter interface {
	PutBytes(ctx context.Context, name string, data []byte) (*jetstream.ObjectInfo, error)
}

// Publisher implements ports.Publisher on a JetStream object store.
// Objects are named by the hex SHA-256 of their text, so republishing
// identical content yields the same address.
type Publisher struct {
	store  ObjectPutter
	bucket string
	conn   *nats.Conn
}

// New wraps an existing object store.
func New(store ObjectPutter, bucket string) *Publisher {
	if bucket == "" {
		bucket = DefaultBucket
	}
	return &Publisher{store: store, bucket: bucket}
}

// Connect dials url, ensures the bucket exists and returns a publisher owning the connection.
func Connect(ctx context.Context, url, bucket string, opts ...nats.Option) (*Publisher, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats: connect %s: %w", url, err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("nats: jetstream: %w", err)
	}
	store, err := js.CreateOrUpdateObjectStore(ctx, jetstream.ObjectStoreConfig{
		Bucket:      bucket,
		Description: "Published token documents (Turtle)",
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("nats: object store %s: %w", bucket, err)
	}
	p := New(store, bucket)
	p.conn = nc
	return p, nil
}

// Publish stores text and returns its object name.
func (p *Publisher) Publish(ctx context.Context, text string) (string, error) {
	sum := sha256.Sum256([]byte(text))
	name := hex.EncodeToString(sum[:])

	info, err := p.store.PutBytes(ctx, name, []byte(text))
	if err != nil {
		return "", fmt.Errorf("nats: put %s: %w", name, err)
	}
	if info != nil && info.Name != "" {
		name = info.Name
	}
	return name, nil
}

// URI renders the address as nats://<bucket>/<name>.
func (p *Publisher) URI(address string) string {
	return "nats://" + p.bucket + "/" + address
}

// Close drains the connection opened by Connect.
func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
