// Package ipfs publishes Turtle documents through the HTTP RPC API of an IPFS node.
package ipfs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
)

// DefaultAPI is the RPC endpoint of a local Kubo daemon.
const DefaultAPI = "http://127.0.0.1:5001"

// ErrNoHash is returned when the node answers without a content identifier.
var ErrNoHash = errors.New("ipfs: response carried no hash")

// Publisher implements ports.Publisher with the node's add command.
type Publisher struct {
	sh  *shell.Shell
	pin bool
}

// Option configures a Publisher.
type Option func(*publisherConfig)

type publisherConfig struct {
	client *http.Client
	pin    bool
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *publisherConfig) {
		cfg.client = c
	}
}

// WithPin controls whether the node pins the added content.
func WithPin(pin bool) Option {
	return func(cfg *publisherConfig) {
		cfg.pin = pin
	}
}

// New creates a publisher for the node at api (e.g. DefaultAPI).
func New(api string, opts ...Option) *Publisher {
	if api == "" {
		api = DefaultAPI
	}
	cfg := &publisherConfig{
		client: &http.Client{Timeout: 30 * time.Second},
		pin:    true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Publisher{
		sh:  shell.NewShellWithClient(strings.TrimRight(api, "/"), cfg.client),
		pin: cfg.pin,
	}
}

type addResult struct {
	cid string
	err error
}

// Publish uploads text and returns its CID.
// The shell does not take a context, so cancellation abandons the request
// rather than aborting it.
func (p *Publisher) Publish(ctx context.Context, text string) (string, error) {
	done := make(chan addResult, 1)
	go func() {
		cid, err := p.sh.Add(strings.NewReader(text), shell.Pin(p.pin), shell.CidVersion(1))
		done <- addResult{cid: cid, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("ipfs: add: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("ipfs: add failed: %w", res.err)
		}
		if res.cid == "" {
			return "", ErrNoHash
		}
		return res.cid, nil
	}
}
