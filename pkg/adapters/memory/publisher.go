package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
)

// Publisher is a content-addressed in-memory Publisher.
// The address of a document is the hex SHA-256 of its text.
type Publisher struct {
	mu   sync.RWMutex
	docs map[string]string
	err  error
}

// NewPublisher creates an empty in-memory publisher.
func NewPublisher() *Publisher {
	return &Publisher{docs: make(map[string]string)}
}

// FailWith makes every subsequent Publish return err. Passing nil restores normal behaviour.
func (p *Publisher) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Publish stores text under its digest.
func (p *Publisher) Publish(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", fmt.Errorf("memory publish: %w", p.err)
	}

	sum := sha256.Sum256([]byte(text))
	addr := hex.EncodeToString(sum[:])
	p.docs[addr] = text
	return addr, nil
}

// Get returns a published document.
func (p *Publisher) Get(addr string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	text, ok := p.docs[addr]
	return text, ok
}

// Len reports how many distinct documents were published.
func (p *Publisher) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.docs)
}
