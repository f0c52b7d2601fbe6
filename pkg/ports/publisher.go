package ports

import "context"

// Publisher uploads a Turtle document to a content network.
type Publisher interface {
	// Publish stores text and returns its content address (e.g. an IPFS CID).
	Publish(ctx context.Context, text string) (string, error)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, text string) (string, error)

// Publish calls f.
func (f PublisherFunc) Publish(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}
