package client

import (
	"context"
	"sync"

	"github.com/elephantasm/elephantasm-go/pkg/model"
)

var (
	defaultClient   *Client
	defaultClientMu sync.Mutex
)

// Default returns the shared client, constructing it from environment
// variables on first use. Construction fails if ELEPHANTASM_API_KEY is not
// set.
func Default() (*Client, error) {
	defaultClientMu.Lock()
	defer defaultClientMu.Unlock()

	if defaultClient == nil {
		c, err := New()
		if err != nil {
			return nil, err
		}
		defaultClient = c
	}
	return defaultClient, nil
}

// SetDefault replaces the shared client. Pass nil to force Default to
// rebuild from the environment on next use.
func SetDefault(c *Client) {
	defaultClientMu.Lock()
	defer defaultClientMu.Unlock()
	defaultClient = c
}

// CreateAnima creates an anima using the default client.
func CreateAnima(ctx context.Context, input model.AnimaCreate) (*model.Anima, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.CreateAnima(ctx, input)
}

// Inject retrieves the latest memory pack using the default client.
func Inject(ctx context.Context, input InjectInput) (*model.MemoryPack, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.Inject(ctx, input)
}

// Extract captures an event using the default client.
func Extract(ctx context.Context, input ExtractInput) (*model.Event, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.Extract(ctx, input)
}
