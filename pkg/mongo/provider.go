package mongo

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ConnectFunc opens a client for a Provider.
type ConnectFunc func(ctx context.Context, cfg Config) (*mongo.Client, error)

// Provider hands out a single shared client. The first successful Get
// connects; a failed attempt is not cached, so the next Get tries again.
// Close disconnects and lets a later Get reconnect.
type Provider struct {
	cfg     Config
	connect ConnectFunc

	mu     sync.Mutex
	client *mongo.Client
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithConnectFunc replaces the function used to open the client.
func WithConnectFunc(fn ConnectFunc) ProviderOption {
	return func(p *Provider) {
		if fn != nil {
			p.connect = fn
		}
	}
}

// NewProvider returns a Provider for cfg. It does not connect.
func NewProvider(cfg Config, opts ...ProviderOption) *Provider {
	p := &Provider{cfg: cfg, connect: New}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Configured reports whether a connection URL is set.
func (p *Provider) Configured() bool { return p.cfg.ConnectionURL != "" }

// Get returns the shared client, connecting on first use.
func (p *Provider) Get(ctx context.Context) (*mongo.Client, error) {
	if !p.Configured() {
		return nil, ErrMissingConnectionURL
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}

	client, err := p.connect(ctx, p.cfg)
	if err != nil {
		return nil, err
	}
	p.client = client
	return client, nil
}

// Ping checks the shared client, connecting first if needed.
func (p *Provider) Ping(ctx context.Context) error {
	client, err := p.Get(ctx)
	if err != nil {
		return err
	}
	return Healthcheck(client)(ctx)
}

// Close disconnects the shared client if one is open.
func (p *Provider) Close(ctx context.Context) error {
	p.mu.Lock()
	client := p.client
	p.client = nil
	p.mu.Unlock()

	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
