// Package mongo connects to MongoDB with retries and shares the client
// through a lazily connecting Provider.
//
//	p := mongo.NewProvider(cfg)
//	defer p.Close(context.Background())
//
//	client, err := p.Get(ctx)
//
// Get returns ErrMissingConnectionURL when MONGODB_URL is empty. Ping and
// Healthcheck plug into the readiness probe.
package mongo
