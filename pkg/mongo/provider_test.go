package mongo_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	driver "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/authbridge/pkg/mongo"
)

// lazyClient returns an unconnected client. mongo.Connect does not dial, so
// no server is required.
func lazyClient(t *testing.T) *driver.Client {
	t.Helper()
	client, err := driver.Connect()
	require.NoError(t, err)
	return client
}

func TestProvider_MissingURL(t *testing.T) {
	t.Parallel()
	p := mongo.NewProvider(mongo.Config{})

	assert.False(t, p.Configured())
	_, err := p.Get(context.Background())
	assert.ErrorIs(t, err, mongo.ErrMissingConnectionURL)
	assert.ErrorIs(t, p.Ping(context.Background()), mongo.ErrMissingConnectionURL)
	assert.NoError(t, p.Close(context.Background()))
}

func TestProvider_ConnectsOnce(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	client := lazyClient(t)
	p := mongo.NewProvider(mongo.Config{ConnectionURL: "mongodb://localhost:27017"},
		mongo.WithConnectFunc(func(context.Context, mongo.Config) (*driver.Client, error) {
			calls.Add(1)
			return client, nil
		}),
	)

	first, err := p.Get(context.Background())
	require.NoError(t, err)
	second, err := p.Get(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestProvider_RetriesAfterFailure(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	client := lazyClient(t)
	p := mongo.NewProvider(mongo.Config{ConnectionURL: "mongodb://localhost:27017"},
		mongo.WithConnectFunc(func(context.Context, mongo.Config) (*driver.Client, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("dial failed")
			}
			return client, nil
		}),
	)

	_, err := p.Get(context.Background())
	require.Error(t, err)

	got, err := p.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, client, got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestProvider_CloseResets(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	p := mongo.NewProvider(mongo.Config{ConnectionURL: "mongodb://localhost:27017"},
		mongo.WithConnectFunc(func(context.Context, mongo.Config) (*driver.Client, error) {
			calls.Add(1)
			return lazyClient(t), nil
		}),
	)

	_, err := p.Get(context.Background())
	require.NoError(t, err)
	require.NoError(t, p.Close(context.Background()))

	_, err = p.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNew_MissingURL(t *testing.T) {
	t.Parallel()
	_, err := mongo.New(context.Background(), mongo.Config{})
	assert.ErrorIs(t, err, mongo.ErrMissingConnectionURL)
}
