package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authbridge/pkg/events"
)

type published struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	messages []published
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message any) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.messages = append(f.messages, published{channel: channel, payload: message.([]byte)})
	cmd.SetVal(1)
	return cmd
}

func TestNew(t *testing.T) {
	t.Parallel()
	a := events.New(events.UserCreated, nil)
	b := events.New(events.UserCreated, nil)

	assert.Equal(t, "app/user.created", a.Name)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
}

func TestRedisDispatcher(t *testing.T) {
	t.Parallel()

	t.Run("publishes json", func(t *testing.T) {
		t.Parallel()
		pub := &fakePublisher{}
		d := events.NewRedisDispatcher(pub, "authbridge")

		e := events.New(events.UserCreated, events.UserCreatedData{
			Email:         "jane@example.com",
			Name:          "Jane",
			RiskTolerance: "low",
		})
		require.NoError(t, d.Dispatch(context.Background(), e))

		require.Len(t, pub.messages, 1)
		assert.Equal(t, "authbridge:app/user.created", pub.messages[0].channel)

		var got map[string]any
		require.NoError(t, json.Unmarshal(pub.messages[0].payload, &got))
		assert.Equal(t, e.ID, got["id"])
		assert.Equal(t, "app/user.created", got["name"])
		assert.Equal(t, map[string]any{
			"email":         "jane@example.com",
			"name":          "Jane",
			"riskTolerance": "low",
		}, got["data"])
	})

	t.Run("publish failure", func(t *testing.T) {
		t.Parallel()
		d := events.NewRedisDispatcher(&fakePublisher{err: errors.New("connection reset")}, "")
		err := d.Dispatch(context.Background(), events.New("x", nil))
		assert.ErrorIs(t, err, events.ErrPublishFailed)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		d := events.NewRedisDispatcher(&fakePublisher{}, "")
		assert.ErrorIs(t, d.Dispatch(context.Background(), events.Event{}), events.ErrInvalidEvent)
	})

	t.Run("channel without prefix", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "x", events.NewRedisDispatcher(nil, "").Channel("x"))
	})
}

func TestNewDispatcher(t *testing.T) {
	t.Parallel()
	pub := &fakePublisher{}

	_, isNoop := events.NewDispatcher(events.Config{Enabled: false}, pub).(events.NoopDispatcher)
	assert.True(t, isNoop)

	_, isNoop = events.NewDispatcher(events.Config{Enabled: true}, nil).(events.NoopDispatcher)
	assert.True(t, isNoop)

	_, isRedis := events.NewDispatcher(events.Config{Enabled: true}, pub).(*events.RedisDispatcher)
	assert.True(t, isRedis)

	err := events.NoopDispatcher{}.Dispatch(context.Background(), events.New("x", nil))
	assert.ErrorIs(t, err, events.ErrDispatcherDisabled)
}
