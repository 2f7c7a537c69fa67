// Package events dispatches domain events such as UserCreated.
//
// RedisDispatcher publishes events as JSON over Redis pub/sub. When events
// are disabled or Redis is not configured, NewDispatcher returns a
// NoopDispatcher whose Dispatch reports ErrDispatcherDisabled, so callers
// can log and skip.
package events
