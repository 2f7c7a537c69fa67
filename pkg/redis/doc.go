// Package redis connects to Redis with retries and exposes a readiness
// check. The client backs the sign-up event dispatcher in pkg/events.
package redis
