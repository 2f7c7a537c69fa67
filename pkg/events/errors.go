package events

import "errors"

var (
	ErrDispatcherDisabled = errors.New("events: dispatcher disabled")
	ErrInvalidEvent       = errors.New("events: invalid event")
	ErrPublishFailed      = errors.New("events: publish failed")
)
