package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserCreated is emitted after a successful sign-up.
const UserCreated = "app/user.created"

// Event is a named domain event with a JSON-serializable payload.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"ts"`
}

// New returns an event with a fresh ID and the current time.
func New(name string, data any) Event {
	return Event{
		ID:        uuid.NewString(),
		Name:      name,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// UserCreatedData is the payload of UserCreated.
type UserCreatedData struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	Country           string `json:"country,omitempty"`
	InvestmentGoals   string `json:"investmentGoals,omitempty"`
	RiskTolerance     string `json:"riskTolerance,omitempty"`
	PreferredIndustry string `json:"preferredIndustry,omitempty"`
}

// Dispatcher sends events to downstream consumers.
type Dispatcher interface {
	Dispatch(ctx context.Context, e Event) error
}

// NoopDispatcher is used when no event backend is configured. Every
// Dispatch returns ErrDispatcherDisabled.
type NoopDispatcher struct{}

func (NoopDispatcher) Dispatch(context.Context, Event) error { return ErrDispatcherDisabled }
