package events

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event describes one successful mutation of a user or product.
type Event struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     int       `json:"id"`
	Actor  string    `json:"actor,omitempty"`
	At     time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, evt Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Emit publishes evt and only logs a failure; a mutation that already
// reached the upstream API is not rolled back because of it.
func Emit(ctx context.Context, p Publisher, evt Event) {
	if p == nil {
		return
	}
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	if err := p.Publish(ctx, evt); err != nil {
		log.Error().Err(err).
			Str("entity", evt.Entity).
			Str("action", evt.Action).
			Int("id", evt.ID).
			Msg("publish event failed")
	}
}
