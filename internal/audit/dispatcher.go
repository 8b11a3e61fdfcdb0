package audit

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Event struct {
	RequestID string
	BarberID  *uint
	Action    string
	Entity    string
	EntityID  string
	Metadata  any
}

// Sink is what use cases dispatch to; Dispatcher is the production
// implementation.
type Sink interface {
	Dispatch(ev Event)
}

// Dispatcher writes audit rows off the request path. Under backpressure
// events are dropped rather than blocking a webhook response.
type Dispatcher struct {
	logger *Logger
	log    zerolog.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log.With().Str("component", "audit").Logger(),
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.RequestID,
			ev.BarberID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

var _ Sink = (*Dispatcher)(nil)

func (d *Dispatcher) Dispatch(ev Event) {
	if ev.RequestID == "" {
		ev.RequestID = uuid.NewString()
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}
