package audit

import (
	"go.uber.org/zap"

	"github.com/keechi-app/keechi-api/internal/logger"
)

type Event struct {
	ShopID   uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher writes audit events off the request path through a bounded
// queue. A full queue drops events rather than blocking the API.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(l *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: l,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.ShopID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			logger.L().Warn("audit write failed", zap.Error(err))
		}
	}
}

// Dispatch is safe on a nil Dispatcher; auditing is optional wiring.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		logger.L().Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}
