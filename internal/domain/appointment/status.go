package appointment

import "github.com/keechi-app/keechi-api/internal/httperr"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

// ValidStatus is the only check the default (lenient) mode performs on a
// status update: the value must be one of the four known statuses. Any
// current status may be overwritten, matching the dashboard flows that
// re-open cancelled bookings.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// transitions is the strict graph: Pending -> Confirmed -> Completed, with
// Cancelled reachable from Pending or Confirmed. Completed and Cancelled are
// terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition enforces the strict graph. Only consulted when strict
// transitions are enabled.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_transition")
}
