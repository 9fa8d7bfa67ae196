package appointment

import (
	"context"
	"errors"

	"github.com/keechi-app/keechi-api/internal/audit"
	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/models"
)

type UpdateStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	inv    AvailabilityInvalidator
	strict bool
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	inv AvailabilityInvalidator,
	strict bool,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		audit:  audit,
		inv:    inv,
		strict: strict,
	}
}

// Execute sets a new status on an appointment. Only the owner of the
// appointment's shop may call it. In the default lenient mode any known
// status may replace any other; strict mode enforces the transition graph.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	newStatus domain.Status,
	requester domain.Requester,
) (*models.Appointment, error) {

	if !domain.ValidStatus(newStatus) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if ap.Shop == nil || ap.Shop.OwnerID != requester.ID {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if uc.strict {
		if err := domain.CanTransition(domain.Status(ap.Status), newStatus); err != nil {
			return nil, err
		}
	}

	ap.Status = string(newStatus)
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Flipping to or from Cancelled changes the day's availability.
	invalidateFor(ctx, uc.inv, ap.ShopID, ap.ServiceID, ap.DateTime)

	uc.audit.Dispatch(audit.Event{
		ShopID:   ap.ShopID,
		UserID:   &requester.ID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"status": newStatus},
	})

	return ap, nil
}
