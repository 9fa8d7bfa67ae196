package appointment

import (
	"context"
	"errors"

	"github.com/keechi-app/keechi-api/internal/audit"
	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/models"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	inv   AvailabilityInvalidator
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	inv AvailabilityInvalidator,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
		inv:   inv,
	}
}

// Execute removes an appointment. Allowed for the appointment's own user or
// the owner of its shop.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	requester domain.Requester,
) error {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("appointment_not_found")
		}
		return err
	}

	if !canModifySubject(ap, requester) {
		return httperr.ErrBusiness("forbidden")
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	invalidateFor(ctx, uc.inv, ap.ShopID, ap.ServiceID, ap.DateTime)

	uc.audit.Dispatch(audit.Event{
		ShopID:   ap.ShopID,
		UserID:   &requester.ID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}

func canModifySubject(ap *models.Appointment, requester domain.Requester) bool {
	switch requester.Role {
	case models.RoleUser:
		return ap.UserID != nil && *ap.UserID == requester.ID
	case models.RoleShopOwner:
		return ap.Shop != nil && ap.Shop.OwnerID == requester.ID
	}
	return false
}
