package appointment

import (
	"context"
	"errors"

	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute returns one appointment with shop/service/user expanded.
//
// Anonymous requesters are allowed through: the public booking-confirmation
// view fetches by id without a credential. When a credential is present the
// requester must be the appointment's user or the owner of its shop.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	requester *domain.Requester,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if requester != nil {
		userMismatch := requester.Role == models.RoleUser &&
			(ap.UserID == nil || *ap.UserID != requester.ID)
		ownerMismatch := requester.Role == models.RoleShopOwner &&
			(ap.Shop == nil || ap.Shop.OwnerID != requester.ID)

		if userMismatch || ownerMismatch {
			return nil, httperr.ErrBusiness("forbidden")
		}
	}

	return ap, nil
}
