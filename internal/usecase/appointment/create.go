package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/keechi-app/keechi-api/internal/audit"
	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/models"
)

type CreateAppointmentInput struct {
	ShopID    uint
	ServiceID uint
	DateTime  time.Time
	Notes     string

	// Subject: UserID when the caller presented a valid credential,
	// CustomerName/CustomerPhone for guests. Both may be partially set.
	UserID        *uint
	CustomerName  *string
	CustomerPhone *string
}

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	inv   AvailabilityInvalidator
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	inv AvailabilityInvalidator,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		inv:   inv,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetShop(ctx, in.ShopID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("shop_not_found")
		}
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}

	if svc.ShopID != shop.ID {
		return nil, httperr.ErrBusiness("service_not_in_shop")
	}

	ap := &models.Appointment{
		UserID:        in.UserID,
		ShopID:        in.ShopID,
		ServiceID:     in.ServiceID,
		DateTime:      in.DateTime,
		Notes:         in.Notes,
		Status:        string(domain.InitialStatus()),
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
	}

	// The insert and the overlap re-check run in one transaction inside the
	// repository, so two clients racing for the same slot cannot both win.
	if err := uc.repo.CreateAppointment(ctx, ap, svc.Duration); err != nil {
		if httperr.IsConflictViolation(err) {
			return nil, httperr.ErrBusiness("slot_taken")
		}
		return nil, err
	}

	invalidateFor(ctx, uc.inv, ap.ShopID, ap.ServiceID, ap.DateTime)

	uc.audit.Dispatch(audit.Event{
		ShopID:   ap.ShopID,
		UserID:   ap.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	// Reload with shop/service/user expanded for the response.
	created, err := uc.repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		return ap, nil
	}
	return created, nil
}
