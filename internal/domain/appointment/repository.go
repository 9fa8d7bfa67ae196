package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/keechi-app/keechi-api/internal/models"
)

// ErrNotFound reports that a referenced row does not exist. Implementations
// translate their driver's miss error into this sentinel so callers can tell
// true absence apart from an infrastructure failure.
var ErrNotFound = errors.New("record not found")

// Requester identifies an authenticated caller for ownership checks. A nil
// *Requester means anonymous.
type Requester struct {
	ID   uint
	Role string
}

type Repository interface {
	// -------- Referential lookups --------
	GetShop(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	GetShopByOwner(
		ctx context.Context,
		ownerID uint,
	) (*models.Shop, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Availability --------
	ListBookedForServiceDay(
		ctx context.Context,
		shopID uint,
		serviceID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment reads --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointmentsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListAppointmentsForShop(
		ctx context.Context,
		shopID uint,
	) ([]models.Appointment, error)

	// -------- Appointment writes --------

	// CreateAppointment inserts ap after re-checking, inside one transaction
	// with the conflicting rows locked, that no non-cancelled appointment for
	// the same service overlaps [ap.DateTime, ap.DateTime+duration). Returns
	// the slot_taken business error when the check fails.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		durationMin int,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error
}
