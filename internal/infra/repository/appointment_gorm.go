package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// lookupErr translates gorm's miss into the domain sentinel; anything else
// (connection refused, cancelled context) passes through untouched.
func lookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Referential lookups
// --------------------------------------------------

func (r *AppointmentGormRepository) GetShop(
	ctx context.Context,
	id uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, lookupErr(err)
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetShopByOwner(
	ctx context.Context,
	ownerID uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&shop).Error; err != nil {
		return nil, lookupErr(err)
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, lookupErr(err)
	}
	return &svc, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedForServiceDay(
	ctx context.Context,
	shopID uint,
	serviceID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "date_time", "status").
		Where(
			"shop_id = ? AND service_id = ? AND status <> ? AND date_time >= ? AND date_time < ?",
			shopID, serviceID, string(domain.StatusCancelled), dayStart, dayEnd,
		).
		Order("date_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Appointment reads
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Service").
		Preload("User").
		First(&ap, id).Error; err != nil {
		return nil, lookupErr(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Service").
		Preload("User").
		Where("user_id = ?", userID).
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForShop(
	ctx context.Context,
	shopID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Service").
		Preload("User").
		Where("shop_id = ?", shopID).
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Appointment writes
// --------------------------------------------------

// CreateAppointment re-checks for a same-service overlap and inserts inside
// one transaction, with conflicting rows locked FOR UPDATE. The legacy system
// skipped this check entirely, so two clients could book the same slot; a
// losing racer now gets the slot_taken business error instead.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	durationMin int,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		end := ap.DateTime.Add(time.Duration(durationMin) * time.Minute)

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"service_id = ? AND status <> ? AND date_time < ? AND date_time + make_interval(mins => ?) > ?",
				ap.ServiceID,
				string(domain.StatusCancelled),
				end,
				durationMin,
				ap.DateTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Update("status", ap.Status).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
