package appointment

import (
	"context"
	"sort"
	"time"

	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/models"
)

// fakeRepo is an in-memory Repository with the same filtering and conflict
// semantics as the GORM implementation.
type fakeRepo struct {
	shops        map[uint]*models.Shop
	services     map[uint]*models.Service
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops:        map[uint]*models.Shop{},
		services:     map[uint]*models.Service{},
		appointments: map[uint]*models.Appointment{},
		nextID:       1,
	}
}

func (f *fakeRepo) addShop(id, ownerID uint) *models.Shop {
	s := &models.Shop{ID: id, OwnerID: ownerID, Name: "Shop"}
	f.shops[id] = s
	return s
}

func (f *fakeRepo) addService(id, shopID uint, durationMin int) *models.Service {
	s := &models.Service{ID: id, ShopID: shopID, Name: "Service", Duration: durationMin}
	f.services[id] = s
	return s
}

func (f *fakeRepo) GetShop(ctx context.Context, id uint) (*models.Shop, error) {
	s, ok := f.shops[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeRepo) GetShopByOwner(ctx context.Context, ownerID uint) (*models.Shop, error) {
	for _, s := range f.shops {
		if s.OwnerID == ownerID {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeRepo) ListBookedForServiceDay(
	ctx context.Context,
	shopID uint,
	serviceID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ShopID != shopID || ap.ServiceID != serviceID {
			continue
		}
		if ap.Status == "Cancelled" {
			continue
		}
		if ap.DateTime.Before(dayStart) || !ap.DateTime.Before(dayEnd) {
			continue
		}
		out = append(out, *ap)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out, nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	cp := *ap
	cp.Shop = f.shops[ap.ShopID]
	cp.Service = f.services[ap.ServiceID]
	return &cp, nil
}

func (f *fakeRepo) ListAppointmentsForUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.UserID != nil && *ap.UserID == userID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForShop(ctx context.Context, shopID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ShopID == shopID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment, durationMin int) error {
	end := ap.DateTime.Add(time.Duration(durationMin) * time.Minute)

	for _, existing := range f.appointments {
		if existing.ServiceID != ap.ServiceID || existing.Status == "Cancelled" {
			continue
		}
		existingEnd := existing.DateTime.Add(time.Duration(durationMin) * time.Minute)
		if existing.DateTime.Before(end) && existingEnd.After(ap.DateTime) {
			return httperr.ErrBusiness("slot_taken")
		}
	}

	ap.ID = f.nextID
	f.nextID++
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	stored, ok := f.appointments[ap.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = ap.Status
	return nil
}

func (f *fakeRepo) DeleteAppointment(ctx context.Context, id uint) error {
	delete(f.appointments, id)
	return nil
}

// recordingInvalidator captures cache invalidations for assertions.
type recordingInvalidator struct {
	days []string
}

func (r *recordingInvalidator) InvalidateDay(ctx context.Context, shopID, serviceID uint, day string) {
	r.days = append(r.days, day)
}
