package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/httperr"
)

type GetAvailability struct {
	repo          domain.Repository
	hours         domain.BusinessHours
	stepMin       int
	strictOverlap bool
}

func NewGetAvailability(
	repo domain.Repository,
	hours domain.BusinessHours,
	stepMin int,
	strictOverlap bool,
) *GetAvailability {
	return &GetAvailability{
		repo:          repo,
		hours:         hours,
		stepMin:       stepMin,
		strictOverlap: strictOverlap,
	}
}

// Execute builds the slot grid for one service on one calendar day.
//
// Candidates start at the opening hour and advance by the configured step; a
// candidate survives only if the service would finish at or before closing.
// Candidates are then marked against the day's non-cancelled bookings for the
// same service.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.DayAvailability, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}
	if svc.ShopID != in.ShopID {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	loc := in.Date.Location()
	day := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	open := day.Add(time.Duration(uc.hours.Open) * time.Hour)
	close := day.Add(time.Duration(uc.hours.Close) * time.Hour)

	duration := time.Duration(svc.Duration) * time.Minute
	step := time.Duration(uc.stepMin) * time.Minute

	var candidates []time.Time
	for cur := open; cur.Before(close); cur = cur.Add(step) {
		if cur.Add(duration).After(close) {
			continue
		}
		candidates = append(candidates, cur)
	}

	booked, err := uc.repo.ListBookedForServiceDay(
		ctx,
		in.ShopID,
		in.ServiceID,
		day,
		day.Add(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.Slot, 0, len(candidates))
	availableCount := 0

	for _, start := range candidates {
		busy := false
		for _, ap := range booked {
			if uc.isBusy(start, duration, ap.DateTime, ap.DateTime.Add(duration)) {
				busy = true
				break
			}
		}

		if !busy {
			availableCount++
		}

		slots = append(slots, domain.Slot{
			Time:       start,
			TimeString: start.Format("15:04"),
			Available:  !busy,
		})
	}

	return &domain.DayAvailability{
		Date:            day.Format("2006-01-02"),
		ServiceDuration: svc.Duration,
		Slots:           slots,
		AvailableCount:  availableCount,
	}, nil
}

// isBusy decides whether a candidate collides with a booked interval.
//
// The default test only asks whether the candidate's start instant falls
// inside the booked interval, reproducing the legacy behavior exactly; a slot
// whose own interval overlaps a booking without containing its start is not
// caught. Strict mode uses half-open interval intersection instead.
func (uc *GetAvailability) isBusy(start time.Time, duration time.Duration, bookedStart, bookedEnd time.Time) bool {
	if uc.strictOverlap {
		return start.Before(bookedEnd) && bookedStart.Before(start.Add(duration))
	}
	return !start.Before(bookedStart) && start.Before(bookedEnd)
}
