package appointment

import (
	"context"
	"time"
)

// AvailabilityInvalidator drops cached availability for the day an
// appointment write touched. A nil invalidator disables caching.
type AvailabilityInvalidator interface {
	InvalidateDay(ctx context.Context, shopID, serviceID uint, day string)
}

func invalidateFor(ctx context.Context, inv AvailabilityInvalidator, shopID, serviceID uint, at time.Time) {
	if inv == nil {
		return
	}
	inv.InvalidateDay(ctx, shopID, serviceID, at.Format("2006-01-02"))
}
