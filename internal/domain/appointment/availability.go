package appointment

import "time"

// BusinessHours is the bookable window [Open, Close) in 24h whole hours.
type BusinessHours struct {
	Open  int
	Close int
}

type AvailabilityInput struct {
	ShopID    uint
	ServiceID uint
	Date      time.Time // calendar day; time-of-day parts are ignored
}

// Slot is a derived candidate start time. Never persisted; recomputed on
// every availability query.
type Slot struct {
	Time       time.Time `json:"time"`
	TimeString string    `json:"timeString"`
	Available  bool      `json:"available"`
}

type DayAvailability struct {
	Date            string `json:"date"`
	ServiceDuration int    `json:"serviceDuration"`
	Slots           []Slot `json:"slots"`
	AvailableCount  int    `json:"availableCount"`
}
