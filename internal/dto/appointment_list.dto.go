package dto

import "time"

// AppointmentListDTO is the flattened row the analytics endpoints return for
// day-at-a-glance views, with subject and service names already resolved.
type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	DateTime     time.Time `json:"dateTime"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customerName"`
	ServiceName  string    `json:"serviceName"`
	Price        float64   `json:"price"`
	Duration     int       `json:"duration"`
}
