package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/dto"
	"github.com/keechi-app/keechi-api/internal/models"
)

type AnalyticsHandler struct {
	db *gorm.DB
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{db: db}
}

type repeatCustomer struct {
	Name      string    `json:"name"`
	Bookings  int       `json:"bookings"`
	LastVisit time.Time `json:"lastVisit"`
}

// Dashboard aggregates the owner's day at a glance: today's booking counts,
// the next upcoming appointment, repeat customers and the month's revenue.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	shop, ok := ownerShopFor(h.db, c)
	if !ok {
		return
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	// Today's counters
	var todays []models.Appointment
	h.db.Where("shop_id = ? AND date_time >= ? AND date_time < ?",
		shop.ID, today, tomorrow).
		Find(&todays)

	var completed, upcoming, cancelled int
	for _, ap := range todays {
		switch ap.Status {
		case string(domain.StatusCompleted):
			completed++
		case string(domain.StatusConfirmed), string(domain.StatusPending):
			upcoming++
		case string(domain.StatusCancelled):
			cancelled++
		}
	}

	// Next upcoming appointment
	var next *dto.AppointmentListDTO
	var nextAp models.Appointment
	err := h.db.
		Preload("User").
		Preload("Service").
		Where("shop_id = ? AND date_time >= ? AND status IN ?",
			shop.ID, now,
			[]string{string(domain.StatusConfirmed), string(domain.StatusPending)}).
		Order("date_time ASC").
		First(&nextAp).Error
	if err == nil {
		row := appointmentRow(&nextAp)
		next = &row
	}

	// Repeat customers across all completed registered-user appointments
	var allCompleted []models.Appointment
	h.db.
		Preload("User").
		Where("shop_id = ? AND status = ? AND user_id IS NOT NULL",
			shop.ID, string(domain.StatusCompleted)).
		Find(&allCompleted)

	counts := map[uint]int{}
	lastVisit := map[uint]time.Time{}
	names := map[uint]string{}
	for _, ap := range allCompleted {
		id := *ap.UserID
		counts[id]++
		if ap.DateTime.After(lastVisit[id]) {
			lastVisit[id] = ap.DateTime
		}
		if ap.User != nil {
			names[id] = ap.User.Name
		}
	}

	repeatCount := 0
	ids := make([]uint, 0, len(counts))
	for id, n := range counts {
		ids = append(ids, id)
		if n > 1 {
			repeatCount++
		}
	}
	sort.Slice(ids, func(i, j int) bool { return counts[ids[i]] > counts[ids[j]] })

	top := make([]repeatCustomer, 0, 3)
	for _, id := range ids {
		if len(top) == 3 {
			break
		}
		name := names[id]
		if name == "" {
			name = "Unknown"
		}
		top = append(top, repeatCustomer{
			Name:      name,
			Bookings:  counts[id],
			LastVisit: lastVisit[id],
		})
	}

	// Month-to-date revenue from completed appointments
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var monthly []models.Appointment
	h.db.
		Preload("Service").
		Where("shop_id = ? AND date_time >= ? AND status = ?",
			shop.ID, firstOfMonth, string(domain.StatusCompleted)).
		Find(&monthly)

	monthlyRevenue := 0.0
	for _, ap := range monthly {
		if ap.Service != nil {
			monthlyRevenue += ap.Service.Price
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"today": gin.H{
			"total":     len(todays),
			"completed": completed,
			"upcoming":  upcoming,
			"cancelled": cancelled,
		},
		"nextAppointment": next,
		"repeatCustomers": gin.H{
			"count": repeatCount,
			"top":   top,
		},
		"performance": gin.H{
			"monthlyRevenue": monthlyRevenue,
			"rating":         shop.Rating,
			"reviewCount":    shop.ReviewCount,
		},
	})
}

type revenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// Revenue returns a zero-filled 7-day revenue series for charting, labeled
// with short weekday names.
func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	shop, ok := ownerShopFor(h.db, c)
	if !ok {
		return
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -6)
	end := start.AddDate(0, 0, 7)

	var appointments []models.Appointment
	h.db.
		Preload("Service").
		Where("shop_id = ? AND date_time >= ? AND date_time < ? AND status = ?",
			shop.ID, start, end, string(domain.StatusCompleted)).
		Find(&appointments)

	daily := map[string]float64{}
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		daily[d.Format("2006-01-02")] = 0
	}

	for _, ap := range appointments {
		key := ap.DateTime.Format("2006-01-02")
		if _, ok := daily[key]; ok && ap.Service != nil {
			daily[key] += ap.Service.Price
		}
	}

	chart := make([]revenuePoint, 0, 7)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		chart = append(chart, revenuePoint{
			Date:    d.Format("Mon"),
			Revenue: daily[d.Format("2006-01-02")],
		})
	}

	c.JSON(http.StatusOK, chart)
}

// --------- helpers ---------

func appointmentRow(ap *models.Appointment) dto.AppointmentListDTO {
	row := dto.AppointmentListDTO{
		ID:       ap.ID,
		DateTime: ap.DateTime,
		Status:   ap.Status,
	}

	switch {
	case ap.User != nil:
		row.CustomerName = ap.User.Name
	case ap.CustomerName != nil:
		row.CustomerName = *ap.CustomerName
	}

	if ap.Service != nil {
		row.ServiceName = ap.Service.Name
		row.Price = ap.Service.Price
		row.Duration = ap.Service.Duration
	}

	return row
}
