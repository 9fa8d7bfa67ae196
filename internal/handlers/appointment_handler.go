package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/httpresp"
	"github.com/keechi-app/keechi-api/internal/middleware"
	usecase "github.com/keechi-app/keechi-api/internal/usecase/appointment"
)

type AppointmentHandler struct {
	createUC *usecase.CreateAppointment
	listUC   *usecase.ListForRequester
	getUC    *usecase.GetAppointment
	statusUC *usecase.UpdateStatus
	deleteUC *usecase.DeleteAppointment
}

func NewAppointmentHandler(
	createUC *usecase.CreateAppointment,
	listUC *usecase.ListForRequester,
	getUC *usecase.GetAppointment,
	statusUC *usecase.UpdateStatus,
	deleteUC *usecase.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		listUC:   listUC,
		getUC:    getUC,
		statusUC: statusUC,
		deleteUC: deleteUC,
	}
}

type CreateAppointmentRequest struct {
	ShopID    uint   `json:"shopId" binding:"required"`
	ServiceID uint   `json:"serviceId" binding:"required"`
	DateTime  string `json:"dateTime" binding:"required"`
	Notes     string `json:"notes"`

	// Guest identity, used when no credential accompanies the request.
	// Stored on the appointment as customerName/customerPhone.
	UserName  *string `json:"userName"`
	UserPhone *string `json:"userPhone"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create books an appointment. Runs behind optional auth: a valid token binds
// the booking to that user, anything else books as a guest.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	dt, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "dateTime must be RFC 3339.")
		return
	}

	in := usecase.CreateAppointmentInput{
		ShopID:        req.ShopID,
		ServiceID:     req.ServiceID,
		DateTime:      dt,
		Notes:         req.Notes,
		CustomerName:  req.UserName,
		CustomerPhone: req.UserPhone,
	}

	if requester := requesterFrom(c); requester != nil {
		in.UserID = &requester.ID
	}

	ap, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// List returns the requester's appointments: own bookings for users, the
// shop's book for owners.
func (h *AppointmentHandler) List(c *gin.Context) {
	requester := requesterFrom(c)
	if requester == nil {
		httperr.Unauthorized(c, "missing_token", "No token provided.")
		return
	}

	aps, err := h.listUC.Execute(c.Request.Context(), *requester)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, aps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	ap, err := h.getUC.Execute(c.Request.Context(), uint(id), requesterFrom(c))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	requester := requesterFrom(c)
	if requester == nil {
		httperr.Unauthorized(c, "missing_token", "No token provided.")
		return
	}

	ap, err := h.statusUC.Execute(
		c.Request.Context(),
		uint(id),
		domain.Status(req.Status),
		*requester,
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	requester := requesterFrom(c)
	if requester == nil {
		httperr.Unauthorized(c, "missing_token", "No token provided.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), uint(id), *requester); err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Message(c, "Appointment deleted successfully")
}

// --------- helpers ---------

// requesterFrom rebuilds the caller identity the auth middleware stored on
// the context. Nil when the request is anonymous.
func requesterFrom(c *gin.Context) *domain.Requester {
	id := c.GetUint(middleware.ContextUserID)
	if id == 0 {
		return nil
	}
	return &domain.Requester{
		ID:   id,
		Role: c.GetString(middleware.ContextUserRole),
	}
}

// writeBusinessError maps usecase business errors onto HTTP statuses; other
// errors become 500s.
func writeBusinessError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	switch code {
	case "shop_not_found", "service_not_found", "service_not_in_shop", "appointment_not_found":
		httperr.NotFound(c, code, err.Error())
	case "forbidden":
		httperr.Forbidden(c, code, "You are not allowed to perform this action.")
	case "slot_taken":
		httperr.Conflict(c, code, "The requested time slot was just booked.")
	case "invalid_status", "invalid_transition":
		httperr.BadRequest(c, code, err.Error())
	default:
		httperr.BadRequest(c, code, err.Error())
	}
}
