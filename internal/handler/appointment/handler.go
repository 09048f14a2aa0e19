package appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/middleware"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	appointmentService "github.com/yazan-alawneh999/salona-main-sub001/internal/service/appointment"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/service/availability"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/service/booking"
)

type Handler struct {
	bookingSvc      *booking.Service
	appointmentSvc  *appointmentService.Service
	availabilitySvc *availability.Service
}

func NewHandler(bookingSvc *booking.Service, appointmentSvc *appointmentService.Service, availabilitySvc *availability.Service) *Handler {
	return &Handler{
		bookingSvc:      bookingSvc,
		appointmentSvc:  appointmentSvc,
		availabilitySvc: availabilitySvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/salons/:id/appointments", h.BookAppointment)
	r.GET("/salons/:id/appointments", h.ListAppointments)
	r.GET("/appointments/:id", h.GetAppointment)
	r.POST("/appointments/:id/complete", h.CompleteAppointment)
	r.POST("/appointments/:id/cancel", h.CancelAppointment)
}

func (h *Handler) BookAppointment(c *gin.Context) {
	salonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid salon ID"})
		return
	}

	actor := middleware.GetActor(c)

	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid date format, expected YYYY-MM-DD"})
		return
	}
	startOfDay, err := time.Parse("15:04", req.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid start time, expected HH:MM"})
		return
	}

	ctx := c.Request.Context()
	day, err := h.availabilitySvc.Day(ctx, salonID, date.Year(), date.Month(), date.Day())
	if err != nil {
		if errors.Is(err, availability.ErrSalonNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "salon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	start := day.Add(time.Duration(startOfDay.Hour())*time.Hour + time.Duration(startOfDay.Minute())*time.Minute)

	apt, err := h.bookingSvc.Book(ctx, &booking.Request{
		SalonID:    salonID,
		CustomerID: actor.ID,
		Day:        day,
		Start:      start,
		Duration:   time.Duration(req.DurationMinutes) * time.Minute,
		Services:   req.Services,
		Notes:      req.Notes,
	})
	if err != nil {
		status, message := bookingError(err)
		c.JSON(status, gin.H{"status": "error", "message": message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": apt})
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	apt, err := h.appointmentSvc.Get(c.Request.Context(), id)
	if err != nil {
		status, message := transitionError(err)
		c.JSON(status, gin.H{"status": "error", "message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": apt})
}

func (h *Handler) ListAppointments(c *gin.Context) {
	salonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid salon ID"})
		return
	}

	filters := &model.AppointmentFilters{SalonID: salonID}

	if date := c.Query("date"); date != "" {
		day, err := h.resolveDay(c, salonID, date)
		if err != nil {
			return
		}
		filters.Day = day
	}
	if status := c.Query("status"); status != "" {
		filters.Status = model.AppointmentStatus(status)
	}

	appointments, err := h.appointmentSvc.List(c.Request.Context(), filters)
	if err != nil {
		status, message := transitionError(err)
		c.JSON(status, gin.H{"status": "error", "message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": appointments})
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	apt, err := h.appointmentSvc.Complete(c.Request.Context(), id, middleware.GetActor(c))
	if err != nil {
		status, message := transitionError(err)
		c.JSON(status, gin.H{"status": "error", "message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": apt})
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	var req model.CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "cancellation reason is required"})
		return
	}

	apt, err := h.appointmentSvc.Cancel(c.Request.Context(), id, middleware.GetActor(c), req.Reason)
	if err != nil {
		status, message := transitionError(err)
		c.JSON(status, gin.H{"status": "error", "message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": apt})
}

func (h *Handler) resolveDay(c *gin.Context, salonID uuid.UUID, date string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid date format, expected YYYY-MM-DD"})
		return time.Time{}, err
	}
	day, err := h.availabilitySvc.Day(c.Request.Context(), salonID, parsed.Year(), parsed.Month(), parsed.Day())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return time.Time{}, err
	}
	return day, nil
}

func bookingError(err error) (int, string) {
	switch {
	case errors.Is(err, booking.ErrInvalidDuration):
		return http.StatusBadRequest, "duration must be positive"
	case errors.Is(err, booking.ErrOutsideWorkingHours):
		return http.StatusUnprocessableEntity, "start time is outside working hours"
	case errors.Is(err, booking.ErrInThePast):
		return http.StatusUnprocessableEntity, "start time is in the past"
	case errors.Is(err, booking.ErrSlotTaken):
		return http.StatusConflict, "slot is no longer available"
	case errors.Is(err, booking.ErrSalonNotFound):
		return http.StatusNotFound, "salon not found"
	case errors.Is(err, booking.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "temporary failure, please retry"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func transitionError(err error) (int, string) {
	switch {
	case errors.Is(err, appointmentService.ErrNotFound):
		return http.StatusNotFound, "appointment not found"
	case errors.Is(err, appointmentService.ErrInvalidTransition):
		return http.StatusConflict, "appointment is not in a state that allows this action"
	case errors.Is(err, appointmentService.ErrEmptyCancelReason):
		return http.StatusBadRequest, "cancellation reason is required"
	case errors.Is(err, appointmentService.ErrUnauthorized):
		return http.StatusForbidden, "actor is not allowed to perform this action"
	case errors.Is(err, appointmentService.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "temporary failure, please retry"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
