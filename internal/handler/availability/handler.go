package availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/service/availability"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/salons/:id/availability", h.GetAvailability)
}

type availabilityQuery struct {
	Date            string `form:"date" binding:"required"`
	DurationMinutes int    `form:"duration" binding:"omitempty,gte=0"`
}

func (h *Handler) GetAvailability(c *gin.Context) {
	salonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid salon ID"})
		return
	}

	var q availabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", q.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	ctx := c.Request.Context()
	day, err := h.service.Day(ctx, salonID, date.Year(), date.Month(), date.Day())
	if err != nil {
		if errors.Is(err, availability.ErrSalonNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "salon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	slots, err := h.service.GetSlots(ctx, salonID, day, time.Duration(q.DurationMinutes)*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": slots})
}
