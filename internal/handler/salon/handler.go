package salon

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salonService "github.com/yazan-alawneh999/salona-main-sub001/internal/service/salon"
)

type Handler struct {
	salonSvc *salonService.Service
}

func NewHandler(salonSvc *salonService.Service) *Handler {
	return &Handler{salonSvc: salonSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/salons/:id", h.GetSalon)
}

func (h *Handler) GetSalon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid salon ID"})
		return
	}

	details, err := h.salonSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, salonService.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "salon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": details})
}
