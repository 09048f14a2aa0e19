package availability

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository/memory"
	availabilityService "github.com/yazan-alawneh999/salona-main-sub001/internal/service/availability"
)

func setupRouter(t *testing.T) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	salon := &model.Salon{
		Base:     model.Base{ID: uuid.New()},
		Name:     "Bella Vista",
		Timezone: "UTC",
		Status:   "active",
	}
	hours := []*model.WorkingHours{
		{ID: uuid.New(), SalonID: salon.ID, Weekday: time.Monday, OpenMinutes: 9 * 60, CloseMinutes: 13 * 60},
	}
	salons := memory.NewSalonRepository()
	salons.Put(salon, hours, nil)
	appointments := memory.NewAppointmentRepository(memory.NewOutboxRepository())

	svc := availabilityService.NewService(salons, appointments, 30*time.Minute, time.Minute, nil)

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine, salon.ID
}

type slotResponse struct {
	Status string                `json:"status"`
	Data   []model.SlotCandidate `json:"data"`
}

func TestGetAvailability(t *testing.T) {
	engine, salonID := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/salons/%s/availability?date=2026-09-14", salonID), nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp slotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.Data, 8)
	assert.True(t, resp.Data[0].Available)
}

func TestGetAvailability_WithDuration(t *testing.T) {
	engine, salonID := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/salons/%s/availability?date=2026-09-14&duration=60", salonID), nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp slotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 8)
	// The last 30 minute slot cannot host a 60 minute appointment.
	assert.False(t, resp.Data[7].Available)
}

func TestGetAvailability_MissingDate(t *testing.T) {
	engine, salonID := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/salons/%s/availability", salonID), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAvailability_BadDate(t *testing.T) {
	engine, salonID := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/salons/%s/availability?date=14-09-2026", salonID), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAvailability_UnknownSalon(t *testing.T) {
	engine, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/salons/%s/availability?date=2026-09-14", uuid.New()), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAvailability_InvalidID(t *testing.T) {
	engine, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/salons/not-a-uuid/availability?date=2026-09-14", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
