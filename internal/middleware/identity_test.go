package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
)

func identityRouter() (*gin.Engine, *model.Actor) {
	gin.SetMode(gin.TestMode)
	var seen model.Actor

	engine := gin.New()
	engine.Use(Identity())
	engine.GET("/ping", func(c *gin.Context) {
		seen = GetActor(c)
		c.Status(http.StatusOK)
	})
	return engine, &seen
}

func TestIdentity_Customer(t *testing.T) {
	engine, seen := identityRouter()
	customerID := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(HeaderCustomerID, customerID.String())
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, customerID, seen.ID)
	assert.Equal(t, model.RoleCustomer, seen.Role)
}

func TestIdentity_ProviderWinsOverCustomer(t *testing.T) {
	engine, seen := identityRouter()
	providerID := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(HeaderCustomerID, uuid.New().String())
	req.Header.Set(HeaderProviderID, providerID.String())
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, providerID, seen.ID)
	assert.True(t, seen.IsProvider())
}

func TestIdentity_MissingHeaders(t *testing.T) {
	engine, _ := identityRouter()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdentity_MalformedID(t *testing.T) {
	engine, _ := identityRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(HeaderCustomerID, "not-a-uuid")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
