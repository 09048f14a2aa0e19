package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
)

// Identity headers set by the upstream session provider. The core trusts
// them; authentication happens before requests reach this service.
const (
	HeaderCustomerID = "X-Customer-ID"
	HeaderProviderID = "X-Provider-ID"
	HeaderActorRole  = "X-Actor-Role"

	contextActor = "actor"
)

// Identity resolves the caller into a model.Actor. Requests without a
// parseable identity are rejected before reaching handlers.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := parseActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "missing or invalid caller identity",
			})
			return
		}
		c.Set(contextActor, actor)
		c.Next()
	}
}

func parseActor(c *gin.Context) (model.Actor, bool) {
	if id := c.GetHeader(HeaderProviderID); id != "" {
		providerID, err := uuid.Parse(id)
		if err != nil {
			return model.Actor{}, false
		}
		return model.Actor{ID: providerID, Role: model.RoleProvider}, true
	}
	if id := c.GetHeader(HeaderCustomerID); id != "" {
		customerID, err := uuid.Parse(id)
		if err != nil {
			return model.Actor{}, false
		}
		return model.Actor{ID: customerID, Role: model.RoleCustomer}, true
	}
	return model.Actor{}, false
}

// GetActor returns the caller identity stored by Identity().
func GetActor(c *gin.Context) model.Actor {
	if v, ok := c.Get(contextActor); ok {
		if actor, ok := v.(model.Actor); ok {
			return actor
		}
	}
	return model.Actor{}
}
