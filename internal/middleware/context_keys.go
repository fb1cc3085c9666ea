package middleware

import (
	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// actorKey is the key used to store the authenticated actor in the context.
const actorKey = contextKey("actor")

// AuthenticatedActor is the identity extracted from a validated token.
type AuthenticatedActor struct {
	UserID string
	Name   string
	Role   domain.UserRole
}

// GetActorFromContext retrieves the authenticated actor from the Gin context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (AuthenticatedActor, bool) {
	actorVal := c.Request.Context().Value(actorKey)
	if actorVal == nil {
		return AuthenticatedActor{}, false
	}

	actor, ok := actorVal.(AuthenticatedActor)
	if !ok {
		// This should not happen if the auth middleware sets it correctly.
		return AuthenticatedActor{}, false
	}

	return actor, true
}
