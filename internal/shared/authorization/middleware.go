package authorization

import (
	"github.com/gin-gonic/gin"
)

// Context keys populated by the auth middleware.
const (
	ContextKeyActorSID  = "actor_sid"
	ContextKeyActorRole = "actor_role"
)

// RequireRole is the single capability check for role-gated operations.
// Route groups apply it once at entry instead of re-checking per call site.
func RequireRole(role ActorRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorRole := c.GetString(ContextKeyActorRole)
		if actorRole != string(role) {
			c.JSON(403, gin.H{
				"error": string(role) + " access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin gates admin-only route groups.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(RoleAdmin)
}

// RequireVendor gates vendor self-service route groups.
func RequireVendor() gin.HandlerFunc {
	return RequireRole(RoleVendor)
}

// Actor is the authenticated caller as seen by the application layer.
type Actor struct {
	SID  string
	Role ActorRole
}

// ActorFromContext extracts the authenticated actor from the gin context.
func ActorFromContext(c *gin.Context) (Actor, bool) {
	sid := c.GetString(ContextKeyActorSID)
	role := c.GetString(ContextKeyActorRole)
	if sid == "" || role == "" {
		return Actor{}, false
	}
	return Actor{SID: sid, Role: ParseActorRole(role)}, true
}
