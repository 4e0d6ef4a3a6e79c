package middleware

import (
	"casetrack/internal/authz"
	"casetrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole returns a middleware that rejects requests from actors below
// the given minimum role. Finer-grained decisions stay in the services; this
// guards routes that no lower rank may reach at all.
func RequireRole(checker *authz.RoleChecker, minimumRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, ok := GetActorID(c)
		if !ok {
			response.Unauthorized(c, "user not authenticated")
			c.Abort()
			return
		}

		actx := authz.NewContext(actorID)
		allowed, err := checker.IsAuthorizedByRole(c.Request.Context(), actx, minimumRole)
		if err != nil {
			response.InternalError(c)
			c.Abort()
			return
		}
		if !allowed {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
