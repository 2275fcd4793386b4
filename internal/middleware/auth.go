package middleware

import (
	"net/http"
	"strings"

	"github.com/appforge-io/appforge/internal/modules/serializer"
	"github.com/appforge-io/appforge/internal/modules/service"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ContextUserKey is the gin context key the authenticated user is stored
// under.
const ContextUserKey = "user"

// UserAuth authenticates requests with a bearer session token, loads the
// user, and sets it in the request context. It also tags the current span
// with the user id for telemetry filtering.
func UserAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		userID, err := auth.ParseToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		user, err := auth.GetUser(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			span.SetAttributes(attribute.String("user_id", user.ID.String()))
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}
