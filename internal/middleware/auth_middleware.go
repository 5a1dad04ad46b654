package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pollbox/internal/services"
	"pollbox/internal/transport/httpdto"
)

func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, err := authenticate(c, service)
		if err != nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller's identity when a valid
// bearer token is present and lets anonymous requests through untouched.
// Used on the public vote and results routes.
func OptionalAuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if extractBearer(c) != "" {
			if ctx, err := authenticate(c, service); err == nil {
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, service *services.AuthService) (context.Context, error) {
	token := extractBearer(c)
	claims, err := service.ParseAccessToken(token)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, err
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, err
	}

	if _, err := service.ValidateSession(c.Request.Context(), sessionID, userID); err != nil {
		return nil, err
	}

	return services.WithUserSessionContext(c.Request.Context(), userID, sessionID), nil
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
