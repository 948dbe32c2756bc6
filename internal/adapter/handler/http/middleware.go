package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"github.com/sm8ta/campusride_admin_console/internal/core/services"
)

const (
	authorizationHeaderKey  = "Authorization"
	authorizationTypeBearer = "bearer"
	authorizationPayloadKey = "authorization_payload"
	sessionKey              = "session"
)

// AuthMiddleware verifies the console token and loads its session.
func AuthMiddleware(tokenService ports.TokenService, sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeaderKey)
		fields := strings.Fields(header)
		if len(fields) != 2 || strings.ToLower(fields[0]) != authorizationTypeBearer {
			newErrorResponse(c, http.StatusUnauthorized, "Authorization header is missing or malformed")
			c.Abort()
			return
		}

		payload, err := tokenService.VerifyToken(fields[1])
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		session, err := sessions.Get(payload.SessionID)
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, sessionExpiredMessage)
			c.Abort()
			return
		}

		c.Set(authorizationPayloadKey, payload)
		c.Set(sessionKey, session)
		c.Next()
	}
}

func getAuthPayload(c *gin.Context, key string) (*domain.TokenPayload, bool) {
	value, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*domain.TokenPayload)
	return payload, ok
}

func getSession(c *gin.Context) (*domain.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*domain.Session)
	return session, ok
}
