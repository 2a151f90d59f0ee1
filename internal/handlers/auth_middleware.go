package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gym-service/internal/auth"
	"github.com/SAP-F-2025/gym-service/internal/metrics"
	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/utils"
)

// SessionCookieName carries the session token for browser pages
const SessionCookieName = "gym_session"

// AuthMiddleware authenticates session tokens issued at login
type AuthMiddleware struct {
	authenticator *auth.Authenticator
	logger        utils.Logger
}

func NewAuthMiddleware(authenticator *auth.Authenticator, logger utils.Logger) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator, logger: logger}
}

// sessionToken reads a Bearer token, falling back to the session cookie
func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// authenticate resolves the caller and stores it on the context
func (am *AuthMiddleware) authenticate(c *gin.Context) (string, bool) {
	token := sessionToken(c)
	if token == "" {
		return "missing", false
	}

	principal, claims, err := am.authenticator.Authenticate(c.Request.Context(), token)
	if err != nil {
		utils.GetLogger(c, am.logger).Debug("Rejected session token", "error", err)
		return "invalid", false
	}

	c.Set(principalContextKey, principal)
	c.Set(claimsContextKey, claims)
	c.Set("user_id", principal.ID)
	return "", true
}

// Authenticate rejects API requests without a valid session
func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if reason, ok := am.authenticate(c); !ok {
			metrics.RecordAuthFailure(reason)
			message := "Authentication required"
			if reason == "invalid" {
				message = "Invalid or expired session"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:  message,
				Status: http.StatusUnauthorized,
			})
			return
		}
		c.Next()
	}
}

// RequirePageSession redirects browsers without a session to the sign-in page
func (am *AuthMiddleware) RequirePageSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if reason, ok := am.authenticate(c); !ok {
			metrics.RecordAuthFailure(reason)
			c.Redirect(http.StatusSeeOther, "/signin")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireCapability checks the caller's role grants the capability
func (am *AuthMiddleware) RequireCapability(capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:  "Authentication required",
				Status: http.StatusUnauthorized,
			})
			return
		}

		if !principal.Can(capability) {
			metrics.RecordAuthFailure("forbidden")
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Error:  "Access denied",
				Status: http.StatusForbidden,
				Details: map[string]interface{}{
					"capability": capability,
					"role":       principal.Role,
				},
			})
			return
		}

		c.Next()
	}
}

// RequireAdmin allows only administrators
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return am.RequireCapability(models.CapDeleteUsers)
}
