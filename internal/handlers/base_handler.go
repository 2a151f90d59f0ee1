package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gym-service/internal/auth"
	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/services"
	"github.com/SAP-F-2025/gym-service/internal/utils"
)

const (
	principalContextKey = "principal"
	claimsContextKey    = "session_claims"
)

// SuccessResponse is the envelope for every successful API response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is the envelope for every failed API response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Status  int         `json:"status"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler carries the logger shared by all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs an incoming request with the request-scoped logger
func (h *BaseHandler) LogRequest(c *gin.Context, message string, args ...any) {
	utils.GetLogger(c, h.logger).Info(message, args...)
}

// LogError logs a failed operation with the request-scoped logger
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, args ...any) {
	args = append(args, "error", err)
	utils.GetLogger(c, h.logger).Error(message, args...)
}

func (h *BaseHandler) respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, SuccessResponse{Data: data, Status: status, Message: message})
}

func (h *BaseHandler) respondError(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Status: status, Details: details})
}

// bindJSON decodes the body and writes a 400 on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return false
	}
	return true
}

// principal returns the caller or writes a 401
func (h *BaseHandler) principal(c *gin.Context) (models.Principal, bool) {
	p, ok := PrincipalFromContext(c)
	if !ok {
		h.respondError(c, http.StatusUnauthorized, "Authentication required", nil)
	}
	return p, ok
}

// handleServiceError maps the service error taxonomy onto HTTP statuses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var serviceErr *services.ServiceError
	if errors.As(err, &serviceErr) {
		h.respondError(c, statusForKind(serviceErr.Kind), serviceErr.Message, serviceErr.Details)
		return
	}

	h.LogError(c, err, "Unhandled service error", "path", c.FullPath())
	h.respondError(c, http.StatusInternalServerError, "Internal server error", nil)
}

func statusForKind(kind error) int {
	switch {
	case errors.Is(kind, services.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(kind, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(kind, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PrincipalFromContext returns the authenticated caller set by the auth middleware
func PrincipalFromContext(c *gin.Context) (models.Principal, bool) {
	value, ok := c.Get(principalContextKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := value.(models.Principal)
	return p, ok
}

func claimsFromContext(c *gin.Context) *auth.Claims {
	if value, ok := c.Get(claimsContextKey); ok {
		if claims, ok := value.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
