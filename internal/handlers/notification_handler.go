package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gym-service/internal/services"
	"github.com/SAP-F-2025/gym-service/internal/utils"
	"github.com/SAP-F-2025/gym-service/internal/validator"
)

type NotificationHandler struct {
	BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         NewBaseHandler(logger),
		notificationService: notificationService,
	}
}

// ListNotifications returns the caller's notifications, newest first
// @Summary List own notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.Notification}
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	items, err := h.notificationService.ListMine(c.Request.Context(), caller)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, items, "")
}

// CreateNotification sends a notification to a user by id or email
// @Summary Send notification
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body services.NotificationCreateRequest true "Notification"
// @Success 201 {object} SuccessResponse{data=models.Notification}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /notifications [post]
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.NotificationCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.notificationService.Create(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, item, "Notification created successfully")
}

// MarkRead marks one of the caller's notifications read
// @Summary Mark notification read
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body validator.MarkNotificationReadRequest true "Notification ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /notifications [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req validator.MarkNotificationReadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.NotificationID == "" {
		h.respondError(c, http.StatusBadRequest, "Notification ID is required", nil)
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), caller, req.NotificationID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, nil, "Notification marked as read")
}
