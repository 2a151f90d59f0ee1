package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gym-service/internal/services"
	"github.com/SAP-F-2025/gym-service/internal/utils"
)

type AttendanceHandler struct {
	BaseHandler
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(attendanceService services.AttendanceService, logger utils.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:       NewBaseHandler(logger),
		attendanceService: attendanceService,
	}
}

// GetAttendance returns one user's history when userId is given, else the day roster
// @Summary Attendance history or daily roster
// @Tags attendance
// @Produce json
// @Param userId query string false "User ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /attendance [get]
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	date := c.Query("date")

	if userID := c.Query("userId"); userID != "" {
		records, err := h.attendanceService.History(ctx, caller, userID, date)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		h.respond(c, http.StatusOK, records, "")
		return
	}

	roster, err := h.attendanceService.Roster(ctx, caller, date)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, roster, "")
}

// RecordAttendance upserts one attendance record
// @Summary Record attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Param record body services.AttendanceRequest true "Attendance"
// @Success 200 {object} SuccessResponse{data=models.AttendanceRecord}
// @Failure 400 {object} ErrorResponse
// @Router /attendance [post]
func (h *AttendanceHandler) RecordAttendance(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.AttendanceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	record, err := h.attendanceService.Record(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, record, "Attendance recorded")
}

// RecordBulkAttendance upserts many records at once
// @Summary Bulk attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Param records body services.BulkAttendanceRequest true "Attendance records"
// @Success 200 {object} SuccessResponse{data=models.BulkUpsertResult}
// @Failure 400 {object} ErrorResponse
// @Router /attendance [put]
func (h *AttendanceHandler) RecordBulkAttendance(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.BulkAttendanceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Recording bulk attendance", "count", len(req.Records))

	result, err := h.attendanceService.RecordBulk(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, result, "Attendance updated")
}
