package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gym-service/internal/services"
	"github.com/SAP-F-2025/gym-service/internal/utils"
)

// SelfHandler serves the caller's own records under /api/user
type SelfHandler struct {
	BaseHandler
	userService       services.UserService
	attendanceService services.AttendanceService
	feeService        services.FeeService
	assignmentService services.AssignmentService
}

func NewSelfHandler(
	userService services.UserService,
	attendanceService services.AttendanceService,
	feeService services.FeeService,
	assignmentService services.AssignmentService,
	logger utils.Logger,
) *SelfHandler {
	return &SelfHandler{
		BaseHandler:       NewBaseHandler(logger),
		userService:       userService,
		attendanceService: attendanceService,
		feeService:        feeService,
		assignmentService: assignmentService,
	}
}

// GetProfile returns the caller's profile
// @Summary Get own profile
// @Tags self
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.User}
// @Router /user/profile [get]
func (h *SelfHandler) GetProfile(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	user, err := h.userService.Profile(c.Request.Context(), caller)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, user, "")
}

// UpdateProfile changes the caller's personal fields
// @Summary Update own profile
// @Tags self
// @Accept json
// @Produce json
// @Param profile body services.ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} SuccessResponse{data=models.User}
// @Failure 400 {object} ErrorResponse
// @Router /user/profile [patch]
func (h *SelfHandler) UpdateProfile(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.ProfileUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, user, "Profile updated successfully")
}

// GetAttendance returns the caller's recent attendance
// @Summary Own attendance history
// @Tags self
// @Produce json
// @Param date query string false "Only records on or after this date (YYYY-MM-DD)"
// @Success 200 {object} SuccessResponse{data=[]models.AttendanceRecord}
// @Router /user/attendance [get]
func (h *SelfHandler) GetAttendance(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	records, err := h.attendanceService.History(c.Request.Context(), caller, caller.ID, c.Query("date"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, records, "")
}

// GetFees returns the caller's fees with totals
// @Summary Own fees
// @Tags self
// @Produce json
// @Success 200 {object} FeeListEnvelope
// @Router /user/fees [get]
func (h *SelfHandler) GetFees(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	fees, err := h.feeService.List(c.Request.Context(), caller, caller.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFeeListEnvelope(fees))
}

// GetDiet returns the caller's latest diet assignment
// @Summary Current diet plan
// @Tags self
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.DietAssignment}
// @Failure 404 {object} ErrorResponse
// @Router /user/diet [get]
func (h *SelfHandler) GetDiet(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	diet, err := h.assignmentService.CurrentDiet(c.Request.Context(), caller)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, diet, "")
}

// GetExercises returns the caller's exercise assignments
// @Summary Exercise plans
// @Tags self
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.ExerciseAssignment}
// @Failure 404 {object} ErrorResponse
// @Router /user/exercise [get]
func (h *SelfHandler) GetExercises(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	plans, err := h.assignmentService.MyExercises(c.Request.Context(), caller)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if len(plans) == 0 {
		h.respondError(c, http.StatusNotFound, "No exercise assigned", nil)
		return
	}
	h.respond(c, http.StatusOK, plans, "")
}
