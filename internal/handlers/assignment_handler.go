package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gym-service/internal/services"
	"github.com/SAP-F-2025/gym-service/internal/utils"
)

// AssignmentHandler serves diet and exercise plans assigned to members
type AssignmentHandler struct {
	BaseHandler
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(assignmentService services.AssignmentService, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assignmentService: assignmentService,
	}
}

// ListDietAssignments
// @Summary List diet assignments
// @Tags assignments
// @Produce json
// @Param studentId query string false "Student ID"
// @Success 200 {object} SuccessResponse{data=[]models.DietAssignment}
// @Router /diet-assignments [get]
func (h *AssignmentHandler) ListDietAssignments(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	plans, err := h.assignmentService.ListDiet(c.Request.Context(), caller, c.Query("studentId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, plans, "")
}

// CreateDietAssignment
// @Summary Assign a diet plan
// @Tags assignments
// @Accept json
// @Produce json
// @Param plan body services.DietAssignmentRequest true "Diet plan"
// @Success 201 {object} SuccessResponse{data=models.DietAssignment}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /diet-assignments [post]
func (h *AssignmentHandler) CreateDietAssignment(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.DietAssignmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Assigning diet plan", "student_id", req.StudentID, "foods", len(req.Foods))

	plan, err := h.assignmentService.CreateDiet(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, plan, "Diet assigned successfully")
}

// UpdateDietAssignment
// @Summary Update diet plan
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param plan body services.DietAssignmentRequest true "Diet plan"
// @Success 200 {object} SuccessResponse{data=models.DietAssignment}
// @Failure 404 {object} ErrorResponse
// @Router /diet-assignments/{id} [put]
func (h *AssignmentHandler) UpdateDietAssignment(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.DietAssignmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	plan, err := h.assignmentService.UpdateDiet(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, plan, "Diet assignment updated successfully")
}

// DeleteDietAssignment
// @Summary Delete diet plan
// @Tags assignments
// @Param id path string true "Assignment ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /diet-assignments/{id} [delete]
func (h *AssignmentHandler) DeleteDietAssignment(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.assignmentService.DeleteDiet(c.Request.Context(), caller, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, nil, "Diet assignment deleted successfully")
}

// ListExerciseAssignments
// @Summary List exercise assignments
// @Tags assignments
// @Produce json
// @Param studentId query string false "Student ID"
// @Success 200 {object} SuccessResponse{data=[]models.ExerciseAssignment}
// @Router /exercise-assignments [get]
func (h *AssignmentHandler) ListExerciseAssignments(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	plans, err := h.assignmentService.ListExercise(c.Request.Context(), caller, c.Query("studentId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, plans, "")
}

// CreateExerciseAssignment
// @Summary Assign an exercise plan
// @Tags assignments
// @Accept json
// @Produce json
// @Param plan body services.ExerciseAssignmentRequest true "Exercise plan"
// @Success 201 {object} SuccessResponse{data=models.ExerciseAssignment}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /exercise-assignments [post]
func (h *AssignmentHandler) CreateExerciseAssignment(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.ExerciseAssignmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Assigning exercise plan", "student_id", req.StudentID, "exercises", len(req.Exercises))

	plan, err := h.assignmentService.CreateExercise(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, plan, "Exercise assigned successfully")
}

// UpdateExerciseAssignment
// @Summary Update exercise plan
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param plan body services.ExerciseAssignmentRequest true "Exercise plan"
// @Success 200 {object} SuccessResponse{data=models.ExerciseAssignment}
// @Failure 404 {object} ErrorResponse
// @Router /exercise-assignments/{id} [put]
func (h *AssignmentHandler) UpdateExerciseAssignment(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.ExerciseAssignmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	plan, err := h.assignmentService.UpdateExercise(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, plan, "Exercise assignment updated successfully")
}

// DeleteExerciseAssignment
// @Summary Delete exercise plan
// @Tags assignments
// @Param id path string true "Assignment ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /exercise-assignments/{id} [delete]
func (h *AssignmentHandler) DeleteExerciseAssignment(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.assignmentService.DeleteExercise(c.Request.Context(), caller, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, nil, "Exercise assignment deleted successfully")
}
