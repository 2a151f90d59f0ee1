package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/services"
	"github.com/SAP-F-2025/gym-service/internal/utils"
)

// CatalogHandler serves the diet food and exercise catalogs
type CatalogHandler struct {
	BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    NewBaseHandler(logger),
		catalogService: catalogService,
	}
}

// ===== DIET FOODS =====

// ListDietFoods
// @Summary List diet foods
// @Tags catalog
// @Produce json
// @Param category query string false "Category"
// @Param dietType query string false "Diet type"
// @Param search query string false "Matches name, description or category"
// @Success 200 {object} SuccessResponse{data=[]models.DietFood}
// @Router /diet-foods [get]
func (h *CatalogHandler) ListDietFoods(c *gin.Context) {
	filters := models.CatalogFilters{
		Category: c.Query("category"),
		Kind:     c.Query("dietType"),
		Search:   c.Query("search"),
	}

	foods, err := h.catalogService.ListDietFoods(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, foods, "")
}

// GetDietFood
// @Summary Get diet food
// @Tags catalog
// @Produce json
// @Param id path string true "Diet food ID"
// @Success 200 {object} SuccessResponse{data=models.DietFood}
// @Failure 404 {object} ErrorResponse
// @Router /diet-foods/{id} [get]
func (h *CatalogHandler) GetDietFood(c *gin.Context) {
	food, err := h.catalogService.GetDietFood(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, food, "")
}

// CreateDietFood
// @Summary Create diet food
// @Tags catalog
// @Accept json
// @Produce json
// @Param food body services.DietFoodRequest true "Diet food"
// @Success 201 {object} SuccessResponse{data=models.DietFood}
// @Failure 400 {object} ErrorResponse
// @Router /diet-foods [post]
func (h *CatalogHandler) CreateDietFood(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.DietFoodRequest
	if !h.bindJSON(c, &req) {
		return
	}

	food, err := h.catalogService.CreateDietFood(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, food, "Diet food created successfully")
}

// UpdateDietFood
// @Summary Update diet food
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Diet food ID"
// @Param food body services.DietFoodRequest true "Diet food"
// @Success 200 {object} SuccessResponse{data=models.DietFood}
// @Failure 404 {object} ErrorResponse
// @Router /diet-foods/{id} [put]
func (h *CatalogHandler) UpdateDietFood(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.DietFoodRequest
	if !h.bindJSON(c, &req) {
		return
	}

	food, err := h.catalogService.UpdateDietFood(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, food, "Diet food updated successfully")
}

// DeleteDietFood
// @Summary Delete diet food
// @Tags catalog
// @Param id path string true "Diet food ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /diet-foods/{id} [delete]
func (h *CatalogHandler) DeleteDietFood(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteDietFood(c.Request.Context(), caller, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, nil, "Diet food deleted successfully")
}

// ===== EXERCISES =====

// ListExercises
// @Summary List exercises
// @Tags catalog
// @Produce json
// @Param category query string false "Category"
// @Param difficulty query string false "Difficulty"
// @Param search query string false "Matches name, description or category"
// @Success 200 {object} SuccessResponse{data=[]models.Exercise}
// @Router /exercises [get]
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	filters := models.CatalogFilters{
		Category: c.Query("category"),
		Kind:     c.Query("difficulty"),
		Search:   c.Query("search"),
	}

	exercises, err := h.catalogService.ListExercises(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, exercises, "")
}

// GetExercise
// @Summary Get exercise
// @Tags catalog
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} SuccessResponse{data=models.Exercise}
// @Failure 404 {object} ErrorResponse
// @Router /exercises/{id} [get]
func (h *CatalogHandler) GetExercise(c *gin.Context) {
	exercise, err := h.catalogService.GetExercise(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, exercise, "")
}

// CreateExercise
// @Summary Create exercise
// @Tags catalog
// @Accept json
// @Produce json
// @Param exercise body services.ExerciseRequest true "Exercise"
// @Success 201 {object} SuccessResponse{data=models.Exercise}
// @Failure 400 {object} ErrorResponse
// @Router /exercises [post]
func (h *CatalogHandler) CreateExercise(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.ExerciseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	exercise, err := h.catalogService.CreateExercise(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, exercise, "Exercise created successfully")
}

// UpdateExercise
// @Summary Update exercise
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Exercise ID"
// @Param exercise body services.ExerciseRequest true "Exercise"
// @Success 200 {object} SuccessResponse{data=models.Exercise}
// @Failure 404 {object} ErrorResponse
// @Router /exercises/{id} [put]
func (h *CatalogHandler) UpdateExercise(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.ExerciseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	exercise, err := h.catalogService.UpdateExercise(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, exercise, "Exercise updated successfully")
}

// DeleteExercise
// @Summary Delete exercise
// @Tags catalog
// @Param id path string true "Exercise ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /exercises/{id} [delete]
func (h *CatalogHandler) DeleteExercise(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteExercise(c.Request.Context(), caller, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, nil, "Exercise deleted successfully")
}
