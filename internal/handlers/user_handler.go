package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/services"
	"github.com/SAP-F-2025/gym-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService    services.UserService
	accountService services.AccountService
}

func NewUserHandler(userService services.UserService, accountService services.AccountService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler:    NewBaseHandler(logger),
		userService:    userService,
		accountService: accountService,
	}
}

// ListUsers lists every user, newest first
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.User}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.listWith(c, h.userService.List)
}

// ListStudents lists members
// @Summary List students
// @Tags users
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.User}
// @Router /students [get]
func (h *UserHandler) ListStudents(c *gin.Context) {
	h.listWith(c, h.userService.Students)
}

// ListTrainers lists trainers
// @Summary List trainers
// @Tags users
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.User}
// @Router /trainers [get]
func (h *UserHandler) ListTrainers(c *gin.Context) {
	h.listWith(c, h.userService.Trainers)
}

func (h *UserHandler) listWith(c *gin.Context, list func(context.Context, models.Principal) ([]*models.User, error)) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	users, err := list(c.Request.Context(), caller)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, users, "")
}

// CreateUser lets an administrator create an account
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.RegisterRequest true "Account data"
// @Success 201 {object} SuccessResponse{data=models.User}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	caller, _ := PrincipalFromContext(c)
	h.LogRequest(c, "Creating user", "role", req.Role, "created_by", caller.ID)

	user, err := h.accountService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, user, "User created successfully")
}

// GetUser retrieves a user by ID
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} SuccessResponse{data=models.User}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, user, "")
}

// UpdateUser updates profile and membership fields
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body services.UserUpdateRequest true "Fields to change"
// @Success 200 {object} SuccessResponse{data=models.User}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.UserUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, user, "User updated successfully")
}

// DeleteUser removes a user; administrators only
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	id := c.Param("id")
	h.LogRequest(c, "Deleting user", "user_id", id)

	if err := h.userService.Delete(c.Request.Context(), caller, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, nil, "User deleted successfully")
}
