package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gym-service/internal/services"
	"github.com/SAP-F-2025/gym-service/internal/utils"
)

type AccountHandler struct {
	BaseHandler
	accountService services.AccountService
}

func NewAccountHandler(accountService services.AccountService, logger utils.Logger) *AccountHandler {
	return &AccountHandler{
		BaseHandler:    NewBaseHandler(logger),
		accountService: accountService,
	}
}

// Register creates a new account
// @Summary Register
// @Description Creates a member, trainer or admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param account body services.RegisterRequest true "Account data"
// @Success 201 {object} SuccessResponse{data=models.User}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Registering account", "role", req.Role)

	user, err := h.accountService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respond(c, http.StatusCreated, user, "User created successfully")
}

// Login verifies credentials and issues a session token
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Credentials"
// @Success 200 {object} SuccessResponse{data=services.LoginResponse}
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.accountService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respond(c, http.StatusOK, resp, "Login successful")
}

// Logout revokes the caller's session token
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AccountHandler) Logout(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}

	if err := h.accountService.Logout(c.Request.Context(), claimsFromContext(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	h.respond(c, http.StatusOK, nil, "Logged out")
}

// ForgotPassword issues a password reset link
// @Summary Forgot password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.ForgotPasswordRequest true "Email"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AccountHandler) ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.accountService.ForgotPassword(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respond(c, http.StatusOK, nil, "Password reset link sent")
}

// ResetPassword consumes a reset token and stores the new password
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/reset-password [post]
func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.accountService.ResetPassword(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respond(c, http.StatusOK, nil, "Password reset successfully")
}
