package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SAP-F-2025/gym-service/internal/cache"
	"github.com/SAP-F-2025/gym-service/internal/config"
	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/services"
	"github.com/SAP-F-2025/gym-service/internal/utils"
)

type HandlerManager struct {
	serviceManager      services.ServiceManager
	cacheManager        *cache.CacheManager
	accountHandler      *AccountHandler
	userHandler         *UserHandler
	selfHandler         *SelfHandler
	attendanceHandler   *AttendanceHandler
	feeHandler          *FeeHandler
	catalogHandler      *CatalogHandler
	assignmentHandler   *AssignmentHandler
	notificationHandler *NotificationHandler
	pageHandler         *PageHandler
	authMiddleware      *AuthMiddleware
	webConfig           config.WebConfig
}

func NewHandlerManager(serviceManager services.ServiceManager, cacheManager *cache.CacheManager, logger utils.Logger, webConfig config.WebConfig) (*HandlerManager, error) {
	pageHandler, err := NewPageHandler(serviceManager, logger, webConfig.CookieSecure)
	if err != nil {
		return nil, err
	}

	return &HandlerManager{
		serviceManager:      serviceManager,
		cacheManager:        cacheManager,
		accountHandler:      NewAccountHandler(serviceManager.Account(), logger),
		userHandler:         NewUserHandler(serviceManager.User(), serviceManager.Account(), logger),
		selfHandler:         NewSelfHandler(serviceManager.User(), serviceManager.Attendance(), serviceManager.Fee(), serviceManager.Assignment(), logger),
		attendanceHandler:   NewAttendanceHandler(serviceManager.Attendance(), logger),
		feeHandler:          NewFeeHandler(serviceManager.Fee(), logger),
		catalogHandler:      NewCatalogHandler(serviceManager.Catalog(), logger),
		assignmentHandler:   NewAssignmentHandler(serviceManager.Assignment(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		pageHandler:         pageHandler,
		authMiddleware:      NewAuthMiddleware(serviceManager.Authenticator(), logger),
		webConfig:           webConfig,
	}, nil
}

// SetupRoutes sets up the JSON API, the server-rendered pages and ops endpoints
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Public account routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", hm.accountHandler.Register)
			authGroup.POST("/login", hm.accountHandler.Login)
			authGroup.POST("/forgot-password", hm.accountHandler.ForgotPassword)
			authGroup.POST("/reset-password", hm.accountHandler.ResetPassword)
			authGroup.POST("/logout", hm.authMiddleware.Authenticate(), hm.accountHandler.Logout)
		}

		protected := api.Group("")
		protected.Use(hm.authMiddleware.Authenticate())

		// Directory - any session reads, admin writes; self access is checked in the service
		users := protected.Group("/users")
		{
			users.GET("", hm.userHandler.ListUsers)
			users.POST("", hm.authMiddleware.RequireCapability(models.CapManageUsers), hm.userHandler.CreateUser)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.authMiddleware.RequireAdmin(), hm.userHandler.DeleteUser)
		}
		protected.GET("/students", hm.userHandler.ListStudents)
		protected.GET("/trainers", hm.userHandler.ListTrainers)

		// Self-service routes - any signed-in user
		self := protected.Group("/user")
		{
			self.GET("/profile", hm.selfHandler.GetProfile)
			self.PATCH("/profile", hm.selfHandler.UpdateProfile)
			self.GET("/attendance", hm.selfHandler.GetAttendance)
			self.GET("/fees", hm.selfHandler.GetFees)
			self.GET("/diet", hm.selfHandler.GetDiet)
			self.GET("/exercise", hm.selfHandler.GetExercises)
		}

		// Attendance - members may read their own history via ?userId
		attendance := protected.Group("/attendance")
		{
			attendance.GET("", hm.attendanceHandler.GetAttendance)
			attendance.POST("", hm.authMiddleware.RequireCapability(models.CapManageAttendance), hm.attendanceHandler.RecordAttendance)
			attendance.PUT("", hm.authMiddleware.RequireCapability(models.CapManageAttendance), hm.attendanceHandler.RecordBulkAttendance)
		}

		fees := protected.Group("/fees")
		{
			fees.GET("", hm.feeHandler.ListFees)
			fees.POST("", hm.authMiddleware.RequireCapability(models.CapManageFees), hm.feeHandler.CreateFee)
			fees.GET("/export", hm.authMiddleware.RequireCapability(models.CapManageFees), hm.feeHandler.ExportFees)
			fees.PATCH("/:id/pay", hm.authMiddleware.RequireCapability(models.CapManageFees), hm.feeHandler.MarkPaid)
		}

		// Catalog - readable by everyone signed in
		manageCatalog := hm.authMiddleware.RequireCapability(models.CapManageCatalog)
		dietFoods := protected.Group("/diet-foods")
		{
			dietFoods.GET("", hm.catalogHandler.ListDietFoods)
			dietFoods.GET("/:id", hm.catalogHandler.GetDietFood)
			dietFoods.POST("", manageCatalog, hm.catalogHandler.CreateDietFood)
			dietFoods.PUT("/:id", manageCatalog, hm.catalogHandler.UpdateDietFood)
			dietFoods.DELETE("/:id", manageCatalog, hm.catalogHandler.DeleteDietFood)
		}
		exercises := protected.Group("/exercises")
		{
			exercises.GET("", hm.catalogHandler.ListExercises)
			exercises.GET("/:id", hm.catalogHandler.GetExercise)
			exercises.POST("", manageCatalog, hm.catalogHandler.CreateExercise)
			exercises.PUT("/:id", manageCatalog, hm.catalogHandler.UpdateExercise)
			exercises.DELETE("/:id", manageCatalog, hm.catalogHandler.DeleteExercise)
		}

		assignPlans := hm.authMiddleware.RequireCapability(models.CapAssignPlans)
		dietPlans := protected.Group("/diet-assignments")
		{
			dietPlans.GET("", hm.assignmentHandler.ListDietAssignments)
			dietPlans.POST("", assignPlans, hm.assignmentHandler.CreateDietAssignment)
			dietPlans.PUT("/:id", assignPlans, hm.assignmentHandler.UpdateDietAssignment)
			dietPlans.DELETE("/:id", assignPlans, hm.assignmentHandler.DeleteDietAssignment)
		}
		exercisePlans := protected.Group("/exercise-assignments")
		{
			exercisePlans.GET("", hm.assignmentHandler.ListExerciseAssignments)
			exercisePlans.POST("", assignPlans, hm.assignmentHandler.CreateExerciseAssignment)
			exercisePlans.PUT("/:id", assignPlans, hm.assignmentHandler.UpdateExerciseAssignment)
			exercisePlans.DELETE("/:id", assignPlans, hm.assignmentHandler.DeleteExerciseAssignment)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", hm.notificationHandler.ListNotifications)
			notifications.POST("", hm.notificationHandler.CreateNotification)
			notifications.PATCH("", hm.notificationHandler.MarkRead)
		}
	}

	// Server-rendered pages, CSRF protected
	pages := router.Group("")
	pages.Use(CSRFMiddleware([]byte(hm.webConfig.CSRFKey), hm.webConfig.CookieSecure, hm.webConfig.TrustedOrigins))
	{
		pages.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/dashboard") })
		pages.GET("/signin", hm.pageHandler.SignInForm)
		pages.POST("/signin", hm.pageHandler.SignIn)

		session := pages.Group("")
		session.Use(hm.authMiddleware.RequirePageSession())
		{
			session.POST("/signout", hm.pageHandler.SignOut)
			session.GET("/dashboard", hm.pageHandler.Dashboard)
			session.GET("/dashboard/attendance", hm.pageHandler.Attendance)
			session.GET("/dashboard/fees", hm.pageHandler.Fees)
			session.GET("/dashboard/notifications", hm.pageHandler.Notifications)
			session.POST("/dashboard/notifications/read", hm.pageHandler.MarkNotificationRead)
		}
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint; a missing cache only disables session revocation
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := hm.serviceManager.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "gym-service",
				"error":   err.Error(),
			})
			return
		}

		cacheStatus := "healthy"
		if err := hm.cacheManager.HealthCheck(ctx); errors.Is(err, cache.ErrCacheNotAvailable) {
			cacheStatus = "disabled"
		} else if err != nil {
			cacheStatus = "unavailable"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "gym-service",
			"cache":   cacheStatus,
		})
	})
}
