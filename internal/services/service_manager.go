package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/auth"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
	"github.com/SAP-F-2025/gym-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	// AppBaseURL prefixes password reset links
	AppBaseURL string

	// PasswordCost is the bcrypt work factor; 0 means auth.PasswordCost
	PasswordCost int

	DefaultTimeout time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repoManager   repositories.RepositoryManager
	authenticator *auth.Authenticator
	logger        *slog.Logger
	validator     *validator.Validator
	config        ServiceManagerConfig

	// Service instances
	accountService      AccountService
	userService         UserService
	attendanceService   AttendanceService
	feeService          FeeService
	catalogService      CatalogService
	assignmentService   AssignmentService
	notificationService NotificationService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(repoManager repositories.RepositoryManager, authenticator *auth.Authenticator, logger *slog.Logger,
	validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repoManager:   repoManager,
		authenticator: authenticator,
		logger:        logger,
		validator:     validator,
		config:        config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(repoManager repositories.RepositoryManager, authenticator *auth.Authenticator, logger *slog.Logger,
	validator *validator.Validator, appBaseURL string) ServiceManager {
	config := ServiceManagerConfig{
		AppBaseURL:     appBaseURL,
		PasswordCost:   auth.PasswordCost,
		DefaultTimeout: 30 * time.Second,
	}

	return NewServiceManager(repoManager, authenticator, logger, validator, config)
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if sm.repoManager == nil || sm.repoManager.GetRepository() == nil {
		return fmt.Errorf("failed to initialize services: repository is not configured")
	}
	if sm.authenticator == nil {
		return fmt.Errorf("failed to initialize services: authenticator is not configured")
	}

	sm.initializeServices()

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) initializeServices() {
	repo := sm.repoManager.GetRepository()
	hasher := auth.NewBcryptHasher(sm.config.PasswordCost)

	sm.accountService = NewAccountService(repo, sm.authenticator, hasher, sm.logger, sm.validator, sm.config.AppBaseURL)
	sm.userService = NewUserService(repo, sm.logger, sm.validator)
	sm.attendanceService = NewAttendanceService(repo, sm.logger, sm.validator)
	sm.feeService = NewFeeService(repo, sm.logger, sm.validator)
	sm.catalogService = NewCatalogService(repo, sm.logger, sm.validator)
	sm.assignmentService = NewAssignmentService(repo, sm.logger, sm.validator)
	sm.notificationService = NewNotificationService(repo, sm.logger, sm.validator)

	sm.logger.Info("Services initialized",
		"services", []string{"account", "user", "attendance", "fee", "catalog", "assignment", "notification"})
}

// Service getters

func (sm *serviceManager) mustBeInitialized() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

func (sm *serviceManager) Account() AccountService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.accountService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.userService
}

func (sm *serviceManager) Attendance() AttendanceService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.attendanceService
}

func (sm *serviceManager) Fee() FeeService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.feeService
}

func (sm *serviceManager) Catalog() CatalogService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.catalogService
}

func (sm *serviceManager) Assignment() AssignmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.assignmentService
}

func (sm *serviceManager) Notification() NotificationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.notificationService
}

func (sm *serviceManager) Authenticator() *auth.Authenticator {
	return sm.authenticator
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	ctx, cancel := context.WithTimeout(ctx, sm.config.timeout())
	defer cancel()

	if err := sm.repoManager.HealthCheck(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.repoManager.Shutdown(ctx); err != nil {
		sm.logger.Error("Failed to shutdown repository manager", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

func (c ServiceManagerConfig) timeout() time.Duration {
	if c.DefaultTimeout <= 0 {
		return 30 * time.Second
	}
	return c.DefaultTimeout
}
