package handlers

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/services"
	"github.com/SAP-F-2025/gym-service/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// raw HTML in notification text is escaped since WithUnsafe is not set
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var pageNames = []string{"signin", "dashboard", "attendance", "fees", "notifications"}

var pageFuncs = template.FuncMap{
	"markdown": func(md string) template.HTML {
		var buf bytes.Buffer
		if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
			return template.HTML(template.HTMLEscapeString(md))
		}
		return template.HTML(buf.String())
	},
	"money": func(amount float64) string {
		return "$" + strconv.FormatFloat(amount, 'f', 2, 64)
	},
	"hours": func(h float64) string {
		return strconv.FormatFloat(h, 'f', 2, 64)
	},
	"date": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
}

// pageData is the view model shared by every page template
type pageData struct {
	Title     string
	User      *models.User
	Error     string
	CSRFField template.HTML

	Email         string
	Unread        int
	Staff         bool
	Date          string
	Roster        []models.AttendanceRosterEntry
	History       []*models.AttendanceRecord
	Fees          *services.FeeListResponse
	CanExport     bool
	Notifications []*models.Notification
}

// PageHandler renders the server-side pages behind the session cookie
type PageHandler struct {
	BaseHandler
	accountService      services.AccountService
	userService         services.UserService
	attendanceService   services.AttendanceService
	feeService          services.FeeService
	notificationService services.NotificationService
	pages               map[string]*template.Template
	cookieSecure        bool
}

func NewPageHandler(manager services.ServiceManager, logger utils.Logger, cookieSecure bool) (*PageHandler, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tpl, err := template.New(name).Funcs(pageFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tpl
	}

	return &PageHandler{
		BaseHandler:         NewBaseHandler(logger),
		accountService:      manager.Account(),
		userService:         manager.User(),
		attendanceService:   manager.Attendance(),
		feeService:          manager.Fee(),
		notificationService: manager.Notification(),
		pages:               pages,
		cookieSecure:        cookieSecure,
	}, nil
}

func (h *PageHandler) render(c *gin.Context, status int, name string, data *pageData) {
	data.CSRFField = csrf.TemplateField(c.Request)

	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.LogError(c, err, "Failed to render page", "page", name)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// renderFailure shows a service error on the page instead of a JSON envelope
func (h *PageHandler) renderFailure(c *gin.Context, name string, data *pageData, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong"
	var serviceErr *services.ServiceError
	if errors.As(err, &serviceErr) {
		status = statusForKind(serviceErr.Kind)
		message = serviceErr.Message
	} else {
		h.LogError(c, err, "Page request failed", "page", name)
	}
	data.Error = message
	h.render(c, status, name, data)
}

// currentUser loads the signed-in user's record for the layout
func (h *PageHandler) currentUser(c *gin.Context) (models.Principal, *models.User, bool) {
	caller, ok := PrincipalFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/signin")
		return caller, nil, false
	}

	user, err := h.userService.Profile(c.Request.Context(), caller)
	if err != nil {
		h.LogError(c, err, "Failed to load signed-in user", "user_id", caller.ID)
		h.clearSession(c)
		c.Redirect(http.StatusSeeOther, "/signin")
		return caller, nil, false
	}
	return caller, user, true
}

func (h *PageHandler) clearSession(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SignInForm shows the credential form
func (h *PageHandler) SignInForm(c *gin.Context) {
	h.render(c, http.StatusOK, "signin", &pageData{Title: "Sign in"})
}

// SignIn verifies credentials and stores the session token in a cookie
func (h *PageHandler) SignIn(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render(c, http.StatusBadRequest, "signin", &pageData{Title: "Sign in", Error: "Email and password are required"})
		return
	}

	resp, err := h.accountService.Login(c.Request.Context(), &req)
	if err != nil {
		h.renderFailure(c, "signin", &pageData{Title: "Sign in", Email: req.Email}, err)
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	h.LogRequest(c, "Signed in", "user_id", resp.ID)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// SignOut revokes the session and clears the cookie
func (h *PageHandler) SignOut(c *gin.Context) {
	if claims := claimsFromContext(c); claims != nil {
		if err := h.accountService.Logout(c.Request.Context(), claims); err != nil {
			h.LogError(c, err, "Failed to revoke session")
		}
	}
	h.clearSession(c)
	c.Redirect(http.StatusSeeOther, "/signin")
}

// Dashboard shows the caller's profile and unread count
func (h *PageHandler) Dashboard(c *gin.Context) {
	caller, user, ok := h.currentUser(c)
	if !ok {
		return
	}

	data := &pageData{Title: "Dashboard", User: user}
	items, err := h.notificationService.ListMine(c.Request.Context(), caller)
	if err != nil {
		h.renderFailure(c, "dashboard", data, err)
		return
	}
	for _, item := range items {
		if !item.Read {
			data.Unread++
		}
	}
	h.render(c, http.StatusOK, "dashboard", data)
}

// Attendance shows staff the day roster and members their own history
func (h *PageHandler) Attendance(c *gin.Context) {
	caller, user, ok := h.currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	data := &pageData{Title: "Attendance", User: user, Staff: caller.Can(models.CapManageAttendance)}

	var err error
	if data.Staff {
		data.Date = c.Query("date")
		if data.Date == "" {
			data.Date = time.Now().Format(models.DateLayout)
		}
		data.Roster, err = h.attendanceService.Roster(ctx, caller, data.Date)
	} else {
		data.History, err = h.attendanceService.History(ctx, caller, caller.ID, "")
	}
	if err != nil {
		h.renderFailure(c, "attendance", data, err)
		return
	}
	h.render(c, http.StatusOK, "attendance", data)
}

// Fees lists every fee for staff and the caller's own fees otherwise
func (h *PageHandler) Fees(c *gin.Context) {
	caller, user, ok := h.currentUser(c)
	if !ok {
		return
	}

	data := &pageData{Title: "Fees", User: user, CanExport: caller.Can(models.CapManageFees)}

	studentID := ""
	if !data.CanExport {
		studentID = caller.ID
	}
	fees, err := h.feeService.List(c.Request.Context(), caller, studentID)
	if err != nil {
		data.Fees = &services.FeeListResponse{}
		h.renderFailure(c, "fees", data, err)
		return
	}
	data.Fees = fees
	h.render(c, http.StatusOK, "fees", data)
}

// Notifications lists the caller's notifications with markdown bodies
func (h *PageHandler) Notifications(c *gin.Context) {
	caller, user, ok := h.currentUser(c)
	if !ok {
		return
	}

	data := &pageData{Title: "Notifications", User: user}
	items, err := h.notificationService.ListMine(c.Request.Context(), caller)
	if err != nil {
		h.renderFailure(c, "notifications", data, err)
		return
	}
	data.Notifications = items
	h.render(c, http.StatusOK, "notifications", data)
}

// MarkNotificationRead handles the mark-read form
func (h *PageHandler) MarkNotificationRead(c *gin.Context) {
	caller, ok := PrincipalFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/signin")
		return
	}

	if id := c.PostForm("notificationId"); id != "" {
		if err := h.notificationService.MarkRead(c.Request.Context(), caller, id); err != nil {
			utils.GetLogger(c, h.logger).Warn("Failed to mark notification read", "notification_id", id, "error", err)
		}
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/notifications")
}

// CSRFMiddleware applies gorilla/csrf to the form routes
func CSRFMiddleware(authKey []byte, secure bool, trustedOrigins []string) gin.HandlerFunc {
	protect := csrf.Protect(
		authKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.TrustedOrigins(trustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid CSRF token", http.StatusForbidden)
		})),
	)

	return func(c *gin.Context) {
		passed := false
		next := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		}))

		r := c.Request
		if r.TLS == nil {
			r = csrf.PlaintextHTTPRequest(r)
		}
		next.ServeHTTP(c.Writer, r)

		if !passed {
			c.Abort()
		}
	}
}
