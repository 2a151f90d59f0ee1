package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAP-F-2025/gym-service/internal/auth"
	"github.com/SAP-F-2025/gym-service/internal/cache"
	"github.com/SAP-F-2025/gym-service/internal/config"
	"github.com/SAP-F-2025/gym-service/internal/repositories/memory"
	"github.com/SAP-F-2025/gym-service/internal/services"
	"github.com/SAP-F-2025/gym-service/internal/utils"
	"github.com/SAP-F-2025/gym-service/internal/validator"
)

const testPassword = "Passw0rd"

type testServer struct {
	router *gin.Engine
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Total   float64         `json:"total"`
	Income  float64         `json:"income"`
	Unpaid  float64         `json:"unpaid"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	tokens, err := auth.NewJWTManager("handler-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	cacheManager := cache.NewCacheManager(client)
	authenticator := auth.NewAuthenticator(tokens, auth.NewRevocationStore(cacheManager.Sessions))

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := services.NewServiceManager(memory.NewManager(), authenticator, slogger, validator.New(), services.ServiceManagerConfig{
		AppBaseURL:     "http://gym.test/",
		PasswordCost:   bcrypt.MinCost,
		DefaultTimeout: 5 * time.Second,
	})
	if err := manager.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	webCfg := config.WebConfig{
		CSRFKey:        "01234567890123456789012345678901",
		TrustedOrigins: []string{"example.com"},
	}
	hm, err := NewHandlerManager(manager, cacheManager, utils.Discard(), webCfg)
	if err != nil {
		t.Fatalf("NewHandlerManager() error = %v", err)
	}

	router := gin.New()
	SetupMiddleware(router, utils.Discard(), []string{"*"})
	hm.SetupRoutes(router)

	return &testServer{router: router}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return env
}

// register creates an account and returns its id
func (s *testServer) register(t *testing.T, name, role string) string {
	t.Helper()

	body := map[string]any{
		"name":     name,
		"email":    name + "@gym.test",
		"password": testPassword,
		"role":     role,
	}
	if role == "user" {
		body["age"] = 25
		body["gender"] = "female"
	}

	w := s.do(t, http.MethodPost, "/api/auth/register", body, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", name, w.Code, w.Body.String())
	}

	var user struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	return user.ID
}

func (s *testServer) login(t *testing.T, name string) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    name + "@gym.test",
		"password": testPassword,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", name, w.Code, w.Body.String())
	}

	var resp services.LoginResponse
	if err := json.Unmarshal(decode(t, w).Data, &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return resp.Token
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "jordan", "user")

	w := srv.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Jordan Again",
		"email":    "JORDAN@gym.test",
		"password": testPassword,
		"age":      30,
		"gender":   "male",
	}, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	env := decode(t, w)
	if env.Error != "User already exists with this email" || env.Status != http.StatusConflict {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Sam",
		"email":    "sam@gym.test",
		"password": "password",
		"age":      30,
		"gender":   "male",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	login := srv.do(t, http.MethodPost, "/api/auth/login", map[string]any{"email": "sam@gym.test", "password": "password"}, "")
	if login.Code != http.StatusUnauthorized {
		t.Fatalf("expected no account to exist, login returned %d", login.Code)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		token   string
		message string
	}{
		{"missing token", "", "Authentication required"},
		{"garbage token", "not-a-jwt", "Invalid or expired session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodGet, "/api/users", nil, tt.token)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			if got := decode(t, w).Error; got != tt.message {
				t.Errorf("error = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "coach", "trainer")
	memberID := srv.register(t, "member", "user")
	srv.register(t, "boss", "admin")

	trainer := srv.login(t, "coach")
	w := srv.do(t, http.MethodDelete, "/api/users/"+memberID, nil, trainer)
	if w.Code != http.StatusForbidden {
		t.Fatalf("trainer delete: expected 403, got %d", w.Code)
	}

	if w := srv.do(t, http.MethodGet, "/api/users/"+memberID, nil, trainer); w.Code != http.StatusOK {
		t.Fatalf("member should still exist, got %d", w.Code)
	}

	admin := srv.login(t, "boss")
	if w := srv.do(t, http.MethodDelete, "/api/users/"+memberID, nil, admin); w.Code != http.StatusOK {
		t.Fatalf("admin delete: expected 200, got %d body %s", w.Code, w.Body.String())
	}
	if w := srv.do(t, http.MethodGet, "/api/users/"+memberID, nil, admin); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestMemberReadsDirectoryAndSendsNotifications(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "member", "user")
	otherID := srv.register(t, "other", "user")
	token := srv.login(t, "member")

	for _, path := range []string{"/api/users", "/api/students", "/api/trainers", "/api/users/" + otherID} {
		w := srv.do(t, http.MethodGet, path, nil, token)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
		if strings.Contains(w.Body.String(), "hashedPassword") {
			t.Errorf("%s: response leaks password hash", path)
		}
	}

	update := map[string]any{"name": "Renamed"}
	if w := srv.do(t, http.MethodPut, "/api/users/"+otherID, update, token); w.Code != http.StatusForbidden {
		t.Errorf("update other user: expected 403, got %d", w.Code)
	}

	note := map[string]any{"userId": otherID, "notificationText": "See you at 6"}
	if w := srv.do(t, http.MethodPost, "/api/notifications", note, token); w.Code != http.StatusCreated {
		t.Fatalf("member notification: expected 201, got %d %s", w.Code, w.Body.String())
	}

	unknown := map[string]any{"userEmail": "ghost@example.com", "notificationText": "hello"}
	w := srv.do(t, http.MethodPost, "/api/notifications", unknown, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown recipient: expected 400, got %d", w.Code)
	}
	if env := decode(t, w); env.Error != "Valid user ID or email is required" {
		t.Errorf("unexpected error %q", env.Error)
	}
}

func TestAttendanceUpsertKeepsOneRecordPerDay(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "boss", "admin")
	memberID := srv.register(t, "member", "user")
	admin := srv.login(t, "boss")

	record := map[string]any{
		"userId":   memberID,
		"date":     "2024-03-01",
		"checkIn":  "09:00",
		"checkOut": "10:00",
		"status":   "present",
	}
	if w := srv.do(t, http.MethodPost, "/api/attendance", record, admin); w.Code != http.StatusOK {
		t.Fatalf("first record: %d %s", w.Code, w.Body.String())
	}

	record["checkOut"] = "11:30"
	if w := srv.do(t, http.MethodPost, "/api/attendance", record, admin); w.Code != http.StatusOK {
		t.Fatalf("second record: %d %s", w.Code, w.Body.String())
	}

	w := srv.do(t, http.MethodGet, "/api/attendance?userId="+memberID, nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("history: %d", w.Code)
	}
	var history []struct {
		Date        string  `json:"date"`
		HoursWorked float64 `json:"hoursWorked"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 record, got %d", len(history))
	}
	if history[0].HoursWorked != 2.5 {
		t.Errorf("hoursWorked = %v, want 2.5", history[0].HoursWorked)
	}

	record["checkOut"] = "08:00"
	if w := srv.do(t, http.MethodPost, "/api/attendance", record, admin); w.Code != http.StatusBadRequest {
		t.Errorf("checkOut before checkIn: expected 400, got %d", w.Code)
	}
}

func TestFeeListCarriesTotals(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "boss", "admin")
	memberID := srv.register(t, "member", "user")
	admin := srv.login(t, "boss")

	w := srv.do(t, http.MethodPost, "/api/fees", map[string]any{"studentId": memberID, "amount": 49.5}, admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("create fee: %d %s", w.Code, w.Body.String())
	}

	env := decode(t, srv.do(t, http.MethodGet, "/api/fees", nil, admin))
	if env.Total != 49.5 || env.Unpaid != 49.5 || env.Income != 0 {
		t.Fatalf("totals = %v/%v/%v, want 49.5/49.5/0", env.Total, env.Unpaid, env.Income)
	}

	member := srv.login(t, "member")
	var notes []struct {
		Text string `json:"notificationText"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(decode(t, srv.do(t, http.MethodGet, "/api/notifications", nil, member)).Data, &notes); err != nil {
		t.Fatalf("decode notifications: %v", err)
	}
	if len(notes) != 1 || notes[0].Type != "fee" || notes[0].Text != "New fee of $49.5 has been added to your account" {
		t.Fatalf("unexpected notifications %+v", notes)
	}

	if w := srv.do(t, http.MethodGet, "/api/fees", nil, member); w.Code != http.StatusForbidden {
		t.Errorf("member listing all fees: expected 403, got %d", w.Code)
	}
	own := decode(t, srv.do(t, http.MethodGet, "/api/user/fees", nil, member))
	if own.Total != 49.5 {
		t.Errorf("own total = %v, want 49.5", own.Total)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "member", "user")
	token := srv.login(t, "member")

	if w := srv.do(t, http.MethodGet, "/api/user/profile", nil, token); w.Code != http.StatusOK {
		t.Fatalf("profile before logout: %d", w.Code)
	}
	if w := srv.do(t, http.MethodPost, "/api/auth/logout", nil, token); w.Code != http.StatusOK {
		t.Fatalf("logout: %d %s", w.Code, w.Body.String())
	}
	if w := srv.do(t, http.MethodGet, "/api/user/profile", nil, token); w.Code != http.StatusUnauthorized {
		t.Fatalf("profile after logout: expected 401, got %d", w.Code)
	}
}

func TestSignInPageRendersCSRFField(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/signin", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `name="gorilla.csrf.Token"`) {
		t.Errorf("sign-in form is missing the CSRF field")
	}
}

func TestSignInRejectsMissingCSRFToken(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "member", "user")

	req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader("email=member%40gym.test&password="+testPassword))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestDashboardRedirectsWithoutSession(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/signin" {
		t.Errorf("Location = %q, want /signin", loc)
	}
}

func TestHealthReportsHealthy(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodGet, "/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if body["cache"] != "healthy" {
		t.Errorf("cache = %q, want healthy", body["cache"])
	}
}
