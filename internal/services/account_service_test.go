package services

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/models"
)

func memberRequest(email string) *RegisterRequest {
	return &RegisterRequest{
		Name:     "Alex",
		Email:    email,
		Password: "Passw0rd",
		Age:      intPtr(20),
		Gender:   "male",
	}
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	svc := env.accounts()
	ctx := context.Background()

	admin, err := svc.Register(ctx, &RegisterRequest{Name: "Root", Email: "root@gym.test", Password: "Adm1nPass", Role: "admin"})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}

	member, err := svc.Register(ctx, memberRequest("  Alex@Gym.Test "))
	if err != nil {
		t.Fatalf("register member: %v", err)
	}

	if member.Email != "alex@gym.test" {
		t.Errorf("email = %q, want lowercased", member.Email)
	}
	if member.AccountNumber != "000000000002" {
		t.Errorf("accountNumber = %q, want 000000000002", member.AccountNumber)
	}
	if member.AdminID != admin.ID {
		t.Errorf("adminId = %q, want %q", member.AdminID, admin.ID)
	}
	if member.Role != models.RoleUser || member.Goal != models.GoalGetFitter || member.Level != models.LevelBeginner {
		t.Errorf("unexpected defaults: role=%s goal=%s level=%s", member.Role, member.Goal, member.Level)
	}
	if member.Status != models.UserStatusActive || member.IsActive {
		t.Errorf("unexpected status: %s isActive=%v", member.Status, member.IsActive)
	}
	if !env.hasher.Compare(member.HashedPassword, "Passw0rd") {
		t.Error("stored hash does not match password")
	}

	_, err = svc.Register(ctx, memberRequest("ALEX@gym.test"))
	assertKind(t, err, ErrConflict)

	stored, _ := env.repo.User().GetByEmail(ctx, "alex@gym.test")
	if stored.ID != member.ID || stored.Name != "Alex" {
		t.Errorf("existing record changed: %+v", stored)
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"weak password", func(r *RegisterRequest) { r.Password = "password" }},
		{"symbol in password", func(r *RegisterRequest) { r.Password = "Passw0rd!" }},
		{"short password", func(r *RegisterRequest) { r.Password = "Pa55" }},
		{"underage member", func(r *RegisterRequest) { r.Age = intPtr(17) }},
		{"member without gender", func(r *RegisterRequest) { r.Gender = "" }},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			req := memberRequest("alex@gym.test")
			tt.mutate(req)

			_, err := env.accounts().Register(context.Background(), req)
			assertKind(t, err, ErrValidationFailed)

			if count, _ := env.repo.User().Count(context.Background()); count != 0 {
				t.Errorf("expected no user stored, found %d", count)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := env.accounts()
	ctx := context.Background()

	if _, err := svc.Register(ctx, memberRequest("alex@gym.test")); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, &LoginRequest{Email: "alex@gym.test", Password: "Wrong1234"})
	assertKind(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@gym.test", Password: "Passw0rd"})
	assertKind(t, err, ErrUnauthorized)

	resp, err := svc.Login(ctx, &LoginRequest{Email: "ALEX@gym.test", Password: "Passw0rd"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.IsAdmin || resp.Role != models.RoleUser || resp.Token == "" {
		t.Errorf("unexpected login response %+v", resp)
	}

	principal, _, err := env.authn.Authenticate(ctx, resp.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if principal.ID != resp.ID || principal.AccountNumber != resp.AccountNumber {
		t.Errorf("principal %+v does not match login %+v", principal, resp)
	}
}

func TestPasswordReset(t *testing.T) {
	env := newTestEnv(t)
	svc := env.accounts()
	ctx := context.Background()

	clock := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	tokens := []string{"token-one", "token-two"}
	svc.newResetToken = func() string {
		next := tokens[0]
		tokens = tokens[1:]
		return next
	}

	if _, err := svc.Register(ctx, memberRequest("alex@gym.test")); err != nil {
		t.Fatalf("register: %v", err)
	}

	assertKind(t, svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "ghost@gym.test"}), ErrNotFound)

	if err := svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "alex@gym.test"}); err != nil {
		t.Fatalf("forgot: %v", err)
	}

	mismatch := &ResetPasswordRequest{Token: "token-one", Password: "NewPass12", ConfirmPassword: "NewPass13"}
	assertKind(t, svc.ResetPassword(ctx, mismatch), ErrValidationFailed)

	reset := &ResetPasswordRequest{Token: "token-one", Password: "NewPass12", ConfirmPassword: "NewPass12"}
	if err := svc.ResetPassword(ctx, reset); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := svc.Login(ctx, &LoginRequest{Email: "alex@gym.test", Password: "NewPass12"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	t.Run("single use", func(t *testing.T) {
		assertKind(t, svc.ResetPassword(ctx, reset), ErrValidationFailed)
	})

	t.Run("expires after thirty minutes", func(t *testing.T) {
		if err := svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "alex@gym.test"}); err != nil {
			t.Fatalf("forgot: %v", err)
		}
		clock = clock.Add(31 * time.Minute)
		expired := &ResetPasswordRequest{Token: "token-two", Password: "Other123", ConfirmPassword: "Other123"}
		assertKind(t, svc.ResetPassword(ctx, expired), ErrValidationFailed)
	})
}
