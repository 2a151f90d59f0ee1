package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

func TestUserUniqueness(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	if err := repo.User().Create(ctx, &models.User{Email: "A@x.com", AccountNumber: "000000000001"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		name string
		user *models.User
	}{
		{"same email different case", &models.User{Email: "a@X.com", AccountNumber: "000000000002"}},
		{"same account number", &models.User{Email: "b@x.com", AccountNumber: "000000000001"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.User().Create(ctx, tt.user)
			if !errors.Is(err, repositories.ErrDuplicate) {
				t.Fatalf("expected ErrDuplicate, got %v", err)
			}
		})
	}
}

func TestUserListHidesPasswordAndOrdersNewestFirst(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, role := range []models.UserRole{models.RoleUser, models.RoleTrainer, models.RoleUser} {
		user := &models.User{
			Email:          string(rune('a'+i)) + "@x.com",
			AccountNumber:  models.FormatAccountNumber(int64(i + 1)),
			HashedPassword: "hash",
			Role:           role,
			CreatedAt:      base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.User().Create(ctx, user); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	users, err := repo.User().List(ctx, repositories.UserFilters{Roles: []models.UserRole{models.RoleUser}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 members, got %d", len(users))
	}
	if users[0].Email != "c@x.com" {
		t.Errorf("expected newest first, got %s", users[0].Email)
	}
	for _, u := range users {
		if u.HashedPassword != "" {
			t.Errorf("password hash leaked for %s", u.Email)
		}
	}
}

func TestAttendanceUpsertPreservesIdentity(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, _ := repo.Attendance().Upsert(ctx, &models.AttendanceRecord{UserID: "u1", Date: "2024-01-10", Status: models.AttendanceLate})
	second, _ := repo.Attendance().Upsert(ctx, &models.AttendanceRecord{UserID: "u1", Date: "2024-01-10", Status: models.AttendancePresent})

	if first.ID != second.ID || !first.CreatedAt.Equal(second.CreatedAt) {
		t.Fatalf("upsert replaced identity: %+v vs %+v", first, second)
	}
	if second.Status != models.AttendancePresent {
		t.Errorf("status = %s, want present", second.Status)
	}

	result, err := repo.Attendance().BulkUpsert(ctx, []*models.AttendanceRecord{
		{UserID: "u1", Date: "2024-01-10", Status: models.AttendanceAbsent},
		{UserID: "u2", Date: "2024-01-10", Status: models.AttendancePresent},
	})
	if err != nil {
		t.Fatalf("bulk: %v", err)
	}
	if result.Matched != 1 || result.Upserted != 1 {
		t.Errorf("unexpected bulk result %+v", result)
	}

	records, _ := repo.Attendance().ListByDate(ctx, "2024-01-10")
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}

func TestNotificationMarkReadIsOneWay(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	owner := models.Principal{ID: "u1", Email: "u1@x.com"}

	n := &models.Notification{UserEmail: owner.Email, Text: "hi"}
	if err := repo.Notification().Create(ctx, n); err != nil {
		t.Fatalf("create: %v", err)
	}

	stranger := models.Principal{ID: "u2", Email: "u2@x.com"}
	if err := repo.Notification().MarkRead(ctx, n.ID, stranger, time.Now()); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("stranger should get not found, got %v", err)
	}

	firstRead := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.Notification().MarkRead(ctx, n.ID, owner, firstRead); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if err := repo.Notification().MarkRead(ctx, n.ID, owner, firstRead.Add(time.Hour)); err != nil {
		t.Fatalf("mark read again: %v", err)
	}

	list, _ := repo.Notification().ListForRecipient(ctx, owner.ID, owner.Email)
	if len(list) != 1 || !list[0].Read || !list[0].ReadAt.Equal(firstRead) {
		t.Fatalf("unexpected notification state %+v", list)
	}
}

func TestFeeMarkPaidIdempotent(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	fee := &models.Fee{StudentID: "s1", Amount: 25, Status: models.FeeUnpaid}
	_ = repo.Fee().Create(ctx, fee)

	changed, err := repo.Fee().MarkPaid(ctx, fee.ID, time.Now())
	if err != nil || !changed {
		t.Fatalf("first: changed=%v err=%v", changed, err)
	}
	changed, err = repo.Fee().MarkPaid(ctx, fee.ID, time.Now())
	if err != nil || changed {
		t.Fatalf("second: changed=%v err=%v", changed, err)
	}
	if _, err := repo.Fee().MarkPaid(ctx, "missing", time.Now()); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("missing fee: %v", err)
	}

	totals, _ := repo.Fee().Totals(ctx, repositories.FeeFilters{})
	if totals.Income != 25 || totals.Unpaid != 0 || totals.Total != 25 {
		t.Errorf("unexpected totals %+v", totals)
	}
}

func TestResetTokenFindUsable(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	now := time.Now()
	notBefore := now.Add(-models.PasswordResetTTL)

	fresh := &models.PasswordResetToken{UserID: "u1", Token: "fresh", CreatedAt: now.Add(-time.Minute)}
	stale := &models.PasswordResetToken{UserID: "u1", Token: "stale", CreatedAt: now.Add(-31 * time.Minute)}
	for _, token := range []*models.PasswordResetToken{fresh, stale} {
		if err := repo.PasswordResetToken().Create(ctx, token); err != nil {
			t.Fatalf("create %s: %v", token.Token, err)
		}
	}

	if _, err := repo.PasswordResetToken().FindUsable(ctx, "stale", notBefore); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("expired token: expected ErrNotFound, got %v", err)
	}

	found, err := repo.PasswordResetToken().FindUsable(ctx, "fresh", notBefore)
	if err != nil {
		t.Fatalf("fresh token: %v", err)
	}
	if claimed, err := repo.PasswordResetToken().Consume(ctx, found.ID, now); err != nil || !claimed {
		t.Fatalf("consume = %v, %v", claimed, err)
	}
	if _, err := repo.PasswordResetToken().FindUsable(ctx, "fresh", notBefore); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("consumed token: expected ErrNotFound, got %v", err)
	}
}
