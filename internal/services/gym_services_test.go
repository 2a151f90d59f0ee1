package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/gym-service/internal/models"
)

func TestAttendanceRecordUpserts(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAttendanceService(env.repo, env.logger, env.valid)
	ctx := context.Background()

	trainer := env.seedUser(t, "coach", models.RoleTrainer)
	member := env.seedUser(t, "alex", models.RoleUser)

	first, err := svc.Record(ctx, trainer, &AttendanceRequest{
		UserID: member.ID, Date: "2024-01-10", CheckIn: "09:00", CheckOut: "17:00", Status: "present",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if first.HoursWorked != 8 {
		t.Errorf("hoursWorked = %v, want 8", first.HoursWorked)
	}
	if first.UpdatedBy != trainer.ID {
		t.Errorf("updatedBy = %q, want %q", first.UpdatedBy, trainer.ID)
	}

	second, err := svc.Record(ctx, trainer, &AttendanceRequest{
		UserID: member.ID, Date: "2024-01-10", CheckIn: "10:30", Status: "late",
	})
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if second.ID != first.ID || second.Status != models.AttendanceLate || second.HoursWorked != 0 {
		t.Errorf("expected in-place update, got %+v", second)
	}

	history, err := svc.History(ctx, member, member.ID, "")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one record, got %d", len(history))
	}

	t.Run("members cannot write", func(t *testing.T) {
		_, err := svc.Record(ctx, member, &AttendanceRequest{UserID: member.ID, Date: "2024-01-11", Status: "present"})
		assertKind(t, err, ErrForbidden)
	})

	t.Run("members read only their own", func(t *testing.T) {
		_, err := svc.History(ctx, member, trainer.ID, "")
		assertKind(t, err, ErrForbidden)
	})

	t.Run("check-out before check-in", func(t *testing.T) {
		_, err := svc.Record(ctx, trainer, &AttendanceRequest{
			UserID: member.ID, Date: "2024-01-12", CheckIn: "17:00", CheckOut: "09:00", Status: "present",
		})
		assertKind(t, err, ErrValidationFailed)
	})
}

func TestAttendanceRosterFillsAbsentRows(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAttendanceService(env.repo, env.logger, env.valid)
	ctx := context.Background()

	admin := env.seedUser(t, "root", models.RoleAdmin)
	present := env.seedUser(t, "alex", models.RoleUser)
	late := env.seedUser(t, "kim", models.RoleUser)
	env.seedUser(t, "sam", models.RoleTrainer)

	for userID, status := range map[string]string{present.ID: "present", late.ID: "late"} {
		if _, err := svc.Record(ctx, admin, &AttendanceRequest{UserID: userID, Date: "2024-02-01", Status: status}); err != nil {
			t.Fatalf("record %s: %v", status, err)
		}
	}

	roster, err := svc.Roster(ctx, admin, "2024-02-01")
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	if len(roster) != 3 {
		t.Fatalf("expected two member rows and a trainer row, got %d", len(roster))
	}
	for _, row := range roster {
		switch row.UserID {
		case present.ID:
			if !row.IsPresent || row.Status != models.AttendancePresent {
				t.Errorf("present row wrong: %+v", row)
			}
		case late.ID:
			if row.IsPresent || row.Status != models.AttendanceLate {
				t.Errorf("late row must not count as present: %+v", row)
			}
		default:
			if row.IsPresent || row.Status != models.AttendanceAbsent || row.HoursWorked != 0 {
				t.Errorf("synthetic row wrong: %+v", row)
			}
		}
	}

	_, err = svc.Roster(ctx, present, "2024-02-01")
	assertKind(t, err, ErrForbidden)
}

func TestFeeLifecycle(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeeService(env.repo, env.logger, env.valid)
	notifications := NewNotificationService(env.repo, env.logger, env.valid)
	ctx := context.Background()

	trainer := env.seedUser(t, "coach", models.RoleTrainer)
	member := env.seedUser(t, "alex", models.RoleUser)

	fee, err := svc.Create(ctx, trainer, &FeeCreateRequest{StudentID: member.ID, Amount: 50})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if fee.Status != models.FeeUnpaid || fee.Description != models.DefaultFeeDescription {
		t.Errorf("unexpected defaults %+v", fee)
	}
	if _, err := svc.Create(ctx, trainer, &FeeCreateRequest{StudentID: member.ID, Amount: 20.5, Description: "Locker"}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	inbox, err := notifications.ListMine(ctx, member)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(inbox) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(inbox))
	}
	want := "New fee of $50 has been added to your account"
	if inbox[1].Text != want && inbox[0].Text != want {
		t.Errorf("missing fee notification text %q", want)
	}
	if inbox[0].Type != models.NotificationFee || inbox[0].PathName != "/user/fees" {
		t.Errorf("unexpected notification %+v", inbox[0])
	}

	if _, err := svc.MarkPaid(ctx, trainer, fee.ID); err != nil {
		t.Fatalf("pay: %v", err)
	}
	paid, err := svc.MarkPaid(ctx, trainer, fee.ID)
	if err != nil {
		t.Fatalf("pay again: %v", err)
	}
	if paid.Status != models.FeePaid || paid.PaidAt == nil {
		t.Errorf("fee not paid: %+v", paid)
	}

	list, err := svc.List(ctx, member, member.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Totals.Income != 50 || list.Totals.Unpaid != 20.5 || list.Totals.Total != 70.5 {
		t.Errorf("unexpected totals %+v", list.Totals)
	}
	if len(list.Fees) != 2 || list.Fees[0].Student == nil || list.Fees[0].Student.Email != member.Email {
		t.Errorf("fees not joined with student: %+v", list.Fees)
	}

	t.Run("students only", func(t *testing.T) {
		_, err := svc.Create(ctx, trainer, &FeeCreateRequest{StudentID: trainer.ID, Amount: 10})
		assertKind(t, err, ErrNotFound)
	})

	t.Run("members cannot list everyone", func(t *testing.T) {
		_, err := svc.List(ctx, member, "")
		assertKind(t, err, ErrForbidden)
	})

	t.Run("unknown fee", func(t *testing.T) {
		_, err := svc.MarkPaid(ctx, trainer, "missing")
		assertKind(t, err, ErrNotFound)
	})
}

func TestFeeExportWritesWorkbook(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeeService(env.repo, env.logger, env.valid)
	ctx := context.Background()

	admin := env.seedUser(t, "root", models.RoleAdmin)
	member := env.seedUser(t, "alex", models.RoleUser)
	if _, err := svc.Create(ctx, admin, &FeeCreateRequest{StudentID: member.ID, Amount: 30, DueDate: "2000-01-01"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.Export(ctx, admin, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(feeExportSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d", len(rows))
	}
	if rows[1][0] != member.AccountNumber || rows[1][5] != string(models.FeeOverdue) {
		t.Errorf("unexpected row %v", rows[1])
	}

	assertKind(t, svc.Export(ctx, member, &bytes.Buffer{}), ErrForbidden)
}

func TestUserDeleteRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.repo, env.logger, env.valid)
	ctx := context.Background()

	admin := env.seedUser(t, "root", models.RoleAdmin)
	trainer := env.seedUser(t, "coach", models.RoleTrainer)
	member := env.seedUser(t, "alex", models.RoleUser)

	assertKind(t, svc.Delete(ctx, trainer, member.ID), ErrForbidden)
	if _, err := env.repo.User().GetByID(ctx, member.ID); err != nil {
		t.Fatalf("member should remain after forbidden delete: %v", err)
	}

	if err := svc.Delete(ctx, admin, member.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	assertKind(t, svc.Delete(ctx, admin, member.ID), ErrNotFound)
}

func TestUserUpdate(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.repo, env.logger, env.valid)
	ctx := context.Background()

	admin := env.seedUser(t, "root", models.RoleAdmin)
	trainer := env.seedUser(t, "coach", models.RoleTrainer)
	member := env.seedUser(t, "alex", models.RoleUser)
	other := env.seedUser(t, "sam", models.RoleUser)

	name := "Alexandra"
	updated, err := svc.UpdateProfile(ctx, member, &ProfileUpdateRequest{Name: &name})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != name {
		t.Errorf("name = %q, want %q", updated.Name, name)
	}

	_, err = svc.Update(ctx, member, other.ID, &UserUpdateRequest{Name: &name})
	assertKind(t, err, ErrForbidden)

	_, err = svc.Update(ctx, member, member.ID, &UserUpdateRequest{TrainerID: &trainer.ID})
	assertKind(t, err, ErrForbidden)

	_, err = svc.Update(ctx, admin, member.ID, &UserUpdateRequest{TrainerID: &other.ID})
	assertKind(t, err, ErrValidationFailed)

	assigned, err := svc.Update(ctx, admin, member.ID, &UserUpdateRequest{TrainerID: &trainer.ID})
	if err != nil {
		t.Fatalf("assign trainer: %v", err)
	}
	if assigned.TrainerID != trainer.ID {
		t.Errorf("trainerId = %q, want %q", assigned.TrainerID, trainer.ID)
	}
}

func TestCatalogAndAssignments(t *testing.T) {
	env := newTestEnv(t)
	catalog := NewCatalogService(env.repo, env.logger, env.valid)
	assignments := NewAssignmentService(env.repo, env.logger, env.valid)
	ctx := context.Background()

	trainer := env.seedUser(t, "coach", models.RoleTrainer)
	member := env.seedUser(t, "alex", models.RoleUser)

	food, err := catalog.CreateDietFood(ctx, trainer, &DietFoodRequest{Name: "Oats", Description: "Rolled oats", Category: "grains"})
	if err != nil {
		t.Fatalf("create food: %v", err)
	}
	if food.DietType != models.DefaultDietType || food.ServingSize != models.DefaultServingSize || food.Ingredients == nil {
		t.Errorf("defaults not applied: %+v", food)
	}

	_, err = catalog.CreateDietFood(ctx, member, &DietFoodRequest{Name: "Cake", Description: "x", Category: "dessert"})
	assertKind(t, err, ErrForbidden)

	found, err := catalog.ListDietFoods(ctx, models.CatalogFilters{Search: "OAT"})
	if err != nil || len(found) != 1 {
		t.Fatalf("search: %v, %d results", err, len(found))
	}

	req := &DietAssignmentRequest{
		StudentID: member.ID,
		Foods:     []models.DietAssignmentItem{{FoodID: food.ID, Breakfast: true}},
		FromDate:  "2024-01-01",
		ToDate:    "2024-01-31",
	}
	assignment, err := assignments.CreateDiet(ctx, trainer, req)
	if err != nil {
		t.Fatalf("assign diet: %v", err)
	}

	current, err := assignments.CurrentDiet(ctx, member)
	if err != nil || current.ID != assignment.ID {
		t.Fatalf("current diet: %v %+v", err, current)
	}

	t.Run("unknown food", func(t *testing.T) {
		bad := *req
		bad.Foods = []models.DietAssignmentItem{{FoodID: food.ID}, {FoodID: "missing"}}
		_, err := assignments.CreateDiet(ctx, trainer, &bad)
		assertKind(t, err, ErrValidationFailed)
	})

	t.Run("inverted window", func(t *testing.T) {
		bad := *req
		bad.FromDate, bad.ToDate = "2024-02-01", "2024-01-01"
		_, err := assignments.CreateDiet(ctx, trainer, &bad)
		assertKind(t, err, ErrValidationFailed)
	})

	t.Run("trainer is not a student", func(t *testing.T) {
		bad := *req
		bad.StudentID = trainer.ID
		_, err := assignments.CreateDiet(ctx, trainer, &bad)
		assertKind(t, err, ErrNotFound)
	})

	t.Run("no diet yet", func(t *testing.T) {
		_, err := assignments.CurrentDiet(ctx, trainer)
		assertKind(t, err, ErrNotFound)
	})

	if err := catalog.DeleteDietFood(ctx, trainer, food.ID); err != nil {
		t.Fatalf("delete food: %v", err)
	}
	_, err = catalog.GetDietFood(ctx, food.ID)
	assertKind(t, err, ErrNotFound)
}

func TestNotificationCreateAndMarkRead(t *testing.T) {
	env := newTestEnv(t)
	svc := NewNotificationService(env.repo, env.logger, env.valid)
	ctx := context.Background()

	trainer := env.seedUser(t, "coach", models.RoleTrainer)
	member := env.seedUser(t, "alex", models.RoleUser)
	other := env.seedUser(t, "sam", models.RoleUser)

	_, err := svc.Create(ctx, trainer, &NotificationCreateRequest{Text: "hello"})
	assertKind(t, err, ErrValidationFailed)

	for _, req := range []*NotificationCreateRequest{
		{UserEmail: "ghost@gym.test", Text: "hello"},
		{UserID: "missing", Text: "hello"},
	} {
		_, err = svc.Create(ctx, trainer, req)
		assertKind(t, err, ErrValidationFailed)
		var serviceErr *ServiceError
		if errors.As(err, &serviceErr) && serviceErr.Message != "Valid user ID or email is required" {
			t.Errorf("unexpected message %q", serviceErr.Message)
		}
	}

	// members may message each other
	if _, err := svc.Create(ctx, other, &NotificationCreateRequest{UserID: member.ID, Text: "Spot me?"}); err != nil {
		t.Fatalf("member create: %v", err)
	}

	n, err := svc.Create(ctx, trainer, &NotificationCreateRequest{UserEmail: "ALEX@gym.test", Text: "Leg day"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.UserID != member.ID || n.Type != models.NotificationGeneral || n.PathName != "/" || n.Read {
		t.Errorf("unexpected notification %+v", n)
	}

	assertKind(t, svc.MarkRead(ctx, other, n.ID), ErrNotFound)
	if err := svc.MarkRead(ctx, member, n.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	inbox, _ := svc.ListMine(ctx, member)
	read := 0
	for _, item := range inbox {
		if item.Read {
			read++
		}
	}
	if len(inbox) != 2 || read != 1 {
		t.Fatalf("expected two notifications with one read, got %+v", inbox)
	}
}
