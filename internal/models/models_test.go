package models

import (
	"testing"
	"time"
)

func TestHoursBetween(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     float64
		wantErr  bool
	}{
		{name: "full shift", checkIn: "09:00", checkOut: "17:00", want: 8},
		{name: "with seconds", checkIn: "09:00:00", checkOut: "09:45:00", want: 0.75},
		{name: "rounded", checkIn: "08:00", checkOut: "08:20", want: 0.33},
		{name: "missing check-out", checkIn: "09:00", want: 0},
		{name: "missing check-in", checkOut: "17:00", want: 0},
		{name: "reversed", checkIn: "17:00", checkOut: "09:00", wantErr: true},
		{name: "garbage", checkIn: "nine", checkOut: "17:00", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HoursBetween(tt.checkIn, tt.checkOut)
			if (err != nil) != tt.wantErr {
				t.Fatalf("HoursBetween() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("HoursBetween() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFeeEffectiveStatus(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		fee  Fee
		want FeeStatus
	}{
		{name: "unpaid not due", fee: Fee{Status: FeeUnpaid, DueDate: now.Add(time.Hour)}, want: FeeUnpaid},
		{name: "unpaid past due", fee: Fee{Status: FeeUnpaid, DueDate: now.Add(-time.Hour)}, want: FeeOverdue},
		{name: "paid past due", fee: Fee{Status: FeePaid, DueDate: now.Add(-time.Hour)}, want: FeePaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fee.EffectiveStatus(now); got != tt.want {
				t.Errorf("EffectiveStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrincipalCapabilities(t *testing.T) {
	admin := Principal{ID: "a", Role: RoleAdmin}
	trainer := Principal{ID: "t", Role: RoleTrainer}
	member := Principal{ID: "m", Role: RoleUser}

	if !admin.Can(CapDeleteUsers) {
		t.Error("admin should be able to delete users")
	}
	if trainer.Can(CapDeleteUsers) {
		t.Error("trainer must not delete users")
	}
	if !trainer.Can(CapManageFees) {
		t.Error("trainer should manage fees")
	}
	if member.Can(CapManageFees) || member.Can(CapAssignPlans) {
		t.Error("member has no management capabilities")
	}
	if !member.CanActOn("m", CapManageUsers) {
		t.Error("member may act on own records")
	}
	if member.CanActOn("other", CapManageUsers) {
		t.Error("member may not act on other records")
	}
	if (Principal{Role: "ghost"}).Can(CapManageCatalog) {
		t.Error("unknown role has no capabilities")
	}
}

func TestFormatAccountNumber(t *testing.T) {
	if got := FormatAccountNumber(7); got != "000000000007" {
		t.Errorf("FormatAccountNumber(7) = %q", got)
	}
	if got := FormatAccountNumber(123456); len(got) != AccountNumberWidth {
		t.Errorf("FormatAccountNumber width = %d", len(got))
	}
}

func TestPasswordResetTokenIsUsable(t *testing.T) {
	now := time.Now()
	used := now.Add(-time.Minute)
	tests := []struct {
		name  string
		token PasswordResetToken
		want  bool
	}{
		{name: "fresh", token: PasswordResetToken{CreatedAt: now.Add(-5 * time.Minute)}, want: true},
		{name: "expired", token: PasswordResetToken{CreatedAt: now.Add(-31 * time.Minute)}, want: false},
		{name: "consumed", token: PasswordResetToken{CreatedAt: now.Add(-5 * time.Minute), ResetAt: &used}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.token.IsUsable(now.Add(-PasswordResetTTL)); got != tt.want {
				t.Errorf("IsUsable() = %v, want %v", got, tt.want)
			}
		})
	}
}
