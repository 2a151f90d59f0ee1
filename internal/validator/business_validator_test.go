package validator

import "testing"

func intPtr(v int) *int { return &v }

func TestValidateRegistration(t *testing.T) {
	bv := NewBusinessValidator()

	valid := func() RegisterRequest {
		return RegisterRequest{
			Name:     "A",
			Email:    "a@x.com",
			Password: "Abcd1234",
			Role:     "user",
			Age:      intPtr(20),
			Gender:   "male",
		}
	}

	tests := []struct {
		name        string
		mutate      func(r *RegisterRequest)
		wantField   string
		wantMessage string
	}{
		{name: "valid member", mutate: func(r *RegisterRequest) {}},
		{name: "valid trainer without age", mutate: func(r *RegisterRequest) {
			r.Role = "trainer"
			r.Age = nil
			r.Gender = ""
		}},
		{
			name:        "bad email",
			mutate:      func(r *RegisterRequest) { r.Email = "not-an-email" },
			wantField:   "email",
			wantMessage: "Invalid email format",
		},
		{
			name:        "short password",
			mutate:      func(r *RegisterRequest) { r.Password = "Ab1" },
			wantField:   "password",
			wantMessage: "Password must be between 8 and 20 characters",
		},
		{
			name:      "long password",
			mutate:    func(r *RegisterRequest) { r.Password = "Abcdefgh1234567890xyz" },
			wantField: "password",
		},
		{
			name:        "no uppercase",
			mutate:      func(r *RegisterRequest) { r.Password = "abcd1234" },
			wantField:   "password",
			wantMessage: "Password must contain at least one uppercase letter, one lowercase letter, and one number",
		},
		{
			name:      "symbols rejected",
			mutate:    func(r *RegisterRequest) { r.Password = "Abcd123!" },
			wantField: "password",
		},
		{
			name:      "unknown role",
			mutate:    func(r *RegisterRequest) { r.Role = "owner" },
			wantField: "role",
		},
		{
			name:        "underage member",
			mutate:      func(r *RegisterRequest) { r.Age = intPtr(17) },
			wantField:   "age",
			wantMessage: "You must be at least 18 years old",
		},
		{
			name:      "member without gender",
			mutate:    func(r *RegisterRequest) { r.Gender = "" },
			wantField: "gender",
		},
		{
			name:      "member without age",
			mutate:    func(r *RegisterRequest) { r.Age = nil },
			wantField: "age",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			errs := bv.ValidateRegistration(&req)

			if tt.wantField == "" {
				if len(errs) > 0 {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("expected error on %s", tt.wantField)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("field = %q, want %q", errs[0].Field, tt.wantField)
			}
			if tt.wantMessage != "" && errs[0].Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", errs[0].Message, tt.wantMessage)
			}
			if errs[0].Field == "password" && errs[0].Value != nil {
				t.Error("password value must not be echoed back")
			}
		})
	}
}

func TestValidatePasswordReset(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name        string
		req         ResetPasswordRequest
		wantMessage string
	}{
		{name: "ok", req: ResetPasswordRequest{Token: "t", Password: "Newpass123", ConfirmPassword: "Newpass123"}},
		{name: "missing token", req: ResetPasswordRequest{Password: "Newpass123", ConfirmPassword: "Newpass123"}, wantMessage: "Password, confirm password and token are required"},
		{name: "mismatch", req: ResetPasswordRequest{Token: "t", Password: "Newpass123", ConfirmPassword: "Newpass124"}, wantMessage: "Passwords do not match"},
		{name: "weak", req: ResetPasswordRequest{Token: "t", Password: "weakweak", ConfirmPassword: "weakweak"}, wantMessage: "Password must contain at least one uppercase letter, one lowercase letter, and one number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidatePasswordReset(&tt.req)
			if tt.wantMessage == "" {
				if len(errs) != 0 {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			if len(errs) == 0 || errs.Error() != tt.wantMessage {
				t.Fatalf("got %v, want %q", errs, tt.wantMessage)
			}
		})
	}
}

func TestValidateAttendance(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name    string
		req     AttendanceRequest
		wantErr bool
	}{
		{name: "ok", req: AttendanceRequest{UserID: "u1", Date: "2024-01-01", CheckIn: "09:00", CheckOut: "17:00", Status: "present"}},
		{name: "no times", req: AttendanceRequest{UserID: "u1", Date: "2024-01-01", Status: "absent"}},
		{name: "bad date", req: AttendanceRequest{UserID: "u1", Date: "01/01/2024", Status: "present"}, wantErr: true},
		{name: "bad status", req: AttendanceRequest{UserID: "u1", Date: "2024-01-01", Status: "sick"}, wantErr: true},
		{name: "bad clock", req: AttendanceRequest{UserID: "u1", Date: "2024-01-01", CheckIn: "25:00", Status: "present"}, wantErr: true},
		{name: "reversed times", req: AttendanceRequest{UserID: "u1", Date: "2024-01-01", CheckIn: "17:00", CheckOut: "09:00", Status: "present"}, wantErr: true},
		{name: "missing user", req: AttendanceRequest{Date: "2024-01-01", Status: "present"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateAttendance(&tt.req)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("ValidateAttendance() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateBulkAttendanceRejectsDuplicateKeys(t *testing.T) {
	bv := NewBusinessValidator()
	req := BulkAttendanceRequest{Records: []AttendanceRequest{
		{UserID: "u1", Date: "2024-01-01", Status: "present"},
		{UserID: "u1", Date: "2024-01-01", Status: "late"},
	}}
	if errs := bv.ValidateBulkAttendance(&req); len(errs) == 0 {
		t.Fatal("expected duplicate key error")
	}
}

func TestValidateNotificationRequiresRecipient(t *testing.T) {
	bv := NewBusinessValidator()
	errs := bv.ValidateNotification(&NotificationCreateRequest{Text: "hello"})
	if len(errs) == 0 || errs[0].Message != "Valid user ID or email is required" {
		t.Fatalf("got %v", errs)
	}
	if errs := bv.ValidateNotification(&NotificationCreateRequest{UserEmail: "a@x.com", Text: "hello"}); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateDateRange(t *testing.T) {
	bv := NewBusinessValidator()
	if errs := bv.ValidateDateRange("2024-02-01", "2024-01-01"); len(errs) == 0 {
		t.Error("expected reversed range to fail")
	}
	if errs := bv.ValidateDateRange("2024-01-01", "2024-01-01"); len(errs) != 0 {
		t.Errorf("single-day range should pass: %v", errs)
	}
}

func TestIsStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Abcd1234": true,
		"ABCD1234": false,
		"abcd1234": false,
		"Abcdefgh": false,
		"Abcd 123": false,
		"Ábcd1234": false,
	}
	for password, want := range cases {
		if got := IsStrongPassword(password); got != want {
			t.Errorf("IsStrongPassword(%q) = %v, want %v", password, got, want)
		}
	}
}
