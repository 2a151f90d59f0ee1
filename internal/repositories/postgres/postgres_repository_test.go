package postgres

import (
	"errors"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

// newDryRunDB builds SQL without a server. Writes skip the implicit
// transaction, which would otherwise dial the DSN.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=gym password=gym dbname=gym sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open dry-run db: %v", err)
	}
	return db
}

func TestAttendanceUpsertSQL(t *testing.T) {
	db := newDryRunDB(t)
	record := &models.AttendanceRecord{
		ID:     "a1",
		UserID: "u1",
		Date:   "2024-01-10",
		Status: models.AttendancePresent,
	}

	result := db.Clauses(attendanceConflict()).Create(record)
	if result.Error != nil {
		t.Fatalf("dry-run create: %v", result.Error)
	}
	sql := result.Statement.SQL.String()

	for _, want := range []string{"ON CONFLICT", `"user_id"`, `"date"`, "DO UPDATE SET", `"excluded"."status"`} {
		if !strings.Contains(sql, want) {
			t.Errorf("upsert SQL missing %q: %s", want, sql)
		}
	}
	for _, unwanted := range []string{`"excluded"."id"`, `"excluded"."created_at"`} {
		if strings.Contains(sql, unwanted) {
			t.Errorf("upsert SQL must not overwrite %q: %s", unwanted, sql)
		}
	}
}

func TestCatalogSearchEscapesPattern(t *testing.T) {
	db := newDryRunDB(t)
	var foods []*models.DietFood

	stmt := applyCatalogFilters(db, models.CatalogFilters{Search: "50%_off", Kind: "vegan"}, "diet_type").
		Find(&foods).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "ILIKE") || !strings.Contains(sql, "diet_type = ") {
		t.Fatalf("unexpected SQL: %s", sql)
	}

	found := false
	for _, v := range stmt.Vars {
		if s, ok := v.(string); ok && s == `%50\%\_off%` {
			found = true
		}
	}
	if !found {
		t.Errorf("escaped pattern not bound, vars = %v", stmt.Vars)
	}
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"oats", "%oats%"},
		{"a_b", `%a\_b%`},
		{`c:\path`, `%c:\\path%`},
		{"(.*)", "%(.*)%"},
	}
	for _, tt := range tests {
		if got := containsPattern(tt.in); got != tt.want {
			t.Errorf("containsPattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHandleDBError(t *testing.T) {
	if handleDBError(nil, "noop") != nil {
		t.Fatal("nil error must stay nil")
	}
	if err := handleDBError(gorm.ErrRecordNotFound, "get"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("record not found mapped to %v", err)
	}
	if err := handleDBError(gorm.ErrDuplicatedKey, "create"); !errors.Is(err, repositories.ErrDuplicate) {
		t.Errorf("duplicated key mapped to %v", err)
	}
	other := errors.New("boom")
	if err := handleDBError(other, "op"); !errors.Is(err, other) || repositories.IsNotFoundError(err) {
		t.Errorf("unexpected mapping for generic error: %v", err)
	}
}

func TestRecipientScopeWithoutAddressMatchesNothing(t *testing.T) {
	db := newDryRunDB(t)
	var notifications []*models.Notification

	sql := db.Where(recipientScope(db.Session(&gorm.Session{NewDB: true}), "", "")).
		Find(&notifications).Statement.SQL.String()
	if !strings.Contains(sql, "1 = 0") {
		t.Errorf("expected an always-false predicate: %s", sql)
	}
}
