package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// DateLayout is the calendar-day format used as part of the attendance key
const DateLayout = "2006-01-02"

type AttendanceRecord struct {
	ID          string           `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	UserID      string           `json:"userId" bson:"userId" gorm:"not null;size:64;uniqueIndex:idx_attendance_user_date"`
	Date        string           `json:"date" bson:"date" gorm:"not null;size:10;uniqueIndex:idx_attendance_user_date;index"`
	CheckIn     string           `json:"checkIn,omitempty" bson:"checkIn,omitempty" gorm:"size:8"`
	CheckOut    string           `json:"checkOut,omitempty" bson:"checkOut,omitempty" gorm:"size:8"`
	HoursWorked float64          `json:"hoursWorked" bson:"hoursWorked"`
	Status      AttendanceStatus `json:"status" bson:"status" gorm:"size:10;not null"`
	Notes       string           `json:"notes,omitempty" bson:"notes,omitempty" gorm:"type:text"`
	UpdatedBy   string           `json:"updatedBy,omitempty" bson:"updatedBy,omitempty" gorm:"size:64"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (AttendanceRecord) TableName() string {
	return CollectionAttendance
}

// AttendanceRosterEntry is one row of the daily roster: a user joined with
// that day's record, or a synthetic absent row when there is none.
type AttendanceRosterEntry struct {
	UserID        string           `json:"userId"`
	UserName      string           `json:"userName"`
	UserEmail     string           `json:"userEmail"`
	UserRole      UserRole         `json:"userRole"`
	AccountNumber string           `json:"accountNumber"`
	Date          string           `json:"date"`
	CheckIn       string           `json:"checkIn"`
	CheckOut      string           `json:"checkOut"`
	Status        AttendanceStatus `json:"status"`
	Notes         string           `json:"notes"`
	IsPresent     bool             `json:"isPresent"`
	HoursWorked   float64          `json:"hoursWorked"`
}

// BulkUpsertResult reports the outcome of a bulk attendance write
type BulkUpsertResult struct {
	Matched  int64 `json:"matched"`
	Upserted int64 `json:"upserted"`
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into an offset from midnight
func ParseClock(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", value)
}

// HoursBetween returns checkOut-checkIn in hours rounded to two decimals.
// It returns 0 when either side is empty.
func HoursBetween(checkIn, checkOut string) (float64, error) {
	if checkIn == "" || checkOut == "" {
		return 0, nil
	}
	in, err := ParseClock(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return 0, err
	}
	if out < in {
		return 0, fmt.Errorf("check-out %s is before check-in %s", checkOut, checkIn)
	}
	return math.Round((out-in).Hours()*100) / 100, nil
}
