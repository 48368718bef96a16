package attendance

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"

	"ATLAS-backend/internal/shifts"
)

func strPtr(s string) *string { return &s }

func TestClassifyCheckIn(t *testing.T) {
	day := shifts.Shift{
		Name:         "day",
		StartsAt:     "09:00",
		EndsAt:       "18:00",
		GraceMinutes: 15,
		HalfDayAfter: strPtr("13:00"),
	}
	broken := shifts.Shift{Name: "broken", StartsAt: "9am", EndsAt: "18:00"}

	cases := []struct {
		name  string
		at    string
		shift *shifts.Shift
		want  string
	}{
		{"no shift", "2024-03-10T11:00:00Z", nil, StatusOnTime},
		{"before start", "2024-03-10T08:45:00Z", &day, StatusOnTime},
		{"exactly on start", "2024-03-10T09:00:00Z", &day, StatusOnTime},
		{"within grace", "2024-03-10T09:15:00Z", &day, StatusOnTime},
		{"one minute past grace", "2024-03-10T09:16:00Z", &day, StatusLate},
		{"late morning", "2024-03-10T11:30:00Z", &day, StatusLate},
		{"exactly half-day cutoff", "2024-03-10T13:00:00Z", &day, StatusLate},
		{"after half-day cutoff", "2024-03-10T13:01:00Z", &day, StatusHalfDay},
		{"broken shift definition", "2024-03-10T11:00:00Z", &broken, StatusOnTime},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyCheckIn(ts(tc.at), tc.shift); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseOn(t *testing.T) {
	now := ts("2024-03-10T15:00:00Z")

	got, err := parseOn("today", now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Format(DateLayout) != "2024-03-10" {
		t.Errorf("today = %v", got)
	}

	got, err = parseOn("2024-02-29", now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Format(DateLayout) != "2024-02-29" {
		t.Errorf("explicit date = %v", got)
	}

	if _, err := parseOn("03/10/2024", now); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrInvalid("x"), 400},
		{ErrNotFound("x"), 404},
		{ErrConflict("x"), 409},
		{ErrInternal("x"), 500},
		{timeoutErr{}, 500},
	}
	for _, tc := range cases {
		if got := ToHTTPStatus(tc.err); got != tc.want {
			t.Errorf("ToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "deadline exceeded" }

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'org-m1-2024-03-10' for key 'uq_attendance_day'"}
	if !isDuplicateKey(dup) {
		t.Error("1062 should be detected")
	}
	if !isDuplicateKey(fmt.Errorf("insert: %w", dup)) {
		t.Error("wrapped 1062 should be detected")
	}
	if isDuplicateKey(&mysql.MySQLError{Number: 1452, Message: "a foreign key constraint fails"}) {
		t.Error("1452 is not a duplicate key")
	}
	// 本文だけ似ている素のエラーに反応しないこと
	if isDuplicateKey(errors.New("Duplicate entry")) {
		t.Error("plain error must not match")
	}
	if isDuplicateKey(nil) {
		t.Error("nil is not an error")
	}
}
