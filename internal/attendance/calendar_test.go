package attendance

import (
	"testing"
	"time"
)

func rec(on, status string) Attendance {
	return Attendance{AttendedOn: on, Status: status}
}

func TestBuildMonthDaysCompleteness(t *testing.T) {
	today := ts("2024-03-10T08:00:00Z")
	cases := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2024, time.February, 29}, // うるう年
		{2023, time.February, 28},
		{2024, time.March, 31},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tc := range cases {
		got := BuildMonthDays(tc.year, tc.month, nil, today)
		if len(got) != tc.days {
			t.Errorf("%d-%d: len = %d, want %d", tc.year, tc.month, len(got), tc.days)
			continue
		}
		for i, dd := range got {
			want := time.Date(tc.year, tc.month, i+1, 0, 0, 0, 0, time.UTC)
			if !dd.Date.Equal(want) {
				t.Errorf("%d-%d day %d: date = %v, want %v", tc.year, tc.month, i+1, dd.Date, want)
			}
		}
	}
}

func TestBuildMonthDaysRecordAttachment(t *testing.T) {
	today := ts("2024-03-20T08:00:00Z")
	records := []Attendance{rec("2024-03-15", StatusOnTime)}

	days := BuildMonthDays(2024, time.March, records, today)
	for i, dd := range days {
		if i+1 == 15 {
			if dd.Record == nil {
				t.Fatal("day 15 has no record")
			}
			if dd.DisplayStatus != StatusOnTime {
				t.Errorf("day 15 display = %q", dd.DisplayStatus)
			}
			continue
		}
		if dd.Record != nil {
			t.Errorf("day %d unexpectedly has a record", i+1)
		}
	}
}

func TestBuildMonthDaysTemporalClass(t *testing.T) {
	today := ts("2024-03-10T15:45:00Z") // 時刻は無視されること
	days := BuildMonthDays(2024, time.March, nil, today)

	if got := days[4].TemporalClass; got != TemporalPast {
		t.Errorf("2024-03-05: %q, want past", got)
	}
	if got := days[9].TemporalClass; got != TemporalToday {
		t.Errorf("2024-03-10: %q, want today", got)
	}
	if got := days[14].TemporalClass; got != TemporalFuture {
		t.Errorf("2024-03-15: %q, want future", got)
	}
}

func TestBuildMonthDaysFallbackStatus(t *testing.T) {
	// 記録なし: 過去・当日は absent、未来は upcoming
	today := ts("2024-03-10T08:00:00Z")
	days := BuildMonthDays(2024, time.March, nil, today)

	if got := days[4].DisplayStatus; got != StatusAbsent {
		t.Errorf("past day display = %q, want absent", got)
	}
	if got := days[9].DisplayStatus; got != StatusAbsent {
		t.Errorf("today display = %q, want absent", got)
	}
	if got := days[14].DisplayStatus; got != StatusUpcoming {
		t.Errorf("future day display = %q, want upcoming", got)
	}
}

func TestBuildMonthDaysDuplicateLastWins(t *testing.T) {
	today := ts("2024-03-20T08:00:00Z")
	records := []Attendance{
		rec("2024-03-15", StatusOnTime),
		rec("2024-03-15", StatusLate),
	}
	days := BuildMonthDays(2024, time.March, records, today)
	if got := days[14].DisplayStatus; got != StatusLate {
		t.Errorf("duplicate date display = %q, want late (last wins)", got)
	}
}

func TestBuildMonthDaysDateOnlyMatching(t *testing.T) {
	// 記録側の日付に時刻が付いていても日付だけで照合する
	today := ts("2024-03-20T08:00:00Z")
	records := []Attendance{rec("2024-03-15T09:12:00Z", StatusLate)}
	days := BuildMonthDays(2024, time.March, records, today)
	if days[14].Record == nil {
		t.Fatal("timestamped record was not matched by date")
	}
}

func TestBuildMonthDaysMalformedRecordDate(t *testing.T) {
	today := ts("2024-03-20T08:00:00Z")
	records := []Attendance{rec("not-a-date", StatusLate)}
	days := BuildMonthDays(2024, time.March, records, today)
	for i := range days {
		if days[i].Record != nil {
			t.Fatalf("malformed record attached to day %d", i+1)
		}
	}
}

func TestBuildCalendarGridLeadingOffset(t *testing.T) {
	today := ts("2024-03-10T08:00:00Z")
	// 2024-03-01 は金曜 → 先頭に5つの空セル
	grid := BuildCalendarGrid(2024, time.March, nil, today)
	if len(grid) != 5+31 {
		t.Fatalf("grid len = %d, want 36", len(grid))
	}
	for i := 0; i < 5; i++ {
		if grid[i] != nil {
			t.Errorf("cell %d should be empty", i)
		}
	}
	if grid[5] == nil || grid[5].Date.Day() != 1 {
		t.Error("first day cell misplaced")
	}
	if grid[len(grid)-1] == nil || grid[len(grid)-1].Date.Day() != 31 {
		t.Error("last day cell misplaced")
	}
}
