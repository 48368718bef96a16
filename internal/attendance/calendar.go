package attendance

import "time"

const (
	TemporalPast   = "past"
	TemporalToday  = "today"
	TemporalFuture = "future"
)

// 1日分の表示用ビュー。毎回導出し、保存しない
type DayDescriptor struct {
	Date          time.Time   `json:"date"`
	Record        *Attendance `json:"record,omitempty"`
	TemporalClass string      `json:"temporal_class"`
	DisplayStatus string      `json:"display_status"`
}

// BuildMonthDays: 疎な出勤記録から月の全日を埋めた並びを作る。
// 照合は日付のみ（時刻は無視）。同一日の重複記録は後勝ち。
// 記録なしの過去日・当日は absent、未来日は upcoming
func BuildMonthDays(year int, month time.Month, records []Attendance, today time.Time) []DayDescriptor {
	idx := make(map[string]*Attendance, len(records))
	for i := range records {
		key, ok := dateKey(records[i].AttendedOn)
		if !ok {
			continue // 壊れた日付は表示から落とすだけ
		}
		idx[key] = &records[i]
	}

	cur := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	n := daysInMonth(year, month)
	out := make([]DayDescriptor, 0, n)
	for d := 1; d <= n; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		dd := DayDescriptor{Date: date}
		if rec, ok := idx[date.Format(DateLayout)]; ok {
			dd.Record = rec
		}
		switch {
		case date.Before(cur):
			dd.TemporalClass = TemporalPast
		case date.After(cur):
			dd.TemporalClass = TemporalFuture
		default:
			dd.TemporalClass = TemporalToday
		}
		switch {
		case dd.Record != nil:
			dd.DisplayStatus = dd.Record.Status
		case dd.TemporalClass == TemporalFuture:
			dd.DisplayStatus = StatusUpcoming
		default:
			dd.DisplayStatus = StatusAbsent
		}
		out = append(out, dd)
	}
	return out
}

// BuildCalendarGrid: 7列レイアウト用に、1日の曜日オフセット分だけ先頭に nil を詰める
func BuildCalendarGrid(year int, month time.Month, records []Attendance, today time.Time) []*DayDescriptor {
	days := BuildMonthDays(year, month, records, today)
	offset := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	grid := make([]*DayDescriptor, 0, offset+len(days))
	for i := 0; i < offset; i++ {
		grid = append(grid, nil)
	}
	for i := range days {
		grid = append(grid, &days[i])
	}
	return grid
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// dateKey: "YYYY-MM-DD"（後続に時刻が付いていても先頭10桁で照合）
func dateKey(s string) (string, bool) {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}
