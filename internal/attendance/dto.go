package attendance

import "time"

const (
	SortCheckedInDesc  = "checked_in_desc"
	SortCheckedInAsc   = "checked_in_asc"
	SortAttendedOnDesc = "attended_on_desc"
	SortAttendedOnAsc  = "attended_on_asc"
	DefaultPageLimit   = 50
	MaxPageLimit       = 200
	DefaultSort        = SortCheckedInDesc
	DateLayout         = "2006-01-02"
	ClockLayout        = "15:04"
)

// バックエンドが確定させるステータス（upcoming は導出専用で保存しない）
const (
	StatusOnTime   = "on_time"
	StatusLate     = "late"
	StatusHalfDay  = "half_day"
	StatusAbsent   = "absent"
	StatusUpcoming = "upcoming"
)

type CheckInRequest struct {
	MemberID   string   `json:"member_id" binding:"required"`
	AttendedOn *string  `json:"attended_on,omitempty"` // "YYYY-MM-DD" or "today"
	ShiftID    *int64   `json:"shift_id,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
	Note       *string  `json:"note,omitempty"`
}

type CheckOutRequest struct {
	MemberID   string  `json:"member_id" binding:"required"`
	AttendedOn *string `json:"attended_on,omitempty"`
	Note       *string `json:"note,omitempty"`
}

type AttendanceResponse struct {
	AttendanceID uint64     `json:"attendance_id"`
	MemberID     string     `json:"member_id"`
	AttendedOn   string     `json:"attended_on"` // YYYY-MM-DD
	CheckInAt    *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt   *time.Time `json:"check_out_at,omitempty"`
	TotalHours   *float64   `json:"total_hours,omitempty"`
	Status       string     `json:"status"`
	ShiftID      *int64     `json:"shift_id,omitempty"`
	Note         *string    `json:"note,omitempty"`
}

// 当日ビュー用。経過時間はサーバ時刻基準で毎回導出
type TodayResponse struct {
	Record  *AttendanceResponse `json:"record,omitempty"`
	Elapsed ElapsedDuration     `json:"elapsed"`
}

type ListQuery struct {
	MemberID *string
	On       *string
	From     *string
	To       *string
	Limit    int
	Offset   int
	Sort     string
}

type CalendarResponse struct {
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	Days        []DayDescriptor  `json:"days"`
	Grid        []*DayDescriptor `json:"grid"`
	TotalHours  float64          `json:"total_hours"`
	TotalLabel  string           `json:"total_label"` // HH:MM:SS
	PresentDays int              `json:"present_days"`
}

type StatsRequest struct {
	From  string // YYYY-MM-DD
	To    string // YYYY-MM-DD
	Limit int
}

type StatsRow struct {
	MemberID   string  `json:"member_id"`
	Days       int64   `json:"days"`
	TotalHours float64 `json:"total_hours"`
	TotalLabel string  `json:"total_label"`
}
