package attendance

import (
	"database/sql"
	"time"
)

// DB行に対応（スキャン用）
type attendanceRow struct {
	AttendanceID uint64
	OrgUUID      string
	MemberID     string
	AttendedOn   string // DATE → "YYYY-MM-DD"
	CheckInAt    sql.NullTime
	CheckOutAt   sql.NullTime
	TotalHours   sql.NullFloat64
	Status       string
	ShiftID      sql.NullInt64
	CheckInLat   sql.NullFloat64
	CheckInLng   sql.NullFloat64
	Note         *string
}

// Service ↔ Store で使うモデル。欠損はポインタのnilで表す
type Attendance struct {
	AttendanceID uint64
	OrgUUID      string
	MemberID     string
	AttendedOn   string
	CheckInAt    *time.Time
	CheckOutAt   *time.Time
	TotalHours   *float64
	Status       string
	ShiftID      *int64
	CheckInLat   *float64
	CheckInLng   *float64
	Note         *string
}

func (r attendanceRow) toModel() Attendance {
	a := Attendance{
		AttendanceID: r.AttendanceID,
		OrgUUID:      r.OrgUUID,
		MemberID:     r.MemberID,
		AttendedOn:   r.AttendedOn,
		Status:       r.Status,
		Note:         r.Note,
	}
	if r.CheckInAt.Valid {
		t := r.CheckInAt.Time.UTC()
		a.CheckInAt = &t
	}
	if r.CheckOutAt.Valid {
		t := r.CheckOutAt.Time.UTC()
		a.CheckOutAt = &t
	}
	if r.TotalHours.Valid {
		v := r.TotalHours.Float64
		a.TotalHours = &v
	}
	if r.ShiftID.Valid {
		v := r.ShiftID.Int64
		a.ShiftID = &v
	}
	if r.CheckInLat.Valid {
		v := r.CheckInLat.Float64
		a.CheckInLat = &v
	}
	if r.CheckInLng.Valid {
		v := r.CheckInLng.Float64
		a.CheckInLng = &v
	}
	return a
}

func (a Attendance) toDTO() AttendanceResponse {
	return AttendanceResponse{
		AttendanceID: a.AttendanceID,
		MemberID:     a.MemberID,
		AttendedOn:   a.AttendedOn,
		CheckInAt:    a.CheckInAt,
		CheckOutAt:   a.CheckOutAt,
		TotalHours:   a.TotalHours,
		Status:       a.Status,
		ShiftID:      a.ShiftID,
		Note:         a.Note,
	}
}
