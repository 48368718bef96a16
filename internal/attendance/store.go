package attendance

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

const selectCols = `
	attendance_id, org_uuid, member_id,
	DATE_FORMAT(attended_on, '%Y-%m-%d') AS attended_on,
	check_in_at, check_out_at, total_hours, status, shift_id,
	check_in_lat, check_in_lng, note
`

// GetByDay: 指定メンバーの指定日の行。なければ nil, nil
func (s *Store) GetByDay(ctx context.Context, orgUUID, memberID, on string) (*Attendance, error) {
	q := `SELECT ` + selectCols + `
	FROM attendances
	WHERE org_uuid = ? AND member_id = ? AND attended_on = ?
	LIMIT 1`

	var r attendanceRow
	err := s.db.QueryRowContext(ctx, q, orgUUID, memberID, on).Scan(
		&r.AttendanceID, &r.OrgUUID, &r.MemberID, &r.AttendedOn,
		&r.CheckInAt, &r.CheckOutAt, &r.TotalHours, &r.Status, &r.ShiftID,
		&r.CheckInLat, &r.CheckInLng, &r.Note,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m := r.toModel()
	return &m, nil
}

// InsertCheckIn: UNIQUE(org_uuid, member_id, attended_on) を前提に1日1行
func (s *Store) InsertCheckIn(ctx context.Context, a Attendance) (Attendance, error) {
	const q = `
	INSERT INTO attendances
	(org_uuid, member_id, attended_on, check_in_at, status, shift_id, check_in_lat, check_in_lng, note)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, q,
		a.OrgUUID, a.MemberID, a.AttendedOn, a.CheckInAt, a.Status, a.ShiftID, a.CheckInLat, a.CheckInLng, noteOrNil(a.Note),
	)
	if err != nil {
		return Attendance{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Attendance{}, err
	}
	a.AttendanceID = uint64(id)
	return a, nil
}

func (s *Store) SetCheckOut(ctx context.Context, attendanceID uint64, at time.Time, hours float64, note *string) error {
	const q = `
	UPDATE attendances
	SET check_out_at = ?, total_hours = ?, note = COALESCE(?, note)
	WHERE attendance_id = ? AND check_out_at IS NULL`

	res, err := s.db.ExecContext(ctx, q, at, hours, noteOrNil(note), attendanceID)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return ErrConflict("already checked out")
	}
	return nil
}

// List: 条件に応じて動的WHERE + ORDER + LIMIT/OFFSET
func (s *Store) List(ctx context.Context, orgUUID string, q ListQuery) ([]Attendance, int64, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)

	buf.WriteString(`SELECT ` + selectCols + ` FROM attendances`)

	wheres = append(wheres, "org_uuid = ?")
	args = append(args, orgUUID)

	if q.MemberID != nil && *q.MemberID != "" {
		wheres = append(wheres, "member_id = ?")
		args = append(args, *q.MemberID)
	}
	if q.On != nil && *q.On != "" {
		wheres = append(wheres, "attended_on = ?")
		args = append(args, *q.On)
	} else {
		if q.From != nil && *q.From != "" {
			wheres = append(wheres, "attended_on >= ?")
			args = append(args, *q.From)
		}
		if q.To != nil && *q.To != "" {
			wheres = append(wheres, "attended_on <= ?")
			args = append(args, *q.To)
		}
	}
	buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))

	switch q.Sort {
	case SortCheckedInAsc:
		buf.WriteString(" ORDER BY check_in_at ASC, attendance_id ASC")
	case SortAttendedOnDesc:
		buf.WriteString(" ORDER BY attended_on DESC, check_in_at DESC, attendance_id DESC")
	case SortAttendedOnAsc:
		buf.WriteString(" ORDER BY attended_on ASC, check_in_at ASC, attendance_id ASC")
	default:
		buf.WriteString(" ORDER BY check_in_at DESC, attendance_id DESC")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	buf.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, q.Offset))

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Attendance
	for rows.Next() {
		var r attendanceRow
		if err := rows.Scan(
			&r.AttendanceID, &r.OrgUUID, &r.MemberID, &r.AttendedOn,
			&r.CheckInAt, &r.CheckOutAt, &r.TotalHours, &r.Status, &r.ShiftID,
			&r.CheckInLat, &r.CheckInLng, &r.Note,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, r.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// COUNT（ORDER BY より前までを再構築）
	var cntBuf bytes.Buffer
	cntBuf.WriteString("SELECT COUNT(*) FROM attendances WHERE " + strings.Join(wheres, " AND "))
	var total int64
	if err := s.db.QueryRowContext(ctx, cntBuf.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListRange: カレンダー用。1メンバーの from〜to を日付昇順で
func (s *Store) ListRange(ctx context.Context, orgUUID, memberID, from, to string) ([]Attendance, error) {
	q := `SELECT ` + selectCols + `
	FROM attendances
	WHERE org_uuid = ? AND member_id = ? AND attended_on BETWEEN ? AND ?
	ORDER BY attended_on ASC, attendance_id ASC`

	rows, err := s.db.QueryContext(ctx, q, orgUUID, memberID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attendance
	for rows.Next() {
		var r attendanceRow
		if err := rows.Scan(
			&r.AttendanceID, &r.OrgUUID, &r.MemberID, &r.AttendedOn,
			&r.CheckInAt, &r.CheckOutAt, &r.TotalHours, &r.Status, &r.ShiftID,
			&r.CheckInLat, &r.CheckInLng, &r.Note,
		); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

// Stats: 期間の出勤日数と合計時間をメンバー別に（TOP N）
func (s *Store) Stats(ctx context.Context, orgUUID string, from, to time.Time, limit int) ([]StatsRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
	SELECT member_id, COUNT(*) AS days, COALESCE(SUM(total_hours), 0) AS hours
	FROM attendances
	WHERE org_uuid = ? AND attended_on BETWEEN ? AND ? AND check_in_at IS NOT NULL
	GROUP BY member_id
	ORDER BY days DESC, member_id ASC
	LIMIT ?`, orgUUID, from.Format(DateLayout), to.Format(DateLayout), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatsRow
	for rows.Next() {
		var row StatsRow
		if err := rows.Scan(&row.MemberID, &row.Days, &row.TotalHours); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ===== helpers =====

func noteOrNil(s *string) any {
	if s == nil {
		return nil
	}
	if *s == "" {
		return nil
	}
	return *s
}
