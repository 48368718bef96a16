package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	platformdb "ATLAS-backend/internal/platform/db"
	"ATLAS-backend/internal/shifts"
)

// ===== Error model (shifts/tickets/locations と同型) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// ===== 依存先 =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// シフト定義の参照。shifts.Service が実装
type ShiftDirectory interface {
	Get(ctx context.Context, orgUUID string, id int64) (*shifts.Shift, error)
}

// 位置ベースのアクセス制御。locations.Service が実装。nilなら無効
type GeoGate interface {
	Allowed(ctx context.Context, orgUUID, memberID string, lat, lng float64) (bool, error)
}

// ===== Service =====

type Service struct {
	db     *sql.DB
	store  *Store
	shifts ShiftDirectory
	geo    GeoGate
	clock  Clock
}

func NewService(db *sql.DB, dir ShiftDirectory, geo GeoGate) *Service {
	return &Service{
		db:     db,
		store:  NewStore(db),
		shifts: dir,
		geo:    geo,
		clock:  realClock{},
	}
}

// POST /attendance/check-in
// 1人1日1行（UNIQUE）。既にチェックイン済みなら409
func (s *Service) CheckIn(ctx context.Context, orgUUID string, in CheckInRequest) (AttendanceResponse, error) {
	if in.MemberID == "" {
		return AttendanceResponse{}, ErrInvalid("member_id is required")
	}
	now := s.clock.Now()

	on := now.Format(DateLayout)
	if in.AttendedOn != nil && *in.AttendedOn != "" {
		parsed, err := parseOn(*in.AttendedOn, now)
		if err != nil {
			return AttendanceResponse{}, ErrInvalid("attended_on must be YYYY-MM-DD or 'today'")
		}
		on = parsed.Format(DateLayout)
	}

	// 位置ゲート。座標が来ていて承認フェンス外なら弾く
	if s.geo != nil && in.Lat != nil && in.Lng != nil {
		ok, err := s.geo.Allowed(ctx, orgUUID, in.MemberID, *in.Lat, *in.Lng)
		if err != nil {
			return AttendanceResponse{}, err
		}
		if !ok {
			return AttendanceResponse{}, ErrConflict("check-in location is outside approved geofences")
		}
	}

	// シフト照合でステータス確定
	var sh *shifts.Shift
	if in.ShiftID != nil {
		got, err := s.shifts.Get(ctx, orgUUID, *in.ShiftID)
		if err != nil {
			if errors.Is(err, shifts.ErrNotFound) {
				return AttendanceResponse{}, ErrInvalid("unknown shift_id")
			}
			return AttendanceResponse{}, err
		}
		sh = got
	}
	status := ClassifyCheckIn(now, sh)

	var created Attendance
	err := platformdb.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx platformdb.DBTX) error {
		st := NewStore(tx)
		existing, err := st.GetByDay(ctx, orgUUID, in.MemberID, on)
		if err != nil {
			return err
		}
		if existing != nil && existing.CheckInAt != nil {
			return ErrConflict("already checked in")
		}
		row, err := st.InsertCheckIn(ctx, Attendance{
			OrgUUID:    orgUUID,
			MemberID:   in.MemberID,
			AttendedOn: on,
			CheckInAt:  &now,
			Status:     status,
			ShiftID:    in.ShiftID,
			CheckInLat: in.Lat,
			CheckInLng: in.Lng,
			Note:       in.Note,
		})
		if err != nil {
			if isDuplicateKey(err) {
				return ErrConflict("already checked in")
			}
			return err
		}
		created = row
		return nil
	})
	if err != nil {
		return AttendanceResponse{}, err
	}
	return created.toDTO(), nil
}

// POST /attendance/check-out
// チェックアウト時刻と total_hours を確定させる（以後は固定）
func (s *Service) CheckOut(ctx context.Context, orgUUID string, in CheckOutRequest) (AttendanceResponse, error) {
	if in.MemberID == "" {
		return AttendanceResponse{}, ErrInvalid("member_id is required")
	}
	now := s.clock.Now()

	on := now.Format(DateLayout)
	if in.AttendedOn != nil && *in.AttendedOn != "" {
		parsed, err := parseOn(*in.AttendedOn, now)
		if err != nil {
			return AttendanceResponse{}, ErrInvalid("attended_on must be YYYY-MM-DD or 'today'")
		}
		on = parsed.Format(DateLayout)
	}

	var updated Attendance
	err := platformdb.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx platformdb.DBTX) error {
		st := NewStore(tx)
		row, err := st.GetByDay(ctx, orgUUID, in.MemberID, on)
		if err != nil {
			return err
		}
		if row == nil || row.CheckInAt == nil {
			return ErrConflict("not checked in")
		}
		if row.CheckOutAt != nil {
			return ErrConflict("already checked out")
		}

		el := ComputeElapsed(row.CheckInAt, &now, now)
		if err := st.SetCheckOut(ctx, row.AttendanceID, now, el.Hours, in.Note); err != nil {
			return err
		}
		row.CheckOutAt = &now
		hours := el.Hours
		row.TotalHours = &hours
		if in.Note != nil {
			row.Note = in.Note
		}
		updated = *row
		return nil
	})
	if err != nil {
		return AttendanceResponse{}, err
	}
	return updated.toDTO(), nil
}

// GET /attendance
func (s *Service) List(ctx context.Context, orgUUID string, q ListQuery) ([]AttendanceResponse, int64, error) {
	if q.Sort == "" {
		q.Sort = DefaultSort
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}

	rows, total, err := s.store.List(ctx, orgUUID, q)
	if err != nil {
		return nil, 0, err
	}
	out := make([]AttendanceResponse, 0, len(rows))
	for i := 0; i < len(rows); i++ {
		out = append(out, rows[i].toDTO())
	}
	return out, total, nil
}

// GET /attendance/today
// 未退勤なら経過はサーバ時刻で進む。退勤済みなら確定値で固定
func (s *Service) Today(ctx context.Context, orgUUID, memberID string) (TodayResponse, error) {
	if memberID == "" {
		return TodayResponse{}, ErrInvalid("member_id is required")
	}
	now := s.clock.Now()
	row, err := s.store.GetByDay(ctx, orgUUID, memberID, now.Format(DateLayout))
	if err != nil {
		return TodayResponse{}, err
	}
	if row == nil {
		return TodayResponse{Elapsed: ComputeElapsed(nil, nil, now)}, nil
	}
	dto := row.toDTO()
	return TodayResponse{
		Record:  &dto,
		Elapsed: ComputeElapsed(row.CheckInAt, row.CheckOutAt, now),
	}, nil
}

// GET /attendance/calendar
func (s *Service) Calendar(ctx context.Context, orgUUID, memberID string, year int, month time.Month) (CalendarResponse, error) {
	if memberID == "" {
		return CalendarResponse{}, ErrInvalid("member_id is required")
	}
	if month < time.January || month > time.December {
		return CalendarResponse{}, ErrInvalid("month must be 1..12")
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	// 月全体の読み出しは読み取り専用Txで揃える
	var records []Attendance
	err := platformdb.ReadOnly(ctx, s.db, func(ctx context.Context, tx platformdb.DBTX) error {
		var err error
		records, err = NewStore(tx).ListRange(ctx, orgUUID, memberID, first.Format(DateLayout), last.Format(DateLayout))
		return err
	})
	if err != nil {
		return CalendarResponse{}, err
	}

	today := s.clock.Now()
	days := BuildMonthDays(year, month, records, today)
	grid := BuildCalendarGrid(year, month, records, today)

	var total float64
	present := 0
	for i := range records {
		if records[i].TotalHours != nil {
			total += *records[i].TotalHours
		}
		if records[i].CheckInAt != nil {
			present++
		}
	}
	return CalendarResponse{
		Year:        year,
		Month:       int(month),
		Days:        days,
		Grid:        grid,
		TotalHours:  total,
		TotalLabel:  FormatHoursToHMS(total),
		PresentDays: present,
	}, nil
}

// GET /attendance/stats
func (s *Service) Stats(ctx context.Context, orgUUID string, req StatsRequest) ([]StatsRow, error) {
	from, err := time.ParseInLocation(DateLayout, req.From, time.UTC)
	if err != nil {
		return nil, ErrInvalid("from must be YYYY-MM-DD")
	}
	to, err := time.ParseInLocation(DateLayout, req.To, time.UTC)
	if err != nil {
		return nil, ErrInvalid("to must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, ErrInvalid("to must be >= from")
	}
	rows, err := s.store.Stats(ctx, orgUUID, from, to, req.Limit)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TotalLabel = FormatHoursToHMS(rows[i].TotalHours)
	}
	return rows, nil
}

// ===== classification =====

// ClassifyCheckIn: シフト始業＋猶予との比較で on_time/late/half_day を確定。
// 時刻はUTCの時分で比較する（シフト定義もUTC前提）
func ClassifyCheckIn(at time.Time, sh *shifts.Shift) string {
	if sh == nil {
		return StatusOnTime
	}
	start, err := time.Parse(ClockLayout, sh.StartsAt)
	if err != nil {
		return StatusOnTime // 壊れたシフト定義で打刻を止めない
	}
	atMin := at.UTC().Hour()*60 + at.UTC().Minute()
	startMin := start.Hour()*60 + start.Minute()

	if sh.HalfDayAfter != nil && *sh.HalfDayAfter != "" {
		if half, err := time.Parse(ClockLayout, *sh.HalfDayAfter); err == nil {
			if atMin > half.Hour()*60+half.Minute() {
				return StatusHalfDay
			}
		}
	}
	if atMin > startMin+sh.GraceMinutes {
		return StatusLate
	}
	return StatusOnTime
}

// ===== helpers =====

func parseOn(s string, now time.Time) (time.Time, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	if v == "today" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.ParseInLocation(DateLayout, v, time.UTC)
}

// MySQL 1062 (ER_DUP_ENTRY)
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
