package locations

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

const cols = `
	request_uuid, org_uuid, member_id, label, lat, lng, radius_m, status, reviewed_by, reviewed_at, note, created_at
`

func (s *Store) Insert(ctx context.Context, r *AccessRequest) error {
	const q = `
	INSERT INTO location_access_requests
	(request_uuid, org_uuid, member_id, label, lat, lng, radius_m, status, note, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		r.RequestUUID, r.OrgUUID, r.MemberID, r.Label, r.Lat, r.Lng, r.RadiusM, r.Status, r.Note, r.CreatedAt,
	)
	return err
}

func (s *Store) GetByUUID(ctx context.Context, orgUUID, requestUUID string) (*AccessRequest, error) {
	q := `SELECT ` + cols + ` FROM location_access_requests WHERE org_uuid = ? AND request_uuid = ?`
	var r AccessRequest
	var reviewedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, q, orgUUID, requestUUID).Scan(
		&r.RequestUUID, &r.OrgUUID, &r.MemberID, &r.Label, &r.Lat, &r.Lng, &r.RadiusM,
		&r.Status, &r.ReviewedBy, &reviewedAt, &r.Note, &r.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time.UTC()
		r.ReviewedAt = &t
	}
	return &r, nil
}

func (s *Store) List(ctx context.Context, orgUUID string, f ListFilter) ([]AccessRequest, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)
	buf.WriteString(`SELECT ` + cols + ` FROM location_access_requests`)

	wheres = append(wheres, "org_uuid = ?")
	args = append(args, orgUUID)
	if f.Status != nil && *f.Status != "" {
		wheres = append(wheres, "status = ?")
		args = append(args, *f.Status)
	}
	if f.MemberID != nil && *f.MemberID != "" {
		wheres = append(wheres, "member_id = ?")
		args = append(args, *f.MemberID)
	}
	buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	buf.WriteString(" ORDER BY created_at DESC")

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AccessRequest
	for rows.Next() {
		var r AccessRequest
		var reviewedAt sql.NullTime
		if err := rows.Scan(
			&r.RequestUUID, &r.OrgUUID, &r.MemberID, &r.Label, &r.Lat, &r.Lng, &r.RadiusM,
			&r.Status, &r.ReviewedBy, &reviewedAt, &r.Note, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		if reviewedAt.Valid {
			t := reviewedAt.Time.UTC()
			r.ReviewedAt = &t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ApprovedFences: メンバーの承認済みフェンスのみ（打刻ゲート用）
func (s *Store) ApprovedFences(ctx context.Context, orgUUID, memberID string) ([]AccessRequest, error) {
	st := StatusApproved
	return s.List(ctx, orgUUID, ListFilter{Status: &st, MemberID: &memberID})
}

// 期待ステータスからの遷移のみ許す（楽観的な状態チェック込みUPDATE）。
// 審査メモ付きなら note も更新、nil なら既存値を残す
func (s *Store) Transition(ctx context.Context, orgUUID, requestUUID, fromStatus, toStatus, reviewedBy string, note *string, at time.Time) (int64, error) {
	const q = `
	UPDATE location_access_requests
	SET status = ?, reviewed_by = ?, reviewed_at = ?, note = COALESCE(?, note)
	WHERE org_uuid = ? AND request_uuid = ? AND status = ?`
	res, err := s.db.ExecContext(ctx, q, toStatus, reviewedBy, at, note, orgUUID, requestUUID, fromStatus)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
