package shifts

import (
	"context"
	"database/sql"
)

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// GET /shifts?all=1
func (s *Store) List(ctx context.Context, orgUUID string, includeDisabled bool) ([]Shift, error) {
	q := `
		SELECT shift_id, org_uuid, shift_name, starts_at, ends_at, grace_minutes, half_day_after, is_disabled
		FROM shifts
		WHERE org_uuid = ?
	`
	if !includeDisabled {
		q += ` AND is_disabled = 0`
	}
	q += ` ORDER BY shift_id`

	rows, err := s.db.QueryContext(ctx, q, orgUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]Shift, 0, 16)
	for rows.Next() {
		var sh Shift
		if err := rows.Scan(&sh.ShiftID, &sh.OrgUUID, &sh.Name, &sh.StartsAt, &sh.EndsAt, &sh.GraceMinutes, &sh.HalfDayAfter, &sh.IsDisabled); err != nil {
			return nil, err
		}
		res = append(res, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) GetByID(ctx context.Context, orgUUID string, id int64) (*Shift, error) {
	const q = `
		SELECT shift_id, org_uuid, shift_name, starts_at, ends_at, grace_minutes, half_day_after, is_disabled
		FROM shifts
		WHERE org_uuid = ? AND shift_id = ?
	`
	var sh Shift
	err := s.db.QueryRowContext(ctx, q, orgUUID, id).Scan(
		&sh.ShiftID, &sh.OrgUUID, &sh.Name, &sh.StartsAt, &sh.EndsAt, &sh.GraceMinutes, &sh.HalfDayAfter, &sh.IsDisabled,
	)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *Store) Create(ctx context.Context, orgUUID string, req CreateShiftRequest) (*Shift, error) {
	const q = `
		INSERT INTO shifts (org_uuid, shift_name, starts_at, ends_at, grace_minutes, half_day_after, is_disabled)
		VALUES (?, ?, ?, ?, ?, ?, 0)
	`
	r, err := s.db.ExecContext(ctx, q, orgUUID, req.Name, req.StartsAt, req.EndsAt, req.GraceMinutes, req.HalfDayAfter)
	if err != nil {
		return nil, err
	}
	lastID, err := r.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Shift{
		ShiftID:      lastID,
		OrgUUID:      orgUUID,
		Name:         req.Name,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		GraceMinutes: req.GraceMinutes,
		HalfDayAfter: req.HalfDayAfter,
	}, nil
}

func (s *Store) Update(ctx context.Context, orgUUID string, id int64, req UpdateShiftRequest) error {
	const q = `
		UPDATE shifts
		SET shift_name = ?, starts_at = ?, ends_at = ?, grace_minutes = ?, half_day_after = ?, is_disabled = ?
		WHERE org_uuid = ? AND shift_id = ?
	`
	r, err := s.db.ExecContext(ctx, q, req.Name, req.StartsAt, req.EndsAt, req.GraceMinutes, req.HalfDayAfter, req.IsDisabled, orgUUID, id)
	if err != nil {
		return err
	}
	aff, err := r.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DELETE: is_disabled=1 にする
func (s *Store) Disable(ctx context.Context, orgUUID string, id int64) error {
	const q = `UPDATE shifts SET is_disabled = 1 WHERE org_uuid = ? AND shift_id = ?`
	r, err := s.db.ExecContext(ctx, q, orgUUID, id)
	if err != nil {
		return err
	}
	aff, err := r.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}
