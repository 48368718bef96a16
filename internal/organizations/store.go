package organizations

import (
	"context"
	"database/sql"
	"errors"
)

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Create(ctx context.Context, o *Organization) error {
	const q = `
	INSERT INTO organizations (org_uuid, org_name, name_key, slug, contact_email, timezone, is_disabled, created_at)
	VALUES (?, ?, ?, ?, ?, ?, 0, NOW(6))`
	_, err := s.db.ExecContext(ctx, q, o.OrgUUID, o.Name, o.NameKey, o.Slug, o.ContactEmail, o.Timezone)
	return err
}

func (s *Store) GetByUUID(ctx context.Context, orgUUID string) (*Organization, error) {
	const q = `
	SELECT org_uuid, org_name, name_key, slug, contact_email, timezone, is_disabled, created_at
	FROM organizations
	WHERE org_uuid = ?
	LIMIT 1`
	var o Organization
	err := s.db.QueryRowContext(ctx, q, orgUUID).Scan(
		&o.OrgUUID, &o.Name, &o.NameKey, &o.Slug, &o.ContactEmail, &o.Timezone, &o.IsDisabled, &o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// 名前衝突チェック用。正規化キーで引く
func (s *Store) GetByNameKey(ctx context.Context, nameKey string) (*Organization, error) {
	const q = `
	SELECT org_uuid, org_name, name_key, slug, contact_email, timezone, is_disabled, created_at
	FROM organizations
	WHERE name_key = ?
	LIMIT 1`
	var o Organization
	err := s.db.QueryRowContext(ctx, q, nameKey).Scan(
		&o.OrgUUID, &o.Name, &o.NameKey, &o.Slug, &o.ContactEmail, &o.Timezone, &o.IsDisabled, &o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) List(ctx context.Context, includeDisabled bool) ([]Organization, error) {
	q := `
	SELECT org_uuid, org_name, name_key, slug, contact_email, timezone, is_disabled, created_at
	FROM organizations`
	if !includeDisabled {
		q += ` WHERE is_disabled = 0`
	}
	q += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Organization, 0, 16)
	for rows.Next() {
		var o Organization
		if err := rows.Scan(&o.OrgUUID, &o.Name, &o.NameKey, &o.Slug, &o.ContactEmail, &o.Timezone, &o.IsDisabled, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, orgUUID string, o *Organization) (int64, error) {
	const q = `
	UPDATE organizations
	SET org_name = ?, name_key = ?, contact_email = ?, timezone = ?
	WHERE org_uuid = ?`
	res, err := s.db.ExecContext(ctx, q, o.Name, o.NameKey, o.ContactEmail, o.Timezone, orgUUID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DELETE: is_disabled=1 にする
func (s *Store) Disable(ctx context.Context, orgUUID string) (int64, error) {
	const q = `UPDATE organizations SET is_disabled = 1 WHERE org_uuid = ?`
	res, err := s.db.ExecContext(ctx, q, orgUUID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ===== admins =====

func (s *Store) AddAdmin(ctx context.Context, m *AdminMembership) error {
	const q = `
	INSERT INTO org_admins (org_uuid, account_id, role, added_at)
	VALUES (?, ?, ?, NOW(6))`
	_, err := s.db.ExecContext(ctx, q, m.OrgUUID, m.AccountID, m.Role)
	return err
}

func (s *Store) ListAdmins(ctx context.Context, orgUUID string) ([]AdminMembership, error) {
	const q = `
	SELECT org_uuid, account_id, role, added_at
	FROM org_admins
	WHERE org_uuid = ?
	ORDER BY added_at ASC`
	rows, err := s.db.QueryContext(ctx, q, orgUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AdminMembership, 0, 8)
	for rows.Next() {
		var m AdminMembership
		if err := rows.Scan(&m.OrgUUID, &m.AccountID, &m.Role, &m.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) GetAdmin(ctx context.Context, orgUUID, accountID string) (*AdminMembership, error) {
	const q = `
	SELECT org_uuid, account_id, role, added_at
	FROM org_admins
	WHERE org_uuid = ? AND account_id = ?
	LIMIT 1`
	var m AdminMembership
	err := s.db.QueryRowContext(ctx, q, orgUUID, accountID).Scan(&m.OrgUUID, &m.AccountID, &m.Role, &m.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) UpdateAdminRole(ctx context.Context, orgUUID, accountID, role string) (int64, error) {
	const q = `UPDATE org_admins SET role = ? WHERE org_uuid = ? AND account_id = ?`
	res, err := s.db.ExecContext(ctx, q, role, orgUUID, accountID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) RemoveAdmin(ctx context.Context, orgUUID, accountID string) (int64, error) {
	const q = `DELETE FROM org_admins WHERE org_uuid = ? AND account_id = ?`
	res, err := s.db.ExecContext(ctx, q, orgUUID, accountID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
